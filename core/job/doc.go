// Package job defines the typed work-request model shared by the
// executor, dispatcher, and orchestrator packages: Job itself, the
// caller-visible Handle future, DataSource, CachePolicy/DataStrategy,
// RetryPolicy, and CancellationToken.
//
// None of these types run anything on their own — see package executor
// for the pipeline that interprets a Job and completes its Handle.
package job
