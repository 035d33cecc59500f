package executor

import "github.com/lploc94/orbit/core/job"

// NetworkSyncFailureEvent is broadcast on the global bus every time a
// replayed offline job fails. Handlers use Poisoned to tell a
// permanently abandoned job apart from one that will be retried on the next
// replay pass.
type NetworkSyncFailureEvent struct {
	job.Meta
	JobID      string
	Type       string
	Cause      string
	RetryCount int
	Poisoned   bool
}
