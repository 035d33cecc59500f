package job

import "time"

// Dur returns a pointer to d, for inline construction of Job.Timeout and
// CachePolicy.TTL literals.
func Dur(d time.Duration) *time.Duration { return &d }
