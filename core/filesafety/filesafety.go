// Package filesafety defines the FileSafetyDelegate contract used to copy
// transient file paths referenced in a queued job's payload to durable
// locations before it is persisted, and to clean those copies up once the
// queued job is done.
package filesafety

// Delegate secures and later cleans up any transient file references in a
// job payload that must survive until the job is replayed.
type Delegate interface {
	// SecureFiles copies any transient file paths referenced in payload
	// to durable paths and returns a rewritten payload pointing at them.
	SecureFiles(payload []byte) ([]byte, error)
	// CleanupFiles deletes the durable copies referenced by payload.
	CleanupFiles(payload []byte) error
}

// Noop is a Delegate that performs no copying or cleanup; it returns the
// payload unchanged. It is the default when no delegate is configured,
// matching the spec's treatment of file safety as fully optional.
type Noop struct{}

// SecureFiles implements Delegate by returning payload unchanged.
func (Noop) SecureFiles(payload []byte) ([]byte, error) { return payload, nil }

// CleanupFiles implements Delegate as a no-op.
func (Noop) CleanupFiles(payload []byte) error { return nil }
