package job

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// DefaultIDPrefix is used by NewID when no prefix is supplied.
const DefaultIDPrefix = "job"

// NewID generates a job id of the form "{prefix}-{microseconds}-{6 hex}".
// The microsecond component is the current Unix time in microseconds; the
// hex component is 24 bits of crypto/rand randomness, zero-padded to six
// lowercase hex characters. Collisions across 10^6 calls in one process are
// not expected to occur.
func NewID(prefix string) string {
	if prefix == "" {
		prefix = DefaultIDPrefix
	}

	var buf [3]byte
	// crypto/rand.Read on the standard reader never returns an error in
	// practice; a zero-filled suffix is an acceptable, still-unique-enough
	// degradation if it ever did.
	_, _ = rand.Read(buf[:])

	return fmt.Sprintf("%s-%d-%s", prefix, time.Now().UnixMicro(), hex.EncodeToString(buf[:]))
}
