package job_test

import (
	"regexp"
	"testing"

	"github.com/lploc94/orbit/core/job"
	"github.com/stretchr/testify/assert"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+-\d+-[0-9a-f]{6}$`)

func TestNewID(t *testing.T) {
	t.Parallel()

	t.Run("matches the documented format", func(t *testing.T) {
		t.Parallel()
		id := job.NewID("sync")
		assert.Regexp(t, idPattern, id)
	})

	t.Run("defaults the prefix to job", func(t *testing.T) {
		t.Parallel()
		id := job.NewID("")
		assert.Regexp(t, regexp.MustCompile(`^job-\d+-[0-9a-f]{6}$`), id)
	})

	t.Run("generates unique ids at scale", func(t *testing.T) {
		t.Parallel()
		const n = 100_000
		seen := make(map[string]struct{}, n)
		for range n {
			id := job.NewID("t")
			_, dup := seen[id]
			assert.False(t, dup, "duplicate id generated: %s", id)
			seen[id] = struct{}{}
		}
	})
}
