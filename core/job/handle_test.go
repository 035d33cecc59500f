package job_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/lploc94/orbit/core/job"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle_CompleteIdempotence(t *testing.T) {
	t.Parallel()

	t.Run("only the first Complete takes effect", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		h.Complete(1, job.Cached)
		h.Complete(2, job.Fresh)

		res, err := h.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Data)
		assert.Equal(t, job.Cached, res.Source)
	})

	t.Run("CompleteError after Complete is a no-op", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		h.Complete(1, job.Fresh)
		h.CompleteError(errors.New("too late"))

		res, err := h.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, res.Data)
	})

	t.Run("Complete after CompleteError is a no-op", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		boom := errors.New("boom")
		h.CompleteError(boom)
		h.Complete(5, job.Fresh)

		_, err := h.Await(context.Background())
		assert.ErrorIs(t, err, boom)
	})

	t.Run("concurrent completions, exactly one wins", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func(v int) {
				defer wg.Done()
				h.Complete(v, job.Fresh)
			}(i)
		}
		wg.Wait()

		res, err := h.Await(context.Background())
		require.NoError(t, err)
		assert.GreaterOrEqual(t, res.Data, 0)
	})
}

func TestHandle_Await(t *testing.T) {
	t.Parallel()

	t.Run("blocks until completion", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[string]("job-1")
		go func() {
			time.Sleep(10 * time.Millisecond)
			h.Complete("done", job.Fresh)
		}()

		res, err := h.Await(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "done", res.Data)
	})

	t.Run("returns ctx error if context is done first", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[string]("job-1")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
		defer cancel()

		_, err := h.Await(ctx)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestHandle_Progress(t *testing.T) {
	t.Parallel()

	t.Run("clamps into [0,1]", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		h.ReportProgress(-1, "", 0, 0)
		h.ReportProgress(5, "", 0, 0)

		p1 := <-h.Progress()
		p2 := <-h.Progress()
		assert.Equal(t, 0.0, p1.Value)
		assert.Equal(t, 1.0, p2.Value)
	})

	t.Run("ReportStep computes current/total", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		h.ReportStep(2, 4, "halfway")

		p := <-h.Progress()
		assert.Equal(t, 0.5, p.Value)
		assert.Equal(t, "halfway", p.Message)
	})

	t.Run("zero total step reports zero progress", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		h.ReportStep(0, 0, "")

		p := <-h.Progress()
		assert.Equal(t, 0.0, p.Value)
	})

	t.Run("ignored after CloseProgress", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		h.CloseProgress()
		assert.NotPanics(t, func() { h.ReportProgress(0.5, "", 0, 0) })
	})

	t.Run("dropping the handle without awaiting never panics", func(t *testing.T) {
		t.Parallel()

		h := job.NewHandle[int]("job-1")
		h.Complete(1, job.Fresh)
		h.CloseProgress()
		// No Await call at all; GC should be able to collect h cleanly.
	})
}
