package parallel

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllWork(t *testing.T) {
	pool := New(4)

	var count atomic.Uint64
	for range 100 {
		pool.Do(func() {
			count.Add(1)
		})
	}
	pool.Wait(true)

	if got := count.Load(); got != 100 {
		t.Errorf("ran %d tasks, want 100", got)
	}
}

func TestSingleWorkerRunsInline(t *testing.T) {
	pool := New(1)

	ran := false
	pool.Do(func() { ran = true })
	if !ran {
		t.Errorf("single-worker pool deferred work, want inline execution")
	}
	pool.Wait(true)
}

func TestCancelIsIdempotent(t *testing.T) {
	pool := New(2)
	pool.Do(func() {})
	pool.Cancel()
	pool.Cancel()
	pool.Wait(true)
}
