// Package parallel provides a bounded worker pool for batch image
// processing. The pixel core itself is single-threaded; only the host
// pipeline fans out over files.
package parallel

import (
	"runtime"
	"sync"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
)

type Pool struct {
	wg     sync.WaitGroup
	work   chan func()
	cancel func()
}

// New starts a pool with the given number of workers. Anything below 1
// means one worker per available CPU. A single-worker pool degenerates
// to running submitted work inline.
func New(numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{}
	if numWorkers == 1 {
		return pool
	}

	pool.work = make(chan func(), numWorkers)
	pool.cancel = sync.OnceFunc(func() { close(pool.work) })
	for range numWorkers {
		pool.wg.Go(func() {
			for f := range pool.work {
				f()
			}
		})
	}

	return pool
}

// Do submits f to the pool, blocking while the queue is full.
func (p *Pool) Do(f func()) {
	if p.work == nil {
		f()
		return
	}
	p.work <- f
}

// Wait blocks until all submitted work has run. With done set the pool
// is also shut down and must not be given further work.
func (p *Pool) Wait(done bool) {
	if p.work == nil {
		return
	}
	if done {
		p.Cancel()
	}
	p.wg.Wait()
}

// Cancel shuts the pool down once in-flight work finishes. Safe to call
// more than once.
func (p *Pool) Cancel() {
	if p.cancel != nil {
		p.cancel()
	}
}
