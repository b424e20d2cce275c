package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// A small worker pool bounding in-stage concurrency. Tasks are independent
// units of work; a failing task only reports through its own closure.

type Task func(ctx context.Context)

// job pairs a task with the context it was submitted under, so the task
// observes the submitter's deadlines and values rather than the pool's
// lifetime.
type job struct {
	ctx  context.Context
	task Task
}

type Pool struct {
	wg   sync.WaitGroup
	jobs chan job
	n    int
}

func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{jobs: make(chan job, workers), n: workers}
}

func (p *Pool) Start() {
	for i := 0; i < p.n; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				j.task(j.ctx)
			}
		}()
	}
}

// Stop closes the queue and waits for every accepted task to finish.
// Accepted work is never dropped; tasks see shutdown through their own
// submitted contexts. Submitting after Stop panics.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit blocks until a worker can take the task or ctx is cancelled.
// Blocking keeps stage semantics honest: every collected task either runs
// or the cycle is being cancelled, nothing is silently dropped.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	if task == nil {
		return errors.New("nil task")
	}
	select {
	case p.jobs <- job{ctx: ctx, task: task}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
