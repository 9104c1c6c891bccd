package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

type stubResult struct {
	err error
}

func (r stubResult) GetError() error { return r.err }

type stubJob struct {
	counter *atomic.Int64
	fail    bool
}

func (j stubJob) Execute(_ context.Context) Result {
	j.counter.Add(1)
	if j.fail {
		return stubResult{err: errors.New("boom")}
	}
	return stubResult{}
}

func TestPoolRunsAllJobs(t *testing.T) {
	const jobs = 20

	var counter atomic.Int64
	pool := NewPool(4, jobs)
	pool.Start()

	for i := 0; i < jobs; i++ {
		pool.Submit(stubJob{counter: &counter, fail: i%5 == 0})
	}
	results := pool.Wait()

	if got := counter.Load(); got != jobs {
		t.Errorf("executed %d jobs, want %d", got, jobs)
	}
	if len(results) != jobs {
		t.Fatalf("got %d results, want %d", len(results), jobs)
	}

	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 4 {
		t.Errorf("failed = %d, want 4", failed)
	}
}

func TestPoolClampsWorkerCount(t *testing.T) {
	var counter atomic.Int64
	pool := NewPool(0, 1)
	pool.Start()
	pool.Submit(stubJob{counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
}

func TestPoolShutdown(t *testing.T) {
	pool := NewPool(2, 2)
	pool.Start()
	pool.Shutdown()

	// Submit after shutdown must not block or panic
	var counter atomic.Int64
	pool.Submit(stubJob{counter: &counter})
	if got := counter.Load(); got != 0 {
		t.Errorf("executed %d jobs after shutdown, want 0", got)
	}
}
