package worker

import (
	"context"
	"sync/atomic"
	"testing"
)

type squareJob struct {
	n int
}

type squareResult struct {
	value int
	err   error
}

func (r *squareResult) GetError() error { return r.err }

func (j *squareJob) Execute(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return &squareResult{err: ctx.Err()}
	default:
		return &squareResult{value: j.n * j.n}
	}
}

func TestPool_PreservesSubmissionOrder(t *testing.T) {
	pool := NewPool(4)

	jobs := make([]Job, 20)
	for i := range jobs {
		jobs[i] = &squareJob{n: i}
	}

	results := pool.Run(context.Background(), jobs)

	if len(results) != len(jobs) {
		t.Fatalf("expected %d results, got %d", len(jobs), len(results))
	}
	for i, r := range results {
		sq := r.(*squareResult)
		if sq.err != nil {
			t.Fatalf("job %d failed: %v", i, sq.err)
		}
		if sq.value != i*i {
			t.Errorf("result %d out of order: got %d, want %d", i, sq.value, i*i)
		}
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	pool := NewPool(0)
	results := pool.Run(context.Background(), []Job{&squareJob{n: 3}})
	if len(results) != 1 || results[0].(*squareResult).value != 9 {
		t.Errorf("unexpected results: %v", results)
	}
}

func TestPool_EmptyJobs(t *testing.T) {
	pool := NewPool(2)
	if results := pool.Run(context.Background(), nil); results != nil {
		t.Errorf("expected nil results, got %v", results)
	}
}

type countJob struct {
	counter *atomic.Int64
}

func (j *countJob) Execute(ctx context.Context) Result {
	j.counter.Add(1)
	return &squareResult{}
}

func TestPool_RunsEveryJobExactlyOnce(t *testing.T) {
	pool := NewPool(8)
	var counter atomic.Int64

	jobs := make([]Job, 100)
	for i := range jobs {
		jobs[i] = &countJob{counter: &counter}
	}
	pool.Run(context.Background(), jobs)

	if got := counter.Load(); got != 100 {
		t.Errorf("expected 100 executions, got %d", got)
	}
}

func TestPool_CancelledContextSurfacesInResults(t *testing.T) {
	pool := NewPool(2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := pool.Run(ctx, []Job{&squareJob{n: 1}, &squareJob{n: 2}})

	for i, r := range results {
		if r.GetError() == nil {
			t.Errorf("job %d: expected cancellation error", i)
		}
	}
}
