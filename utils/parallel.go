package utils

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"go.uber.org/multierr"
	"golang.org/x/sync/semaphore"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
}

// SimpleFunc is for ForkJoin.
type SimpleFunc func(ctx context.Context) error

// Pool bounds how many goroutines ForkJoin may have in flight across all of its
// callers, including nested calls.
type Pool struct {
	size int
	sem  *semaphore.Weighted
}

// NewPool returns a pool with the given number of slots. A non-positive size
// falls back to ParallelFactor.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = ParallelFactor
	}
	return &Pool{size: size, sem: semaphore.NewWeighted(int64(size))}
}

// Size returns the number of slots in the pool.
func (p *Pool) Size() int {
	return p.size
}

// ForkJoin runs all functions and blocks until every one of them has returned. A
// function gets its own goroutine when a slot is free and otherwise runs on the
// calling goroutine, so a ForkJoin nested inside another never waits on a slot
// held by its parent. Errors and panics are combined into the returned error and
// cancel the context handed to functions that have not finished.
func (p *Pool) ForkJoin(ctx context.Context, fs ...SimpleFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	var bigError error
	var bigErrorMutex sync.Mutex
	storeError := func(err error) {
		bigErrorMutex.Lock()
		defer bigErrorMutex.Unlock()
		if bigError == nil || !errors.Is(err, context.Canceled) {
			bigError = multierr.Combine(bigError, err)
		}
	}

	helper := func(f SimpleFunc) {
		defer func() {
			if thePanic := recover(); thePanic != nil {
				storeError(fmt.Errorf("got panic running something in parallel: %v", thePanic))
				cancel()
			}
		}()
		if err := f(ctx); err != nil {
			storeError(err)
			cancel()
		}
	}

	for _, f := range fs {
		if !p.sem.TryAcquire(1) {
			helper(f)
			continue
		}
		wg.Add(1)
		go func(f SimpleFunc) {
			defer wg.Done()
			defer p.sem.Release(1)
			helper(f)
		}(f)
	}

	wg.Wait()
	return bigError
}
