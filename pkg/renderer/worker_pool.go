package renderer

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// WorkerPool runs tile tasks with at most numWorkers in flight. Tasks are
// admitted in submission order; a task is started only once a slot is free.
type WorkerPool struct {
	numWorkers int
	inFlight   atomic.Int64
	peak       atomic.Int64
}

// NewWorkerPool creates a worker pool with the specified ceiling.
// A ceiling of zero or less uses one worker per CPU.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// PeakInFlight returns the most tasks that ran at the same time during the last Run
func (wp *WorkerPool) PeakInFlight() int {
	return int(wp.peak.Load())
}

// Run renders every tile with fn and blocks until all admitted tasks finish.
// Cancelling ctx stops admission of further tiles; tiles already running
// complete. The first task error cancels the rest and is returned.
func (wp *WorkerPool) Run(ctx context.Context, tiles []Tile, fn func(ctx context.Context, tile Tile) error) error {
	wp.inFlight.Store(0)
	wp.peak.Store(0)

	eg, ctx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(wp.numWorkers))

	for _, tile := range tiles {
		tile := tile // per-iteration copy; go.mod targets go 1.21 loop semantics
		// Acquire succeeds without checking ctx while slots are free
		err := ctx.Err()
		if err == nil {
			err = sem.Acquire(ctx, 1)
		}
		if err != nil {
			// Report a task failure ahead of the cancellation it caused
			if werr := eg.Wait(); werr != nil {
				return fmt.Errorf("while waiting for completion of errgroup: %w", werr)
			}
			return fmt.Errorf("while acquiring worker slot for tile %d: %w", tile.ID, err)
		}

		eg.Go(func() error {
			defer sem.Release(1)
			wp.enter()
			defer wp.inFlight.Add(-1)

			if err := fn(ctx, tile); err != nil {
				return fmt.Errorf("while rendering tile %d: %w", tile.ID, err)
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("while waiting for completion of errgroup: %w", err)
	}
	return nil
}

// enter records a task start and updates the peak
func (wp *WorkerPool) enter() {
	n := wp.inFlight.Add(1)
	for {
		p := wp.peak.Load()
		if n <= p || wp.peak.CompareAndSwap(p, n) {
			return
		}
	}
}
