// Package workerpool implements the parse-stage concurrency model
// (spec.md §5): a bounded-concurrency fan-out/fan-in pool that parses
// files in chunks and streams results back in batches, generalising
// service.ParallelExecutorImpl (errgroup + concurrency limit +
// AggregatedError) from "N analysis tasks" to "N file-parse jobs".
package workerpool

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxWorkers caps worker count at min(availableParallelism, 8)
// per spec.md §5.
const DefaultMaxWorkers = 8

// BatchSize bounds the peak cost of inter-goroutine result transfer
// (spec.md §5: "streams results back in batches of 200").
const BatchSize = 200

// ChunkThreshold triggers the chunked pipeline variant for very large
// categories (spec.md §5: "chunks of 5000 files each, triggered when the
// category exceeds 10000 files").
const ChunkThreshold = 10000

// ChunkSize is the per-chunk file count once ChunkThreshold is exceeded.
const ChunkSize = 5000

// JobError pairs a job's identifying path with the error it raised. A job
// failure never aborts the pool; it is collected (spec.md §7: "Worker
// thread error -> the chunk's results are lost but the overall scan
// continues").
type JobError struct {
	Path string
	Err  error
}

func (e JobError) Error() string { return fmt.Sprintf("[%s] %v", e.Path, e.Err) }
func (e JobError) Unwrap() error { return e.Err }

// AggregatedError collects every job failure from one Run.
type AggregatedError struct {
	Errors []JobError
}

func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d jobs failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// Pool runs a fixed-size, bounded-concurrency job batch over items of type
// T, producing results of type R. It never returns early on a single job's
// error — callers get every result plus an aggregated error for the
// failures, matching the teacher's "collect, don't abort" executor idiom.
type Pool struct {
	maxConcurrency int
}

// New returns a Pool with workers capped at min(runtime.GOMAXPROCS(0), 8),
// or the requested count if positive and within that cap.
func New(workers int) *Pool {
	max := runtime.GOMAXPROCS(0)
	if max > DefaultMaxWorkers {
		max = DefaultMaxWorkers
	}
	if workers > 0 && workers < max {
		max = workers
	}
	if max < 1 {
		max = 1
	}
	return &Pool{maxConcurrency: max}
}

// Job is one unit of work: a path (for error attribution) plus the item
// that Run's job function receives.
type Job[T any] struct {
	Path string
	Item T
}

// BatchFunc is called with each completed batch as it fills, matching
// spec.md §5's "streams results back in batches of 200 to bound the peak
// cost of inter-thread result transfer". Batches may be delivered
// out of order relative to submission (spec.md §5: "order-independent").
type BatchFunc[R any] func(batch []R)

// Run executes fn over every job with bounded concurrency, delivering
// results through onBatch in batches of BatchSize, and returns an
// AggregatedError (or nil) covering every job's failure.
func Run[T any, R any](ctx context.Context, p *Pool, jobs []Job[T], fn func(context.Context, Job[T]) (R, error), onBatch BatchFunc[R]) error {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(p.maxConcurrency)

	var mu sync.Mutex
	var batch []R
	var errs []JobError

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if onBatch != nil {
			onBatch(batch)
		}
		batch = nil
	}

	for _, job := range jobs {
		job := job
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil
			default:
			}

			result, err := fn(gCtx, job)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, JobError{Path: job.Path, Err: err})
				return nil
			}
			batch = append(batch, result)
			if len(batch) >= BatchSize {
				flush()
			}
			return nil
		})
	}

	_ = g.Wait()

	mu.Lock()
	flush()
	mu.Unlock()

	if len(errs) > 0 {
		return &AggregatedError{Errors: errs}
	}
	return nil
}

// Chunks splits items into ChunkSize groups once len(items) exceeds
// ChunkThreshold; otherwise it returns a single chunk (spec.md §5).
func Chunks[T any](items []T) [][]T {
	if len(items) <= ChunkThreshold {
		return [][]T{items}
	}
	var chunks [][]T
	for i := 0; i < len(items); i += ChunkSize {
		end := i + ChunkSize
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[i:end])
	}
	return chunks
}
