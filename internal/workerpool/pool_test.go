package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestRunCollectsResultsAndErrors(t *testing.T) {
	p := New(4)

	jobs := make([]Job[int], 0, 10)
	for i := 0; i < 10; i++ {
		jobs = append(jobs, Job[int]{Path: fmt.Sprintf("file-%d", i), Item: i})
	}

	var mu sync.Mutex
	var got []int

	err := Run(context.Background(), p, jobs, func(ctx context.Context, j Job[int]) (int, error) {
		if j.Item == 3 {
			return 0, errors.New("boom")
		}
		return j.Item * 2, nil
	}, func(batch []int) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, batch...)
	})

	var aggErr *AggregatedError
	if !errors.As(err, &aggErr) {
		t.Fatalf("expected AggregatedError, got %v", err)
	}
	if len(aggErr.Errors) != 1 || aggErr.Errors[0].Path != "file-3" {
		t.Errorf("expected exactly one failure for file-3, got %+v", aggErr.Errors)
	}

	sort.Ints(got)
	want := []int{0, 2, 4, 8, 10, 12, 14, 16, 18}
	if len(got) != len(want) {
		t.Fatalf("got %v results, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}

func TestRunNoErrorsReturnsNil(t *testing.T) {
	p := New(2)
	jobs := []Job[int]{{Path: "a", Item: 1}, {Path: "b", Item: 2}}

	err := Run(context.Background(), p, jobs, func(ctx context.Context, j Job[int]) (int, error) {
		return j.Item, nil
	}, nil)
	if err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestChunksSingleChunkUnderThreshold(t *testing.T) {
	items := make([]int, 100)
	chunks := Chunks(items)
	if len(chunks) != 1 || len(chunks[0]) != 100 {
		t.Fatalf("expected a single chunk of 100, got %d chunks", len(chunks))
	}
}

func TestChunksSplitsAboveThreshold(t *testing.T) {
	items := make([]int, ChunkThreshold+1)
	chunks := Chunks(items)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks above threshold, got %d", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(items) {
		t.Errorf("chunked total = %d, want %d", total, len(items))
	}
}

func TestNewCapsWorkersAtDefaultMax(t *testing.T) {
	p := New(1000)
	if p.maxConcurrency > DefaultMaxWorkers {
		t.Errorf("maxConcurrency = %d, want <= %d", p.maxConcurrency, DefaultMaxWorkers)
	}
}
