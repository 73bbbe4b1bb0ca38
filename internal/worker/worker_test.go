package worker

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tsawler/rubric/model"
)

// echoProcess returns a one-heading outline naming the processed path.
func echoProcess(_ context.Context, path string) (model.Outline, error) {
	return model.Outline{{Level: model.H1, Text: path, Page: 1}}, nil
}

func TestPool_ResultsInInputOrder(t *testing.T) {
	paths := make([]string, 8)
	for i := range paths {
		paths[i] = "doc" + strconv.Itoa(i) + ".pdf"
	}

	pool := New(Config{Workers: 3})
	results := pool.Run(context.Background(), paths, echoProcess)

	if len(results) != len(paths) {
		t.Fatalf("Run returned %d results, want %d", len(results), len(paths))
	}
	for i, r := range results {
		if r.Index != i {
			t.Errorf("results[%d].Index = %d", i, r.Index)
		}
		if r.Path != paths[i] {
			t.Errorf("results[%d].Path = %q, want %q", i, r.Path, paths[i])
		}
		if r.Err != nil {
			t.Errorf("results[%d].Err = %v", i, r.Err)
		}
		if len(r.Outline) != 1 || r.Outline[0].Text != paths[i] {
			t.Errorf("results[%d].Outline = %+v", i, r.Outline)
		}
	}
}

func TestPool_FailuresDoNotAbortBatch(t *testing.T) {
	wantErr := errors.New("broken document")
	process := func(_ context.Context, path string) (model.Outline, error) {
		if path == "bad.pdf" {
			return nil, wantErr
		}
		return echoProcess(nil, path)
	}

	pool := New(Config{Workers: 2})
	results := pool.Run(context.Background(), []string{"a.pdf", "bad.pdf", "c.pdf"}, process)

	if results[0].Err != nil || results[2].Err != nil {
		t.Errorf("Healthy documents reported errors: %v, %v", results[0].Err, results[2].Err)
	}
	if !errors.Is(results[1].Err, wantErr) {
		t.Errorf("results[1].Err = %v, want %v", results[1].Err, wantErr)
	}
}

func TestPool_CancellationSkipsPendingJobs(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	process := func(_ context.Context, path string) (model.Outline, error) {
		calls++
		cancel()
		return echoProcess(nil, path)
	}

	// A single worker makes the cancellation point deterministic: the first
	// job runs, the remaining two are skipped.
	pool := New(Config{Workers: 1})
	results := pool.Run(ctx, []string{"a.pdf", "b.pdf", "c.pdf"}, process)

	if calls != 1 {
		t.Fatalf("process ran %d times, want 1", calls)
	}
	if results[0].Err != nil {
		t.Errorf("results[0].Err = %v, want nil", results[0].Err)
	}
	for i := 1; i < 3; i++ {
		if !errors.Is(results[i].Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, results[i].Err)
		}
	}
}

func TestPool_ConcurrencyBounded(t *testing.T) {
	var active, peak int64
	var mu sync.Mutex
	process := func(_ context.Context, path string) (model.Outline, error) {
		n := atomic.AddInt64(&active, 1)
		mu.Lock()
		if n > peak {
			peak = n
		}
		mu.Unlock()
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt64(&active, -1)
		return nil, nil
	}

	paths := make([]string, 12)
	for i := range paths {
		paths[i] = strconv.Itoa(i)
	}
	New(Config{Workers: 2}).Run(context.Background(), paths, process)

	if peak > 2 {
		t.Errorf("Observed %d concurrent jobs, want at most 2", peak)
	}
}

func TestPool_RecordsDuration(t *testing.T) {
	process := func(_ context.Context, _ string) (model.Outline, error) {
		time.Sleep(2 * time.Millisecond)
		return nil, nil
	}
	results := New(Config{Workers: 1}).Run(context.Background(), []string{"a.pdf"}, process)
	if results[0].Duration <= 0 {
		t.Errorf("Duration = %v, want > 0", results[0].Duration)
	}
}

func TestPool_EmptyInput(t *testing.T) {
	if results := New(Config{Workers: 4}).Run(context.Background(), nil, echoProcess); results != nil {
		t.Errorf("Run(nil paths) = %v, want nil", results)
	}
}

func TestPool_DefaultsBadWorkerCount(t *testing.T) {
	results := New(Config{Workers: 0}).Run(context.Background(), []string{"a.pdf", "b.pdf"}, echoProcess)
	if len(results) != 2 {
		t.Fatalf("Run returned %d results, want 2", len(results))
	}
}
