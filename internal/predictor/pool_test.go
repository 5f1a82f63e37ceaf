package predictor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeRunner struct {
	lines []string
	err   error
	delay time.Duration

	mu      sync.Mutex
	running int32
	maxSeen int32
}

func (r *fakeRunner) Run(ctx context.Context, tickers []string) ([]string, error) {
	cur := atomic.AddInt32(&r.running, 1)
	defer atomic.AddInt32(&r.running, -1)

	r.mu.Lock()
	if cur > r.maxSeen {
		r.maxSeen = cur
	}
	r.mu.Unlock()

	if r.delay > 0 {
		select {
		case <-time.After(r.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return r.lines, r.err
}

func TestPool_Predict(t *testing.T) {
	runner := &fakeRunner{lines: []string{`{"success": true, "predictions": []}`}}
	pool := NewPool(Config{Timeout: time.Second, PoolSize: 2, QueueSize: 4}, runner)
	pool.Start()
	defer pool.Stop()

	res := pool.Predict(context.Background(), []string{"AAPL"})
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if len(res.Logs) != 1 {
		t.Errorf("expected 1 output line, got %d", len(res.Logs))
	}
}

func TestPool_RunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("script exploded")}
	pool := NewPool(Config{Timeout: time.Second, PoolSize: 1, QueueSize: 1}, runner)
	pool.Start()
	defer pool.Stop()

	res := pool.Predict(context.Background(), []string{"AAPL"})
	if res.Err == nil {
		t.Error("expected error from failing runner")
	}
}

func TestPool_Timeout(t *testing.T) {
	runner := &fakeRunner{delay: 500 * time.Millisecond, lines: []string{"ignored"}}
	pool := NewPool(Config{Timeout: 20 * time.Millisecond, PoolSize: 1, QueueSize: 1}, runner)
	pool.Start()
	defer pool.Stop()

	res := pool.Predict(context.Background(), []string{"AAPL"})
	if res.Err == nil {
		t.Fatal("expected timeout error")
	}
	if !errors.Is(res.Err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got: %v", res.Err)
	}
}

func TestPool_BoundedConcurrency(t *testing.T) {
	runner := &fakeRunner{delay: 50 * time.Millisecond, lines: []string{"ok"}}
	pool := NewPool(Config{Timeout: time.Second, PoolSize: 2, QueueSize: 16}, runner)
	pool.Start()
	defer pool.Stop()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Predict(context.Background(), []string{"AAPL"})
		}()
	}
	wg.Wait()

	runner.mu.Lock()
	maxSeen := runner.maxSeen
	runner.mu.Unlock()

	if maxSeen > 2 {
		t.Errorf("expected at most 2 concurrent runs, saw %d", maxSeen)
	}
}

func TestPool_QueueFull(t *testing.T) {
	runner := &fakeRunner{delay: 200 * time.Millisecond, lines: []string{"ok"}}
	pool := NewPool(Config{Timeout: time.Second, PoolSize: 1, QueueSize: 0}, runner)
	pool.Start()
	defer pool.Stop()

	// Occupy the single worker.
	first, err := pool.Submit(context.Background(), []string{"AAPL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Give the worker a moment to pick up the first job.
	time.Sleep(20 * time.Millisecond)

	// Fill the (zero-length) queue: the next submit must be rejected.
	if _, err := pool.Submit(context.Background(), []string{"MSFT"}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("expected ErrQueueFull, got: %v", err)
	}

	<-first
}

func TestPool_SubmitAfterStop(t *testing.T) {
	runner := &fakeRunner{lines: []string{"ok"}}
	pool := NewPool(Config{Timeout: time.Second, PoolSize: 1, QueueSize: 4}, runner)
	pool.Start()
	pool.Stop()

	if _, err := pool.Submit(context.Background(), []string{"AAPL"}); !errors.Is(err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped, got: %v", err)
	}

	res := pool.Predict(context.Background(), []string{"AAPL"})
	if !errors.Is(res.Err, ErrPoolStopped) {
		t.Errorf("expected ErrPoolStopped from Predict, got: %v", res.Err)
	}
}

func TestParseOutput(t *testing.T) {
	out, err := ParseOutput([]string{
		"Fetching live stock data...",
		`{"success": true, "predictions": [{"ticker": "AAPL"}]}`,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(out.Predictions) != `[{"ticker": "AAPL"}]` {
		t.Errorf("unexpected predictions payload: %s", out.Predictions)
	}
}

func TestParseOutput_Empty(t *testing.T) {
	if _, err := ParseOutput(nil); err == nil {
		t.Error("expected error for empty output")
	}
}

func TestParseOutput_Malformed(t *testing.T) {
	if _, err := ParseOutput([]string{"not json at all"}); err == nil {
		t.Error("expected error for malformed output")
	}
}

func TestParseOutput_ReportedFailure(t *testing.T) {
	_, err := ParseOutput([]string{`{"success": false, "error": "no data"}`})
	if err == nil {
		t.Fatal("expected error when delegate reports failure")
	}
}
