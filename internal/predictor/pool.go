package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vantagefin/vantage/internal/logger"
	"github.com/vantagefin/vantage/internal/models"
)

var (
	ErrQueueFull   = errors.New("prediction queue is full")
	ErrPoolStopped = errors.New("prediction pool is stopped")
)

type Config struct {
	Timeout   time.Duration
	PoolSize  int
	QueueSize int
}

type Result struct {
	Logs     []string
	Err      error
	Duration time.Duration
}

type job struct {
	ctx     context.Context
	tickers []string
	results chan Result
}

// Pool runs delegate invocations on a fixed number of workers so concurrent
// requests cannot spawn an unbounded number of subprocesses. Each job gets
// its own timeout derived from the request context.
type Pool struct {
	cfg    Config
	runner Runner
	jobs   chan job
	log    *logger.Logger
	wg     sync.WaitGroup
	once   sync.Once

	mu      sync.RWMutex
	stopped bool
}

func NewPool(cfg Config, runner Runner) *Pool {
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}

	return &Pool{
		cfg:    cfg,
		runner: runner,
		jobs:   make(chan job, cfg.QueueSize),
		log:    logger.New("predictor"),
	}
}

func (p *Pool) Start() {
	for i := 0; i < p.cfg.PoolSize; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	p.log.Info("Started %d prediction workers (timeout %s)", p.cfg.PoolSize, p.cfg.Timeout)
}

func (p *Pool) Stop() {
	p.once.Do(func() {
		p.mu.Lock()
		p.stopped = true
		close(p.jobs)
		p.mu.Unlock()
	})
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for j := range p.jobs {
		start := time.Now()

		ctx := j.ctx
		var cancel context.CancelFunc
		if p.cfg.Timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, p.cfg.Timeout)
		}

		lines, err := p.runner.Run(ctx, j.tickers)
		if cancel != nil {
			cancel()
		}

		j.results <- Result{
			Logs:     lines,
			Err:      err,
			Duration: time.Since(start),
		}
	}
}

// Submit enqueues a delegate invocation and returns the result channel
// without blocking. The channel receives exactly one Result.
func (p *Pool) Submit(ctx context.Context, tickers []string) (<-chan Result, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return nil, ErrPoolStopped
	}

	results := make(chan Result, 1)

	select {
	case p.jobs <- job{ctx: ctx, tickers: tickers, results: results}:
		return results, nil
	default:
		return nil, ErrQueueFull
	}
}

// Predict submits a job and waits for it, honoring caller cancellation while
// the job is queued or running.
func (p *Pool) Predict(ctx context.Context, tickers []string) Result {
	results, err := p.Submit(ctx, tickers)
	if err != nil {
		return Result{Err: err}
	}

	select {
	case res := <-results:
		return res
	case <-ctx.Done():
		return Result{Err: ctx.Err()}
	}
}

// ParseOutput interprets delegate stdout: the last non-empty line must be a
// JSON object with a success flag and the predictions payload.
func ParseOutput(lines []string) (*models.DelegateOutput, error) {
	if len(lines) == 0 {
		return nil, errors.New("no output received from delegate")
	}

	var out models.DelegateOutput
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &out); err != nil {
		return nil, fmt.Errorf("malformed delegate output: %w", err)
	}

	if !out.Success {
		if out.Error != "" {
			return nil, fmt.Errorf("delegate reported failure: %s", out.Error)
		}
		return nil, errors.New("delegate reported failure")
	}

	return &out, nil
}
