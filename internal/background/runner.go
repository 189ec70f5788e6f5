package background

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"konsert-backend/pkg/logger"
)

// Job is a named unit of work. A job with the same name is never queued
// twice at once.
type Job struct {
	Name       string
	Run        func(ctx context.Context) error
	Timeout    time.Duration
	MaxRetries int
	Backoff    time.Duration
}

var (
	ErrRunnerNotStarted = errors.New("runner not started")
	ErrJobPending       = errors.New("job already pending")
	errRunnerStopping   = errors.New("runner is shutting down")
)

var (
	metricsOnce        sync.Once
	jobRunsTotal       *prometheus.CounterVec
	jobDurationSeconds *prometheus.HistogramVec
)

func initMetrics() {
	metricsOnce.Do(func() {
		jobRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "konsert",
			Subsystem: "jobs",
			Name:      "runs_total",
			Help:      "Background job attempts by outcome",
		}, []string{"job", "status"})

		jobDurationSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "konsert",
			Subsystem: "jobs",
			Name:      "duration_seconds",
			Help:      "Duration of background job attempts",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"})
	})
}

// Runner executes jobs on a small worker pool, retrying failed attempts with
// a doubling backoff.
type Runner struct {
	workers int

	mu      sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	pending map[string]struct{}

	queue chan Job
	wg    sync.WaitGroup
}

func NewRunner(workers, queueSize int) *Runner {
	initMetrics()

	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}

	return &Runner{
		workers: workers,
		pending: make(map[string]struct{}),
		queue:   make(chan Job, queueSize),
	}
}

func (r *Runner) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return
	}

	r.ctx, r.cancel = context.WithCancel(ctx)
	r.started = true

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.work()
	}
}

// Enqueue queues job unless a job with the same name is still pending.
func (r *Runner) Enqueue(job Job) error {
	if job.Name == "" {
		return errors.New("job name is required")
	}
	if job.Run == nil {
		return errors.New("job runner is required")
	}

	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return ErrRunnerNotStarted
	}
	if _, exists := r.pending[job.Name]; exists {
		r.mu.Unlock()
		return ErrJobPending
	}
	r.pending[job.Name] = struct{}{}
	ctx := r.ctx
	r.mu.Unlock()

	select {
	case r.queue <- job:
		return nil
	case <-ctx.Done():
		r.release(job.Name)
		return errRunnerStopping
	}
}

func (r *Runner) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Runner) work() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case job := <-r.queue:
			err := r.runWithRetries(job)
			r.release(job.Name)
			r.report(job, err)
		}
	}
}

func (r *Runner) runWithRetries(job Job) error {
	backoff := job.Backoff
	for attempt := 0; ; attempt++ {
		err := r.attempt(job)
		if err == nil || errors.Is(err, context.Canceled) || attempt >= job.MaxRetries {
			return err
		}

		logger.Warn("Background job failed, retrying", map[string]interface{}{
			"job":     job.Name,
			"attempt": attempt + 1,
			"error":   err.Error(),
		})

		if backoff > 0 {
			timer := time.NewTimer(backoff)
			select {
			case <-timer.C:
			case <-r.ctx.Done():
				timer.Stop()
				return context.Canceled
			}
			backoff *= 2
		}
	}
}

func (r *Runner) attempt(job Job) (err error) {
	start := time.Now()
	status := "success"

	ctx := r.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
		if err != nil {
			status = "failure"
			if errors.Is(err, context.Canceled) {
				status = "canceled"
			}
		}
		jobDurationSeconds.WithLabelValues(job.Name).Observe(time.Since(start).Seconds())
		jobRunsTotal.WithLabelValues(job.Name, status).Inc()
	}()

	return job.Run(ctx)
}

func (r *Runner) release(name string) {
	r.mu.Lock()
	delete(r.pending, name)
	r.mu.Unlock()
}

func (r *Runner) report(job Job, err error) {
	fields := map[string]interface{}{"job": job.Name}
	switch {
	case err == nil:
		logger.Info("Background job completed", fields)
	case errors.Is(err, context.Canceled):
		logger.Warn("Background job canceled", fields)
	default:
		logger.Error(err, "Background job failed", fields)
	}
}

// Shutdown stops the workers and waits for running jobs until ctx expires.
func (r *Runner) Shutdown(ctx context.Context) error {
	r.mu.Lock()
	if !r.started {
		r.mu.Unlock()
		return nil
	}
	cancel := r.cancel
	r.mu.Unlock()

	cancel()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
