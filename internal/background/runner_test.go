package background

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestRunnerRetriesUntilSuccess(t *testing.T) {
	runner := NewRunner(1, 4)
	runner.Start(context.Background())
	defer runner.Shutdown(context.Background())

	var attempts int32
	done := make(chan struct{})

	err := runner.Enqueue(Job{
		Name:       "seed-pages",
		MaxRetries: 3,
		Backoff:    time.Millisecond,
		Run: func(ctx context.Context) error {
			if atomic.AddInt32(&attempts, 1) < 3 {
				return errors.New("database not ready")
			}
			close(done)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("job did not succeed, attempts=%d", atomic.LoadInt32(&attempts))
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRunnerRejectsDuplicatePendingJob(t *testing.T) {
	runner := NewRunner(1, 4)
	runner.Start(context.Background())
	defer runner.Shutdown(context.Background())

	release := make(chan struct{})
	job := Job{
		Name: "cache-warm",
		Run: func(ctx context.Context) error {
			<-release
			return nil
		},
	}

	if err := runner.Enqueue(job); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}
	if err := runner.Enqueue(job); !errors.Is(err, ErrJobPending) {
		t.Fatalf("expected ErrJobPending, got %v", err)
	}

	close(release)

	deadline := time.Now().Add(2 * time.Second)
	for runner.Pending() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected job to be released")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if err := runner.Enqueue(job); err != nil {
		t.Fatalf("expected job to be accepted again, got %v", err)
	}
}

func TestRunnerRequiresStart(t *testing.T) {
	runner := NewRunner(1, 1)
	err := runner.Enqueue(Job{Name: "x", Run: func(context.Context) error { return nil }})
	if !errors.Is(err, ErrRunnerNotStarted) {
		t.Fatalf("expected ErrRunnerNotStarted, got %v", err)
	}
	if err := runner.Shutdown(context.Background()); err != nil {
		t.Fatalf("expected shutdown of idle runner to succeed, got %v", err)
	}
}

func TestRunnerRecoversPanics(t *testing.T) {
	runner := NewRunner(1, 1)
	runner.Start(context.Background())
	defer runner.Shutdown(context.Background())

	if err := runner.Enqueue(Job{Name: "boom", Run: func(context.Context) error { panic("boom") }}); err != nil {
		t.Fatalf("Enqueue returned error: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for runner.Pending() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("expected panicking job to be released")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
