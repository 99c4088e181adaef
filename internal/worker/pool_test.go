package worker

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestPoolExecutesJobs(t *testing.T) {
	pool := NewWorkerPool(2, 10, 0)
	pool.Start()

	var executed int64
	done := make(chan struct{}, 5)

	for i := 0; i < 5; i++ {
		err := pool.Submit(Job{
			ID: "job",
			Task: func() error {
				atomic.AddInt64(&executed, 1)
				return nil
			},
			OnDone: func(err error) {
				done <- struct{}{}
			},
		})
		if err != nil {
			t.Fatalf("submit failed: %v", err)
		}
	}

	for i := 0; i < 5; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	if atomic.LoadInt64(&executed) != 5 {
		t.Errorf("expected 5 executions, got %d", executed)
	}

	stats := pool.GetStats()
	if stats.CompletedJobs != 5 || stats.FailedJobs != 0 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	if err := pool.Shutdown(time.Second); err != nil {
		t.Errorf("shutdown failed: %v", err)
	}
}

func TestPoolRetriesFailedJob(t *testing.T) {
	pool := NewWorkerPool(1, 10, 2)
	pool.Start()
	defer pool.Shutdown(time.Second)

	var attempts int64
	done := make(chan error, 1)

	err := pool.Submit(Job{
		ID: "flaky",
		Task: func() error {
			if atomic.AddInt64(&attempts, 1) < 3 {
				return errors.New("temporary failure")
			}
			return nil
		},
		OnDone: func(err error) {
			done <- err
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("job should succeed on third attempt: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}

	if atomic.LoadInt64(&attempts) != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestPoolDoesNotRetryWhenRetryOnForbids(t *testing.T) {
	pool := NewWorkerPool(1, 10, 5)
	pool.Start()
	defer pool.Shutdown(time.Second)

	permanent := errors.New("validation failure")
	var attempts int64
	done := make(chan error, 1)

	err := pool.Submit(Job{
		ID: "invalid",
		Task: func() error {
			atomic.AddInt64(&attempts, 1)
			return permanent
		},
		RetryOn: func(err error) bool {
			return !errors.Is(err, permanent)
		},
		OnDone: func(err error) {
			done <- err
		},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, permanent) {
			t.Errorf("expected permanent error, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for job")
	}

	if atomic.LoadInt64(&attempts) != 1 {
		t.Errorf("expected single attempt, got %d", attempts)
	}
}

func TestSubmitFailsWhenQueueFull(t *testing.T) {
	// Пул не запущен, поэтому очередь никем не разбирается
	pool := NewWorkerPool(1, 1, 0)

	if err := pool.Submit(Job{ID: "first", Task: func() error { return nil }}); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}

	err := pool.Submit(Job{ID: "second", Task: func() error { return nil }})
	if !errors.Is(err, ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}
