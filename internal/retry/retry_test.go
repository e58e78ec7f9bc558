package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestExecuteSucceedsAfterRetries(t *testing.T) {
	policy := NewRetryPolicy(3, time.Millisecond, 5*time.Millisecond)

	calls := 0
	err := policy.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestExecuteGivesUp(t *testing.T) {
	policy := NewRetryPolicy(2, time.Millisecond, time.Millisecond)
	boom := errors.New("boom")

	calls := 0
	err := policy.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return boom
	})

	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestExecuteStopsOnPermanentError(t *testing.T) {
	policy := NewRetryPolicy(5, time.Millisecond, time.Millisecond)
	unauthorized := errors.New("401")

	calls := 0
	err := policy.Execute(context.Background(), func(ctx context.Context) error {
		calls++
		return Permanent(unauthorized)
	})

	if !errors.Is(err, unauthorized) || !errors.Is(err, ErrPermanent) {
		t.Fatalf("expected permanent 401, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestExecuteHonoursContext(t *testing.T) {
	policy := NewRetryPolicy(5, time.Hour, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := policy.Execute(ctx, func(ctx context.Context) error {
		calls++
		cancel()
		return errors.New("temporary")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestNewRetryPolicyDefaults(t *testing.T) {
	policy := NewRetryPolicy(0, time.Millisecond, 0)
	if policy.MaxAttempts() != 1 {
		t.Errorf("MaxAttempts = %d, want 1", policy.MaxAttempts())
	}
	if policy.maxDelay != 30*time.Second {
		t.Errorf("maxDelay = %v, want 30s", policy.maxDelay)
	}
}
