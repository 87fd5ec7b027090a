package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig(maxAttempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    maxAttempts,
		InitialBackoff: time.Millisecond,
		BackoffFactor:  2.0,
	}
}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		return "done", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "done" {
		t.Errorf("expected done, got %s", result)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestRetry_SucceedsAfterRetries(t *testing.T) {
	calls := 0
	result, err := Retry(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("flaky")
		}
		return "done", nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result != "done" || calls != 3 {
		t.Errorf("expected done after 3 calls, got %q after %d", result, calls)
	}
}

func TestRetry_ExhaustsAttempts(t *testing.T) {
	calls := 0
	persistent := errors.New("persistent")

	_, err := Retry(context.Background(), fastConfig(3), func() (string, error) {
		calls++
		return "", persistent
	})

	if !errors.Is(err, persistent) {
		t.Errorf("expected last error, got %v", err)
	}
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestRetry_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	calls := 0
	_, err := Retry(ctx, RetryConfig{MaxAttempts: 10, InitialBackoff: 100 * time.Millisecond}, func() (string, error) {
		calls++
		return "", errors.New("flaky")
	})

	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
	if calls >= 10 {
		t.Errorf("expected fewer than 10 calls, got %d", calls)
	}
}

func TestRetry_RetryIfFilter(t *testing.T) {
	fatal := errors.New("fatal")
	cfg := fastConfig(3)
	cfg.RetryIf = func(err error) bool { return !errors.Is(err, fatal) }

	calls := 0
	_, err := Retry(context.Background(), cfg, func() (string, error) {
		calls++
		return "", fatal
	})

	if calls != 1 {
		t.Errorf("expected 1 call for a fatal error, got %d", calls)
	}
	if !errors.Is(err, fatal) {
		t.Errorf("expected fatal, got %v", err)
	}
}

func TestRetry_OnRetryCallback(t *testing.T) {
	var retries []int
	cfg := fastConfig(3)
	cfg.OnRetry = func(attempt int, err error, backoff time.Duration) {
		retries = append(retries, attempt)
	}

	_, _ = Retry(context.Background(), cfg, func() (string, error) {
		return "", errors.New("flaky")
	})

	// Called before each retry, not before the first attempt.
	if len(retries) != 2 || retries[0] != 1 || retries[1] != 2 {
		t.Errorf("expected attempts [1 2], got %v", retries)
	}
}

func TestRetryFunc(t *testing.T) {
	calls := 0
	err := RetryFunc(context.Background(), fastConfig(3), func() error {
		calls++
		if calls < 2 {
			return errors.New("flaky")
		}
		return nil
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 calls, got %d", calls)
	}
}

func TestCalculateBackoff(t *testing.T) {
	cfg := RetryConfig{
		InitialBackoff: 100 * time.Millisecond,
		MaxBackoff:     time.Second,
		BackoffFactor:  2.0,
	}

	for _, tt := range []struct {
		attempt int
		want    time.Duration
	}{
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second},
		{6, time.Second},
	} {
		if got := calculateBackoff(tt.attempt, cfg); got != tt.want {
			t.Errorf("attempt %d: expected %v, got %v", tt.attempt, tt.want, got)
		}
	}
}
