package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kdemir/pipekit/config"
	"github.com/kdemir/pipekit/run"
)

func finishedRun() *run.Run {
	now := time.Now().UTC()
	return &run.Run{
		ID:          "run-1",
		Pipeline:    "cd-pipeline",
		Status:      run.RunSucceeded,
		StartedAt:   now.Add(-2 * time.Second),
		CompletedAt: now,
	}
}

func TestRunFinished(t *testing.T) {
	var received atomic.Int32
	var event Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		received.Add(1)
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			t.Errorf("decoding event: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(config.NotifyConfig{
		URLs:       []string{srv.URL},
		MaxRetries: 2,
		Timeout:    5 * time.Second,
	}, nil)

	n.RunFinished(context.Background(), finishedRun())

	if got := received.Load(); got != 1 {
		t.Fatalf("expected 1 delivery, got %d", got)
	}
	if event.RunID != "run-1" {
		t.Errorf("expected run ID 'run-1', got %q", event.RunID)
	}
	if event.Pipeline != "cd-pipeline" {
		t.Errorf("expected pipeline 'cd-pipeline', got %q", event.Pipeline)
	}
	if event.Status != run.RunSucceeded {
		t.Errorf("expected status Succeeded, got %s", event.Status)
	}
	if event.Duration < 1900 || event.Duration > 2100 {
		t.Errorf("expected duration around 2000ms, got %d", event.Duration)
	}
}

func TestRunFinished_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := New(config.NotifyConfig{
		URLs:       []string{srv.URL},
		MaxRetries: 5,
		Timeout:    5 * time.Second,
	}, nil)

	n.RunFinished(context.Background(), finishedRun())

	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts (2 failures + success), got %d", got)
	}
}

func TestRunFinished_ClientErrorNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	n := New(config.NotifyConfig{
		URLs:       []string{srv.URL},
		MaxRetries: 5,
		Timeout:    5 * time.Second,
	}, nil)

	n.RunFinished(context.Background(), finishedRun())

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected 1 attempt for permanent error, got %d", got)
	}
}

func TestRunFinished_NoURLs(t *testing.T) {
	n := New(config.NotifyConfig{}, nil)
	// must not panic or block
	n.RunFinished(context.Background(), finishedRun())
}
