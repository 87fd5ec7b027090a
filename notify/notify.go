package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/kdemir/pipekit/config"
	"github.com/kdemir/pipekit/logger"
	"github.com/kdemir/pipekit/run"
)

// Event is the payload POSTed to each configured webhook when a run
// reaches a terminal state.
type Event struct {
	RunID    string        `json:"runId"`
	Pipeline string        `json:"pipeline"`
	Status   run.RunStatus `json:"status"`
	Duration int64         `json:"durationMs"`
	SentAt   time.Time     `json:"sentAt"`
}

// Notifier delivers run completion events to webhook URLs, retrying
// transient failures with exponential backoff.
type Notifier struct {
	urls       []string
	maxRetries uint64
	client     *http.Client
	log        *logger.Logger
}

// New creates a Notifier from the notify config section.
func New(cfg config.NotifyConfig, log *logger.Logger) *Notifier {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Notifier{
		urls:       cfg.URLs,
		maxRetries: uint64(cfg.MaxRetries),
		client:     &http.Client{Timeout: cfg.Timeout},
		log:        log.WithComponent("notify"),
	}
}

// RunFinished delivers the run's terminal state to every configured
// URL. Delivery failures are logged, not returned: notification is
// best effort and never fails a run.
func (n *Notifier) RunFinished(ctx context.Context, r *run.Run) {
	if len(n.urls) == 0 {
		return
	}

	event := Event{
		RunID:    r.ID,
		Pipeline: r.Pipeline,
		Status:   r.Status,
		Duration: r.Duration().Milliseconds(),
		SentAt:   time.Now().UTC(),
	}
	body, err := json.Marshal(event)
	if err != nil {
		n.log.Error("marshaling event", logger.Fields(logger.FieldError, err.Error()))
		return
	}

	for _, url := range n.urls {
		if err := n.deliver(ctx, url, body); err != nil {
			n.log.Error("webhook delivery failed", logger.Fields(
				"url", url,
				logger.FieldRunID, r.ID,
				logger.FieldError, err.Error(),
			))
			continue
		}
		n.log.Debug("webhook delivered", logger.Fields("url", url, logger.FieldRunID, r.ID))
	}
}

func (n *Notifier) deliver(ctx context.Context, url string, body []byte) error {
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := n.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("webhook returned %d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return backoff.Permanent(fmt.Errorf("webhook returned %d", resp.StatusCode))
		}
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), n.maxRetries)
	return backoff.Retry(operation, backoff.WithContext(b, ctx))
}
