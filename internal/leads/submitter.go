package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/alphafounders/site/internal/errors"
)

// ErrDeliveryDisabled is returned by [DisabledSubmitter]. The dispatcher journals such leads as skipped.
var ErrDeliveryDisabled = errors.NewSentinel("lead delivery disabled")

// Submitter sends a lead to its destination.
type Submitter interface {
	Submit(ctx context.Context, record Record) error
}

// HTTPSubmitter posts leads as JSON to a spreadsheet web app endpoint.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSubmitter creates a submitter for endpoint. timeout bounds the whole exchange including redirects.
func NewHTTPSubmitter(endpoint string, timeout time.Duration) *HTTPSubmitter {
	return &HTTPSubmitter{
		endpoint: endpoint,
		client: &http.Client{
			Transport:     nil,
			CheckRedirect: nil,
			Jar:           nil,
			Timeout:       timeout,
		},
	}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, record Record) error {
	body, err := json.Marshal(record)
	if err != nil {
		return errors.Wrap(err, "marshal lead")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request", slog.String("endpoint", s.endpoint))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "post lead", slog.String("endpoint", s.endpoint))
	}
	defer func() {
		// Draining lets the connection be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusBadRequest {
		return errors.New("unexpected response status",
			slog.String("endpoint", s.endpoint),
			slog.Int("status", resp.StatusCode))
	}
	return nil
}

// DisabledSubmitter is used when no endpoint is configured. Leads still reach the journal.
type DisabledSubmitter struct{}

func (DisabledSubmitter) Submit(context.Context, Record) error {
	return ErrDeliveryDisabled
}
