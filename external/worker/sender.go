package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/foxseedlab/meetnotes/internal/dispatch"
)

// Sender hands jobs to a separate worker process over HTTP and returns as
// soon as the worker has accepted them.
type Sender struct {
	workerURL string
	secret    string
	client    *http.Client
	logger    *slog.Logger
}

var _ dispatch.Dispatcher = (*Sender)(nil)

func NewSender(workerURL, secret string, timeout time.Duration) *Sender {
	return &Sender{
		workerURL: workerURL,
		secret:    secret,
		client:    &http.Client{Timeout: timeout},
		logger:    slog.Default(),
	}
}

func (s *Sender) Submit(ctx context.Context, job dispatch.Job) error {
	b, err := json.Marshal(newJobRequest(job))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.workerURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.secret != "" {
		req.Header.Set(TokenHeader, s.secret)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("hand off job %s: %w", job.ID, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if !isHTTPSuccessStatus(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("worker returned status %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	s.logger.Debug("job handed off", "job_id", job.ID, "status", resp.StatusCode)
	return nil
}

func isHTTPSuccessStatus(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
