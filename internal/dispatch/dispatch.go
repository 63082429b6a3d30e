package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/foxseedlab/meetnotes/internal/meeting"
	"github.com/foxseedlab/meetnotes/internal/notifier"
	"github.com/foxseedlab/meetnotes/internal/pipeline"
)

var ErrClosed = errors.New("dispatcher is shutting down")

const notifyTimeout = 10 * time.Second

// Job is one accepted recording event waiting to be processed.
type Job struct {
	ID         string                 `json:"job_id"`
	Event      meeting.RecordingEvent `json:"event"`
	ReceivedAt time.Time              `json:"received_at"`
}

// Dispatcher hands a job to background processing. Submit returns once the
// job is accepted, never after it has been processed.
type Dispatcher interface {
	Submit(ctx context.Context, job Job) error
}

type Processor interface {
	Process(ctx context.Context, event meeting.RecordingEvent) (*pipeline.Result, error)
}

// Background runs each job in its own goroutine of the current process.
type Background struct {
	processor     Processor
	notifier      notifier.Notifier
	notifyTimeout time.Duration
	logger        *slog.Logger

	mu      sync.Mutex
	closed  bool
	running sync.WaitGroup
}

type Option func(*Background)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Background) { b.logger = logger }
}

func WithNotifier(n notifier.Notifier) Option {
	return func(b *Background) { b.notifier = n }
}

func NewBackground(processor Processor, opts ...Option) *Background {
	b := &Background{
		processor:     processor,
		notifier:      notifier.Nop{},
		notifyTimeout: notifyTimeout,
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Submit starts the job detached from ctx, so the job outlives the request
// that submitted it.
func (b *Background) Submit(ctx context.Context, job Job) error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return ErrClosed
	}
	b.running.Add(1)
	b.mu.Unlock()

	jobCtx := context.WithoutCancel(ctx)
	go func() {
		defer b.running.Done()
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("background job panicked", "job_id", job.ID, "panic", r)
			}
		}()
		b.announce(jobCtx, job)
		if _, err := b.processor.Process(jobCtx, job.Event); err != nil {
			b.logger.Error("background job failed", "job_id", job.ID, "meeting_id", job.Event.MeetingID, "call_recording_id", job.Event.RecordingID, "error", err)
			return
		}
		b.logger.Info("background job completed", "job_id", job.ID, "queued_seconds", time.Since(job.ReceivedAt).Seconds())
	}()
	return nil
}

func (b *Background) announce(ctx context.Context, job Job) {
	nctx, cancel := context.WithTimeout(ctx, b.notifyTimeout)
	defer cancel()
	if err := b.notifier.Notify(nctx, notifier.NewRecording(job.Event.MeetingID, job.Event.RecordingID, job.ID)); err != nil {
		b.logger.Warn("new recording notification not sent", "job_id", job.ID, "error", err)
	}
}

// Shutdown refuses new jobs and waits for running ones or ctx.
func (b *Background) Shutdown(ctx context.Context) error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	done := make(chan struct{})
	go func() {
		b.running.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
