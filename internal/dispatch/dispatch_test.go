package dispatch

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/meetnotes/internal/meeting"
	"github.com/foxseedlab/meetnotes/internal/pipeline"
)

type blockingProcessor struct {
	release chan struct{}
	err     error

	mu     sync.Mutex
	events []meeting.RecordingEvent
	ctxErr error
}

func (p *blockingProcessor) Process(ctx context.Context, event meeting.RecordingEvent) (*pipeline.Result, error) {
	<-p.release
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	p.ctxErr = ctx.Err()
	if p.err != nil {
		return nil, p.err
	}
	return &pipeline.Result{Event: event}, nil
}

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockNotifier) Notify(_ context.Context, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, content)
	return nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
}

func TestBackground_SubmitReturnsBeforeProcessing(t *testing.T) {
	proc := &blockingProcessor{release: make(chan struct{})}
	n := &mockNotifier{}
	b := NewBackground(proc, WithNotifier(n), WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	job := Job{ID: "job-1", Event: meeting.RecordingEvent{MeetingID: "M1", RecordingID: "R1"}, ReceivedAt: time.Now()}
	if err := b.Submit(ctx, job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()

	close(proc.release)
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if len(n.messages) != 1 {
		t.Fatalf("expected new recording notification, got %d", len(n.messages))
	}
	if len(proc.events) != 1 || proc.events[0].RecordingID != "R1" {
		t.Fatalf("job was not processed: %+v", proc.events)
	}
	if proc.ctxErr != nil {
		t.Fatalf("job context must outlive the request: %v", proc.ctxErr)
	}
}

func TestBackground_FailedJobIsLoggedOnly(t *testing.T) {
	var buf bytes.Buffer
	proc := &blockingProcessor{release: make(chan struct{}), err: errors.New("TranscriptUnavailable")}
	close(proc.release)
	b := NewBackground(proc, WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	if err := b.Submit(context.Background(), Job{ID: "job-2"}); err != nil {
		t.Fatalf("submit should succeed even when processing fails: %v", err)
	}
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"msg":"background job failed"`)) {
		t.Fatalf("expected failure event, got %s", buf.String())
	}
}

func TestBackground_ShutdownRejectsNewJobsAndHonoursDeadline(t *testing.T) {
	proc := &blockingProcessor{release: make(chan struct{})}
	b := NewBackground(proc, WithLogger(quietLogger()))
	if err := b.Submit(context.Background(), Job{ID: "job-3"}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := b.Shutdown(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline while job runs, got %v", err)
	}
	if err := b.Submit(context.Background(), Job{ID: "job-4"}); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
	close(proc.release)
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

type stalledNotifier struct {
	release chan struct{}
	ctxErr  chan error
}

func (n *stalledNotifier) Notify(ctx context.Context, _ string) error {
	select {
	case <-n.release:
	case <-ctx.Done():
	}
	n.ctxErr <- ctx.Err()
	return ctx.Err()
}

func TestBackground_SlowNotifierDoesNotDelaySubmit(t *testing.T) {
	proc := &blockingProcessor{release: make(chan struct{})}
	close(proc.release)
	n := &stalledNotifier{release: make(chan struct{}), ctxErr: make(chan error, 1)}
	b := NewBackground(proc, WithNotifier(n), WithLogger(quietLogger()))

	started := time.Now()
	job := Job{ID: "job-1", Event: meeting.RecordingEvent{MeetingID: "M1", RecordingID: "R1"}}
	if err := b.Submit(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(started); elapsed > 200*time.Millisecond {
		t.Fatalf("submit waited for the notifier: %s", elapsed)
	}

	close(n.release)
	if err := b.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
	if err := <-n.ctxErr; err != nil {
		t.Fatalf("notification context ended early: %v", err)
	}
	if len(proc.events) != 1 {
		t.Fatalf("job was not processed after notification: %+v", proc.events)
	}
}

func TestBackground_NotificationIsBounded(t *testing.T) {
	n := &stalledNotifier{release: make(chan struct{}), ctxErr: make(chan error, 1)}
	b := NewBackground(&blockingProcessor{}, WithNotifier(n), WithLogger(quietLogger()))
	b.notifyTimeout = 20 * time.Millisecond

	done := make(chan struct{})
	go func() {
		b.announce(context.Background(), Job{ID: "job-1"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("notification was not cut off by its deadline")
	}
	if err := <-n.ctxErr; !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
