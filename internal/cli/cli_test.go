package cli

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/poller"
)

type mockServer struct {
	listenErr error
	stopped   chan struct{}
	once      sync.Once
	shutdowns int
}

func newMockServer() *mockServer {
	return &mockServer{stopped: make(chan struct{})}
}

func (m *mockServer) ListenAndServe() error {
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.stopped
	return nil
}

func (m *mockServer) Shutdown(context.Context) error {
	m.shutdowns++
	m.once.Do(func() { close(m.stopped) })
	return nil
}

type mockDrainer struct {
	calls int
	err   error
}

func (m *mockDrainer) Shutdown(context.Context) error {
	m.calls++
	return m.err
}

type mockPoller struct {
	mu      sync.Mutex
	runs    int
	polls   int
	summary poller.Summary
	err     error
}

func (m *mockPoller) Run(ctx context.Context) error {
	m.mu.Lock()
	m.runs++
	m.mu.Unlock()
	<-ctx.Done()
	return nil
}

func (m *mockPoller) Poll(_ context.Context, handled poller.Handled) (poller.Summary, error) {
	m.polls++
	if handled == nil {
		return poller.Summary{}, errors.New("nil handled set")
	}
	return m.summary, m.err
}

func newDeps(cfg *config.Config, srv *mockServer, runner *mockDrainer, p *mockPoller) *Dependencies {
	return &Dependencies{
		Config:        cfg,
		Logger:        slog.New(slog.DiscardHandler),
		WebhookServer: func() (Server, error) { return srv, nil },
		WorkerServer:  func() (Server, error) { return srv, nil },
		Runner:        func() (Drainer, error) { return runner, nil },
		Poller:        func() (Poller, error) { return p, nil },
	}
}

func execute(t *testing.T, ctx context.Context, deps *Dependencies, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(deps)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	srv, runner, p := newMockServer(), &mockDrainer{}, &mockPoller{}
	deps := newDeps(&config.Config{DispatchMode: config.DispatchModeBackground, PollEnabled: true}, srv, runner, p)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if _, err := execute(t, ctx, deps, "serve"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.shutdowns != 1 || runner.calls != 1 {
		t.Fatalf("expected server shutdown and drain, got %d/%d", srv.shutdowns, runner.calls)
	}
	if p.runs != 1 {
		t.Fatalf("expected poller to run once, got %d", p.runs)
	}
}

func TestServe_HandoffDoesNotDrainOrPoll(t *testing.T) {
	srv, runner, p := newMockServer(), &mockDrainer{}, &mockPoller{}
	deps := newDeps(&config.Config{DispatchMode: config.DispatchModeHandoff}, srv, runner, p)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := execute(t, ctx, deps, "serve"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if runner.calls != 0 || p.runs != 0 {
		t.Fatalf("unexpected drain/poll: %d/%d", runner.calls, p.runs)
	}
}

func TestServe_ListenFailure(t *testing.T) {
	srv := newMockServer()
	srv.listenErr = errors.New("address in use")
	deps := newDeps(&config.Config{DispatchMode: config.DispatchModeBackground}, srv, &mockDrainer{}, &mockPoller{})

	_, err := execute(t, context.Background(), deps, "serve")
	if err == nil || !strings.Contains(err.Error(), "address in use") {
		t.Fatalf("expected listen error, got %v", err)
	}
}

func TestWorker_DrainFailureIsReported(t *testing.T) {
	srv, runner := newMockServer(), &mockDrainer{err: context.DeadlineExceeded}
	deps := newDeps(&config.Config{}, srv, runner, &mockPoller{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := execute(t, ctx, deps, "worker")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected drain error, got %v", err)
	}
}

func TestPollOnce_PrintsSummary(t *testing.T) {
	p := &mockPoller{summary: poller.Summary{Candidates: 4, Unprocessed: 2, Succeeded: 1, Failed: 1}}
	deps := newDeps(&config.Config{}, newMockServer(), &mockDrainer{}, p)

	out, err := execute(t, context.Background(), deps, "poll", "--once")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.polls != 1 || p.runs != 0 {
		t.Fatalf("expected a single poll, got polls=%d runs=%d", p.polls, p.runs)
	}
	if !strings.Contains(out, "candidates=4 unprocessed=2 succeeded=1 failed=1") {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestPollOnce_ReturnsCycleError(t *testing.T) {
	p := &mockPoller{err: errors.New("drafts unavailable")}
	deps := newDeps(&config.Config{}, newMockServer(), &mockDrainer{}, p)

	if _, err := execute(t, context.Background(), deps, "poll", "--once"); err == nil {
		t.Fatal("expected error")
	}
}
