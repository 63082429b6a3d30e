package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func NewServeCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Receive CRM webhooks and run the recovery poller",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := deps.WebhookServer()
			if err != nil {
				return fmt.Errorf("webhook server: %w", err)
			}
			var runner Drainer
			if deps.Config.DispatchMode == config.DispatchModeBackground {
				if runner, err = deps.Runner(); err != nil {
					return fmt.Errorf("background runner: %w", err)
				}
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			var wg sync.WaitGroup
			if deps.Config.PollEnabled {
				p, err := deps.Poller()
				if err != nil {
					return fmt.Errorf("poller: %w", err)
				}
				wg.Add(1)
				go func() {
					defer wg.Done()
					_ = p.Run(ctx)
				}()
			} else {
				deps.Logger.Info("poller disabled")
			}

			err = serveUntilDone(ctx, deps, srv, runner)
			cancel()
			wg.Wait()
			return err
		},
	}
}

func NewWorkerCmd(deps *Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Accept handed-off jobs and run the processing chain",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := deps.WorkerServer()
			if err != nil {
				return fmt.Errorf("worker server: %w", err)
			}
			runner, err := deps.Runner()
			if err != nil {
				return fmt.Errorf("background runner: %w", err)
			}
			return serveUntilDone(cmd.Context(), deps, srv, runner)
		},
	}
}

// serveUntilDone runs srv until ctx is done or the listener fails, then stops
// accepting requests and waits for runner, if any, to drain.
func serveUntilDone(ctx context.Context, deps *Dependencies, srv Server, runner Drainer) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	var serveErr error
	select {
	case <-ctx.Done():
		deps.Logger.Info("shutting down")
	case serveErr = <-errCh:
		if serveErr != nil {
			deps.Logger.Error("http server failed", "error", serveErr)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	var errs []error
	if serveErr != nil {
		errs = append(errs, serveErr)
	}
	if err := srv.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if runner != nil {
		if err := runner.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("drain background jobs: %w", err))
		} else {
			deps.Logger.Info("background jobs drained")
		}
	}
	return errors.Join(errs...)
}
