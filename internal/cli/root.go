package cli

import (
	"context"
	"log/slog"

	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/poller"
	"github.com/spf13/cobra"
)

// Server is a listener that can be drained.
type Server interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// Drainer waits for in-flight background work.
type Drainer interface {
	Shutdown(ctx context.Context) error
}

type Poller interface {
	Run(ctx context.Context) error
	Poll(ctx context.Context, handled poller.Handled) (poller.Summary, error)
}

// Dependencies are resolved lazily so each command only builds what it runs.
type Dependencies struct {
	Config        *config.Config
	Logger        *slog.Logger
	WebhookServer func() (Server, error)
	WorkerServer  func() (Server, error)
	Runner        func() (Drainer, error)
	Poller        func() (Poller, error)
}

func NewRootCmd(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meetnotes",
		Short:         "Turn CRM call recordings into meeting-note email drafts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewServeCmd(deps))
	rootCmd.AddCommand(NewWorkerCmd(deps))
	rootCmd.AddCommand(NewPollCmd(deps))

	return rootCmd
}
