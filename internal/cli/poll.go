package cli

import (
	"fmt"

	"github.com/foxseedlab/meetnotes/internal/poller"
	"github.com/spf13/cobra"
)

func NewPollCmd(deps *Dependencies) *cobra.Command {
	var once bool

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Process recordings that have no draft yet",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := deps.Poller()
			if err != nil {
				return fmt.Errorf("poller: %w", err)
			}
			if !once {
				return p.Run(cmd.Context())
			}
			summary, err := p.Poll(cmd.Context(), make(poller.Handled))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "candidates=%d unprocessed=%d succeeded=%d failed=%d duration=%s\n",
				summary.Candidates, summary.Unprocessed, summary.Succeeded, summary.Failed, summary.Duration)
			return nil
		},
	}

	cmd.Flags().BoolVar(&once, "once", false, "Run a single poll cycle and exit")

	return cmd
}
