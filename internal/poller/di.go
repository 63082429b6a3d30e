package poller

import (
	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/crm"
	"github.com/foxseedlab/meetnotes/internal/mail"
	"github.com/foxseedlab/meetnotes/internal/pipeline"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Poller, error) {
		c := do.MustInvoke[*config.Config](i)
		return New(
			do.MustInvoke[crm.Client](i),
			do.MustInvoke[mail.Mailbox](i),
			do.MustInvoke[*pipeline.Processor](i),
			Options{
				Interval:        c.PollInterval,
				ItemDelay:       c.PollItemDelay,
				Cutover:         c.PollCutover(),
				MaxPages:        c.PollMaxPages,
				PageSize:        c.PollPageSize,
				DraftMaxResults: c.PollDraftMaxResults,
			},
		), nil
	})
}
