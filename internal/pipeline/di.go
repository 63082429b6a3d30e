package pipeline

import (
	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/crm"
	"github.com/foxseedlab/meetnotes/internal/draft"
	"github.com/foxseedlab/meetnotes/internal/llm"
	"github.com/foxseedlab/meetnotes/internal/mail"
	"github.com/foxseedlab/meetnotes/internal/meeting"
	"github.com/foxseedlab/meetnotes/internal/notes"
	"github.com/foxseedlab/meetnotes/internal/notifier"
	"github.com/foxseedlab/meetnotes/internal/transcript"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Processor, error) {
		cfg := do.MustInvoke[*config.Config](i)
		client := do.MustInvoke[crm.Client](i)
		completer := do.MustInvoke[llm.Completer](i)
		mailbox := do.MustInvoke[mail.Mailbox](i)
		notify := do.MustInvoke[notifier.Notifier](i)
		prompts := do.MustInvoke[notes.Prompts](i)

		assembler := transcript.NewAssembler(client, transcript.RetryPolicy{
			BaseDelay:   cfg.TranscriptRetryBaseDelay,
			MaxDelay:    cfg.TranscriptRetryMaxDelay,
			MaxAttempts: cfg.TranscriptMaxAttempts,
		})
		fetcher := meeting.NewFetcher(client, assembler, cfg.TranscriptInitialBuffer)
		formatter, err := notes.NewFormatter(completer, prompts, cfg.Location())
		if err != nil {
			return nil, err
		}
		publisher := draft.NewPublisher(mailbox, cfg.Location(), draft.WithSignature(cfg.SignatureLines()))
		return NewProcessor(fetcher, formatter, publisher, WithNotifier(notify)), nil
	})
}
