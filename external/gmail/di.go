package gmail

import (
	"context"

	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/mail"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (mail.Mailbox, error) {
		c := do.MustInvoke[*config.Config](i)
		svc, err := NewService(context.Background(), c.GmailCredentialsJSON, c.GmailTokenJSON, c.HTTPRequestTimeout)
		if err != nil {
			return nil, err
		}
		return NewMailbox(svc), nil
	})
}
