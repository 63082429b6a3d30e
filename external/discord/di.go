package discord

import (
	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/notifier"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (notifier.Notifier, error) {
		c := do.MustInvoke[*config.Config](i)
		if !c.NotificationsEnabled() {
			return notifier.Nop{}, nil
		}
		return NewNotifier(c.DiscordToken, c.DiscordChannelID)
	})
}
