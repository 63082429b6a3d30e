package attio

import (
	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/crm"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (crm.Client, error) {
		c := do.MustInvoke[*config.Config](i)
		return NewClient(c.AttioBaseURL, c.AttioAPIKey, c.HTTPRequestTimeout), nil
	})
}
