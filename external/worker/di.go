package worker

import (
	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/dispatch"
	"github.com/foxseedlab/meetnotes/internal/notifier"
	"github.com/foxseedlab/meetnotes/internal/pipeline"
	"github.com/samber/do/v2"
)

// RegisterDI provides the in-process runner and the dispatcher the webhook
// receiver submits to, chosen by DISPATCH_MODE.
func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*dispatch.Background, error) {
		processor := do.MustInvoke[*pipeline.Processor](i)
		notify := do.MustInvoke[notifier.Notifier](i)
		return dispatch.NewBackground(processor, dispatch.WithNotifier(notify)), nil
	})
	do.Provide(injector, func(i do.Injector) (dispatch.Dispatcher, error) {
		c := do.MustInvoke[*config.Config](i)
		if c.DispatchMode == config.DispatchModeHandoff {
			return NewSender(c.WorkerURL, c.WorkerSharedSecret, c.HTTPRequestTimeout), nil
		}
		return do.MustInvoke[*dispatch.Background](i), nil
	})
}
