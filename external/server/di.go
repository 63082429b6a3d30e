package server

import (
	"log/slog"

	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/dispatch"
	"github.com/foxseedlab/meetnotes/internal/webhook"
	"github.com/gin-gonic/gin"
	"github.com/samber/do/v2"
)

const (
	WebhookServer = "server.webhook"
	WorkerServer  = "server.worker"
)

func RegisterDI(injector do.Injector) {
	do.ProvideNamed(injector, WebhookServer, func(i do.Injector) (*Server, error) {
		c := do.MustInvoke[*config.Config](i)
		setMode(c)
		receiver := webhook.NewReceiver(do.MustInvoke[dispatch.Dispatcher](i))
		return New(c.HTTPAddr, NewWebhookRouter(receiver, slog.Default()), slog.Default()), nil
	})
	do.ProvideNamed(injector, WorkerServer, func(i do.Injector) (*Server, error) {
		c := do.MustInvoke[*config.Config](i)
		setMode(c)
		runner := do.MustInvoke[*dispatch.Background](i)
		return New(c.WorkerAddr, NewWorkerRouter(runner, c.WorkerSharedSecret, slog.Default()), slog.Default()), nil
	})
}

func setMode(c *config.Config) {
	if c.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
