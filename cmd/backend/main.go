package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	attioimpl "github.com/foxseedlab/meetnotes/external/attio"
	configloader "github.com/foxseedlab/meetnotes/external/config"
	"github.com/foxseedlab/meetnotes/external/discord"
	gmailimpl "github.com/foxseedlab/meetnotes/external/gmail"
	openaiimpl "github.com/foxseedlab/meetnotes/external/openai"
	"github.com/foxseedlab/meetnotes/external/server"
	"github.com/foxseedlab/meetnotes/external/worker"
	"github.com/foxseedlab/meetnotes/internal/cli"
	"github.com/foxseedlab/meetnotes/internal/config"
	"github.com/foxseedlab/meetnotes/internal/dispatch"
	"github.com/foxseedlab/meetnotes/internal/pipeline"
	"github.com/foxseedlab/meetnotes/internal/poller"
	"github.com/samber/do/v2"
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "dispatch_mode", cfg.DispatchMode)

	slog.Info("startup: building dependency graph")
	injector, err := setupDI(cfg)
	if err != nil {
		slog.Error("failed to build dependency graph", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCmd(newDependencies(cfg, injector)).ExecuteContext(ctx); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) (do.Injector, error) {
	prompts, err := configloader.LoadPrompts(cfg.PromptsFile)
	if err != nil {
		return nil, err
	}

	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, prompts)
	attioimpl.RegisterDI(injector)
	openaiimpl.RegisterDI(injector)
	gmailimpl.RegisterDI(injector)
	discord.RegisterDI(injector)
	pipeline.RegisterDI(injector)
	worker.RegisterDI(injector)
	poller.RegisterDI(injector)
	server.RegisterDI(injector)

	return injector, nil
}

func newDependencies(cfg *config.Config, injector do.Injector) *cli.Dependencies {
	return &cli.Dependencies{
		Config: cfg,
		Logger: slog.Default(),
		WebhookServer: func() (cli.Server, error) {
			return do.InvokeNamed[*server.Server](injector, server.WebhookServer)
		},
		WorkerServer: func() (cli.Server, error) {
			return do.InvokeNamed[*server.Server](injector, server.WorkerServer)
		},
		Runner: func() (cli.Drainer, error) {
			return do.Invoke[*dispatch.Background](injector)
		},
		Poller: func() (cli.Poller, error) {
			return do.Invoke[*poller.Poller](injector)
		},
	}
}
