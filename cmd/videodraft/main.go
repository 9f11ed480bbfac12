package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	configloader "github.com/rodneymbrown1/videodraft/external/config"
	imagesimpl "github.com/rodneymbrown1/videodraft/external/images"
	intakeimpl "github.com/rodneymbrown1/videodraft/external/intake"
	notifyimpl "github.com/rodneymbrown1/videodraft/external/notify"
	presetsimpl "github.com/rodneymbrown1/videodraft/external/presets"
	rendererimpl "github.com/rodneymbrown1/videodraft/external/renderer"
	repositoryimpl "github.com/rodneymbrown1/videodraft/external/repository"
	transcriberimpl "github.com/rodneymbrown1/videodraft/external/transcriber"
	workspaceimpl "github.com/rodneymbrown1/videodraft/external/workspace"
	"github.com/rodneymbrown1/videodraft/internal/config"
	"github.com/rodneymbrown1/videodraft/internal/intake"
	"github.com/rodneymbrown1/videodraft/internal/project"
)

func main() {
	audioPath := flag.String("audio", "", "process a single recording and exit")
	render := flag.Bool("render", false, "render the deck after processing")
	flag.Parse()

	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "project", cfg.ProjectName)

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	run(injector, *audioPath, *render)
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

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	workspaceimpl.RegisterDI(injector)
	presetsimpl.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	transcriberimpl.RegisterDI(injector)
	rendererimpl.RegisterDI(injector)
	imagesimpl.RegisterDI(injector)
	notifyimpl.RegisterDI(injector)
	intakeimpl.RegisterDI(injector)
	project.RegisterDI(injector)

	return injector
}

func run(injector do.Injector, audioPath string, render bool) {
	manager, err := do.Invoke[*project.Manager](injector)
	if err != nil {
		slog.Error("failed to resolve project manager", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := manager.Open(ctx); err != nil {
		slog.Error("failed to open project", "error", err)
		os.Exit(1)
	}

	if audioPath != "" {
		if err := manager.ProcessAudio(ctx, audioPath); err != nil {
			slog.Error("failed to process recording", "path", audioPath, "error", err)
			os.Exit(1)
		}
		if render {
			if err := manager.Render(ctx); err != nil {
				slog.Error("failed to render deck", "error", err)
				os.Exit(1)
			}
		}
		return
	}

	watcher, err := do.Invoke[intake.Watcher](injector)
	if err != nil {
		slog.Error("failed to resolve intake watcher", "error", err)
		os.Exit(1)
	}
	if watcher == nil {
		slog.Error("nothing to do: pass -audio or configure INTAKE_DIR")
		os.Exit(1)
	}

	err = watcher.Start(ctx, func(ctx context.Context, path string) error {
		if err := manager.ProcessAudio(ctx, path); err != nil {
			return err
		}
		if render {
			return manager.Render(ctx)
		}
		return nil
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("intake watcher failed", "error", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}
