// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/subburnd/subburnd/internal/api"
	"github.com/subburnd/subburnd/internal/config"
	"github.com/subburnd/subburnd/internal/daemon"
	"github.com/subburnd/subburnd/internal/ffmpeg"
	"github.com/subburnd/subburnd/internal/health"
	sblog "github.com/subburnd/subburnd/internal/log"
	"github.com/subburnd/subburnd/internal/pipeline"
	"github.com/subburnd/subburnd/internal/staging"
	"github.com/subburnd/subburnd/internal/validation"
	"github.com/subburnd/subburnd/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	// Safe defaults until config is loaded.
	sblog.Configure(sblog.Config{
		Level:   "info",
		Service: "subburnd",
		Version: version.Version,
	})
	logger := sblog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	loader := config.NewLoader(strings.TrimSpace(*configPath), version.Version)
	cfg, err := loader.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "config.load_failed").
			Str("config_path", *configPath).
			Msg("failed to load configuration")
	}

	// Re-configure with the loaded settings.
	sblog.Configure(sblog.Config{
		Level:   cfg.LogLevel,
		Service: cfg.LogService,
		Version: cfg.Version,
	})

	if err := validation.PerformStartupChecks(cfg); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "startup.check_failed").
			Msg("startup checks failed, verify configuration and permissions")
	}

	logger.Info().
		Str("event", "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str("addr", cfg.ListenAddr).
		Msg("starting subburnd")

	logger.Info().Msgf("→ Transcoder: %s (timeout: %s)", cfg.FFmpegBin, cfg.Timeout)
	logger.Info().Msgf("→ Scratch dir: %s", cfg.ScratchDir)
	logger.Info().Msgf("→ Concurrency: %d slots", cfg.MaxConcurrent)
	if cfg.MetricsListen != "" {
		logger.Info().Msgf("→ Metrics: %s", cfg.MetricsListen)
	}

	store, err := staging.NewStore(cfg.ScratchDir)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "startup.scratch_failed").
			Msg("scratch directory unavailable")
	}

	hm := health.NewManager(version.Version)
	hm.RegisterChecker(health.NewTranscoderChecker(cfg.FFmpegBin))
	hm.RegisterChecker(health.NewScratchChecker(cfg.ScratchDir))

	runner := ffmpeg.NewExecutor()
	burner := pipeline.New(cfg, store, runner)
	server := api.NewServer(cfg, burner, hm)

	deps := daemon.Deps{
		Logger:         sblog.Base(),
		APIHandler:     server.Router(),
		MetricsAddr:    cfg.MetricsListen,
		MetricsHandler: promhttp.Handler(),
	}

	manager, err := daemon.NewManager(cfg.Server(), deps)
	if err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "startup.manager_failed").
			Msg("failed to create daemon manager")
	}

	app := daemon.NewApp(sblog.Base(), manager, store, cfg)
	if err := app.Run(ctx); err != nil {
		logger.Fatal().
			Err(err).
			Str("event", "daemon.failed").
			Msg("daemon exited with error")
	}

	logger.Info().Msg("subburnd stopped")
}
