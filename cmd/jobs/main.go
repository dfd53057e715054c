package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/fantasy-nft/internal/app"
	"github.com/riskibarqy/fantasy-nft/internal/config"
	"github.com/riskibarqy/fantasy-nft/internal/observability"
	"github.com/riskibarqy/fantasy-nft/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	cfg.MetricsEnabled = false

	logger := logging.New(cfg.LogFormat, cfg.LogLevel).With("service", cfg.ServiceName+"-jobs", "env", cfg.AppEnv)
	logging.SetDefault(logger)

	telemetry, err := observability.Start(cfg, logger, false)
	if err != nil {
		logger.Error("start telemetry", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	build := func(ctx context.Context) (services, func() error, error) {
		c, err := app.Build(ctx, cfg, logger)
		if err != nil {
			return services{}, nil, err
		}
		return services{athleteSync: c.AthleteSync, scores: c.Scores}, c.Close, nil
	}

	exitCode := 0
	if err := newRootCommand(build, logger, os.Stdout).ExecuteContext(ctx); err != nil {
		logger.Error("job failed", "error", err)
		exitCode = 1
	}
	stop()

	if err := telemetry.Shutdown(context.Background()); err != nil {
		logger.Warn("stop telemetry", "error", err)
	}
	_ = logger.Sync()
	os.Exit(exitCode)
}
