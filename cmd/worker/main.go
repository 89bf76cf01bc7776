package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"statehouse_site/internal/app"
	"statehouse_site/internal/config"
	"statehouse_site/internal/logging"
	"statehouse_site/internal/tasks"
)

const warmTask = "warm_cms"

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	infra, err := app.Open(cfg, logger, app.Options{})
	if err != nil {
		logger.Fatal("failed to initialize", zap.Error(err))
	}
	defer infra.Close()

	schedule, err := tasks.NewSchedule(cfg.WarmSchedule, time.Now())
	if err != nil {
		logger.Warn("invalid warm schedule, using fallback interval", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("worker started", zap.Stringer("schedule", schedule))
	run(ctx, infra.Tasks(), schedule, logger)
	logger.Info("shutting down worker")
}

// run executes the warm task once immediately, then at every occurrence of
// the schedule until ctx is done.
func run(ctx context.Context, registry *tasks.Registry, schedule tasks.Schedule, logger *zap.Logger) {
	for {
		if _, err := registry.Run(ctx, warmTask, nil); err != nil {
			logger.Error("warm run failed", zap.Error(err))
		}

		next := schedule.Next(time.Now())
		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}
