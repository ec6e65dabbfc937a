// Command recheck runs a single recheck pass and exits. It is meant for an
// external cron or a serverless executor.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"careerwatch/internal/app"
	"careerwatch/internal/config"
	"careerwatch/internal/logger"
	"careerwatch/internal/pipeline"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		return 1
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Error("failed to start", zap.Error(err))
		return 1
	}
	defer application.Close()

	summary, err := application.Orchestrator.RecheckDue(ctx)
	if errors.Is(err, pipeline.ErrRunInProgress) {
		log.Info("another recheck run is in progress, nothing to do")
		return 0
	}
	if err != nil {
		log.Error("recheck run failed", zap.Error(err))
		return 1
	}

	log.Info("recheck complete",
		zap.Int("sites_due", summary.SitesDue),
		zap.Int("sites_checked", summary.SitesChecked),
		zap.Int("sites_failed", summary.SitesFailed),
		zap.Int("new_jobs", summary.NewJobs),
		zap.Int64("duration_ms", summary.DurationMS),
	)
	return 0
}
