// Package scheduler triggers recheck runs on a fixed cadence.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"careerwatch/internal/pipeline"
)

// Runner performs one recheck run over all due sites.
type Runner interface {
	RecheckDue(ctx context.Context) (pipeline.RunSummary, error)
}

type Checker struct {
	cron         *cron.Cron
	runner       Runner
	every        time.Duration
	initialDelay time.Duration
	wg           sync.WaitGroup
	logger       *zap.Logger
}

func New(runner Runner, every time.Duration, logger *zap.Logger) *Checker {
	cl := cronLogger{logger.Sugar()}
	return &Checker{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		runner:       runner,
		every:        every,
		initialDelay: 30 * time.Second,
		logger:       logger,
	}
}

// Start schedules the run and fires one extra run shortly after startup so
// a fresh deployment does not wait a whole period.
func (c *Checker) Start(ctx context.Context) error {
	if c.every < time.Second {
		return fmt.Errorf("recheck interval too small: %v", c.every)
	}

	spec := "@every " + c.every.String()
	if _, err := c.cron.AddFunc(spec, func() { c.run(ctx) }); err != nil {
		return fmt.Errorf("schedule recheck: %w", err)
	}
	c.cron.Start()

	c.logger.Info("recheck scheduler started",
		zap.Duration("interval", c.every),
	)

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		select {
		case <-ctx.Done():
			return
		case <-time.After(c.initialDelay):
		}
		c.run(ctx)
	}()

	return nil
}

// Stop waits for a run in flight to finish.
func (c *Checker) Stop() {
	<-c.cron.Stop().Done()
	c.wg.Wait()
	c.logger.Info("recheck scheduler stopped")
}

func (c *Checker) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	summary, err := c.runner.RecheckDue(ctx)
	if errors.Is(err, pipeline.ErrRunInProgress) {
		c.logger.Info("recheck skipped, another run holds the lock")
		return
	}
	if err != nil {
		c.logger.Error("recheck run failed", zap.Error(err))
		return
	}

	c.logger.Debug("scheduled recheck done",
		zap.Int("sites_checked", summary.SitesChecked),
		zap.Int("new_jobs", summary.NewJobs),
	)
}

// cronLogger routes cron's own messages through zap.
type cronLogger struct {
	s *zap.SugaredLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, append(keysAndValues, "error", err)...)
}
