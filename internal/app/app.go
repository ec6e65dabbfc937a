// Package app builds the long-lived clients from config and wires them
// into the pipeline. Both binaries start from here.
package app

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"careerwatch/internal/browser"
	"careerwatch/internal/config"
	"careerwatch/internal/events"
	"careerwatch/internal/extractor"
	"careerwatch/internal/llm"
	"careerwatch/internal/pipeline"
	"careerwatch/internal/storage/postgres"
	"careerwatch/internal/storage/redis"
)

type App struct {
	Store        *postgres.Store
	Cache        *redis.Cache
	Orchestrator *pipeline.Orchestrator

	closers []io.Closer
	logger  *zap.Logger
}

// New connects to Postgres and Redis, applies the schema and builds the
// orchestrator. Whatever was opened is closed again when it fails.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (_ *App, err error) {
	a := &App{logger: logger}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	logger.Info("connecting to PostgreSQL...")
	a.Store, err = postgres.New(cfg.PostgresDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	a.closers = append(a.closers, a.Store)

	if err := a.Store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("PostgreSQL connected successfully")

	logger.Info("connecting to Redis...")
	a.Cache, err = redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.closers = append(a.closers, a.Cache)
	logger.Info("Redis connected successfully")

	completer, err := a.completer(ctx, cfg)
	if err != nil {
		return nil, err
	}

	publisher := a.publisher(cfg)

	a.Orchestrator = pipeline.New(pipeline.Deps{
		Store:      a.Store,
		Locker:     a.Cache,
		Publisher:  publisher,
		NewBrowser: browserFactory(cfg, logger),
		Locator:    extractor.NewLocator(cfg.ProbeTimeout, logger),
		DOM:        extractor.NewDOMExtractor(browser.DefaultScrollOptions(), logger),
		Enricher:   extractor.NewEnricher(cfg.EnrichTimeout, logger),
		AI:         llm.NewFallbackExtractor(completer, a.Cache, cfg.LLMTimeout, logger),
	}, pipeline.Config{
		MaxSitesPerRun:    cfg.MaxSitesPerRun,
		MaxOnboardJobs:    cfg.MaxOnboardJobs,
		MaxNewJobsPerSite: cfg.MaxNewJobsPerSite,
		RunBudget:         cfg.RunBudget,
		NavigateTimeout:   cfg.NavigateTimeout,
	}, logger)

	return a, nil
}

func (a *App) completer(ctx context.Context, cfg *config.Config) (llm.Completer, error) {
	if !cfg.LLMEnabled() {
		a.logger.Info("AI fallback disabled")
		return llm.Noop{}, nil
	}

	switch cfg.LLMProvider {
	case "gemini":
		g, err := llm.NewGemini(ctx, cfg.LLMAPIKey, cfg.LLMModel, a.logger)
		if err != nil {
			return nil, fmt.Errorf("create gemini client: %w", err)
		}
		a.closers = append(a.closers, g)
		a.logger.Info("AI fallback enabled", zap.String("provider", "gemini"), zap.String("model", cfg.LLMModel))
		return g, nil
	default:
		a.logger.Info("AI fallback enabled", zap.String("provider", "openai"), zap.String("model", cfg.LLMModel))
		return llm.NewOpenAI(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel, a.logger), nil
	}
}

func (a *App) publisher(cfg *config.Config) pipeline.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return events.Noop{}
	}
	p := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaTopic)
	a.closers = append(a.closers, p)
	a.logger.Info("publishing new jobs to kafka",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaTopic),
	)
	return p
}

// browserFactory returns a shared static fetcher, or a fresh headless Chrome
// per run in chrome mode.
func browserFactory(cfg *config.Config, logger *zap.Logger) pipeline.BrowserFactory {
	if cfg.BrowserMode == "chrome" {
		return func(ctx context.Context) (browser.Browser, error) {
			return browser.NewChrome(cfg.ChromeExecPath, logger)
		}
	}

	static := browser.NewStatic(cfg.NavigateTimeout, logger)
	return func(ctx context.Context) (browser.Browser, error) {
		return static, nil
	}
}

// Close releases clients in reverse order of creation.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			a.logger.Warn("failed to close client", zap.Error(err))
		}
	}
	a.closers = nil
}
