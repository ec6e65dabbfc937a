package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	Port       string
	CronSecret string

	// Database
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// LLM fallback
	LLMProvider string // openai, gemini or none
	LLMAPIKey   string
	LLMBaseURL  string
	LLMModel    string
	LLMTimeout  time.Duration

	// Browser
	BrowserMode     string // static or chrome
	ChromeExecPath  string
	NavigateTimeout time.Duration
	ProbeTimeout    time.Duration
	EnrichTimeout   time.Duration

	// Pipeline settings
	RecheckEvery      time.Duration
	RunBudget         time.Duration
	MaxSitesPerRun    int
	MaxOnboardJobs    int
	MaxNewJobsPerSite int

	// Events
	KafkaBrokers []string
	KafkaTopic   string

	// Logging
	LogLevel string
}

// Load reads the environment (and a .env file when present) into a Config
// with defaults applied. Required values are checked by Validate.
func Load() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		// Defaults
		Port:              "8080",
		RedisAddr:         "localhost:6379",
		LLMProvider:       "openai",
		LLMBaseURL:        "https://api.openai.com/v1",
		LLMModel:          "gpt-4o-mini",
		LLMTimeout:        30 * time.Second,
		BrowserMode:       "static",
		NavigateTimeout:   30 * time.Second,
		ProbeTimeout:      10 * time.Second,
		EnrichTimeout:     15 * time.Second,
		RecheckEvery:      30 * time.Minute,
		RunBudget:         10 * time.Minute,
		MaxSitesPerRun:    50,
		MaxOnboardJobs:    10,
		MaxNewJobsPerSite: 5,
		KafkaTopic:        "jobs.discovered",
		LogLevel:          "info",
	}

	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	cfg.CronSecret = os.Getenv("CRON_SECRET")
	cfg.PostgresDSN = os.Getenv("POSTGRES_DSN")

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		db, err := strconv.Atoi(redisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if provider := os.Getenv("LLM_PROVIDER"); provider != "" {
		cfg.LLMProvider = strings.ToLower(provider)
	}
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	if baseURL := os.Getenv("LLM_BASE_URL"); baseURL != "" {
		cfg.LLMBaseURL = baseURL
	}
	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.LLMModel = model
	} else if cfg.LLMProvider == "gemini" {
		cfg.LLMModel = "gemini-2.0-flash"
	}

	if mode := os.Getenv("BROWSER_MODE"); mode != "" {
		cfg.BrowserMode = strings.ToLower(mode)
	}
	cfg.ChromeExecPath = os.Getenv("CHROME_PATH")

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"LLM_TIMEOUT", &cfg.LLMTimeout},
		{"NAVIGATE_TIMEOUT", &cfg.NavigateTimeout},
		{"LOCATOR_PROBE_TIMEOUT", &cfg.ProbeTimeout},
		{"ENRICH_TIMEOUT", &cfg.EnrichTimeout},
		{"RECHECK_EVERY", &cfg.RecheckEvery},
		{"RUN_BUDGET", &cfg.RunBudget},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", d.env, err)
		}
		*d.dst = parsed
	}

	ints := []struct {
		env string
		dst *int
	}{
		{"MAX_SITES_PER_RUN", &cfg.MaxSitesPerRun},
		{"MAX_ONBOARD_JOBS", &cfg.MaxOnboardJobs},
		{"MAX_NEW_JOBS_PER_SITE", &cfg.MaxNewJobsPerSite},
	}
	for _, i := range ints {
		v := os.Getenv(i.env)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", i.env, err)
		}
		*i.dst = n
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	if topic := os.Getenv("KAFKA_TOPIC"); topic != "" {
		cfg.KafkaTopic = topic
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		cfg.LogLevel = strings.ToLower(logLevel)
	}

	return cfg, nil
}

// LLMEnabled reports whether the AI fallback tier should be wired.
func (c *Config) LLMEnabled() bool {
	return c.LLMProvider != "none"
}

func (c *Config) Validate() error {
	if c.PostgresDSN == "" {
		return fmt.Errorf("POSTGRES_DSN is required")
	}

	if c.CronSecret == "" {
		return fmt.Errorf("CRON_SECRET is required")
	}

	switch c.LLMProvider {
	case "openai", "gemini":
		if c.LLMAPIKey == "" {
			return fmt.Errorf("LLM_API_KEY is required for provider %s", c.LLMProvider)
		}
	case "none":
	default:
		return fmt.Errorf("invalid LLM_PROVIDER: %s", c.LLMProvider)
	}

	if c.BrowserMode != "static" && c.BrowserMode != "chrome" {
		return fmt.Errorf("invalid BROWSER_MODE: %s", c.BrowserMode)
	}

	if c.RecheckEvery < time.Minute {
		return fmt.Errorf("recheck interval too small: %v", c.RecheckEvery)
	}

	if c.NavigateTimeout <= 0 || c.ProbeTimeout <= 0 || c.EnrichTimeout <= 0 {
		return fmt.Errorf("navigation timeouts must be positive")
	}

	if c.MaxSitesPerRun < 1 || c.MaxOnboardJobs < 1 || c.MaxNewJobsPerSite < 1 {
		return fmt.Errorf("per-run caps must be at least 1")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}

	return nil
}
