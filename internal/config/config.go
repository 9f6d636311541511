package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	ProviderGateway   = "gateway"
	ProviderAnthropic = "anthropic"
)

type Config struct {
	Addr     string `env:"ADDR" env-default:":8080"`
	LogLevel string `env:"LOG_LEVEL" env-default:"INFO"`

	LLMProvider    string `env:"LLM_PROVIDER" env-default:"gateway"`
	GatewayURL     string `env:"AI_GATEWAY_URL" env-default:"https://ai.gateway.lovable.dev/v1/chat/completions"`
	GatewayAPIKey  string `env:"LOVABLE_API_KEY"`
	LLMModel       string `env:"LLM_MODEL" env-default:"google/gemini-2.5-flash"`
	AnthropicKey   string `env:"ANTHROPIC_API_KEY"`
	AnthropicModel string `env:"ANTHROPIC_MODEL" env-default:"claude-sonnet-4-5"`

	UpstreamTimeout     time.Duration `env:"UPSTREAM_TIMEOUT" env-default:"60s"`
	UpstreamWorkerCount int           `env:"UPSTREAM_WORKER_COUNT" env-default:"4"`
	UpstreamQueueSize   int           `env:"UPSTREAM_QUEUE_SIZE" env-default:"64"`

	LookupCacheSize       int      `env:"LOOKUP_CACHE_SIZE" env-default:"256"`
	PracticeQuestionCount int      `env:"PRACTICE_QUESTION_COUNT" env-default:"10"`
	CORSAllowedOrigins    []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`

	ServerURL string `env:"LEARNER_SERVER_URL" env-default:"http://localhost:8080"`
	DBPath    string `env:"LEARNER_DB_PATH" env-default:"file:wortflash.db"`
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults from the struct tags, then validates the result.
func Load() (Config, error) {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	cfg.LLMProvider = strings.ToLower(strings.TrimSpace(cfg.LLMProvider))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: validate: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be DEBUG, INFO, WARN or ERROR, got %q", c.LogLevel))
	}
	switch c.LLMProvider {
	case ProviderGateway:
		if strings.TrimSpace(c.GatewayURL) == "" {
			errs = append(errs, errors.New("AI_GATEWAY_URL cannot be empty"))
		}
	case ProviderAnthropic:
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderGateway, ProviderAnthropic, c.LLMProvider))
	}
	if c.UpstreamTimeout <= 0 {
		errs = append(errs, errors.New("UPSTREAM_TIMEOUT must be positive"))
	}
	if c.UpstreamWorkerCount < 1 {
		errs = append(errs, fmt.Errorf("UPSTREAM_WORKER_COUNT must be at least 1, got %d", c.UpstreamWorkerCount))
	}
	if c.UpstreamQueueSize < 1 {
		errs = append(errs, fmt.Errorf("UPSTREAM_QUEUE_SIZE must be at least 1, got %d", c.UpstreamQueueSize))
	}
	if c.LookupCacheSize < 1 {
		errs = append(errs, fmt.Errorf("LOOKUP_CACHE_SIZE must be at least 1, got %d", c.LookupCacheSize))
	}
	if c.PracticeQuestionCount < 1 || c.PracticeQuestionCount > 50 {
		errs = append(errs, fmt.Errorf("PRACTICE_QUESTION_COUNT must be between 1 and 50, got %d", c.PracticeQuestionCount))
	}
	if strings.TrimSpace(c.ServerURL) == "" {
		errs = append(errs, errors.New("LEARNER_SERVER_URL cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("LEARNER_DB_PATH cannot be empty"))
	}

	return errors.Join(errs...)
}

// APIKey returns the key for the configured provider. Empty means requests
// will be answered with NOT_CONFIGURED.
func (c Config) APIKey() string {
	if c.LLMProvider == ProviderAnthropic {
		return c.AnthropicKey
	}
	return c.GatewayAPIKey
}
