package config

import (
	"log/slog"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds runtime configuration.
type Config struct {
	// Server
	Port           int           `env:"PORT" envDefault:"8080"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"90s"`

	// Providers. A family whose credentials are missing is left out of the registry.
	OpenAIKey          string        `env:"OPENAI_API_KEY"`
	OpenAIModel        string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	OpenAIBaseURL      string        `env:"OPENAI_BASE_URL"`
	GroqKey            string        `env:"GROQ_API_KEY"`
	GroqModel          string        `env:"GROQ_MODEL" envDefault:"llama-3.3-70b-versatile"`
	GroqSecondaryModel string        `env:"GROQ_SECONDARY_MODEL" envDefault:"llama-3.1-8b-instant"`
	GroqBaseURL        string        `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1/"`
	MistralKey         string        `env:"MISTRAL_API_KEY"`
	MistralAgentID     string        `env:"MISTRAL_AGENT_ID"`
	MistralBaseURL     string        `env:"MISTRAL_BASE_URL" envDefault:"https://api.mistral.ai/v1/"`
	DefaultProvider    string        `env:"DEFAULT_PROVIDER" envDefault:"groq"`
	FallbackProvider   string        `env:"FALLBACK_PROVIDER" envDefault:"openai"`
	ProviderTimeout    time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"30s"`

	// Generation
	AnswerTemperature float64 `env:"ANSWER_TEMPERATURE" envDefault:"0.6"`
	AnswerMaxTokens   int     `env:"ANSWER_MAX_TOKENS" envDefault:"800"`
	MetaTemperature   float64 `env:"META_TEMPERATURE" envDefault:"0.3"`
	MetaMaxTokens     int     `env:"META_MAX_TOKENS" envDefault:"250"`
	FollowUpMaxTokens int     `env:"FOLLOWUP_MAX_TOKENS" envDefault:"600"`

	// Store
	StoreProvider string `env:"STORE_PROVIDER" envDefault:"sqlite"` // "sqlite" or "postgres"
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"data/snapwort.db"`
	DBURL         string `env:"DB_URL"`

	// Cache
	CacheProvider string `env:"CACHE_PROVIDER" envDefault:"none"` // "redis" or "none"
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	CacheTTL      int    `env:"CACHE_TTL" envDefault:"86400"` // seconds

	// Backup
	BackupTransports []string `env:"BACKUP_TRANSPORTS" envSeparator:","` // any of "redis", "nats"
	NATSURL          string   `env:"NATS_URL" envDefault:"nats://localhost:4222"`
	NATSBackupBucket string   `env:"NATS_BACKUP_BUCKET" envDefault:"snapwort-backups"`
}

// Load reads configuration from environment variables with defaults.
func Load() Config {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		slog.Warn("failed to parse env; using defaults where set", "err", err)
	}
	return cfg
}

// CacheTTLDuration returns CacheTTL as a duration.
func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// UsesRedis reports whether any component needs a Redis connection.
func (c Config) UsesRedis() bool {
	if c.CacheProvider == "redis" {
		return true
	}
	for _, t := range c.BackupTransports {
		if t == "redis" {
			return true
		}
	}
	return false
}
