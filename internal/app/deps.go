package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"snapwort/internal/backup"
	"snapwort/internal/cache"
	"snapwort/internal/config"
	"snapwort/internal/llm"
	"snapwort/internal/logger"
	"snapwort/internal/metrics"
	"snapwort/internal/orchestrator"
	"snapwort/internal/store"
)

// Deps bundles runtime dependencies for the assistant service.
type Deps struct {
	Config    config.Config
	Log       *slog.Logger
	Assistant orchestrator.Assistant
	Cache     cache.Cache
	Store     store.Store
	Backups   *backup.Service
	Metrics   *prometheus.Registry

	closers []func() error
}

// Close releases connections in reverse order of creation.
func (d Deps) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build loads env, config, and shared components.
func Build() (Deps, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Deps{}, fmt.Errorf("failed to load environment variables: %w", err)
	}
	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	deps := Deps{Config: cfg, Log: log}
	fail := func(msg string, err error) (Deps, error) {
		_ = deps.Close()
		return Deps{}, fmt.Errorf("%s: %w", msg, err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = reg

	assistant, err := buildAssistant(cfg, log, metrics.NewCollector(reg))
	if err != nil {
		return fail("failed to initialize assistant", err)
	}
	deps.Assistant = assistant

	st, err := buildStore(cfg, log)
	if err != nil {
		return fail("failed to initialize store", err)
	}
	deps.Store = st
	deps.closers = append(deps.closers, st.Close)

	var rdb *redis.Client
	if cfg.UsesRedis() {
		rdb, err = connectRedis(cfg)
		if err != nil && cfg.CacheProvider == "redis" && !slices.Contains(cfg.BackupTransports, "redis") {
			// Caching is optional: degrade instead of refusing to start.
			log.Warn("redis unreachable; caching disabled", "addr", cfg.RedisAddr, "err", err)
			rdb, err = nil, nil
		}
		if err != nil {
			return fail("failed to connect to Redis", err)
		}
		if rdb != nil {
			deps.closers = append(deps.closers, rdb.Close)
		}
	}
	deps.Cache = buildCache(cfg, log, rdb)

	transports, nc, err := buildTransports(cfg, log, rdb)
	if nc != nil {
		deps.closers = append(deps.closers, func() error { nc.Close(); return nil })
	}
	if err != nil {
		return fail("failed to initialize backups", err)
	}
	deps.Backups = backup.NewService(st, log, transports...)

	return deps, nil
}

// BuildRegistry registers every provider family whose credentials are present.
func BuildRegistry(cfg config.Config, log *slog.Logger) *llm.Registry {
	reg := llm.NewRegistry()

	openaiClient, err := llm.NewChatClient(llm.ChatConfig{
		Family:  llm.FamilyOpenAI,
		APIKey:  cfg.OpenAIKey,
		Model:   cfg.OpenAIModel,
		BaseURL: cfg.OpenAIBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	register(reg, log, llm.FamilyOpenAI, err, openaiClient)

	groqPrimary, err := llm.NewChatClient(llm.ChatConfig{
		Family:  llm.FamilyGroq,
		APIKey:  cfg.GroqKey,
		Model:   cfg.GroqModel,
		BaseURL: cfg.GroqBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	if err == nil && cfg.GroqSecondaryModel != "" && cfg.GroqSecondaryModel != cfg.GroqModel {
		groqSecondary, serr := llm.NewChatClient(llm.ChatConfig{
			Family:  llm.FamilyGroq,
			APIKey:  cfg.GroqKey,
			Model:   cfg.GroqSecondaryModel,
			BaseURL: cfg.GroqBaseURL,
			Timeout: cfg.ProviderTimeout,
		})
		if serr == nil {
			register(reg, log, llm.FamilyGroq, nil, groqPrimary, groqSecondary)
		} else {
			register(reg, log, llm.FamilyGroq, nil, groqPrimary)
		}
	} else {
		register(reg, log, llm.FamilyGroq, err, groqPrimary)
	}

	agent, err := llm.NewAgentClient(llm.AgentConfig{
		APIKey:  cfg.MistralKey,
		AgentID: cfg.MistralAgentID,
		BaseURL: cfg.MistralBaseURL,
		Timeout: cfg.ProviderTimeout,
	})
	register(reg, log, llm.FamilyMistral, err, agent)

	return reg
}

func register[C llm.Client](reg *llm.Registry, log *slog.Logger, f llm.Family, err error, clients ...C) {
	if err != nil {
		log.Info("provider family not configured", "family", f, "reason", err)
		return
	}
	variants := make([]llm.Client, 0, len(clients))
	models := make([]string, 0, len(clients))
	for _, c := range clients {
		variants = append(variants, c)
		models = append(models, c.Model())
	}
	reg.Register(f, variants...)
	log.Info("provider family registered", "family", f, "models", models)
}

func buildAssistant(cfg config.Config, log *slog.Logger, rec orchestrator.Recorder) (*orchestrator.Orchestrator, error) {
	def, err := llm.ParseFamily(cfg.DefaultProvider)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_PROVIDER: %w", err)
	}
	fallback, err := llm.ParseFamily(cfg.FallbackProvider)
	if err != nil {
		return nil, fmt.Errorf("invalid FALLBACK_PROVIDER: %w", err)
	}
	return orchestrator.New(BuildRegistry(cfg, log), Settings(cfg, def, fallback), log, rec)
}

// Settings maps configuration onto per-call generation options.
func Settings(cfg config.Config, def, fallback llm.Family) orchestrator.Settings {
	return orchestrator.Settings{
		Default:  def,
		Fallback: fallback,
		Answer:   llm.Options{Temperature: cfg.AnswerTemperature, MaxTokens: cfg.AnswerMaxTokens},
		Meta:     llm.Options{Temperature: cfg.MetaTemperature, MaxTokens: cfg.MetaMaxTokens, Structured: true},
		FollowUp: llm.Options{Temperature: cfg.AnswerTemperature, MaxTokens: cfg.FollowUpMaxTokens},
	}
}

func buildStore(cfg config.Config, log *slog.Logger) (store.Store, error) {
	switch cfg.StoreProvider {
	case "sqlite":
		db, err := store.NewSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite: %w", err)
		}
		log.Info("using SQLite store", "path", cfg.SQLitePath)
		return db, nil
	case "postgres":
		if cfg.DBURL == "" {
			return nil, fmt.Errorf("DB_URL is required when STORE_PROVIDER=postgres")
		}
		db, err := store.NewPostgres(cfg.DBURL)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Postgres: %w", err)
		}
		log.Info("using Postgres store")
		return db, nil
	default:
		return nil, fmt.Errorf("invalid STORE_PROVIDER: %s (valid options: sqlite, postgres)", cfg.StoreProvider)
	}
}

func connectRedis(cfg config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

func buildCache(cfg config.Config, log *slog.Logger, rdb *redis.Client) cache.Cache {
	if cfg.CacheProvider == "redis" && rdb != nil {
		log.Info("using Redis cache", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTLDuration())
		return cache.NewRedisCache(rdb)
	}
	log.Info("lookup cache disabled")
	return cache.NewNoOpCache()
}

func buildTransports(cfg config.Config, log *slog.Logger, rdb *redis.Client) ([]backup.Transport, *nats.Conn, error) {
	var (
		transports []backup.Transport
		nc         *nats.Conn
	)
	for _, name := range cfg.BackupTransports {
		switch name {
		case "redis":
			transports = append(transports, backup.NewRedisTransport(rdb))
		case "nats":
			if nc == nil {
				conn, err := nats.Connect(cfg.NATSURL, nats.Name("snapwort"))
				if err != nil {
					return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
				}
				nc = conn
			}
			tr, err := backup.NewNATSTransport(nc, cfg.NATSBackupBucket)
			if err != nil {
				return nil, nc, err
			}
			transports = append(transports, tr)
		case "":
			continue
		default:
			return nil, nc, fmt.Errorf("invalid BACKUP_TRANSPORTS entry: %s (valid options: redis, nats)", name)
		}
		log.Info("backup transport enabled", "transport", name)
	}
	return transports, nc, nil
}
