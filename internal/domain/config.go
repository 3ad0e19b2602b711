package domain

import (
	"os"
	"strconv"
)

// Config holds the complete casa configuration.
type Config struct {
	// Server settings
	Server ServerConfig

	// Component configurations
	Repository RepositoryConfig
	EventBus   EventBusConfig
	Generator  GeneratorConfig

	// Seed populates empty collections with the demo dataset on startup.
	Seed bool

	// Logging
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
}

// GeneratorConfig parameterizes the contract generator worker.
type GeneratorConfig struct {
	BatchSize         int
	BatchDelayMs      int
	MessageDelayMs    int
	FailureBackoffMs  int
	CounterpartyTopic string
	PropertyTopic     string
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DefaultConfig returns the development defaults: in-memory storage and the
// in-process channel bus, so the service runs with no external collaborators.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30,
			WriteTimeout: 30,
		},
		Repository: RepositoryConfig{
			Driver:         "memory",
			MongoURI:       "mongodb://localhost:27017",
			MongoDatabase:  "realestate",
			ConnectTimeout: 10,
		},
		EventBus: EventBusConfig{
			Type:              "channel",
			ChannelBufferSize: 1000,
			NATSUrl:           "nats://localhost:4222",
			NATSName:          "casa",
			ConnectTimeout:    10,
			RetryBaseDelay:    2,
			RetryMaxDelay:     120,
		},
		Generator: GeneratorConfig{
			BatchSize:         10,
			BatchDelayMs:      5000,
			MessageDelayMs:    100,
			FailureBackoffMs:  5000,
			CounterpartyTopic: TopicCounterpartyCreated,
			PropertyTopic:     TopicPropertyCreated,
		},
		Seed: true,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// FromEnv overlays CASA_* environment variables onto the defaults.
func FromEnv() *Config {
	cfg := DefaultConfig()

	cfg.Server.Host = envString("CASA_HOST", cfg.Server.Host)
	cfg.Server.Port = envInt("CASA_PORT", cfg.Server.Port)

	cfg.Repository.Driver = envString("CASA_STORAGE", cfg.Repository.Driver)
	cfg.Repository.MongoURI = envString("CASA_MONGO_URI", cfg.Repository.MongoURI)
	cfg.Repository.MongoDatabase = envString("CASA_MONGO_DB", cfg.Repository.MongoDatabase)

	cfg.EventBus.Type = envString("CASA_BUS", cfg.EventBus.Type)
	cfg.EventBus.NATSUrl = envString("CASA_NATS_URL", cfg.EventBus.NATSUrl)

	cfg.Generator.BatchSize = envInt("CASA_GEN_BATCH_SIZE", cfg.Generator.BatchSize)
	cfg.Generator.BatchDelayMs = envInt("CASA_GEN_BATCH_DELAY_MS", cfg.Generator.BatchDelayMs)
	cfg.Generator.MessageDelayMs = envInt("CASA_GEN_MESSAGE_DELAY_MS", cfg.Generator.MessageDelayMs)

	cfg.Seed = envBool("CASA_SEED", cfg.Seed)
	cfg.Logging.Level = envString("CASA_LOG_LEVEL", cfg.Logging.Level)

	return cfg
}

func envString(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
