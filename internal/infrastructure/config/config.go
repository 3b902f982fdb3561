package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	OpsPort  string `env:"OPS_PORT,  default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Nats  NatsConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type NatsConfig struct {
	// Servers is the comma-separated NATS server list.
	Servers []string `env:"NATS_SERVERS, default=nats://localhost:4222"`
	// ResolveTimeout bounds the wait on the identity service call.
	ResolveTimeout time.Duration `env:"USER_RESOLVE_TIMEOUT, default=3s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=customer_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,  default=0"`

	// SummaryTTL bounds how long resolved user summaries may be reused.
	SummaryTTL time.Duration `env:"USER_SUMMARY_TTL, default=5m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
