package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`

	DatabaseURL string `env:"DATABASE_URL,required"`

	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	BrokerName     string        `env:"BROKER_NAME" envDefault:"GOptions"`
	BrokerURL      string        `env:"GOPTIONS_URL,required"`
	BrokerUsername string        `env:"GOPTIONS_API_USERNAME,required"`
	BrokerPassword string        `env:"GOPTIONS_API_PASSWORD,required"`
	BrokerTimeout  time.Duration `env:"GOPTIONS_TIMEOUT" envDefault:"30s"`
}

func Load() (Config, error) {
	var cfg Config
	return cfg, env.Parse(&cfg)
}
