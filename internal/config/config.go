// Package config reads process settings from the environment and an optional .env file.
package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var ErrParsingConfig = errors.New("failed to parse configuration")

// Config holds the settings shared by the hfsm commands. Flags override them.
type Config struct {
	LogLevel      string        `env:"HFSM_LOG_LEVEL" envDefault:"info"`
	LogFormat     string        `env:"HFSM_LOG_FORMAT" envDefault:"text"`
	Interval      time.Duration `env:"HFSM_INTERVAL" envDefault:"100ms"`
	EventCapacity int           `env:"HFSM_EVENT_CAPACITY" envDefault:"64"`
	EventsDir     string        `env:"HFSM_EVENTS_DIR"`
	HTTPAddr      string        `env:"HFSM_HTTP_ADDR" envDefault:":8080"`

	Redis RedisConfig `envPrefix:"HFSM_REDIS_"`
}

// RedisConfig selects the Redis stream sink. An empty Addr disables it.
type RedisConfig struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
	Prefix   string `env:"PREFIX" envDefault:"hfsm:events:"`
	MaxLen   int64  `env:"MAXLEN" envDefault:"10000"`
}

// Load reads the given .env files (default ".env") and then the environment.
// Missing files are ignored; variables already set are not overridden.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return Config{}, errors.Join(ErrParsingConfig, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}
