package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/aretw0/hfsm"
	"github.com/aretw0/hfsm/internal/config"
	"github.com/aretw0/hfsm/internal/dto"
	"github.com/aretw0/hfsm/internal/logging"
	"github.com/aretw0/hfsm/pkg/adapters/file"
	"github.com/aretw0/hfsm/pkg/adapters/redis"
	"github.com/aretw0/hfsm/pkg/ports"
)

// settings loads the environment configuration and applies flag overrides.
func settings(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	envFile, _ := cmd.Flags().GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return cfg, nil, err
	}
	if cfg.LogFormat == "json" {
		return cfg, logging.NewJSON(level), nil
	}
	return cfg, logging.New(level), nil
}

func loader(cmd *cobra.Command) *file.Loader {
	dir, _ := cmd.Flags().GetString("dir")
	return file.NewLoader(dir)
}

func loadDefinition(cmd *cobra.Command, name string) (*dto.Definition, error) {
	def, err := loader(cmd).Load(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return def, nil
}

// engine builds a library engine reading definitions from --dir.
func engine(cmd *cobra.Command, cfg config.Config, logger *slog.Logger, opts ...hfsm.Option) *hfsm.Engine {
	base := []hfsm.Option{
		hfsm.WithLogger(logger),
		hfsm.WithLoader(loader(cmd)),
		hfsm.WithEventCapacity(cfg.EventCapacity),
	}
	return hfsm.New(append(base, opts...)...)
}

// sinks returns the persistent event sinks enabled by the configuration.
// The returned func releases them.
func sinks(cfg config.Config, logger *slog.Logger) ([]ports.EventSink, func()) {
	var out []ports.EventSink
	closers := []func() error{}

	if cfg.EventsDir != "" {
		logger.Info("recording events to files", "dir", cfg.EventsDir)
		out = append(out, file.NewSink(cfg.EventsDir))
	}
	if cfg.Redis.Addr != "" {
		logger.Info("recording events to redis streams", "addr", cfg.Redis.Addr, "prefix", cfg.Redis.Prefix)
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithMaxLen(cfg.Redis.MaxLen),
		)
		out = append(out, s)
		closers = append(closers, s.Close)
	}

	return out, func() {
		for _, c := range closers {
			if err := c(); err != nil {
				logger.Warn("failed to close sink", "err", err)
			}
		}
	}
}

// reader picks where stored events are read from: Redis when configured, files otherwise.
func reader(cfg config.Config) (ports.EventReader, func() error) {
	if cfg.Redis.Addr != "" {
		s := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, redis.WithPrefix(cfg.Redis.Prefix))
		return s, s.Close
	}
	return file.NewSink(cfg.EventsDir), func() error { return nil }
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
