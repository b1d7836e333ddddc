package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/todomcp"
	"github.com/aretw0/todomcp/internal/config"
	"github.com/aretw0/todomcp/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// LoadConfig loads configuration from path and the environment. A
// non-empty logLevel overrides the configured one.
func LoadConfig(path, logLevel string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// App holds the components commands share.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Assistant *todomcp.Assistant
	Registry  *prometheus.Registry
}

// NewApp validates cfg and wires the assistant with metrics and, at debug
// level, lifecycle logging.
func NewApp(cfg *config.Config, opts ...todomcp.Option) (*App, error) {
	logger, err := NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)
	hooks := m.Hooks()
	if logger.Enabled(context.Background(), slog.LevelDebug) {
		hooks = hooks.Merge(DebugHooks(logger))
	}

	assistantOpts := []todomcp.Option{
		todomcp.WithLogger(logger),
		todomcp.WithLifecycleHooks(hooks),
	}
	assistantOpts = append(assistantOpts, opts...)

	a, err := todomcp.New(cfg, assistantOpts...)
	if err != nil {
		return nil, err
	}

	return &App{Config: cfg, Logger: logger, Assistant: a, Registry: reg}, nil
}
