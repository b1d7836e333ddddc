// Package metrics exports Prometheus collectors for resolution and dispatch.
package metrics

import (
	"context"

	"github.com/aretw0/todomcp/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the collectors fed by the lifecycle hooks.
type Metrics struct {
	Resolutions      *prometheus.CounterVec
	Dispatches       *prometheus.CounterVec
	DispatchDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todomcp_resolutions_total",
				Help: "Total number of prompts classified, by resolved intent",
			},
			[]string{"intent"},
		),
		Dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todomcp_dispatch_total",
				Help: "Total number of dispatched intents, by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todomcp_dispatch_duration_seconds",
				Help:    "Duration of handler executions, including the task API call",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		),
	}
	reg.MustRegister(m.Resolutions, m.Dispatches, m.DispatchDuration)
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			m.Resolutions.WithLabelValues(e.Action).Inc()
		},
		OnDispatch: func(ctx context.Context, e *domain.DispatchEvent) {
			outcome := "ok"
			if e.IsError {
				outcome = "error"
			}
			m.Dispatches.WithLabelValues(e.Action, outcome).Inc()
			m.DispatchDuration.WithLabelValues(e.Action).Observe(e.Duration.Seconds())
		},
	}
}
