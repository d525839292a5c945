// Package prom implements observability hooks backed by Prometheus.
//
// Register the hooks at startup and expose the registry via
// promhttp.HandlerFor (the server wires this on /metrics):
//
//	reg := prometheus.NewRegistry()
//	observability.SetDrawHooks(prom.NewDrawHooks(reg))
//	observability.SetCacheHooks(prom.NewCacheHooks(reg))
package prom

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oadl/heatsheet/pkg/observability"
)

// DrawHooks records draw pipeline metrics.
type DrawHooks struct {
	draws     *prometheus.CounterVec
	durations *prometheus.HistogramVec
	mounts    prometheus.Counter
	mountSize prometheus.Histogram
}

// NewDrawHooks creates draw hooks registered with reg. A nil registry
// falls back to the default Prometheus registerer.
func NewDrawHooks(reg prometheus.Registerer) *DrawHooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &DrawHooks{
		draws: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatsheet_draws_total",
			Help: "Draws by payload wire shape.",
		}, []string{"shape"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "heatsheet_draw_duration_seconds",
			Help:    "Draw duration by terminal state.",
			Buckets: prometheus.DefBuckets,
		}, []string{"state"}),
		mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "heatsheet_mounts_total",
			Help: "Container mounts.",
		}),
		mountSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "heatsheet_mount_artifact_bytes",
			Help:    "Mounted artifact size in bytes.",
			Buckets: prometheus.ExponentialBuckets(256, 4, 8),
		}),
	}
	reg.MustRegister(h.draws, h.durations, h.mounts, h.mountSize)
	return h
}

// OnDrawStart counts a draw by payload shape.
func (h *DrawHooks) OnDrawStart(_ context.Context, shape string, _ int) {
	h.draws.WithLabelValues(shape).Inc()
}

// OnDrawComplete observes the draw duration by terminal state.
func (h *DrawHooks) OnDrawComplete(_ context.Context, state string, d time.Duration) {
	h.durations.WithLabelValues(state).Observe(d.Seconds())
}

// OnMount counts a mount and observes the artifact size.
func (h *DrawHooks) OnMount(_ context.Context, _ string, size int) {
	h.mounts.Inc()
	h.mountSize.Observe(float64(size))
}

// CacheHooks records cache metrics.
type CacheHooks struct {
	ops *prometheus.CounterVec
}

// NewCacheHooks creates cache hooks registered with reg. A nil registry
// falls back to the default Prometheus registerer.
func NewCacheHooks(reg prometheus.Registerer) *CacheHooks {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	h := &CacheHooks{
		ops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "heatsheet_cache_ops_total",
			Help: "Cache operations by key type and outcome.",
		}, []string{"key_type", "op"}),
	}
	reg.MustRegister(h.ops)
	return h
}

// OnCacheHit counts a hit.
func (h *CacheHooks) OnCacheHit(_ context.Context, keyType string) {
	h.ops.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss counts a miss.
func (h *CacheHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.ops.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet counts a write.
func (h *CacheHooks) OnCacheSet(_ context.Context, keyType string, _ int) {
	h.ops.WithLabelValues(keyType, "set").Inc()
}

// Interface guards.
var (
	_ observability.DrawHooks  = (*DrawHooks)(nil)
	_ observability.CacheHooks = (*CacheHooks)(nil)
)
