package modules

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// MetricsConfig configures the Prometheus metrics module.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vtree").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for patch duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus metrics module.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vtree",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// patchMetrics holds the collectors of one Metrics module.
type patchMetrics struct {
	hookCalls     *prometheus.CounterVec
	patchDuration prometheus.Histogram
	patches       prometheus.Counter

	start time.Time
}

// Metrics returns a module that counts lifecycle hook invocations and
// times each patch from its pre hook to its post hook.
//
// Metrics collected:
//   - vtree_hook_calls_total: Counter of module hook invocations by point
//   - vtree_patches_total: Counter of completed patches
//   - vtree_patch_duration_seconds: Histogram of patch duration
//
// Collectors are registered on construction, so each registry can only host
// one Metrics module.
func Metrics(opts ...MetricsOption) reconcile.Module {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	m := &patchMetrics{
		hookCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "hook_calls_total",
			Help:        "Total number of module hook invocations",
			ConstLabels: config.ConstLabels,
		}, []string{"point"}),

		patchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patch_duration_seconds",
			Help:        "Patch duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		patches: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "patches_total",
			Help:        "Total number of completed patches",
			ConstLabels: config.ConstLabels,
		}),
	}

	return reconcile.Module{
		Name: "metrics",
		Pre: func() {
			m.hookCalls.WithLabelValues(reconcile.HookPre.String()).Inc()
			m.start = time.Now()
		},
		Create: func(_, _ *vdom.VNode) {
			m.hookCalls.WithLabelValues(reconcile.HookCreate.String()).Inc()
		},
		Update: func(_, _ *vdom.VNode) {
			m.hookCalls.WithLabelValues(reconcile.HookUpdate.String()).Inc()
		},
		Destroy: func(_ *vdom.VNode) {
			m.hookCalls.WithLabelValues(reconcile.HookDestroy.String()).Inc()
		},
		Remove: func(_ *vdom.VNode, rm func()) {
			m.hookCalls.WithLabelValues(reconcile.HookRemove.String()).Inc()
			rm()
		},
		Post: func() {
			m.hookCalls.WithLabelValues(reconcile.HookPost.String()).Inc()
			m.patches.Inc()
			m.patchDuration.Observe(time.Since(m.start).Seconds())
		},
	}
}
