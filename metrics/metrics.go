package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "spinner"
	labelTier = "tier"
)

// Metrics holds the spin collectors on a private registry
type Metrics struct {
	Registry *prometheus.Registry

	SpinsStarted  prometheus.Counter
	SpinsSettled  prometheus.Counter
	Results       *prometheus.CounterVec
	ResultValue   prometheus.Histogram
	SpinDuration  prometheus.Histogram
	CenterChanges prometheus.Counter
	Errors        prometheus.Counter
	ValueMisses   prometheus.Counter
	Loading       prometheus.Gauge
	TapEnabled    prometheus.Gauge
}

// New registers all collectors; withRuntime adds Go and process collectors
func New(withRuntime bool) *Metrics {
	reg := prometheus.NewRegistry()
	if withRuntime {
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		SpinsStarted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "spins_started_total", Help: "Spins requested by a tap",
		}),
		SpinsSettled: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "spins_settled_total", Help: "Spins that landed on a result",
		}),
		Results: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "results_total", Help: "Results shown by win tier",
		}, []string{labelTier}),
		ResultValue: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "result_value", Help: "Prize values shown",
			Buckets: prometheus.ExponentialBuckets(1000, 2.5, 8),
		}),
		SpinDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "spin_duration_seconds", Help: "Tap to settle time including the request",
			Buckets: []float64{1, 2, 3, 3.5, 4, 5, 8, 12},
		}),
		CenterChanges: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "center_changes_total", Help: "Items that passed the selection marker",
		}),
		Errors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "errors_total", Help: "Errors surfaced to the player",
		}),
		ValueMisses: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "value_misses_total", Help: "Results absent from the value set",
		}),
		Loading: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "loading", Help: "1 while the value set is loading",
		}),
		TapEnabled: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "tap_enabled", Help: "1 while a tap would start a spin",
		}),
	}
}
