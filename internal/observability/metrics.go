package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "methane_report"

// Metrics holds the Prometheus collectors for report builds and the Kafka loop.
type Metrics struct {
	// Report build metrics.
	DocumentsBuilt   *prometheus.CounterVec   // labels: layout
	RenderFailures   *prometheus.CounterVec   // labels: layout
	AssetResolutions *prometheus.CounterVec   // labels: asset={logo,figure,figure_rgb}, outcome={file,inline,absent}
	OverrideLoads    *prometheus.CounterVec   // labels: outcome={absent,parsed,malformed}
	BuildDuration    *prometheus.HistogramVec // labels: layout

	// Pipeline metrics.
	MessagesConsumed        prometheus.Counter
	MessagesProduced        prometheus.Counter
	TransformErrors         prometheus.Counter
	PipelineRunning         prometheus.Gauge
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates all metrics and registers them with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(m.collectors()...)
	return m
}

// NewMetricsWithRegistry creates Metrics registered with reg. Commands that
// run several builds in one process use a private registry.
func NewMetricsWithRegistry(reg prometheus.Registerer) (*Metrics, error) {
	m := newMetrics()
	for _, c := range m.collectors() {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as many
// as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		DocumentsBuilt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_built_total",
			Help:      "Rendered documents by layout.",
		}, []string{"layout"}),
		RenderFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_failures_total",
			Help:      "Builds that failed in the renderer, by layout.",
		}, []string{"layout"}),
		AssetResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "asset_resolutions_total",
			Help:      "Asset lookups by asset and outcome.",
		}, []string{"asset", "outcome"}),
		OverrideLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "override_loads_total",
			Help:      "Override record loads by outcome.",
		}, []string{"outcome"}),
		BuildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Duration of a complete report build.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"layout"}),
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_consumed_total",
			Help:      "Total override records read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_produced_total",
			Help:      "Total documents written to the sink.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transform_errors_total",
			Help:      "Total messages that could not be turned into a document.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.DocumentsBuilt,
		m.RenderFailures,
		m.AssetResolutions,
		m.OverrideLoads,
		m.BuildDuration,
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	}
}
