package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"svgjsx/internal/logging"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records loader activity. Register it with a registry, or use
// Default which is registered with the process-wide registry.
type Metrics struct {
	loads    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		loads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "svgjsx",
			Name:      "loads_total",
			Help:      "SVG loads handled, by source and result.",
		}, []string{"source", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "svgjsx",
			Name:      "load_duration_seconds",
			Help:      "Time spent reading and transforming one SVG.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 14),
		}, []string{"result"}),
	}
}

func (m *Metrics) MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(m.loads, m.duration)
}

// ObserveLoad records one load. chained reports whether the source text came
// from an earlier stage rather than storage.
func (m *Metrics) ObserveLoad(chained bool, took time.Duration, err error) {
	source := "storage"
	if chained {
		source = "chained"
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.loads.WithLabelValues(source, result).Inc()
	m.duration.WithLabelValues(result).Observe(took.Seconds())
}

var Default = NewMetrics()

func init() {
	Default.MustRegister(prometheus.DefaultRegisterer)
}

// Expose serves the default registry on /metrics in the background. A
// listener failure is logged, it does not stop the caller.
func Expose(port int) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			logging.L().Error("metrics listener stopped", "port", port, "err", err)
		}
	}()
}
