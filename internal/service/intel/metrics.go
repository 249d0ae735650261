package intel

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments the analysis pipeline.
type Metrics struct {
	runsTotal   prometheus.Counter
	cacheHits   prometheus.Counter
	runDuration prometheus.Histogram
	flagsPerRun prometheus.Histogram
}

// NewMetrics registers the engine metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "casefusion",
			Subsystem: "intel",
			Name:      "runs_total",
			Help:      "Completed analysis runs.",
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "casefusion",
			Subsystem: "intel",
			Name:      "run_cache_hits_total",
			Help:      "Analysis requests served from the run cache.",
		}),
		runDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "casefusion",
			Subsystem: "intel",
			Name:      "run_duration_seconds",
			Help:      "Wall time of a full analysis run including fetches.",
			Buckets:   prometheus.DefBuckets,
		}),
		flagsPerRun: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "casefusion",
			Subsystem: "intel",
			Name:      "red_flags_per_run",
			Help:      "Red flags raised per analysis run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 7},
		}),
	}
	if reg != nil {
		reg.MustRegister(m.runsTotal, m.cacheHits, m.runDuration, m.flagsPerRun)
	}
	return m
}

// ObserveRun records a completed run. Nil receivers are no-ops so tests
// can pass a nil Metrics.
func (m *Metrics) ObserveRun(d time.Duration, flagCount int) {
	if m == nil {
		return
	}
	m.runsTotal.Inc()
	m.runDuration.Observe(d.Seconds())
	m.flagsPerRun.Observe(float64(flagCount))
}

// ObserveCacheHit records a request served from cache.
func (m *Metrics) ObserveCacheHit() {
	if m == nil {
		return
	}
	m.cacheHits.Inc()
}
