package obs

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// reportComputeTotal counts report computations by outcome.
	reportComputeTotal *prometheus.CounterVec
	// reportComputeLatency records analyzer latency in milliseconds.
	reportComputeLatency *prometheus.HistogramVec
	// reportCacheTotal counts cache lookups by outcome.
	reportCacheTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers report-domain
// Prometheus collectors. Safe to call more than once.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		reportComputeTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_compute_total",
			Help:      "Count of report computations by outcome.",
		}, []string{"report", "result"}))
		reportComputeLatency = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "report_compute_duration_ms",
			Help:      "Latency of report computations in milliseconds.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"report"}))
		reportCacheTotal = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_cache_total",
			Help:      "Count of report cache lookups by outcome.",
		}, []string{"report", "outcome"}))
	})
}

// ObserveReportCompute records one report computation. No-op until domain
// metrics are registered.
func ObserveReportCompute(report string, d time.Duration, err error) {
	if reportComputeTotal == nil || reportComputeLatency == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	reportComputeTotal.WithLabelValues(report, result).Inc()
	reportComputeLatency.WithLabelValues(report).Observe(DurationMillis(d))
}

// ObserveReportCache records one cache lookup outcome. No-op until domain
// metrics are registered.
func ObserveReportCache(report string, hit bool) {
	if reportCacheTotal == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	reportCacheTotal.WithLabelValues(report, outcome).Inc()
}
