package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// PrometheusMetrics implements Collector on top of a Prometheus registry.
type PrometheusMetrics struct {
	documentsTotal   *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	mutationsApplied prometheus.Counter
	mutationsFailed  prometheus.Counter
	injectionsTotal  *prometheus.CounterVec
	pipelineDuration *prometheus.HistogramVec

	logger *zap.Logger
}

// NewPrometheusMetrics registers the pipeline metrics on the default
// registry.
func NewPrometheusMetrics(namespace string, logger *zap.Logger) *PrometheusMetrics {
	return NewPrometheusMetricsWithRegistry(namespace, prometheus.DefaultRegisterer, logger)
}

// NewPrometheusMetricsWithRegistry registers on a caller-supplied registry.
func NewPrometheusMetricsWithRegistry(namespace string, registerer prometheus.Registerer, logger *zap.Logger) *PrometheusMetrics {
	pm := &PrometheusMetrics{logger: logger}

	pm.documentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "documents_total",
			Help:      "Total number of documents analyzed",
		},
		[]string{"framework", "business_type"},
	)

	pm.analysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "analysis_duration_seconds",
			Help:      "Time taken to extract features and audit one document",
			Buckets:   prometheus.DefBuckets,
		},
	)

	pm.mutationsApplied = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "mutations_applied_total",
			Help:      "Total number of metadata mutations applied",
		},
	)

	pm.mutationsFailed = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "mutations_failed_total",
			Help:      "Total number of metadata mutations that failed",
		},
	)

	pm.injectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "injections_total",
			Help:      "Total number of injection runs by terminal state",
		},
		[]string{"state"},
	)

	pm.pipelineDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "pipeline",
			Name:      "operation_duration_seconds",
			Help:      "Wall time of one pipeline operation",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	collectors := []prometheus.Collector{
		pm.documentsTotal,
		pm.analysisDuration,
		pm.mutationsApplied,
		pm.mutationsFailed,
		pm.injectionsTotal,
		pm.pipelineDuration,
	}
	for _, c := range collectors {
		if err := registerer.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				logger.Warn("Failed to register metric", zap.Error(err))
			}
		}
	}

	return pm
}

func (pm *PrometheusMetrics) RecordDocument(framework, businessType string) {
	pm.documentsTotal.WithLabelValues(framework, businessType).Inc()

	pm.logger.Debug("Recorded document metric",
		zap.String("framework", framework),
		zap.String("business_type", businessType))
}

func (pm *PrometheusMetrics) RecordAnalysisDuration(duration time.Duration) {
	pm.analysisDuration.Observe(duration.Seconds())
}

func (pm *PrometheusMetrics) RecordMutations(applied, failed int) {
	pm.mutationsApplied.Add(float64(applied))
	pm.mutationsFailed.Add(float64(failed))

	pm.logger.Debug("Recorded mutation metrics",
		zap.Int("applied", applied),
		zap.Int("failed", failed))
}

func (pm *PrometheusMetrics) RecordInjection(state string) {
	pm.injectionsTotal.WithLabelValues(state).Inc()
}

func (pm *PrometheusMetrics) RecordPipelineDuration(operation string, duration time.Duration) {
	pm.pipelineDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
