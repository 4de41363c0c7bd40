package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPrometheusMetrics_Recording(t *testing.T) {
	logger := zap.NewNop()
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWithRegistry("seo_elevator", registry, logger)

	// Document metrics
	pm.RecordDocument("react", "ecommerce")
	pm.RecordDocument("nextjs", "saas")

	// Timing metrics
	pm.RecordAnalysisDuration(time.Millisecond * 150)
	pm.RecordPipelineDuration("inject", time.Millisecond*300)

	// Mutation and injection metrics
	pm.RecordMutations(12, 1)
	pm.RecordInjection("applied")
	pm.RecordInjection("failed")

	families, err := registry.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["seo_elevator_pipeline_documents_total"])
	assert.True(t, names["seo_elevator_pipeline_analysis_duration_seconds"])
	assert.True(t, names["seo_elevator_pipeline_mutations_applied_total"])
	assert.True(t, names["seo_elevator_pipeline_mutations_failed_total"])
	assert.True(t, names["seo_elevator_pipeline_injections_total"])
	assert.True(t, names["seo_elevator_pipeline_operation_duration_seconds"])
}

func TestPrometheusMetrics_DuplicateRegistration(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := NewPrometheusMetricsWithRegistry("seo_elevator", registry, zap.NewNop())
	second := NewPrometheusMetricsWithRegistry("seo_elevator", registry, zap.NewNop())

	// AlreadyRegisteredError is tolerated; both instances stay usable.
	first.RecordInjection("applied")
	second.RecordInjection("applied")
	assert.NotNil(t, first)
	assert.NotNil(t, second)
}

func TestWriteTextfile(t *testing.T) {
	registry := prometheus.NewRegistry()
	pm := NewPrometheusMetricsWithRegistry("seo_elevator", registry, zap.NewNop())

	pm.RecordDocument("vue", "blog")
	pm.RecordMutations(5, 0)
	pm.RecordInjection("applied")

	path := filepath.Join(t.TempDir(), "pipeline.prom")
	require.NoError(t, WriteTextfile(path, registry))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	body := string(data)
	assert.Contains(t, body, "seo_elevator_pipeline_documents_total")
	assert.Contains(t, body, "seo_elevator_pipeline_mutations_applied_total 5")
	assert.Contains(t, body, `seo_elevator_pipeline_injections_total{state="applied"} 1`)
	assert.Contains(t, body, "# HELP")
	assert.Contains(t, body, "# TYPE")
}
