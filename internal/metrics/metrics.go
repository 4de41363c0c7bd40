// Package metrics records pipeline counters and timings. The Collector
// interface decouples callers from Prometheus so tests run against Noop.
package metrics

import "time"

// Collector receives pipeline measurements.
type Collector interface {
	// RecordDocument counts one analyzed document by detected framework
	// and business type.
	RecordDocument(framework, businessType string)
	// RecordAnalysisDuration records how long feature extraction and
	// auditing took for one document.
	RecordAnalysisDuration(duration time.Duration)
	// RecordMutations counts applied and failed mutations for one
	// injection run.
	RecordMutations(applied, failed int)
	// RecordInjection counts one finished injection by terminal state.
	RecordInjection(state string)
	// RecordPipelineDuration records the wall time of one pipeline
	// operation (analyze, inject, run, report).
	RecordPipelineDuration(operation string, duration time.Duration)
}

// Noop discards all measurements.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (*Noop) RecordDocument(string, string)                {}
func (*Noop) RecordAnalysisDuration(time.Duration)         {}
func (*Noop) RecordMutations(int, int)                     {}
func (*Noop) RecordInjection(string)                       {}
func (*Noop) RecordPipelineDuration(string, time.Duration) {}
