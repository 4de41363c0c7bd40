// Package pipeline orchestrates the analysis, scoring and injection stages
// over one document or a directory batch. One Document per run; stages share
// nothing mutable, so the orchestrator is safe for concurrent use.
package pipeline

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/analyzer"
	"github.com/isgo-golgo13/seo-elevator/internal/audit"
	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
	"github.com/isgo-golgo13/seo-elevator/internal/inject"
	"github.com/isgo-golgo13/seo-elevator/internal/metrics"
	"github.com/isgo-golgo13/seo-elevator/internal/scoring"
	"github.com/isgo-golgo13/seo-elevator/internal/trend"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// fallbackBrand stands in for the site name when analysis runs without a
// configuration.
const fallbackBrand = "Your Site"

// Analysis is the read-only output of one analyze run.
type Analysis struct {
	RunID           string                       `json:"run_id"`
	Result          types.AnalysisResult         `json:"analysis"`
	Ml              types.MlResult               `json:"scoring"`
	Recommendations []types.SchemaRecommendation `json:"schema_recommendations"`
}

// InjectionLog summarizes what one injection run changed.
type InjectionLog struct {
	RunID     string   `json:"run_id"`
	PreHash   uint64   `json:"pre_hash"`
	PostHash  uint64   `json:"post_hash"`
	Unchanged bool     `json:"unchanged"`
	Applied   int      `json:"applied"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Warnings  []string `json:"warnings,omitempty"`
}

// Outcome is the result of an inject or run operation.
type Outcome struct {
	Analysis  *Analysis    `json:"analysis"`
	Log       InjectionLog `json:"injection_log"`
	PostScore int          `json:"post_score"`
	HTML      string       `json:"-"`
}

// Pipeline wires the stages together.
type Pipeline struct {
	logger    *zap.Logger
	collector metrics.Collector

	extractor *analyzer.Extractor
	auditor   *audit.Engine
	scorer    *scoring.Engine
	advisor   *trend.Recommender
	injector  *inject.Engine
}

func New(logger *zap.Logger, collector metrics.Collector) *Pipeline {
	if collector == nil {
		collector = metrics.NewNoop()
	}
	return &Pipeline{
		logger:    logger,
		collector: collector,
		extractor: analyzer.New(logger),
		auditor:   audit.New(logger),
		scorer:    scoring.New(logger),
		advisor:   trend.New(logger),
		injector:  inject.New(logger),
	}
}

// Analyze parses the markup and runs feature extraction, audit, scoring and
// schema recommendation. cfg may be nil; scoring then falls back to a
// placeholder brand.
func (p *Pipeline) Analyze(markup string, cfg *config.SeoConfig) (*Analysis, error) {
	start := time.Now()

	doc, err := htmldoc.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	analysis := p.analyzeDoc(doc, cfg)

	p.collector.RecordAnalysisDuration(time.Since(start))
	p.collector.RecordPipelineDuration("analyze", time.Since(start))
	return analysis, nil
}

// analyzeDoc runs the read-only stages against an already-parsed document.
func (p *Pipeline) analyzeDoc(doc *htmldoc.Document, cfg *config.SeoConfig) *Analysis {
	runID := uuid.NewString()

	features := p.extractor.Extract(doc)
	auditResult := p.auditor.Run(doc)

	scoringCfg := cfg
	if scoringCfg == nil {
		scoringCfg = &config.SeoConfig{SiteName: fallbackBrand}
	}
	ml := p.scorer.Score(&features, scoringCfg)
	recs := p.advisor.Recommend(features.BusinessType, auditResult.Existing.SchemaTypes)

	p.collector.RecordDocument(string(features.Framework), features.BusinessType.String())

	p.logger.Info("Document analyzed",
		zap.String("run_id", runID),
		zap.String("framework", string(features.Framework)),
		zap.String("business_type", features.BusinessType.String()),
		zap.Int("seo_score", auditResult.Score),
		zap.Int("optimization_score", ml.OptimizationScore))

	return &Analysis{
		RunID: runID,
		Result: types.AnalysisResult{
			Framework:    features.Framework,
			BusinessType: features.BusinessType,
			Language:     features.Language,
			Keywords:     features.Keywords,
			Summary:      features.Summary,
			Findings:     auditResult.Findings,
			SEOScore:     auditResult.Score,
			ExistingSEO:  auditResult.Existing,
		},
		Ml:              ml,
		Recommendations: recs,
	}
}

// Inject analyzes the markup, applies the metadata plan and serializes the
// result. Mutation failures degrade to warnings in the log; only parse,
// serialization or configuration problems are returned as errors.
func (p *Pipeline) Inject(markup string, cfg *config.SeoConfig) (*Outcome, error) {
	start := time.Now()

	if cfg == nil {
		return nil, fmt.Errorf("inject: configuration is required")
	}

	doc, err := htmldoc.Parse(markup)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	analysis := p.analyzeDoc(doc, cfg)
	p.collector.RecordAnalysisDuration(time.Since(start))

	inputs := inject.Inputs{
		BusinessType: analysis.Result.BusinessType,
		Keywords:     analysis.Result.Keywords,
		Title:        analysis.Ml.BestTitle(),
		Description:  analysis.Ml.BestDescription(),
		Image:        inject.ResolveImage(doc, cfg),
	}

	plan := p.injector.BuildPlan(inputs, cfg)
	applied := p.injector.Apply(doc, plan, inputs, cfg)

	rendered, err := doc.Serialize()
	if err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}

	log := InjectionLog{
		RunID:    analysis.RunID,
		PreHash:  xxhash.Sum64String(markup),
		PostHash: xxhash.Sum64String(rendered),
		Applied:  applied.Applied,
		Skipped:  applied.Skipped,
		Failed:   applied.Failed,
	}
	log.Unchanged = log.PreHash == log.PostHash
	for _, merr := range applied.Errors {
		log.Warnings = append(log.Warnings, merr.Error())
	}

	postScore := p.auditor.Run(doc).Score

	state := "applied"
	if applied.Failed > 0 && applied.Applied == 0 {
		state = "failed"
	}
	p.collector.RecordMutations(applied.Applied, applied.Failed)
	p.collector.RecordInjection(state)
	p.collector.RecordPipelineDuration("inject", time.Since(start))

	p.logger.Info("Injection run finished",
		zap.String("run_id", analysis.RunID),
		zap.Uint64("pre_hash", log.PreHash),
		zap.Uint64("post_hash", log.PostHash),
		zap.Bool("unchanged", log.Unchanged),
		zap.Int("pre_score", analysis.Result.SEOScore),
		zap.Int("post_score", postScore))

	return &Outcome{
		Analysis:  analysis,
		Log:       log,
		PostScore: postScore,
		HTML:      rendered,
	}, nil
}
