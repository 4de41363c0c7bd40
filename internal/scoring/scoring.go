// Package scoring derives sentiment, power-word and candidate scores from
// extracted document features using static lexicons. All scoring is
// deterministic: the same features and configuration always produce the same
// result.
package scoring

import (
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/analyzer"
	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// Optimization score weights. They sum to 100.
const (
	sentimentPortion = 30.0
	powerPortion     = 30.0
	titlePortion     = 40.0

	// powerDensityScale converts power words per hundred tokens into the
	// [0,1] range for the power portion.
	powerDensityScale = 2.0
)

// Engine computes the rule-based scoring layer over extracted features.
type Engine struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Score analyzes body text sentiment and power words and generates ranked
// title and description candidates. Overrides from cfg bypass generation and
// become the sole candidate with a full score.
func (e *Engine) Score(features *analyzer.Features, cfg *config.SeoConfig) types.MlResult {
	tokens := tokenizeWords(features.BodyText)

	docSentiment := sentiment(tokens)
	hits := powerWordHits(tokens)

	result := types.MlResult{
		Sentiment:     docSentiment,
		PowerWordHits: hits,
	}

	brand := cfg.SiteName
	if cfg.TitleOverride != "" {
		result.TitleCandidates = []types.Candidate{{Text: cfg.TitleOverride, Score: 1.0}}
	} else {
		result.TitleCandidates = titleCandidates(features.Keywords, brand, features.BusinessType, docSentiment)
	}
	if cfg.DescriptionOverride != "" {
		result.DescriptionCandidates = []types.Candidate{{Text: cfg.DescriptionOverride, Score: 1.0}}
	} else {
		result.DescriptionCandidates = descriptionCandidates(features.Keywords, brand, features.Summary, features.BusinessType, docSentiment)
	}

	result.OptimizationScore = optimizationScore(docSentiment, len(hits), len(tokens), result.TitleCandidates)

	e.logger.Debug("scoring complete",
		zap.Float64("sentiment", docSentiment),
		zap.Int("power_word_hits", len(hits)),
		zap.Int("title_candidates", len(result.TitleCandidates)),
		zap.Int("optimization_score", result.OptimizationScore))

	return result
}

// optimizationScore aggregates sentiment, power-word density and the best
// title score into a 0-100 value.
func optimizationScore(docSentiment float64, powerCount, tokenCount int, titles []types.Candidate) int {
	sentimentPart := (docSentiment + 1) / 2 * sentimentPortion

	density := 0.0
	if tokenCount > 0 {
		density = float64(powerCount) / float64(tokenCount) * 100 * powerDensityScale
		if density > 1 {
			density = 1
		}
	}
	powerPart := density * powerPortion

	titlePart := 0.0
	if len(titles) > 0 {
		titlePart = titles[0].Score * titlePortion
	}

	score := int(sentimentPart + powerPart + titlePart)
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}
	return score
}
