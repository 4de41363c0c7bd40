package analyzer

import (
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// Summary policy constants.
const (
	minSummarySentence  = 20
	maxSummarySentence  = 200
	maxSummarySentences = 3
)

// Features is everything the extractor derives from one document. BodyText
// and HeadingText feed the scoring engine and are not part of the exported
// AnalysisResult snapshot.
type Features struct {
	Framework    types.Framework
	BusinessType types.BusinessType
	Language     string
	Keywords     []types.Keyword
	Summary      string
	BodyText     string
	HeadingText  string
}

// Extractor derives framework, business type and keywords from a document.
// Stateless apart from the logger; safe to share across goroutines.
type Extractor struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract runs all feature derivations over one parsed document. It never
// fails: ambiguous classification degrades to Unknown rather than erroring.
func (e *Extractor) Extract(doc *htmldoc.Document) Features {
	gq := goquery.NewDocumentFromNode(doc.Root())

	text := visibleText(doc)
	headings := headingText(doc)
	tokens := tokenize(text)

	features := Features{
		Framework:    detectFramework(gq),
		BusinessType: classifyBusiness(text, gq),
		Language:     detectLanguage(doc),
		Keywords:     extractKeywords(tokens, headings),
		Summary:      summarize(text),
		BodyText:     text,
		HeadingText:  headings,
	}

	e.logger.Debug("Extracted document features",
		zap.String("framework", string(features.Framework)),
		zap.String("business_type", features.BusinessType.String()),
		zap.String("language", features.Language),
		zap.Int("keywords", len(features.Keywords)),
		zap.Int("tokens", len(tokens)))

	return features
}
