package audit

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// Check weights for the 0-100 seoScore. Policy constants; they must sum to
// scoreScale.
const (
	weightTitle       = 25
	weightDescription = 25
	weightOpenGraph   = 20
	weightTwitter     = 15
	weightSchema      = 15
	scoreScale        = weightTitle + weightDescription + weightOpenGraph + weightTwitter + weightSchema
)

// Length bands for title and description quality findings.
const (
	titleMinLength       = 10
	titleMaxLength       = 60
	descriptionMinLength = 50
	descriptionMaxLength = 160
)

// ogMinimumSet and twitterMinimumSet are the properties a document must carry
// for the corresponding check to pass.
var ogMinimumSet = []string{"og:title", "og:description", "og:image", "og:url"}
var twitterMinimumSet = []string{"twitter:card", "twitter:title", "twitter:description"}

// Finding codes.
const (
	CodeTitleMissing       = "TITLE_MISSING"
	CodeTitleLength        = "TITLE_LENGTH"
	CodeDescriptionMissing = "DESCRIPTION_MISSING"
	CodeDescriptionLength  = "DESCRIPTION_LENGTH"
	CodeCanonicalMissing   = "CANONICAL_MISSING"
	CodeOGIncomplete       = "OG_INCOMPLETE"
	CodeTwitterIncomplete  = "TWITTER_INCOMPLETE"
	CodeSchemaMissing      = "SCHEMA_MISSING"
	CodeSchemaInvalid      = "SCHEMA_INVALID"
	CodeViewportMissing    = "VIEWPORT_MISSING"
	CodeCharsetMissing     = "CHARSET_MISSING"
	CodeH1Count            = "H1_COUNT"
	CodeImagesWithoutAlt   = "IMG_WITHOUT_ALT"
)

// Engine audits a document's existing SEO surface. Each rule is evaluated
// independently; the engine has no state beyond its logger.
type Engine struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// Result is the audit output: what exists, what was found wanting, and the
// weighted 0-100 score.
type Result struct {
	Existing types.ExistingSEO
	Findings []types.Finding
	Score    int
}

// Run evaluates every rule against the document.
func (e *Engine) Run(doc *htmldoc.Document) Result {
	gq := goquery.NewDocumentFromNode(doc.Root())

	existing := inspect(doc, gq)

	var findings []types.Finding
	passed := 0

	// Title: foundational, absence is Critical.
	if existing.HasTitle {
		passed += weightTitle
		if l := utf8.RuneCountInString(existing.Title); l < titleMinLength || l > titleMaxLength {
			findings = append(findings, types.Finding{
				Code:           CodeTitleLength,
				Severity:       types.SeverityWarning,
				Message:        fmt.Sprintf("title is %d characters; %d-%d is the optimal range", l, titleMinLength, titleMaxLength),
				Recommendation: "rewrite the title to fit the optimal length band",
			})
		}
	} else {
		findings = append(findings, types.Finding{
			Code:           CodeTitleMissing,
			Severity:       types.SeverityCritical,
			Message:        "document has no <title> element",
			Recommendation: "add a descriptive title containing the primary keyword",
		})
	}

	// Meta description: foundational, absence is Critical.
	if existing.HasDescription {
		passed += weightDescription
		if l := utf8.RuneCountInString(existing.Description); l < descriptionMinLength || l > descriptionMaxLength {
			findings = append(findings, types.Finding{
				Code:           CodeDescriptionLength,
				Severity:       types.SeverityInfo,
				Message:        fmt.Sprintf("meta description is %d characters; %d-%d is the optimal range", l, descriptionMinLength, descriptionMaxLength),
				Recommendation: "adjust the description length for full SERP display",
			})
		}
	} else {
		findings = append(findings, types.Finding{
			Code:           CodeDescriptionMissing,
			Severity:       types.SeverityCritical,
			Message:        "document has no meta description",
			Recommendation: "add a meta description summarizing the page",
		})
	}

	if !existing.HasCanonical {
		findings = append(findings, types.Finding{
			Code:           CodeCanonicalMissing,
			Severity:       types.SeverityWarning,
			Message:        "document has no canonical link",
			Recommendation: "add <link rel=\"canonical\"> to consolidate ranking signals",
		})
	}

	if missing := missingProperties(gq, "property", ogMinimumSet); len(missing) == 0 {
		passed += weightOpenGraph
	} else {
		findings = append(findings, types.Finding{
			Code:           CodeOGIncomplete,
			Severity:       types.SeverityWarning,
			Message:        fmt.Sprintf("Open Graph minimum set incomplete; missing %s", strings.Join(missing, ", ")),
			Recommendation: "add the missing og: meta tags for rich link previews",
		})
	}

	if missing := missingProperties(gq, "name", twitterMinimumSet); len(missing) == 0 {
		passed += weightTwitter
	} else {
		findings = append(findings, types.Finding{
			Code:           CodeTwitterIncomplete,
			Severity:       types.SeverityWarning,
			Message:        fmt.Sprintf("Twitter Card minimum set incomplete; missing %s", strings.Join(missing, ", ")),
			Recommendation: "add the missing twitter: meta tags",
		})
	}

	switch auditJSONLD(doc) {
	case schemaValid:
		passed += weightSchema
	case schemaInvalid:
		findings = append(findings, types.Finding{
			Code:           CodeSchemaInvalid,
			Severity:       types.SeverityWarning,
			Message:        "JSON-LD script present but not parseable as JSON",
			Recommendation: "fix the structured data block so crawlers can read it",
		})
	case schemaAbsent:
		findings = append(findings, types.Finding{
			Code:           CodeSchemaMissing,
			Severity:       types.SeverityWarning,
			Message:        "document has no JSON-LD structured data",
			Recommendation: "add a Schema.org JSON-LD block for rich results",
		})
	}

	findings = append(findings, supplementaryFindings(existing)...)

	score := passed * 100 / scoreScale

	e.logger.Debug("Audit complete",
		zap.Int("score", score),
		zap.Int("findings", len(findings)))

	return Result{Existing: existing, Findings: findings, Score: score}
}

// supplementaryFindings are Info-only observations excluded from the score.
func supplementaryFindings(existing types.ExistingSEO) []types.Finding {
	var findings []types.Finding
	if !existing.HasViewport {
		findings = append(findings, types.Finding{
			Code:           CodeViewportMissing,
			Severity:       types.SeverityInfo,
			Message:        "document has no viewport meta tag",
			Recommendation: "add a viewport meta tag for mobile rendering",
		})
	}
	if !existing.HasCharset {
		findings = append(findings, types.Finding{
			Code:           CodeCharsetMissing,
			Severity:       types.SeverityInfo,
			Message:        "document does not declare a character set",
			Recommendation: "add <meta charset=\"UTF-8\">",
		})
	}
	if existing.H1Count != 1 {
		findings = append(findings, types.Finding{
			Code:           CodeH1Count,
			Severity:       types.SeverityInfo,
			Message:        fmt.Sprintf("document has %d h1 elements; exactly one is conventional", existing.H1Count),
			Recommendation: "use a single h1 for the primary heading",
		})
	}
	if existing.ImagesWithoutAlt > 0 {
		findings = append(findings, types.Finding{
			Code:           CodeImagesWithoutAlt,
			Severity:       types.SeverityInfo,
			Message:        fmt.Sprintf("%d images have no alt text", existing.ImagesWithoutAlt),
			Recommendation: "add descriptive alt attributes",
		})
	}
	return findings
}

// missingProperties reports which of the wanted meta values are absent.
// attr is the identifying attribute: "property" for OG, "name" for Twitter.
func missingProperties(gq *goquery.Document, attr string, wanted []string) []string {
	var missing []string
	for _, prop := range wanted {
		sel := fmt.Sprintf(`meta[%s="%s"]`, attr, prop)
		if content, ok := gq.Find(sel).Attr("content"); !ok || strings.TrimSpace(content) == "" {
			missing = append(missing, prop)
		}
	}
	return missing
}
