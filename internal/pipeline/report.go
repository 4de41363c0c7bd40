package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
)

// Run executes the full pipeline: analyze, inject, then render the Markdown
// report over the outcome.
func (p *Pipeline) Run(markup string, cfg *config.SeoConfig) (*Outcome, string, error) {
	start := time.Now()

	outcome, err := p.Inject(markup, cfg)
	if err != nil {
		return nil, "", err
	}

	report := RenderReport(outcome.Analysis, outcome)
	p.collector.RecordPipelineDuration("run", time.Since(start))
	return outcome, report, nil
}

// Report analyzes the markup and renders the Markdown report without
// mutating anything.
func (p *Pipeline) Report(markup string, cfg *config.SeoConfig) (string, error) {
	start := time.Now()

	analysis, err := p.Analyze(markup, cfg)
	if err != nil {
		return "", err
	}

	report := RenderReport(analysis, nil)
	p.collector.RecordPipelineDuration("report", time.Since(start))
	return report, nil
}

// RenderReport renders the human-readable Markdown summary. outcome may be
// nil for analyze-only reports.
func RenderReport(a *Analysis, outcome *Outcome) string {
	var sb strings.Builder

	sb.WriteString("# SEO Analysis Report\n\n")
	fmt.Fprintf(&sb, "Run ID: `%s`\n\n", a.RunID)

	sb.WriteString("## Document Profile\n\n")
	fmt.Fprintf(&sb, "| Property | Value |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Framework | %s |\n", a.Result.Framework)
	fmt.Fprintf(&sb, "| Business type | %s |\n", a.Result.BusinessType)
	if a.Result.Language != "" {
		fmt.Fprintf(&sb, "| Language | %s |\n", a.Result.Language)
	}
	fmt.Fprintf(&sb, "| SEO score | %d/100 |\n", a.Result.SEOScore)
	fmt.Fprintf(&sb, "| Optimization score | %d/100 |\n", a.Ml.OptimizationScore)
	fmt.Fprintf(&sb, "| Sentiment | %.2f |\n", a.Ml.Sentiment)
	sb.WriteString("\n")

	if len(a.Result.Keywords) > 0 {
		sb.WriteString("## Top Keywords\n\n")
		sb.WriteString("| Phrase | Score |\n|---|---|\n")
		for _, kw := range a.Result.TopKeywords(10) {
			fmt.Fprintf(&sb, "| %s | %.2f |\n", kw.Phrase, kw.Score)
		}
		sb.WriteString("\n")
	}

	if len(a.Result.Findings) > 0 {
		sb.WriteString("## Findings\n\n")
		for _, f := range a.Result.Findings {
			fmt.Fprintf(&sb, "- **%s** [%s]: %s. %s\n", f.Code, f.Severity, f.Message, f.Recommendation)
		}
		sb.WriteString("\n")
	}

	if title := a.Ml.BestTitle(); title != "" {
		sb.WriteString("## Suggested Metadata\n\n")
		fmt.Fprintf(&sb, "- Title: %s\n", title)
		if desc := a.Ml.BestDescription(); desc != "" {
			fmt.Fprintf(&sb, "- Description: %s\n", desc)
		}
		sb.WriteString("\n")
	}

	if len(a.Recommendations) > 0 {
		sb.WriteString("## Schema Recommendations\n\n")
		sb.WriteString("| Type | Weight | Present | Rationale |\n|---|---|---|---|\n")
		for _, rec := range a.Recommendations {
			fmt.Fprintf(&sb, "| %s | %.2f | %t | %s |\n",
				rec.SchemaType, rec.TrendWeight, rec.AlreadyPresent, rec.Rationale)
		}
		sb.WriteString("\n")
	}

	if outcome != nil {
		sb.WriteString("## Injection\n\n")
		fmt.Fprintf(&sb, "- Mutations applied: %d, skipped: %d, failed: %d\n",
			outcome.Log.Applied, outcome.Log.Skipped, outcome.Log.Failed)
		fmt.Fprintf(&sb, "- Content changed: %t\n", !outcome.Log.Unchanged)
		fmt.Fprintf(&sb, "- Post-injection SEO score: %d/100\n", outcome.PostScore)
		for _, warning := range outcome.Log.Warnings {
			fmt.Fprintf(&sb, "- Warning: %s\n", warning)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
