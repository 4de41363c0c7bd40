// Package trend recommends Schema.org types using a static trend table.
// Weights model how strongly each structured data type currently correlates
// with rich-result eligibility. The table is versioned data, not learned
// state, so recommendations are fully reproducible.
package trend

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

const (
	// absentBoost raises the weight of schema types the document lacks,
	// presentDamp lowers types it already carries. A present type is still
	// reported, just ranked low, so callers can show full context.
	absentBoost = 1.5
	presentDamp = 0.3

	// minRecommendWeight drops recommendations below this effective weight.
	minRecommendWeight = 0.25

	maxRecommendations = 5
)

// trendEntry is one row of the static trend table. recency phases down types
// whose rich-result format has lost placement since the base weight was set,
// without rewriting the base weights between table revisions.
type trendEntry struct {
	schemaType string
	baseWeight float64
	recency    float64
	rationale  string
}

// trendTable orders entries by base weight descending. Ties keep table order.
var trendTable = []trendEntry{
	{"FAQPage", 0.95, 1.0, "FAQ rich results dominate featured snippet placements"},
	{"Product", 0.92, 1.0, "product snippets surface price and availability in results"},
	{"HowTo", 0.90, 0.95, "step-by-step markup earns expanded result listings"},
	{"Review", 0.88, 1.0, "review stars raise click-through on competitive queries"},
	{"LocalBusiness", 0.85, 1.0, "local pack placement depends on LocalBusiness markup"},
	{"SoftwareApplication", 0.82, 1.0, "application markup exposes ratings and pricing"},
	{"Organization", 0.80, 1.0, "organization markup anchors the brand knowledge panel"},
	{"Article", 0.75, 0.9, "article markup qualifies pages for top-stories carousels"},
	{"BreadcrumbList", 0.70, 1.0, "breadcrumb trails replace raw URLs in result listings"},
}

// businessAffinity lists which schema types are relevant for each business
// type, beyond the universal entries.
var businessAffinity = map[types.BusinessType][]string{
	types.BusinessSaaS:          {"SoftwareApplication", "FAQPage", "HowTo", "Review"},
	types.BusinessEcommerce:     {"Product", "Review", "FAQPage"},
	types.BusinessServices:      {"FAQPage", "Review", "HowTo"},
	types.BusinessBlog:          {"Article", "HowTo", "FAQPage"},
	types.BusinessLocalBusiness: {"LocalBusiness", "Review", "FAQPage"},
	types.BusinessUnknown:       {"FAQPage"},
}

// universalTypes apply to every document regardless of business type.
var universalTypes = []string{"Organization", "BreadcrumbList"}

// Recommender ranks Schema.org types for a document.
type Recommender struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Recommender {
	return &Recommender{logger: logger}
}

// Recommend returns trend-weighted schema suggestions for the business type,
// sorted by effective weight descending. Types already present in the
// document are damped rather than removed.
func (r *Recommender) Recommend(bt types.BusinessType, presentTypes []string) []types.SchemaRecommendation {
	present := make(map[string]bool, len(presentTypes))
	for _, t := range presentTypes {
		present[t] = true
	}

	relevant := make(map[string]bool)
	for _, t := range universalTypes {
		relevant[t] = true
	}
	for _, t := range businessAffinity[bt] {
		relevant[t] = true
	}

	var recs []types.SchemaRecommendation
	for _, entry := range trendTable {
		if !relevant[entry.schemaType] {
			continue
		}
		weight := entry.baseWeight * entry.recency * absentBoost
		if present[entry.schemaType] {
			weight = entry.baseWeight * entry.recency * presentDamp
		}
		if weight < minRecommendWeight {
			continue
		}
		recs = append(recs, types.SchemaRecommendation{
			SchemaType:     entry.schemaType,
			TrendWeight:    round2(weight),
			Rationale:      entry.rationale,
			AlreadyPresent: present[entry.schemaType],
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].TrendWeight > recs[j].TrendWeight
	})
	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}

	r.logger.Debug("Schema recommendations computed",
		zap.String("business_type", bt.String()),
		zap.Int("count", len(recs)))
	return recs
}

// BaseWeight exposes the table weight for a schema type, or 0 if unknown.
func BaseWeight(schemaType string) float64 {
	for _, entry := range trendTable {
		if entry.schemaType == schemaType {
			return entry.baseWeight
		}
	}
	return 0
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
