package types

import "fmt"

// Framework identifies the frontend framework that produced the document.
type Framework string

const (
	FrameworkNextJS  Framework = "nextjs"
	FrameworkReact   Framework = "react"
	FrameworkVue     Framework = "vue"
	FrameworkVite    Framework = "vite"
	FrameworkVanilla Framework = "vanilla"
	FrameworkUnknown Framework = "unknown"
)

// BusinessType classifies the kind of site a document belongs to.
// Ordinal order matters: classification ties are broken by the lowest ordinal.
type BusinessType int

const (
	BusinessSaaS BusinessType = iota
	BusinessEcommerce
	BusinessServices
	BusinessBlog
	BusinessLocalBusiness
	BusinessUnknown
)

var businessTypeNames = map[BusinessType]string{
	BusinessSaaS:          "saas",
	BusinessEcommerce:     "ecommerce",
	BusinessServices:      "services",
	BusinessBlog:          "blog",
	BusinessLocalBusiness: "local_business",
	BusinessUnknown:       "unknown",
}

func (b BusinessType) String() string {
	if name, ok := businessTypeNames[b]; ok {
		return name
	}
	return fmt.Sprintf("business_type(%d)", int(b))
}

// SchemaType returns the Schema.org type used for the primary JSON-LD entity.
func (b BusinessType) SchemaType() string {
	switch b {
	case BusinessSaaS:
		return "SoftwareApplication"
	case BusinessEcommerce:
		return "Store"
	case BusinessServices:
		return "ProfessionalService"
	case BusinessBlog:
		return "Blog"
	case BusinessLocalBusiness:
		return "LocalBusiness"
	default:
		return "Organization"
	}
}

// OGType returns the Open Graph object type for the business.
func (b BusinessType) OGType() string {
	switch b {
	case BusinessBlog:
		return "article"
	case BusinessEcommerce:
		return "product"
	default:
		return "website"
	}
}

// Severity ranks audit findings.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Finding is a single audit observation with a stable code.
type Finding struct {
	Code           string   `json:"code"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation"`
}

// Keyword is a scored phrase extracted from document text.
type Keyword struct {
	Phrase string  `json:"phrase"`
	Score  float64 `json:"score"`
}

// AnalysisResult is the immutable snapshot produced by one analysis run.
// Consumers read it; nothing mutates it after construction.
type AnalysisResult struct {
	Framework    Framework      `json:"framework"`
	BusinessType BusinessType   `json:"business_type"`
	Language     string         `json:"language,omitempty"`
	Keywords     []Keyword      `json:"keywords"`
	Summary      string         `json:"summary,omitempty"`
	Findings     []Finding      `json:"findings"`
	SEOScore     int            `json:"seo_score"`
	ExistingSEO  ExistingSEO    `json:"existing_seo"`
}

// TopKeywords returns up to n highest-scored keywords.
// Keywords are already ordered by score descending.
func (r *AnalysisResult) TopKeywords(n int) []Keyword {
	if n > len(r.Keywords) {
		n = len(r.Keywords)
	}
	return r.Keywords[:n]
}

// ExistingSEO records which SEO-relevant tags the document already carries.
type ExistingSEO struct {
	Title             string   `json:"title,omitempty"`
	HasTitle          bool     `json:"has_title"`
	Description       string   `json:"description,omitempty"`
	HasDescription    bool     `json:"has_description"`
	HasCanonical      bool     `json:"has_canonical"`
	HasOpenGraph      bool     `json:"has_open_graph"`
	HasTwitterCard    bool     `json:"has_twitter_card"`
	HasJSONLD         bool     `json:"has_jsonld"`
	HasViewport       bool     `json:"has_viewport"`
	HasCharset        bool     `json:"has_charset"`
	H1Count           int      `json:"h1_count"`
	ImagesWithoutAlt  int      `json:"images_without_alt"`
	SchemaTypes       []string `json:"schema_types,omitempty"`
}

// Candidate is a generated title or description variant with its score.
type Candidate struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// MlResult holds the rule-based scoring layer output.
type MlResult struct {
	Sentiment             float64     `json:"sentiment"`
	PowerWordHits         []string    `json:"power_word_hits"`
	TitleCandidates       []Candidate `json:"title_candidates"`
	DescriptionCandidates []Candidate `json:"description_candidates"`
	OptimizationScore     int         `json:"optimization_score"`
}

// BestTitle returns the top-ranked title candidate, or empty string.
func (m *MlResult) BestTitle() string {
	if len(m.TitleCandidates) == 0 {
		return ""
	}
	return m.TitleCandidates[0].Text
}

// BestDescription returns the top-ranked description candidate, or empty string.
func (m *MlResult) BestDescription() string {
	if len(m.DescriptionCandidates) == 0 {
		return ""
	}
	return m.DescriptionCandidates[0].Text
}

// SchemaRecommendation is one trend-weighted Schema.org suggestion.
type SchemaRecommendation struct {
	SchemaType     string  `json:"schema_type"`
	TrendWeight    float64 `json:"trend_weight"`
	Rationale      string  `json:"rationale"`
	AlreadyPresent bool    `json:"already_present"`
}
