// Package inject plans and applies metadata mutations against a parsed
// document. Injection is idempotent: applying the same plan inputs to an
// already-injected document changes nothing, because every mutation is an
// upsert against head and the generated content is a pure function of the
// body-derived analysis plus the site configuration.
package inject

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// Phase names, in apply order.
const (
	phaseMeta      = "meta"
	phaseCanonical = "canonical"
	phaseOpenGraph = "open_graph"
	phaseTwitter   = "twitter"
	phaseJSONLD    = "jsonld"
)

const (
	defaultRobots   = "index, follow"
	defaultViewport = "width=device-width, initial-scale=1"
	defaultCharset  = "utf-8"

	keywordTagCount = 10
)

// Inputs gathers everything the planner needs for one document. Image is the
// resolved share image, see ResolveImage.
type Inputs struct {
	BusinessType types.BusinessType
	Keywords     []types.Keyword
	Title        string
	Description  string
	Image        string
}

// ResolveImage picks the share image for one document: the configured
// default when set, otherwise the first body image with a usable source.
// Relative sources resolve against the site URL so the tag always carries an
// absolute reference. Returns "" when the document has no image to offer;
// the og:image and twitter:image tags are then omitted rather than pointed
// at an asset that does not exist.
func ResolveImage(doc *htmldoc.Document, cfg *config.SeoConfig) string {
	if cfg.DefaultImage != "" {
		return cfg.DefaultImage
	}
	for _, img := range doc.FindAllTag("img", doc.Body()) {
		src := strings.TrimSpace(htmldoc.Attr(img, "src"))
		if src == "" || strings.HasPrefix(src, "data:") {
			continue
		}
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			return src
		}
		return strings.TrimSuffix(cfg.SiteURL, "/") + "/" + strings.TrimPrefix(src, "/")
	}
	return ""
}

// Result reports what one apply run did.
type Result struct {
	Planned int
	Applied int
	Skipped int
	Failed  int
	Errors  []*MutationError
}

// Engine builds and applies injection plans.
type Engine struct {
	logger *zap.Logger
}

func New(logger *zap.Logger) *Engine {
	return &Engine{logger: logger}
}

// BuildPlan assembles the ordered mutation list from the analysis inputs and
// site configuration. Phase order is fixed: meta tags, canonical, Open
// Graph, Twitter Card. JSON-LD is handled separately during Apply because it
// consolidates existing scripts rather than matching a single node.
func (e *Engine) BuildPlan(in Inputs, cfg *config.SeoConfig) *Plan {
	plan := &Plan{state: statePlanning}

	e.planMeta(plan, in, cfg)
	e.planCanonical(plan, cfg)
	e.planOpenGraph(plan, in, cfg)
	e.planTwitter(plan, in, cfg)

	return plan
}

func (e *Engine) planMeta(plan *Plan, in Inputs, cfg *config.SeoConfig) {
	plan.add(Mutation{
		Phase:  phaseMeta,
		Op:     OpUpsertAttribute,
		Target: Target{Tag: "meta", AttrKey: "charset"},
		Attrs:  []html.Attribute{{Key: "charset", Val: defaultCharset}},
		// Only fill in a missing charset; an explicit one stays.
		IfAbsent: true,
	})
	plan.add(Mutation{
		Phase:    phaseMeta,
		Op:       OpUpsertElement,
		Target:   Target{Tag: "meta", AttrKey: "name", AttrVal: "viewport"},
		Attrs:    metaName("viewport", defaultViewport),
		IfAbsent: true,
	})
	plan.add(Mutation{
		Phase:    phaseMeta,
		Op:       OpUpsertElement,
		Target:   Target{Tag: "meta", AttrKey: "name", AttrVal: "robots"},
		Attrs:    metaName("robots", defaultRobots),
		IfAbsent: true,
	})

	if in.Title != "" {
		plan.add(Mutation{
			Phase:  phaseMeta,
			Op:     OpReplaceText,
			Target: Target{Tag: "title"},
			Text:   in.Title,
		})
	}
	if in.Description != "" {
		plan.add(Mutation{
			Phase:  phaseMeta,
			Op:     OpUpsertElement,
			Target: Target{Tag: "meta", AttrKey: "name", AttrVal: "description"},
			Attrs:  metaName("description", in.Description),
		})
	}
	if kw := keywordList(in.Keywords, cfg.ExtraKeywords); kw != "" {
		plan.add(Mutation{
			Phase:  phaseMeta,
			Op:     OpUpsertElement,
			Target: Target{Tag: "meta", AttrKey: "name", AttrVal: "keywords"},
			Attrs:  metaName("keywords", kw),
		})
	}
}

func (e *Engine) planCanonical(plan *Plan, cfg *config.SeoConfig) {
	plan.add(Mutation{
		Phase:  phaseCanonical,
		Op:     OpUpsertElement,
		Target: Target{Tag: "link", AttrKey: "rel", AttrVal: "canonical"},
		Attrs: []html.Attribute{
			{Key: "rel", Val: "canonical"},
			{Key: "href", Val: cfg.SiteURL},
		},
	})
}

func (e *Engine) planOpenGraph(plan *Plan, in Inputs, cfg *config.SeoConfig) {
	props := []struct{ name, content string }{
		{"og:title", in.Title},
		{"og:description", in.Description},
		{"og:type", in.BusinessType.OGType()},
		{"og:url", cfg.SiteURL},
		{"og:site_name", cfg.SiteName},
		{"og:locale", cfg.Locale},
		{"og:image", in.Image},
	}
	for _, p := range props {
		if p.content == "" {
			continue
		}
		plan.add(Mutation{
			Phase:  phaseOpenGraph,
			Op:     OpUpsertElement,
			Target: Target{Tag: "meta", AttrKey: "property", AttrVal: p.name},
			Attrs: []html.Attribute{
				{Key: "property", Val: p.name},
				{Key: "content", Val: p.content},
			},
		})
	}
}

func (e *Engine) planTwitter(plan *Plan, in Inputs, cfg *config.SeoConfig) {
	card := "summary"
	if in.Image != "" {
		card = "summary_large_image"
	}

	props := []struct{ name, content string }{
		{"twitter:card", card},
		{"twitter:title", in.Title},
		{"twitter:description", in.Description},
		{"twitter:image", in.Image},
		{"twitter:site", cfg.TwitterHandle},
		{"twitter:creator", cfg.TwitterHandle},
	}
	for _, p := range props {
		if p.content == "" {
			continue
		}
		plan.add(Mutation{
			Phase:  phaseTwitter,
			Op:     OpUpsertElement,
			Target: Target{Tag: "meta", AttrKey: "name", AttrVal: p.name},
			Attrs:  metaName(p.name, p.content),
		})
	}
}

// Apply executes the plan then consolidates structured data. Mutation
// failures are collected, not fatal; the plan ends Failed only when nothing
// applied and at least one mutation errored.
func (e *Engine) Apply(doc *htmldoc.Document, plan *Plan, in Inputs, cfg *config.SeoConfig) Result {
	if plan.state != statePlanning {
		e.logger.Warn("Plan reapplied after use", zap.String("state", plan.state.String()))
	}
	plan.state = stateApplying

	var result Result
	result.Planned = plan.Len() + 1 // plus the structured data step

	for _, m := range plan.mutations {
		changed, err := applyMutation(doc, m)
		switch {
		case err != nil:
			merr := &MutationError{Phase: m.Phase, Target: m.Target.String(), Err: err}
			result.Failed++
			result.Errors = append(result.Errors, merr)
			e.logger.Warn("Mutation failed", zap.Error(merr))
		case changed:
			result.Applied++
		default:
			result.Skipped++
		}
	}

	if err := e.applyStructuredData(doc, in, cfg); err != nil {
		merr := &MutationError{Phase: phaseJSONLD, Target: "script[type=\"application/ld+json\"]", Err: err}
		result.Failed++
		result.Errors = append(result.Errors, merr)
		e.logger.Warn("Mutation failed", zap.Error(merr))
	} else {
		result.Applied++
	}

	if result.Applied == 0 && result.Failed > 0 {
		plan.state = stateFailed
	} else {
		plan.state = stateApplied
	}

	e.logger.Info("Injection finished",
		zap.String("state", plan.state.String()),
		zap.Int("planned", result.Planned),
		zap.Int("applied", result.Applied),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed))
	return result
}

// applyStructuredData consolidates every ld+json script into a single
// @graph script. Generated entities replace same-typed existing ones;
// scripts whose body does not parse as JSON are dropped from the document
// since their content cannot join the graph.
func (e *Engine) applyStructuredData(doc *htmldoc.Document, in Inputs, cfg *config.SeoConfig) error {
	scripts := jsonLDScripts(doc)

	var existing []entity
	for _, script := range scripts {
		entities, err := parseEntities(htmldoc.Text(script))
		if err != nil {
			e.logger.Warn("Dropping unparseable structured data script", zap.Error(err))
			continue
		}
		existing = append(existing, entities...)
	}

	graph := mergeGraph(existing, buildGraph(in.BusinessType, in.Description, cfg))
	rendered, err := renderGraph(graph)
	if err != nil {
		return err
	}

	// A single script already holding the rendered graph is left in place
	// so a rerun does not move it within head.
	if len(scripts) == 1 && strings.TrimSpace(htmldoc.Text(scripts[0])) == rendered {
		return nil
	}

	for _, script := range scripts {
		htmldoc.Remove(script)
	}
	script := htmldoc.NewElement("script", html.Attribute{Key: "type", Val: "application/ld+json"})
	htmldoc.SetText(script, rendered)
	doc.Head().AppendChild(script)
	return nil
}

func metaName(name, content string) []html.Attribute {
	return []html.Attribute{
		{Key: "name", Val: name},
		{Key: "content", Val: content},
	}
}

// keywordList joins top keyword phrases with configured extras, deduplicated,
// extraction order first.
func keywordList(keywords []types.Keyword, extra []string) string {
	seen := make(map[string]bool)
	var parts []string
	for _, kw := range keywords {
		if len(parts) >= keywordTagCount {
			break
		}
		if !seen[kw.Phrase] {
			seen[kw.Phrase] = true
			parts = append(parts, kw.Phrase)
		}
	}
	for _, phrase := range extra {
		phrase = strings.ToLower(strings.TrimSpace(phrase))
		if phrase != "" && !seen[phrase] {
			seen[phrase] = true
			parts = append(parts, phrase)
		}
	}
	return strings.Join(parts, ", ")
}
