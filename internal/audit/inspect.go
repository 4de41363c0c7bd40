package audit

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// maxJSONLDDepth bounds recursion when walking @type values out of nested
// structured data.
const maxJSONLDDepth = 10

type schemaStatus int

const (
	schemaAbsent schemaStatus = iota
	schemaInvalid
	schemaValid
)

// inspect collects the raw presence facts the rules evaluate.
func inspect(doc *htmldoc.Document, gq *goquery.Document) types.ExistingSEO {
	existing := types.ExistingSEO{}

	head := doc.FindFirst("head", nil)
	if head != nil {
		if title := doc.FindFirst("title", head); title != nil {
			existing.Title = strings.TrimSpace(htmldoc.Text(title))
			existing.HasTitle = existing.Title != ""
		}
	}

	if content, ok := gq.Find(`meta[name="description"]`).Attr("content"); ok {
		existing.Description = strings.TrimSpace(content)
		existing.HasDescription = existing.Description != ""
	}

	existing.HasCanonical = gq.Find(`link[rel="canonical"]`).Length() > 0
	existing.HasOpenGraph = gq.Find(`meta[property^="og:"]`).Length() > 0
	existing.HasTwitterCard = gq.Find(`meta[name^="twitter:"]`).Length() > 0
	existing.HasViewport = gq.Find(`meta[name="viewport"]`).Length() > 0
	existing.HasCharset = gq.Find(`meta[charset]`).Length() > 0 ||
		gq.Find(`meta[http-equiv="Content-Type"]`).Length() > 0

	existing.H1Count = gq.Find("h1").Length()
	gq.Find("img").Each(func(_ int, s *goquery.Selection) {
		if alt, ok := s.Attr("alt"); !ok || strings.TrimSpace(alt) == "" {
			existing.ImagesWithoutAlt++
		}
	})

	existing.SchemaTypes = structuredDataTypes(doc)
	existing.HasJSONLD = auditJSONLD(doc) == schemaValid

	return existing
}

// auditJSONLD checks whether the document carries at least one JSON-LD
// script whose content parses as JSON.
func auditJSONLD(doc *htmldoc.Document) schemaStatus {
	scripts := jsonLDScripts(doc)
	if len(scripts) == 0 {
		return schemaAbsent
	}
	for _, script := range scripts {
		var v interface{}
		if json.Unmarshal([]byte(htmldoc.Text(script)), &v) == nil {
			return schemaValid
		}
	}
	return schemaInvalid
}

// jsonLDScripts returns all script[type=application/ld+json] elements.
func jsonLDScripts(doc *htmldoc.Document) []*html.Node {
	var scripts []*html.Node
	for _, script := range doc.FindAllTag("script", nil) {
		t := strings.ToLower(strings.TrimSpace(htmldoc.Attr(script, "type")))
		if t == "application/ld+json" {
			scripts = append(scripts, script)
		}
	}
	return scripts
}

// structuredDataTypes extracts every @type value present in JSON-LD blocks,
// sorted for deterministic output.
func structuredDataTypes(doc *htmldoc.Document) []string {
	typeSet := make(map[string]struct{})
	for _, script := range jsonLDScripts(doc) {
		var v interface{}
		if err := json.Unmarshal([]byte(htmldoc.Text(script)), &v); err != nil {
			continue
		}
		collectTypes(v, typeSet, 0)
	}
	if len(typeSet) == 0 {
		return nil
	}

	result := make([]string, 0, len(typeSet))
	for t := range typeSet {
		result = append(result, t)
	}
	sort.Strings(result)
	return result
}

// collectTypes recursively gathers @type values. Handles both string and
// array forms, and descends into @graph and nested values.
func collectTypes(v interface{}, typeSet map[string]struct{}, depth int) {
	if depth > maxJSONLDDepth {
		return
	}
	switch val := v.(type) {
	case map[string]interface{}:
		if typeVal, ok := val["@type"]; ok {
			addType(typeVal, typeSet)
		}
		for _, child := range val {
			collectTypes(child, typeSet, depth+1)
		}
	case []interface{}:
		for _, item := range val {
			collectTypes(item, typeSet, depth+1)
		}
	}
}

func addType(v interface{}, typeSet map[string]struct{}) {
	switch val := v.(type) {
	case string:
		if val != "" {
			typeSet[val] = struct{}{}
		}
	case []interface{}:
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				typeSet[s] = struct{}{}
			}
		}
	}
}
