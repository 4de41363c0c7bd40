package inject

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"

	"github.com/isgo-golgo13/seo-elevator/internal/common/config"
	"github.com/isgo-golgo13/seo-elevator/internal/htmldoc"
	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

const schemaContext = "https://schema.org"

// entity is one node of the consolidated @graph.
type entity map[string]any

// buildGraph produces the generated structured data entities for the site,
// in fixed order: Organization, WebSite, BreadcrumbList, then the
// business-specific entity when the business type maps to something beyond
// Organization.
func buildGraph(bt types.BusinessType, description string, cfg *config.SeoConfig) []entity {
	org := entity{
		"@type": "Organization",
		"name":  cfg.SiteName,
		"url":   cfg.SiteURL,
	}
	if cfg.DefaultImage != "" {
		org["logo"] = cfg.DefaultImage
	}
	if cfg.ContactEmail != "" {
		org["email"] = cfg.ContactEmail
	}
	if cfg.Phone != "" {
		org["telephone"] = cfg.Phone
		org["contactPoint"] = entity{
			"@type":       "ContactPoint",
			"telephone":   cfg.Phone,
			"contactType": "customer service",
		}
	}
	if addr := postalAddress(cfg.Address); addr != nil {
		org["address"] = addr
	}

	website := entity{
		"@type": "WebSite",
		"name":  cfg.SiteName,
		"url":   cfg.SiteURL,
	}

	breadcrumbs := entity{
		"@type": "BreadcrumbList",
		"itemListElement": []any{
			entity{
				"@type":    "ListItem",
				"position": 1,
				"name":     "Home",
				"item":     cfg.SiteURL,
			},
		},
	}

	graph := []entity{org, website, breadcrumbs}

	if specific := businessEntity(bt, description, cfg); specific != nil {
		graph = append(graph, specific)
	}
	return graph
}

// businessEntity maps the business type to its dedicated Schema.org entity.
// Returns nil when the mapping collapses to Organization, which the graph
// already carries.
func businessEntity(bt types.BusinessType, description string, cfg *config.SeoConfig) entity {
	schemaType := bt.SchemaType()
	if schemaType == "Organization" {
		return nil
	}

	e := entity{
		"@type": schemaType,
		"name":  cfg.SiteName,
		"url":   cfg.SiteURL,
	}
	if description != "" {
		e["description"] = description
	}

	switch bt {
	case types.BusinessSaaS:
		e["applicationCategory"] = "BusinessApplication"
		e["operatingSystem"] = "Web"
	case types.BusinessLocalBusiness:
		if cfg.Phone != "" {
			e["telephone"] = cfg.Phone
		}
		if addr := postalAddress(cfg.Address); addr != nil {
			e["address"] = addr
		}
	}
	return e
}

func postalAddress(addr *config.Address) entity {
	if addr == nil {
		return nil
	}
	e := entity{"@type": "PostalAddress"}
	if addr.Street != "" {
		e["streetAddress"] = addr.Street
	}
	if addr.City != "" {
		e["addressLocality"] = addr.City
	}
	if addr.State != "" {
		e["addressRegion"] = addr.State
	}
	if addr.PostalCode != "" {
		e["postalCode"] = addr.PostalCode
	}
	if addr.Country != "" {
		e["addressCountry"] = addr.Country
	}
	return e
}

// jsonLDScripts returns every script element with the ld+json media type.
func jsonLDScripts(doc *htmldoc.Document) []*html.Node {
	return doc.FindAll(func(n *html.Node) bool {
		return n.Data == "script" &&
			strings.EqualFold(strings.TrimSpace(htmldoc.Attr(n, "type")), "application/ld+json")
	})
}

// parseEntities flattens one script body into its entities. A top-level
// object yields itself, or its @graph members when present; an array yields
// each element.
func parseEntities(raw string) ([]entity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("invalid JSON-LD: %w", err)
	}

	var flatten func(v any) []entity
	flatten = func(v any) []entity {
		switch typed := v.(type) {
		case map[string]any:
			if graph, ok := typed["@graph"].([]any); ok {
				var out []entity
				for _, member := range graph {
					out = append(out, flatten(member)...)
				}
				return out
			}
			return []entity{entity(typed)}
		case []any:
			var out []entity
			for _, member := range typed {
				out = append(out, flatten(member)...)
			}
			return out
		default:
			return nil
		}
	}
	return flatten(decoded), nil
}

// mergeGraph combines existing entities with generated ones. A generated
// entity replaces any existing entity of the same @type; existing entities
// of other types survive. Output order is deterministic: sorted by @type,
// untyped entities last by serialized form.
func mergeGraph(existing, generated []entity) []entity {
	generatedTypes := make(map[string]bool, len(generated))
	for _, e := range generated {
		if t, ok := e["@type"].(string); ok {
			generatedTypes[t] = true
		}
	}

	merged := make([]entity, 0, len(existing)+len(generated))
	merged = append(merged, generated...)
	for _, e := range existing {
		t, _ := e["@type"].(string)
		if t != "" && generatedTypes[t] {
			continue
		}
		// Strip per-entity @context; the wrapper supplies it.
		delete(e, "@context")
		merged = append(merged, e)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ti, iok := merged[i]["@type"].(string)
		tj, jok := merged[j]["@type"].(string)
		if iok != jok {
			return iok
		}
		if ti != tj {
			return ti < tj
		}
		return entityKey(merged[i]) < entityKey(merged[j])
	})
	return merged
}

// entityKey is a stable serialization used only for tie-breaking.
func entityKey(e entity) string {
	b, err := json.Marshal(e)
	if err != nil {
		return ""
	}
	return string(b)
}

// renderGraph serializes the @graph wrapper. json.Marshal orders map keys,
// so the output is byte-stable for a given graph.
func renderGraph(graph []entity) (string, error) {
	members := make([]any, len(graph))
	for i, e := range graph {
		members[i] = e
	}
	wrapper := map[string]any{
		"@context": schemaContext,
		"@graph":   members,
	}
	b, err := json.Marshal(wrapper)
	if err != nil {
		return "", fmt.Errorf("render structured data: %w", err)
	}
	return string(b), nil
}
