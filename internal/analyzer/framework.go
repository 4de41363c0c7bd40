package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// frameworkRule is one signature check. Rules run in declaration order and
// the first match wins.
type frameworkRule struct {
	framework types.Framework
	matches   func(doc *goquery.Document) bool
}

// frameworkRules is fixed at startup. Ordering matters: Next.js bundles
// React, so its signature must be tested first.
var frameworkRules = []frameworkRule{
	{
		framework: types.FrameworkNextJS,
		matches: func(doc *goquery.Document) bool {
			if doc.Find("#__next, script#__NEXT_DATA__").Length() > 0 {
				return true
			}
			return anyScriptSrc(doc, "/_next/") || generatorContains(doc, "next.js")
		},
	},
	{
		framework: types.FrameworkVue,
		matches: func(doc *goquery.Document) bool {
			if doc.Find("[data-v-app], [data-server-rendered]").Length() > 0 {
				return true
			}
			return anyScriptSrc(doc, "vue") || generatorContains(doc, "vue")
		},
	},
	{
		framework: types.FrameworkReact,
		matches: func(doc *goquery.Document) bool {
			if doc.Find("[data-reactroot]").Length() > 0 {
				return true
			}
			return anyScriptSrc(doc, "react")
		},
	},
	{
		framework: types.FrameworkVite,
		matches: func(doc *goquery.Document) bool {
			return anyScriptSrc(doc, "/@vite/") || anyScriptSrc(doc, "vite")
		},
	},
}

// detectFramework runs the signature rules in priority order. A document
// with no script elements at all is plain hand-written HTML; scripts without
// a recognized signature yield Unknown.
func detectFramework(doc *goquery.Document) types.Framework {
	for _, rule := range frameworkRules {
		if rule.matches(doc) {
			return rule.framework
		}
	}
	if doc.Find("script").Length() == 0 {
		return types.FrameworkVanilla
	}
	return types.FrameworkUnknown
}

func anyScriptSrc(doc *goquery.Document, needle string) bool {
	found := false
	doc.Find("script[src]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src, _ := s.Attr("src")
		if strings.Contains(strings.ToLower(src), needle) {
			found = true
			return false
		}
		return true
	})
	return found
}

func generatorContains(doc *goquery.Document, needle string) bool {
	content, exists := doc.Find(`meta[name="generator"]`).Attr("content")
	if !exists {
		return false
	}
	return strings.Contains(strings.ToLower(content), needle)
}
