package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// Business classification policy constants.
const (
	// indicatorCap limits how much a single repeated indicator can
	// contribute, so one stuffed word cannot dominate classification.
	indicatorCap = 3

	// structuralHintWeight is added when a structural marker (pricing
	// table, checkout form, tel: link, article element) is present.
	structuralHintWeight = 3.0

	// minClassifyScore is the floor below which we degrade to Unknown
	// rather than guessing.
	minClassifyScore = 2.0
)

type indicator struct {
	term   string
	weight float64
}

// businessIndicators is evaluated in types.BusinessType ordinal order;
// ties go to the lowest ordinal.
var businessIndicators = map[types.BusinessType][]indicator{
	types.BusinessSaaS: {
		{"saas", 2.0}, {"pricing", 1.5}, {"plans", 1.0}, {"trial", 1.5},
		{"demo", 1.0}, {"dashboard", 1.5}, {"api", 1.0}, {"integration", 1.5},
		{"platform", 1.0}, {"subscription", 1.5}, {"workflow", 1.0},
		{"automation", 1.0}, {"software", 1.0}, {"cloud", 1.0},
	},
	types.BusinessEcommerce: {
		{"cart", 2.0}, {"checkout", 2.0}, {"shop", 1.5}, {"store", 1.0},
		{"product", 1.0}, {"shipping", 1.5}, {"payment", 1.0}, {"order", 1.0},
		{"sale", 1.0}, {"discount", 1.0}, {"coupon", 1.5}, {"catalog", 1.0},
		{"add to cart", 2.5},
	},
	types.BusinessServices: {
		{"services", 1.5}, {"consulting", 2.0}, {"solutions", 1.0},
		{"expertise", 1.5}, {"professional", 1.0}, {"team", 0.5},
		{"assessment", 1.5}, {"implementation", 1.5}, {"engagement", 1.0},
		{"clients", 1.0}, {"agency", 1.5},
	},
	types.BusinessBlog: {
		{"blog", 2.0}, {"article", 1.5}, {"post", 1.0}, {"author", 1.5},
		{"published", 1.5}, {"comments", 1.0}, {"tags", 1.0},
		{"category", 1.0}, {"archive", 1.5}, {"read more", 2.0},
	},
	types.BusinessLocalBusiness: {
		{"location", 1.0}, {"address", 1.0}, {"hours", 1.5},
		{"directions", 2.0}, {"visit us", 2.0}, {"call us", 1.5},
		{"near", 0.5}, {"local", 1.0}, {"appointment", 1.5}, {"menu", 1.0},
	},
}

// classifyOrder fixes the evaluation order for deterministic tie-breaking.
var classifyOrder = []types.BusinessType{
	types.BusinessSaaS,
	types.BusinessEcommerce,
	types.BusinessServices,
	types.BusinessBlog,
	types.BusinessLocalBusiness,
}

// classifyBusiness scores the weighted keyword bags over visible body text
// plus structural hints. Strictly-greater comparison in ordinal order keeps
// ties on the lowest ordinal.
func classifyBusiness(text string, doc *goquery.Document) types.BusinessType {
	text = strings.ToLower(text)

	hints := structuralHints(doc)

	best := types.BusinessUnknown
	bestScore := 0.0

	for _, bt := range classifyOrder {
		score := hints[bt]
		for _, ind := range businessIndicators[bt] {
			count := strings.Count(text, ind.term)
			if count > indicatorCap {
				count = indicatorCap
			}
			score += ind.weight * float64(count)
		}
		if score > bestScore {
			best = bt
			bestScore = score
		}
	}

	if bestScore < minClassifyScore {
		return types.BusinessUnknown
	}
	return best
}

// structuralHints inspects markup structure that keyword bags cannot see.
func structuralHints(doc *goquery.Document) map[types.BusinessType]float64 {
	hints := make(map[types.BusinessType]float64)

	// Pricing tables or sections strongly suggest SaaS.
	if doc.Find(`[class*="pricing"], [id*="pricing"]`).Length() > 0 {
		hints[types.BusinessSaaS] += structuralHintWeight
	}

	// Cart or checkout forms suggest a storefront.
	if doc.Find(`form[action*="cart"], form[action*="checkout"], [class*="add-to-cart"]`).Length() > 0 {
		hints[types.BusinessEcommerce] += structuralHintWeight
	}

	// Article/time semantics suggest editorial content.
	if doc.Find("article").Length() > 0 && doc.Find("time").Length() > 0 {
		hints[types.BusinessBlog] += structuralHintWeight
	}

	// tel: links and address elements suggest a physical presence.
	if doc.Find(`a[href^="tel:"], address`).Length() > 0 {
		hints[types.BusinessLocalBusiness] += structuralHintWeight
	}

	return hints
}
