package analyzer

// stopWords is the fixed filter set for keyword extraction. Initialized once
// at process start, never mutated; safe for unsynchronized concurrent reads.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "any": true, "can": true,
	"had": true, "her": true, "was": true, "one": true, "our": true,
	"out": true, "has": true, "him": true, "his": true, "how": true,
	"its": true, "may": true, "new": true, "now": true, "old": true,
	"see": true, "two": true, "who": true, "why": true, "did": true,
	"get": true, "let": true, "she": true, "too": true, "use": true,
	"this": true, "that": true, "with": true, "from": true, "they": true,
	"will": true, "would": true, "there": true, "their": true, "what": true,
	"about": true, "which": true, "when": true, "were": true, "been": true,
	"have": true, "more": true, "your": true, "some": true, "them": true,
	"than": true, "then": true, "into": true, "only": true, "over": true,
	"such": true, "most": true, "other": true, "also": true, "each": true,
	"very": true, "after": true, "before": true, "these": true, "those": true,
	"because": true, "through": true, "during": true, "between": true,
	"where": true, "while": true, "until": true, "again": true, "here": true,
	"does": true, "doing": true, "done": true, "should": true, "could": true,
	"might": true, "must": true, "shall": true, "being": true, "same": true,
	"both": true, "under": true, "above": true, "below": true, "once": true,
	"just": true, "against": true, "further": true, "since": true,
}

// corpusFrequency maps common web vocabulary to an inverse-frequency weight
// below 1.0, damping words that appear on nearly every page. Words absent
// from the table weigh 1.0. This is a static policy table, not learned.
var corpusFrequency = map[string]float64{
	"home":       0.25,
	"page":       0.25,
	"click":      0.30,
	"link":       0.30,
	"menu":       0.30,
	"search":     0.35,
	"login":      0.35,
	"sign":       0.35,
	"copyright":  0.30,
	"privacy":    0.35,
	"policy":     0.40,
	"terms":      0.40,
	"cookie":     0.35,
	"cookies":    0.35,
	"website":    0.40,
	"site":       0.40,
	"online":     0.50,
	"email":      0.50,
	"contact":    0.50,
	"read":       0.45,
	"learn":      0.55,
	"welcome":    0.55,
	"today":      0.55,
	"free":       0.60,
	"best":       0.60,
	"top":        0.60,
	"get":        0.45,
	"new":        0.50,
	"world":      0.60,
	"people":     0.60,
	"time":       0.55,
	"help":       0.60,
	"find":       0.55,
	"view":       0.45,
	"share":      0.50,
	"follow":     0.50,
	"subscribe":  0.55,
	"newsletter": 0.55,
	"rights":     0.35,
	"reserved":   0.35,
}

// corpusWeight returns the inverse corpus-frequency weight for a token.
func corpusWeight(token string) float64 {
	if w, ok := corpusFrequency[token]; ok {
		return w
	}
	return 1.0
}
