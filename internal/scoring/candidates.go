package scoring

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// Candidate length bands and scoring weights. Policy constants.
const (
	titleOptimalMin = 30
	titleOptimalMax = 60
	descOptimalMin  = 120
	descOptimalMax  = 158

	// Length falloff: characters outside the band before fitness hits zero.
	titleFalloff = 40.0
	descFalloff  = 60.0

	// Candidate score weights; they sum to 1.0.
	lengthWeight    = 0.40
	keywordWeight   = 0.30
	sentimentWeight = 0.15
	powerWeight     = 0.15

	// powerSaturation is the power-word count at which the power component
	// maxes out.
	powerSaturation = 3

	keywordSampleSize = 5
	maxDescTruncate   = 158
)

// ctaPhrases holds business-type specific calls to action used in templates.
type ctaPhrases struct {
	titleTag string // short noun phrase for titles
	sentence string // closing sentence for descriptions
}

var businessCTAs = map[types.BusinessType]ctaPhrases{
	types.BusinessSaaS:          {"Smart Software Platform", "Start your free trial today."},
	types.BusinessEcommerce:     {"Shop Online", "Shop now with fast, reliable shipping."},
	types.BusinessServices:      {"Expert Solutions", "Get a free consultation today."},
	types.BusinessBlog:          {"Insights and Guides", "Read the latest expert insights."},
	types.BusinessLocalBusiness: {"Visit Us Today", "Call us or stop by today."},
	types.BusinessUnknown:       {"Official Site", "Learn more about what we offer."},
}

// titleCandidates builds scored title variants from top keywords, the brand
// name and the business CTA. Deterministic for a given input.
func titleCandidates(keywords []types.Keyword, brand string, bt types.BusinessType, docSentiment float64) []types.Candidate {
	cta := businessCTAs[bt]

	var texts []string
	if len(keywords) > 0 {
		k1 := titleCase(keywords[0].Phrase)
		texts = append(texts,
			fmt.Sprintf("%s - %s | %s", k1, cta.titleTag, brand),
			fmt.Sprintf("Top %s Services | %s", k1, brand),
		)
		if len(keywords) > 1 {
			k2 := titleCase(keywords[1].Phrase)
			texts = append(texts, fmt.Sprintf("%s and %s | %s", k1, k2, brand))
		}
	}
	texts = append(texts, fmt.Sprintf("%s - %s", brand, cta.titleTag))

	return scoreCandidates(texts, keywords, docSentiment, titleOptimalMin, titleOptimalMax, titleFalloff)
}

// descriptionCandidates builds scored meta description variants.
func descriptionCandidates(keywords []types.Keyword, brand, summary string, bt types.BusinessType, docSentiment float64) []types.Candidate {
	cta := businessCTAs[bt]

	var texts []string
	if len(keywords) > 0 {
		k1 := keywords[0].Phrase
		k2 := k1
		if len(keywords) > 1 {
			k2 = keywords[1].Phrase
		}
		texts = append(texts,
			fmt.Sprintf("Looking for %s? %s delivers proven %s results backed by real expertise and trusted support. %s", k1, brand, k2, cta.sentence),
			fmt.Sprintf("Discover %s with %s: professional %s services, reliable results, and support you can count on. %s", k1, brand, k2, cta.sentence),
		)
	}
	if summary != "" {
		texts = append(texts, truncateAtWord(summary, maxDescTruncate))
	}
	texts = append(texts, fmt.Sprintf("%s is your trusted destination for quality and results. %s", brand, cta.sentence))

	return scoreCandidates(texts, keywords, docSentiment, descOptimalMin, descOptimalMax, descFalloff)
}

// scoreCandidates ranks candidate texts by the weighted scoring function.
// Order: score descending, then shorter first, then lexicographic.
func scoreCandidates(texts []string, keywords []types.Keyword, docSentiment float64, optMin, optMax int, falloff float64) []types.Candidate {
	seen := make(map[string]bool)
	candidates := make([]types.Candidate, 0, len(texts))
	for _, text := range texts {
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		candidates = append(candidates, types.Candidate{
			Text:  text,
			Score: candidateScore(text, keywords, docSentiment, optMin, optMax, falloff),
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.Text) != len(b.Text) {
			return len(a.Text) < len(b.Text)
		}
		return a.Text < b.Text
	})
	return candidates
}

// candidateScore combines length fitness, keyword inclusion, sentiment and
// power-word count into [0,1].
func candidateScore(text string, keywords []types.Keyword, docSentiment float64, optMin, optMax int, falloff float64) float64 {
	tokens := tokenizeWords(text)

	length := lengthFitness(utf8.RuneCountInString(text), optMin, optMax, falloff)

	inclusion := 0.0
	sample := keywords
	if len(sample) > keywordSampleSize {
		sample = sample[:keywordSampleSize]
	}
	if len(sample) > 0 {
		lower := strings.ToLower(text)
		hits := 0
		for _, kw := range sample {
			if strings.Contains(lower, kw.Phrase) {
				hits++
			}
		}
		inclusion = float64(hits) / float64(len(sample))
	}

	candSentiment := clamp(sentiment(tokens)+docSentiment/2, -1, 1)
	if candSentiment < 0 {
		candSentiment = 0
	}

	power := float64(len(powerWordHits(tokens)))
	if power > powerSaturation {
		power = powerSaturation
	}

	return lengthWeight*length +
		keywordWeight*inclusion +
		sentimentWeight*candSentiment +
		powerWeight*power/powerSaturation
}

// lengthFitness is 1.0 inside the optimal band and decays linearly outside.
func lengthFitness(length, optMin, optMax int, falloff float64) float64 {
	var dist float64
	switch {
	case length < optMin:
		dist = float64(optMin - length)
	case length > optMax:
		dist = float64(length - optMax)
	default:
		return 1.0
	}
	fitness := 1.0 - dist/falloff
	if fitness < 0 {
		return 0
	}
	return fitness
}

// titleCase uppercases the first letter of each word in a phrase.
func titleCase(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// truncateAtWord cuts text to maxLen runes at a word boundary with an
// ellipsis. The cut lands on a rune boundary so the result stays valid UTF-8.
func truncateAtWord(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	cut := string(runes[:maxLen-3])
	if i := strings.LastIndexByte(cut, ' '); i > 0 {
		cut = cut[:i]
	}
	return cut + "..."
}
