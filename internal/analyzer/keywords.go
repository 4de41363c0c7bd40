package analyzer

import (
	"sort"
	"strings"

	"github.com/isgo-golgo13/seo-elevator/pkg/types"
)

// Keyword extraction policy constants. Exact values are tuning policy,
// independent of the algorithm.
const (
	minTokenLength = 3
	maxKeywords    = 20

	// scoreScale lifts term-frequency ratios into a readable range.
	scoreScale = 100.0

	// N-gram boosts: multi-word phrases are usually more specific and more
	// valuable as SEO targets than single words.
	bigramBoost  = 1.6
	trigramBoost = 2.1

	// headingBoost multiplies the score of phrases that also appear in
	// h1-h3 headings.
	headingBoost = 1.5
)

// extractKeywords scores unigrams, bigrams and trigrams from the already
// tokenized visible text. Deterministic: ties are broken lexicographically.
func extractKeywords(tokens []string, headings string) []types.Keyword {
	if len(tokens) == 0 {
		return nil
	}
	total := float64(len(tokens))

	counts := make(map[string]int)
	weights := make(map[string]float64)

	// Unigrams: stop words excluded.
	for _, tok := range tokens {
		if stopWords[tok] {
			continue
		}
		counts[tok]++
		weights[tok] = corpusWeight(tok)
	}

	// Bigrams and trigrams over consecutive tokens. A window qualifies only
	// when none of its members is a stop word, so phrases stay contentful.
	for n := 2; n <= 3; n++ {
		boost := bigramBoost
		if n == 3 {
			boost = trigramBoost
		}
		for i := 0; i+n <= len(tokens); i++ {
			window := tokens[i : i+n]
			if windowHasStopWord(window) {
				continue
			}
			phrase := strings.Join(window, " ")
			counts[phrase]++
			weights[phrase] = avgCorpusWeight(window) * boost
		}
	}

	headingSet := headingPhraseSet(headings)

	keywords := make([]types.Keyword, 0, len(counts))
	for phrase, count := range counts {
		score := float64(count) / total * weights[phrase] * scoreScale
		if headingSet[phrase] {
			score *= headingBoost
		}
		keywords = append(keywords, types.Keyword{Phrase: phrase, Score: score})
	}

	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Score != keywords[j].Score {
			return keywords[i].Score > keywords[j].Score
		}
		return keywords[i].Phrase < keywords[j].Phrase
	})

	if len(keywords) > maxKeywords {
		keywords = keywords[:maxKeywords]
	}
	return keywords
}

func windowHasStopWord(window []string) bool {
	for _, tok := range window {
		if stopWords[tok] {
			return true
		}
	}
	return false
}

func avgCorpusWeight(window []string) float64 {
	sum := 0.0
	for _, tok := range window {
		sum += corpusWeight(tok)
	}
	return sum / float64(len(window))
}

// headingPhraseSet builds the set of unigrams/bigrams/trigrams occurring in
// heading text, for the positional boost lookup.
func headingPhraseSet(headings string) map[string]bool {
	set := make(map[string]bool)
	tokens := tokenize(headings)
	for n := 1; n <= 3; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			set[strings.Join(tokens[i:i+n], " ")] = true
		}
	}
	return set
}
