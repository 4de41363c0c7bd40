package scoring

import (
	"sort"
	"strings"
	"unicode"
)

// sentimentScale lifts the per-token polarity average into the [-1,1] range;
// without it a long page with a handful of charged words would always score
// near zero. Policy constant.
const sentimentScale = 12.0

// tokenizeWords splits text into lowercase word tokens, keeping hyphens so
// compound power words ("award-winning") survive.
func tokenizeWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// sentiment sums polarity lexicon matches, normalizes by token count and
// clamps to [-1,1].
func sentiment(tokens []string) float64 {
	if len(tokens) == 0 {
		return 0
	}

	var sum float64
	for _, tok := range tokens {
		if w, ok := positiveWords[tok]; ok {
			sum += w
		}
		if w, ok := negativeWords[tok]; ok {
			sum -= w
		}
	}

	score := sentimentScale * sum / float64(len(tokens))
	return clamp(score, -1, 1)
}

// powerWordHits returns the sorted set of power words present in tokens.
func powerWordHits(tokens []string) []string {
	seen := make(map[string]bool)
	for _, tok := range tokens {
		if powerWords[tok] {
			seen[tok] = true
		}
	}
	if len(seen) == 0 {
		return nil
	}
	hits := make([]string, 0, len(seen))
	for w := range seen {
		hits = append(hits, w)
	}
	sort.Strings(hits)
	return hits
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
