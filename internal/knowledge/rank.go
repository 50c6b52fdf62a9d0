// File path: internal/knowledge/rank.go
package knowledge

import (
	"sort"
	"strings"
)

// bigrams returns the character-bigram multiset of a normalized string.
// Character bigrams keep the measure usable for Korean, where word-level
// tokenization is unreliable.
func bigrams(s string) map[string]int {
	runes := []rune(strings.ToLower(strings.Join(strings.Fields(s), " ")))
	grams := make(map[string]int)
	for i := 0; i+1 < len(runes); i++ {
		grams[string(runes[i:i+2])]++
	}
	return grams
}

// Similarity is the Dice coefficient over character bigrams, in [0, 1].
// Single-rune inputs fall back to exact-match scoring.
func Similarity(a, b string) float64 {
	ga, gb := bigrams(a), bigrams(b)
	if len(ga) == 0 || len(gb) == 0 {
		if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b)) && strings.TrimSpace(a) != "" {
			return 1
		}
		return 0
	}
	overlap := 0
	for g, ca := range ga {
		if cb, ok := gb[g]; ok {
			if ca < cb {
				overlap += ca
			} else {
				overlap += cb
			}
		}
	}
	total := 0
	for _, c := range ga {
		total += c
	}
	for _, c := range gb {
		total += c
	}
	return 2 * float64(overlap) / float64(total)
}

// scored pairs an index with its similarity for ranking.
type scored struct {
	index int
	score float64
}

// rankByQuery scores every candidate text against the query terms, keeping
// the best per-term score, and returns candidate indexes ordered best first.
// Candidates scoring below minScore are dropped.
func rankByQuery(texts []string, terms []string, minScore float64) []int {
	results := make([]scored, 0, len(texts))
	for i, text := range texts {
		best := 0.0
		for _, term := range terms {
			if s := Similarity(text, term); s > best {
				best = s
			}
		}
		if best >= minScore {
			results = append(results, scored{index: i, score: best})
		}
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].score > results[j].score })
	out := make([]int, len(results))
	for i, r := range results {
		out[i] = r.index
	}
	return out
}
