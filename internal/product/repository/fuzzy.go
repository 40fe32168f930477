package repository

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/fekuna/catalog-service/internal/model"
)

const DefaultFuzzyThreshold = 0.35

// searchFields are the fields a query is matched against, all weighted alike.
var searchFields = []func(p *model.Product) string{
	func(p *model.Product) string { return p.Name },
	func(p *model.Product) string { return p.ID },
	func(p *model.Product) string { return p.BaseCategory },
	func(p *model.Product) string { return p.Description.Text() },
}

// fuzzyScore returns 0 for a perfect match and 1 for no resemblance. A
// case-folded substring hit is perfect; otherwise every query word is scored
// against its closest token in the field and the scores are averaged.
func fuzzyScore(query, field string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	f := strings.ToLower(field)
	if q == "" || f == "" {
		return 1
	}
	if strings.Contains(f, q) {
		return 0
	}

	words := tokenize(q)
	tokens := tokenize(f)
	if len(words) == 0 || len(tokens) == 0 {
		return 1
	}

	var total float64
	for _, w := range words {
		best := 1.0
		for _, t := range tokens {
			if d := wordDistance(w, t); d < best {
				best = d
			}
			if best == 0 {
				break
			}
		}
		total += best
	}
	return total / float64(len(words))
}

func wordDistance(word, token string) float64 {
	if strings.HasPrefix(token, word) {
		return 0
	}
	longest := len([]rune(word))
	if n := len([]rune(token)); n > longest {
		longest = n
	}
	return float64(fuzzy.LevenshteinDistance(word, token)) / float64(longest)
}

func tokenize(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// fuzzyRank scores a product against q. ok is false when no field is within
// threshold; otherwise rank is the best field score (lower is better).
func fuzzyRank(p *model.Product, q string, threshold float64) (rank float64, ok bool) {
	rank = -1
	for _, field := range searchFields {
		score := fuzzyScore(q, field(p))
		if score > threshold {
			continue
		}
		if rank < 0 || score < rank {
			rank = score
		}
	}
	return rank, rank >= 0
}
