// Package rank scores products against a free-text query.
package rank

import (
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Fuzzy bonus parameters.
const (
	ExactBonus          = 5.0
	SimilarityThreshold = 0.7
	SimilarityFactor    = 2.0
)

// Levenshtein returns the edit distance between a and b, counted in runes.
func Levenshtein(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// Similarity normalizes the edit distance into [0,1]; two empty strings are identical.
// Case folding is the caller's responsibility.
func Similarity(a, b string) float64 {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(longest)
}

// FuzzyBonus rewards near matches: ExactBonus for identical strings,
// similarity*SimilarityFactor above SimilarityThreshold, otherwise 0.
func FuzzyBonus(a, b string) float64 {
	if a == b {
		return ExactBonus
	}
	if s := Similarity(a, b); s > SimilarityThreshold {
		return s * SimilarityFactor
	}
	return 0
}
