package rank

import (
	"strings"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
)

// Field weights. The remote query builder boosts the same fields with the same
// weights so server-side ranking approximates the local score.
const (
	WeightTitle            = 10.0
	WeightTitlePrefix      = 5.0
	WeightDescription      = 3.0
	WeightShortDescription = 2.0
	WeightCategory         = 4.0
	WeightTag              = 2.0
	WeightAuthor           = 3.0
	WeightCompatible       = 2.0
	WeightFileType         = 1.0
)

// NeutralScore is assigned to every product when there is no query.
const NeutralScore = 1.0

// Score computes the relevance of p for query. The query is lower-cased here;
// an empty query yields NeutralScore.
func Score(p *product.Product, query string) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return NeutralScore
	}

	title := strings.ToLower(p.Title)
	var score float64

	if strings.Contains(title, q) {
		score += WeightTitle
		if strings.HasPrefix(title, q) {
			score += WeightTitlePrefix
		}
	}
	if containsFold(p.Description, q) {
		score += WeightDescription
	}
	if containsFold(p.ShortDescription, q) {
		score += WeightShortDescription
	}
	if anyContainsFold(p.CategoryNames(), q) {
		score += WeightCategory
	}
	if anyContainsFold(p.TagNames(), q) {
		score += WeightTag
	}
	if containsFold(p.Author.Name, q) {
		score += WeightAuthor
	}
	if anyContainsFold(p.CompatibleWith, q) {
		score += WeightCompatible
	}
	if anyContainsFold(p.FileTypes, q) {
		score += WeightFileType
	}

	return score + FuzzyBonus(title, q)
}

// Annotate returns copies of products carrying their score for query.
// The input slice and its elements are left untouched.
func Annotate(products []product.Product, query string) []product.Product {
	out := make([]product.Product, len(products))
	for i := range products {
		out[i] = products[i].WithScore(Score(&products[i], query))
	}
	return out
}

func containsFold(s, lowerSub string) bool {
	return s != "" && strings.Contains(strings.ToLower(s), lowerSub)
}

func anyContainsFold(values []string, lowerSub string) bool {
	for _, v := range values {
		if containsFold(v, lowerSub) {
			return true
		}
	}
	return false
}
