package product

import (
	"github.com/antopucung/GodotTeko-sub003/internal/db"
	"github.com/antopucung/GodotTeko-sub003/internal/domain/search/rank"
)

// Index field aliases used by queries.
const (
	fieldTitle            = "title"
	fieldDescription      = "description"
	fieldShortDescription = "short_description"
	fieldCategoryName     = "category_name"
	fieldTagName          = "tag_name"
	fieldAuthorName       = "author_name"
	fieldCompatible       = "compatible"
	fieldFileType         = "file_type"

	fieldCategorySlug = "category_slug"
	fieldAuthorSlug   = "author_slug"
	fieldFeatured     = "featured"
	fieldFreebie      = "freebie"

	fieldEffectivePrice = "effective_price"
	fieldRating         = "rating"
	fieldDownloads      = "downloads"
	fieldCreated        = "created"
	fieldTrend          = "trend"
	fieldRatingRank     = "rating_rank"
	fieldFeaturedRank   = "featured_rank"
	fieldRecencyRank    = "recency_rank"
)

// textField pairs a TEXT index alias with its relevance weight.
type textField struct {
	alias  string
	path   string
	weight float64
}

// textFields mirror the weights of the in-process relevance scorer so that
// remote and local ranking agree on which fields matter most.
var textFields = []textField{
	{fieldTitle, "$.title", rank.WeightTitle},
	{fieldDescription, "$.description", rank.WeightDescription},
	{fieldShortDescription, "$.shortDescription", rank.WeightShortDescription},
	{fieldCategoryName, "$.categories[*].title", rank.WeightCategory},
	{fieldTagName, "$.tags[*].title", rank.WeightTag},
	{fieldAuthorName, "$.author.name", rank.WeightAuthor},
	{fieldCompatible, "$.compatibleWith[*]", rank.WeightCompatible},
	{fieldFileType, "$.fileTypes[*]", rank.WeightFileType},
}

// BuildIndex returns the FT index definition over product JSON documents.
func BuildIndex(name, keyPrefix string) (*db.IndexDefinition, error) {
	b := db.NewIndex(name).OnJSON().Prefix(keyPrefix)

	for _, f := range textFields {
		b = b.TextAs(f.path, f.alias, f.weight)
		if f.alias == fieldTitle {
			b = b.Sortable()
		}
	}

	b = b.TagAs("$.categories[*].slug", fieldCategorySlug).
		TagAs("$.author.slug", fieldAuthorSlug).
		TagAs("$._idx.featured", fieldFeatured).
		TagAs("$._idx.freebie", fieldFreebie).
		NumericAs("$._idx.effective_price", fieldEffectivePrice, true).
		NumericAs("$.stats.rating", fieldRating, false).
		NumericAs("$.stats.downloads", fieldDownloads, true).
		NumericAs("$._idx.created", fieldCreated, true).
		NumericAs("$._idx.trend", fieldTrend, true).
		NumericAs("$._idx.rating_rank", fieldRatingRank, true).
		NumericAs("$._idx.featured_rank", fieldFeaturedRank, true).
		NumericAs("$._idx.recency_rank", fieldRecencyRank, true)

	return b.Build()
}
