package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/antopucung/GodotTeko-sub003/internal/domain/product"
)

// parquetExt marks snapshot files in the columnar export layout.
const parquetExt = ".parquet"

// productRow is one row of a Parquet catalog export. Categories and tags are
// parallel slug/name lists; timestamps are Unix milliseconds.
type productRow struct {
	ID               string   `parquet:"id"`
	Title            string   `parquet:"title"`
	Slug             string   `parquet:"slug,optional"`
	Description      string   `parquet:"description,optional"`
	ShortDescription string   `parquet:"short_description,optional"`
	Price            float64  `parquet:"price"`
	SalePrice        *float64 `parquet:"sale_price,optional"`
	CategorySlugs    []string `parquet:"category_slugs,list"`
	CategoryNames    []string `parquet:"category_names,list"`
	TagSlugs         []string `parquet:"tag_slugs,list"`
	TagNames         []string `parquet:"tag_names,list"`
	AuthorID         string   `parquet:"author_id,optional"`
	AuthorName       string   `parquet:"author_name,optional"`
	AuthorSlug       string   `parquet:"author_slug,optional"`
	CompatibleWith   []string `parquet:"compatible_with,list"`
	FileTypes        []string `parquet:"file_types,list"`
	Rating           float64  `parquet:"rating"`
	Downloads        int64    `parquet:"downloads"`
	Reviews          int64    `parquet:"reviews"`
	Likes            int64    `parquet:"likes"`
	Featured         bool     `parquet:"featured"`
	Freebie          bool     `parquet:"freebie"`
	CreatedAtMs      int64    `parquet:"created_at_ms,optional"`
	UpdatedAtMs      int64    `parquet:"updated_at_ms,optional"`
}

func isParquet(path string) bool {
	return strings.EqualFold(filepath.Ext(path), parquetExt)
}

// readParquet decodes every row of a Parquet export.
func readParquet(path string) ([]product.Product, error) {
	rows, err := parquet.ReadFile[productRow](filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read parquet snapshot %s: %w", path, err)
	}
	out := make([]product.Product, len(rows))
	for i := range rows {
		out[i] = rows[i].toProduct()
	}
	return out, nil
}

func (r *productRow) toProduct() product.Product {
	return product.Product{
		ID:               r.ID,
		Title:            r.Title,
		Slug:             r.Slug,
		Description:      r.Description,
		ShortDescription: r.ShortDescription,
		Price:            r.Price,
		SalePrice:        r.SalePrice,
		Categories:       zipRefs(r.CategorySlugs, r.CategoryNames),
		Tags:             zipRefs(r.TagSlugs, r.TagNames),
		Author:           product.Author{ID: r.AuthorID, Name: r.AuthorName, Slug: r.AuthorSlug},
		CompatibleWith:   r.CompatibleWith,
		FileTypes:        r.FileTypes,
		Stats: product.Stats{
			Rating:    r.Rating,
			Downloads: r.Downloads,
			Reviews:   r.Reviews,
			Likes:     r.Likes,
		},
		Featured:  r.Featured,
		Freebie:   r.Freebie,
		CreatedAt: fromMillis(r.CreatedAtMs),
		UpdatedAt: fromMillis(r.UpdatedAtMs),
	}
}

func fromProduct(p *product.Product) productRow {
	row := productRow{
		ID:               p.ID,
		Title:            p.Title,
		Slug:             p.Slug,
		Description:      p.Description,
		ShortDescription: p.ShortDescription,
		Price:            p.Price,
		SalePrice:        p.SalePrice,
		AuthorID:         p.Author.ID,
		AuthorName:       p.Author.Name,
		AuthorSlug:       p.Author.Slug,
		CompatibleWith:   p.CompatibleWith,
		FileTypes:        p.FileTypes,
		Rating:           p.Stats.Rating,
		Downloads:        p.Stats.Downloads,
		Reviews:          p.Stats.Reviews,
		Likes:            p.Stats.Likes,
		Featured:         p.Featured,
		Freebie:          p.Freebie,
	}
	for _, c := range p.Categories {
		row.CategorySlugs = append(row.CategorySlugs, c.Slug)
		row.CategoryNames = append(row.CategoryNames, c.Name)
	}
	for _, t := range p.Tags {
		row.TagSlugs = append(row.TagSlugs, t.Slug)
		row.TagNames = append(row.TagNames, t.Name)
	}
	if !p.CreatedAt.IsZero() {
		row.CreatedAtMs = p.CreatedAt.UnixMilli()
	}
	if !p.UpdatedAt.IsZero() {
		row.UpdatedAtMs = p.UpdatedAt.UnixMilli()
	}
	return row
}

// WriteParquet exports products in the layout read back by Load.
func WriteParquet(path string, products []product.Product) error {
	rows := make([]productRow, len(products))
	for i := range products {
		rows[i] = fromProduct(&products[i])
	}
	if err := parquet.WriteFile(filepath.Clean(path), rows); err != nil {
		return fmt.Errorf("write parquet snapshot %s: %w", path, err)
	}
	return nil
}

// zipRefs pairs slugs with names; a missing name falls back to the slug.
func zipRefs(slugs, names []string) []product.Ref {
	if len(slugs) == 0 {
		return nil
	}
	refs := make([]product.Ref, len(slugs))
	for i, slug := range slugs {
		name := slug
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		refs[i] = product.Ref{Name: name, Slug: slug}
	}
	return refs
}

func fromMillis(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
