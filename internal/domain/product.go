package domain

import "github.com/Ricciar/grape-ceramics/pkg/slug"

// StockStatus is the upstream stock state of a product.
type StockStatus string

const (
	StockInStock     StockStatus = "instock"
	StockOutOfStock  StockStatus = "outofstock"
	StockOnBackorder StockStatus = "onbackorder"
)

// Image is a product image with its alt text.
type Image struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// TermRef references an upstream taxonomy term (category or tag).
type TermRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// Product is the canonical in-process product shape. Price fields are decimal
// strings in major currency units; descriptions are plain text with HTML
// already stripped.
type Product struct {
	ID               int         `json:"id"`
	Name             string      `json:"name"`
	Images           []Image     `json:"images"`
	Description      string      `json:"description"`
	ShortDescription string      `json:"short_description"`
	Price            string      `json:"price"`
	RegularPrice     string      `json:"regular_price"`
	SalePrice        string      `json:"sale_price"`
	StockStatus      StockStatus `json:"stock_status"`
	StockQuantity    *int        `json:"stock_quantity"`
	Categories       []TermRef   `json:"categories"`
	Tags             []TermRef   `json:"tags"`
}

// Tag slugs and category names that mark a product as a course rather than a
// physical good. The tag slugs are fixed upstream conventions; the category
// terms cover both Swedish and English spellings used by the store.
var (
	courseTagSlugs = map[string]struct{}{
		"courses-one":   {},
		"courses-two":   {},
		"courses-three": {},
		"courses-four":  {},
	}
	courseCategoryTerms = map[string]struct{}{
		"kurser":  {},
		"kurs":    {},
		"course":  {},
		"courses": {},
	}
)

// IsCourse reports whether the product is classified as a course or workshop.
// Tags are matched on slug, categories on slug or slugified name, all
// case-insensitive and trimmed.
func (p *Product) IsCourse() bool {
	for _, t := range p.Tags {
		if _, ok := courseTagSlugs[slug.Generate(t.Slug)]; ok {
			return true
		}
	}
	for _, c := range p.Categories {
		if _, ok := courseCategoryTerms[slug.Generate(c.Slug)]; ok {
			return true
		}
		if _, ok := courseCategoryTerms[slug.Generate(c.Name)]; ok {
			return true
		}
	}
	return false
}
