package woocommerce

import (
	"math"
	"strconv"
	"strings"

	"github.com/Ricciar/grape-ceramics/internal/domain"
	"github.com/Ricciar/grape-ceramics/pkg/htmltext"
)

// minorUnitThreshold is the magnitude above which an upstream price is
// assumed to be expressed in minor units (öre) rather than whole kronor.
// This is a heuristic, not a guarantee: it relies on no product at this
// store legitimately costing 10,000 or more in major units.
const minorUnitThreshold = 10000

// NormalizePrice converts an upstream price string to a decimal string in
// major currency units. Empty, zero, and non-numeric input yield "".
// Values whose magnitude exceeds the minor-unit threshold are divided by 100,
// formatted with two decimals, and a trailing ".00" is stripped; everything
// else passes through unchanged.
func NormalizePrice(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f == 0 {
		return ""
	}

	if math.Abs(f) > minorUnitThreshold {
		out := strconv.FormatFloat(f/100, 'f', 2, 64)
		return strings.TrimSuffix(out, ".00")
	}

	return s
}

// pickPrice selects the effective price from the available upstream fields,
// most specific source first: Store API sale price, Store API price, then the
// REST v3 sale, current, and regular prices.
func pickPrice(p rawProduct) string {
	if p.Prices != nil {
		if p.Prices.SalePrice != "" {
			return p.Prices.SalePrice
		}
		if p.Prices.Price != "" {
			return p.Prices.Price
		}
	}
	if p.SalePrice != "" {
		return p.SalePrice
	}
	if p.Price != "" {
		return p.Price
	}
	return p.RegularPrice
}

// pickRegularPrice prefers the Store API regular price over the REST field.
func pickRegularPrice(p rawProduct) string {
	if p.Prices != nil && p.Prices.RegularPrice != "" {
		return p.Prices.RegularPrice
	}
	return p.RegularPrice
}

// pickSalePrice prefers the Store API sale price over the REST field.
func pickSalePrice(p rawProduct) string {
	if p.Prices != nil && p.Prices.SalePrice != "" {
		return p.Prices.SalePrice
	}
	return p.SalePrice
}

// mapProduct converts a raw upstream product into the canonical shape:
// prices normalized to major units, descriptions stripped to plain text.
// The transform is pure and idempotent over already-normalized values.
func mapProduct(raw rawProduct) domain.Product {
	images := make([]domain.Image, 0, len(raw.Images))
	for _, img := range raw.Images {
		images = append(images, domain.Image{Src: img.Src, Alt: img.Alt})
	}

	return domain.Product{
		ID:               raw.ID,
		Name:             raw.Name,
		Images:           images,
		Description:      htmltext.Strip(raw.Description),
		ShortDescription: htmltext.Strip(raw.ShortDescription),
		Price:            NormalizePrice(pickPrice(raw)),
		RegularPrice:     NormalizePrice(pickRegularPrice(raw)),
		SalePrice:        NormalizePrice(pickSalePrice(raw)),
		StockStatus:      domain.StockStatus(raw.StockStatus),
		StockQuantity:    raw.StockQuantity,
		Categories:       mapTerms(raw.Categories),
		Tags:             mapTerms(raw.Tags),
	}
}

func mapTerms(terms []rawTerm) []domain.TermRef {
	out := make([]domain.TermRef, 0, len(terms))
	for _, t := range terms {
		out = append(out, domain.TermRef{ID: t.ID, Name: t.Name, Slug: t.Slug})
	}
	return out
}

// mapCategory converts a raw upstream category into the canonical shape.
func mapCategory(raw rawCategory) domain.Category {
	c := domain.Category{
		ID:          raw.ID,
		Name:        raw.Name,
		Slug:        raw.Slug,
		Description: htmltext.Strip(raw.Description),
		Display:     raw.Display,
	}
	if raw.Image != nil {
		c.Image = &domain.CategoryImage{
			ID:   raw.Image.ID,
			Src:  raw.Image.Src,
			Name: raw.Image.Name,
			Alt:  raw.Image.Alt,
		}
	}
	return c
}
