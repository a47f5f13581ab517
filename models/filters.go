package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AllCategories disables the category filter, like an empty category.
const AllCategories = "all"

type ProductFilters struct {
	// Category matches case-insensitively anywhere inside the product's category tag.
	Category      string
	Brands        []string
	PriceAtLeast  *float64
	PriceLessThan *float64
}

func (f ProductFilters) categoryTerm() string {
	c := strings.TrimSpace(f.Category)
	if strings.EqualFold(c, AllCategories) {
		return ""
	}
	return strings.ToLower(c)
}

// Match reports whether p passes every filter that is set.
func (f ProductFilters) Match(p Product) bool {
	if term := f.categoryTerm(); term != "" && !strings.Contains(strings.ToLower(p.Category), term) {
		return false
	}
	if len(f.Brands) > 0 {
		found := false
		for _, b := range f.Brands {
			if strings.EqualFold(b, p.Brand) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.PriceAtLeast != nil && p.Price.LessThan(decimal.NewFromFloat(*f.PriceAtLeast)) {
		return false
	}
	if f.PriceLessThan != nil && !p.Price.LessThan(decimal.NewFromFloat(*f.PriceLessThan)) {
		return false
	}
	return true
}
