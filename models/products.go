package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrVariantNotFound is returned when a product has no variant with the requested size and flavor.
var ErrVariantNotFound = errors.New("variant not found")

// Badge marks a product in listings.
type Badge string

const (
	BadgeNew        Badge = "new"
	BadgeBestseller Badge = "bestseller"
	BadgeSale       Badge = "sale"
)

// Product represents a product in the catalog.
// It includes a unique id, base price, category tag, and an ordered list of variants.
type Product struct {
	ID             string              `gorm:"primaryKey"`
	Name           string              `gorm:"not null"`
	Brand          string              `gorm:"index;not null"`
	Category       string              `gorm:"index;not null"`
	Description    string              `gorm:"type:text"`
	Price          decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	CompareAtPrice decimal.NullDecimal `gorm:"type:decimal(10,2)"`
	Image          string
	Rating         float64
	ReviewCount    int
	Badges         Badges     `gorm:"type:text"`
	Benefits       StringList `gorm:"type:text"`
	Variants       []Variant  `gorm:"foreignKey:ProductID"`
	Position       int        `gorm:"not null;default:0"`
}

func (p *Product) TableName() string {
	return "products"
}

// HasBadge reports whether the product carries the badge.
func (p Product) HasBadge(b Badge) bool {
	for _, have := range p.Badges {
		if have == b {
			return true
		}
	}
	return false
}

// FirstVariant returns the default variant shown on product cards.
func (p Product) FirstVariant() (Variant, bool) {
	if len(p.Variants) == 0 {
		return Variant{}, false
	}
	return p.Variants[0], true
}

// FindVariant looks a variant up by its (size, flavor) pair.
func (p Product) FindVariant(size, flavor string) (Variant, error) {
	for _, v := range p.Variants {
		if v.Size == size && v.Flavor == flavor {
			return v, nil
		}
	}
	return Variant{}, ErrVariantNotFound
}

// Clone returns a deep copy so a snapshot never aliases catalog data.
func (p Product) Clone() Product {
	out := p
	if p.Badges != nil {
		out.Badges = append(Badges(nil), p.Badges...)
	}
	if p.Benefits != nil {
		out.Benefits = append(StringList(nil), p.Benefits...)
	}
	if p.Variants != nil {
		out.Variants = append([]Variant(nil), p.Variants...)
	}
	return out
}

// Variant is a purchasable size and flavor of a product.
type Variant struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID string          `gorm:"index;not null"`
	Size      string          `gorm:"not null"`
	Flavor    string          `gorm:"not null"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	InStock   bool            `gorm:"not null"`
	Position  int             `gorm:"not null;default:0"`
}

func (v *Variant) TableName() string {
	return "variants"
}

// EffectivePrice falls back to the product price when the variant has none of its own.
func (v Variant) EffectivePrice(p Product) decimal.Decimal {
	if v.Price.IsZero() {
		return p.Price
	}
	return v.Price
}
