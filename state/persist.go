package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/peakhub/storefront/models"
	"github.com/peakhub/storefront/storage"
)

// CartKey is the slot the cart is stored under.
const CartKey = "pph_cart"

type storedVariant struct {
	Size    string  `json:"size"`
	Flavor  string  `json:"flavor"`
	Price   float64 `json:"price"`
	InStock bool    `json:"inStock"`
}

type storedLine struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Brand           string          `json:"brand"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	Price           float64         `json:"price"`
	CompareAtPrice  *float64        `json:"compareAtPrice,omitempty"`
	Image           string          `json:"image"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"reviewCount"`
	Badges          []models.Badge  `json:"badges"`
	Variants        []storedVariant `json:"variants"`
	Benefits        []string        `json:"benefits"`
	Quantity        int             `json:"quantity"`
	SelectedVariant storedVariant   `json:"selectedVariant"`
}

func toStoredVariant(v models.Variant) storedVariant {
	return storedVariant{
		Size:    v.Size,
		Flavor:  v.Flavor,
		Price:   v.Price.InexactFloat64(),
		InStock: v.InStock,
	}
}

func (v storedVariant) variant(productID string) models.Variant {
	return models.Variant{
		ProductID: productID,
		Size:      v.Size,
		Flavor:    v.Flavor,
		Price:     decimal.NewFromFloat(v.Price),
		InStock:   v.InStock,
	}
}

func toStoredLine(l CartLine) storedLine {
	p := l.Product
	out := storedLine{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Category:        p.Category,
		Description:     p.Description,
		Price:           p.Price.InexactFloat64(),
		Image:           p.Image,
		Rating:          p.Rating,
		ReviewCount:     p.ReviewCount,
		Badges:          append([]models.Badge{}, p.Badges...),
		Variants:        make([]storedVariant, len(p.Variants)),
		Benefits:        append([]string{}, p.Benefits...),
		Quantity:        l.Quantity,
		SelectedVariant: toStoredVariant(l.SelectedVariant),
	}
	if p.CompareAtPrice.Valid {
		f := p.CompareAtPrice.Decimal.InexactFloat64()
		out.CompareAtPrice = &f
	}
	for i, v := range p.Variants {
		out.Variants[i] = toStoredVariant(v)
	}
	return out
}

func (s storedLine) line() CartLine {
	p := models.Product{
		ID:          s.ID,
		Name:        s.Name,
		Brand:       s.Brand,
		Category:    s.Category,
		Description: s.Description,
		Price:       decimal.NewFromFloat(s.Price),
		Image:       s.Image,
		Rating:      s.Rating,
		ReviewCount: s.ReviewCount,
		Badges:      models.Badges(s.Badges),
		Benefits:    models.StringList(s.Benefits),
	}
	if s.CompareAtPrice != nil {
		p.CompareAtPrice = decimal.NewNullDecimal(decimal.NewFromFloat(*s.CompareAtPrice))
	}
	for _, v := range s.Variants {
		p.Variants = append(p.Variants, v.variant(s.ID))
	}
	return CartLine{
		Product:         p,
		Quantity:        s.Quantity,
		SelectedVariant: s.SelectedVariant.variant(s.ID),
	}
}

// EncodeCart renders lines in the stored JSON layout: an array of product
// objects, each carrying quantity and selectedVariant.
func EncodeCart(lines []CartLine) ([]byte, error) {
	stored := make([]storedLine, len(lines))
	for i, l := range lines {
		stored[i] = toStoredLine(l)
	}
	return json.Marshal(stored)
}

// DecodeCart parses the stored JSON layout. Only the JSON itself is checked;
// fields are not validated one by one.
func DecodeCart(data []byte) ([]CartLine, error) {
	var stored []storedLine
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, err
	}
	lines := make([]CartLine, len(stored))
	for i, s := range stored {
		lines[i] = s.line()
	}
	return lines, nil
}

// CartStore persists the cart into a single slot.
type CartStore struct {
	store  storage.Store
	key    string
	logger zerolog.Logger
}

func NewCartStore(store storage.Store, key string, logger zerolog.Logger) *CartStore {
	return &CartStore{store: store, key: key, logger: logger}
}

// Load returns the stored cart. A missing or malformed slot yields an empty
// cart; the parse failure is logged. Only a failed read is returned, since the
// slot may still hold a good cart.
func (s *CartStore) Load(ctx context.Context) ([]CartLine, error) {
	data, err := s.store.Get(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart %q: %w", s.key, err)
	}

	lines, err := DecodeCart(data)
	if err != nil {
		s.logger.Error().Err(err).Str("key", s.key).Msg("Failed to parse cart")
		return nil, nil
	}
	return lines, nil
}

// Save overwrites the slot with the full cart.
func (s *CartStore) Save(ctx context.Context, lines []CartLine) error {
	data, err := EncodeCart(lines)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.store.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}
