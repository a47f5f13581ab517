package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/peakhub/storefront/app/api"
	"github.com/peakhub/storefront/logger"
	"github.com/peakhub/storefront/models"
)

type Response struct {
	Total    int       `json:"total"`
	Products []Product `json:"products"`
}

type Product struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Brand          string   `json:"brand"`
	Category       string   `json:"category"`
	Price          float64  `json:"price"`
	CompareAtPrice *float64 `json:"compareAtPrice,omitempty"`
	Image          string   `json:"image"`
	Rating         float64  `json:"rating"`
	ReviewCount    int      `json:"reviewCount"`
	Badges         []string `json:"badges"`
}

type Variant struct {
	Size    string  `json:"size"`
	Flavor  string  `json:"flavor"`
	Price   float64 `json:"price"`
	InStock bool    `json:"inStock"`
}

type ProductDetail struct {
	Product
	Description string    `json:"description"`
	Variants    []Variant `json:"variants"`
	Benefits    []string  `json:"benefits"`
}

// NewProduct maps a catalog product to its listing card.
func NewProduct(p models.Product) Product {
	out := Product{
		ID:          p.ID,
		Name:        p.Name,
		Brand:       p.Brand,
		Category:    p.Category,
		Price:       p.Price.InexactFloat64(),
		Image:       p.Image,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
		Badges:      make([]string, len(p.Badges)),
	}
	if p.CompareAtPrice.Valid {
		v := p.CompareAtPrice.Decimal.InexactFloat64()
		out.CompareAtPrice = &v
	}
	for i, b := range p.Badges {
		out.Badges[i] = string(b)
	}
	return out
}

// NewProductDetail maps a product to the detail page payload. Variants without
// a price of their own inherit the product price.
func NewProductDetail(p models.Product) ProductDetail {
	variants := make([]Variant, len(p.Variants))
	for i, v := range p.Variants {
		variants[i] = Variant{
			Size:    v.Size,
			Flavor:  v.Flavor,
			Price:   v.EffectivePrice(p).InexactFloat64(),
			InStock: v.InStock,
		}
	}
	return ProductDetail{
		Product:     NewProduct(p),
		Description: p.Description,
		Variants:    variants,
		Benefits:    append([]string{}, p.Benefits...),
	}
}

type ProductProvider interface {
	GetFilteredProducts(offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
}

type CatalogHandler struct {
	repo ProductProvider
}

func NewCatalogHandler(r ProductProvider) *CatalogHandler {
	return &CatalogHandler{
		repo: r,
	}
}

func parseFloat(r *http.Request, name string) *float64 {
	s := r.URL.Query().Get(name)
	if s == "" {
		return nil
	}
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &val
}

// ParseListQuery reads pagination and filters from the query string. Invalid
// values fall back to their defaults.
func ParseListQuery(r *http.Request) (offset, limit int, filters models.ProductFilters) {
	offset = 0
	limit = 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			limit = min(max(l, 1), 100)
		}
	}

	filters = models.ProductFilters{
		Category:      r.URL.Query().Get("category"),
		Brands:        r.URL.Query()["brand"],
		PriceAtLeast:  parseFloat(r, "price_gte"),
		PriceLessThan: parseFloat(r, "price_lt"),
	}
	return offset, limit, filters
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	offset, limit, filters := ParseListQuery(r)

	res, total, err := h.repo.GetFilteredProducts(offset, limit, filters)
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Msg("Failed to get products")
		api.Error(w, r, http.StatusInternalServerError, "failed to get products")
		return
	}

	products := make([]Product, len(res))
	for i, p := range res {
		products[i] = NewProduct(p)
	}

	api.JSON(w, r, http.StatusOK, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, err := h.repo.GetByID(id)
	if errors.Is(err, models.ErrProductNotFound) {
		api.Error(w, r, http.StatusNotFound, "Product not found")
		return
	}
	if err != nil {
		logger.WithContext(r.Context()).Error().Err(err).Str("product_id", id).Msg("Failed to retrieve product")
		api.Error(w, r, http.StatusInternalServerError, "Failed to retrieve product")
		return
	}

	api.JSON(w, r, http.StatusOK, NewProductDetail(*product))
}
