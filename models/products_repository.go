package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

// ErrProductNotFound is returned when a product is not found.
var ErrProductNotFound = errors.New("product not found")

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func orderedVariants(db *gorm.DB) *gorm.DB {
	return db.Order("variants.position")
}

func (r *ProductsRepository) GetAllProducts() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Variants", orderedVariants).
		Order("products.position").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := r.db.Model(&Product{})

	// Filter
	if term := filters.categoryTerm(); term != "" {
		query = query.Where("LOWER(products.category) LIKE ?", "%"+escapeLike(term)+"%")
	}
	if len(filters.Brands) > 0 {
		brands := make([]string, len(filters.Brands))
		for i, b := range filters.Brands {
			brands[i] = strings.ToLower(b)
		}
		query = query.Where("LOWER(products.brand) IN ?", brands)
	}
	if filters.PriceAtLeast != nil {
		query = query.Where("products.price >= ?", *filters.PriceAtLeast)
	}
	if filters.PriceLessThan != nil {
		query = query.Where("products.price < ?", *filters.PriceLessThan)
	}

	// Count total after filtering
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Apply pagination
	if err := query.
		Preload("Variants", orderedVariants).
		Order("products.position").
		Offset(offset).
		Limit(limit).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

func (r *ProductsRepository) GetByID(id string) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Variants", orderedVariants).
		Where("id = ?", id).
		First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err // Other DB error
	}
	return &product, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
