package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate creates or updates the catalog tables.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&Category{}, &Product{}, &Variant{}); err != nil {
		return fmt.Errorf("auto-migrate catalog: %w", err)
	}
	return nil
}

// Seed loads the built-in catalog into an empty database. A catalog that
// already holds products is left untouched.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		categories := SeedCategories()
		if err := tx.Create(&categories).Error; err != nil {
			return fmt.Errorf("seed categories: %w", err)
		}
		products := SeedProducts()
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		return nil
	})
}
