package models

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormCatalog serves products and categories from postgres.
type GormCatalog struct {
	*ProductsRepository
	*CategoriesRepository
}

func NewGormCatalog(db *gorm.DB) *GormCatalog {
	return &GormCatalog{
		ProductsRepository:   NewProductsRepository(db),
		CategoriesRepository: NewCategoriesRepository(db),
	}
}

// OpenDB connects gorm to postgres. Query logging is left to the caller.
func OpenDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open catalog database: %w", err)
	}
	return db, nil
}
