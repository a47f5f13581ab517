package models

// Category represents a shop category tile.
// It includes a unique id, a human-readable name, and its display accents.
type Category struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Icon     string
	Color    string
	Position int `gorm:"not null;default:0"`
}

func (c *Category) TableName() string {
	return "categories"
}
