package models

// StaticCatalog serves the built-in product and category lists from memory.
// Every read hands out copies, so callers cannot change the reference data.
type StaticCatalog struct {
	products   []Product
	categories []Category
}

func NewStaticCatalog() *StaticCatalog {
	return &StaticCatalog{
		products:   SeedProducts(),
		categories: SeedCategories(),
	}
}

func (c *StaticCatalog) GetAllProducts() ([]Product, error) {
	out := make([]Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out, nil
}

func (c *StaticCatalog) GetFilteredProducts(offset, limit int, filters ProductFilters) ([]Product, int64, error) {
	var matched []Product
	for _, p := range c.products {
		if filters.Match(p) {
			matched = append(matched, p)
		}
	}

	total := int64(len(matched))
	start := min(max(offset, 0), len(matched))
	end := len(matched)
	if limit >= 0 {
		end = min(start+limit, len(matched))
	}

	page := make([]Product, 0, end-start)
	for _, p := range matched[start:end] {
		page = append(page, p.Clone())
	}
	return page, total, nil
}

func (c *StaticCatalog) GetByID(id string) (*Product, error) {
	for _, p := range c.products {
		if p.ID == id {
			product := p.Clone()
			return &product, nil
		}
	}
	return nil, ErrProductNotFound
}

func (c *StaticCatalog) GetAllCategories() ([]Category, error) {
	return append([]Category(nil), c.categories...), nil
}
