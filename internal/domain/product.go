package domain

import "github.com/google/uuid"

// Product represents a product in the catalog
type Product struct {
	ID         uuid.UUID `json:"id" db:"id"`
	Title      string    `json:"title" db:"title"`
	Slug       string    `json:"slug" db:"slug"`
	CategoryID uuid.UUID `json:"category_id" db:"category_id"`
	// CategorySlug is read from the joined category row; it is not persisted on products.
	CategorySlug string `json:"category" db:"-"`
	Size         string `json:"size" db:"size"`
	Color        string `json:"color" db:"color"`
	Price        int64  `json:"price" db:"price"`
	Active       bool   `json:"active" db:"active"`
	Audit
}

// ProductFilter narrows a product listing. Zero-valued fields impose no constraint
// and all set fields are combined with AND.
type ProductFilter struct {
	CategorySlug string
	// Color matches case-insensitively anywhere in the product color.
	Color    string
	Size     string
	MinPrice *int64
	MaxPrice *int64
}

// Matches reports whether p satisfies every predicate of f.
// Category matching compares p.CategorySlug.
func (f ProductFilter) Matches(p *Product) bool {
	if f.CategorySlug != "" && p.CategorySlug != f.CategorySlug {
		return false
	}
	if f.Color != "" && !containsFold(p.Color, f.Color) {
		return false
	}
	if f.Size != "" && p.Size != f.Size {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}
