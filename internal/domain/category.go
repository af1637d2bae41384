package domain

import "github.com/google/uuid"

// Category groups products. It exists independently of the products that reference it.
type Category struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Slug        string    `json:"slug" db:"slug"`
	Description string    `json:"description" db:"description"`
	Active      bool      `json:"active" db:"active"`
	Audit
}
