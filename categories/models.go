// Package categories manages expense categories and their many-to-many
// links to users. A category is global: its name is unique across the
// whole system, and any number of users can hold a link to it. A fixed
// default set is seeded by migration and protected from deletion.
package categories

import "time"

// Category is a globally shared expense category.
type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCategoryRequest is the payload for POST /api/categories.
type CreateCategoryRequest struct {
	Name string `json:"name" example:"Viagens"`
}

// UpdateCategoryRequest is the payload for PUT /api/categories/{id}.
type UpdateCategoryRequest struct {
	Name string `json:"name" example:"Viagens"`
}

// MessageResponse is the body of a successful delete.
type MessageResponse struct {
	Message string `json:"message" example:"category removed successfully"`
}

// DefaultCategories is the protected set seeded for every user. Membership
// is decided by name match, so a renamed copy is not protected and a
// recreated category with one of these names is.
var DefaultCategories = []string{
	"Alimentação",
	"Transporte",
	"Moradia",
	"Saúde",
	"Educação",
	"Lazer",
	"Outros",
}

// IsDefaultCategory reports whether name belongs to the protected set.
func IsDefaultCategory(name string) bool {
	for _, d := range DefaultCategories {
		if d == name {
			return true
		}
	}
	return false
}
