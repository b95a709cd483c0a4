// Package tags provides the data layer for expense labels. Tags are a
// many-to-many annotation on expenses. No HTTP surface is mounted for
// them yet; the store exists for programmatic use and for the schema's
// expense_tags association.
package tags

// DefaultColor is assigned when a tag is created without one.
const DefaultColor = "#007bff"

// Tag is a reusable label with a display color.
type Tag struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}
