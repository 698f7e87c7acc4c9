package entity

import "time"

// MenuItem is one entry of the storefront navigation menu. Items usually
// point at a category slug but can carry an arbitrary URL. ParentID empty
// means top bar; Position orders siblings, same convention as Category.
type MenuItem struct {
	ID           string
	Label        string
	URL          string
	CategorySlug string // empty when URL is a free link
	ParentID     string
	Position     int
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
