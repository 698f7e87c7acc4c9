package entity

import "time"

// Category is one row of the flat catalog category table.
// ParentID empty means top-level; Position orders siblings (unique among
// siblings by convention, not enforced). Inactive categories stay in the
// model; filtering them is a consumer concern.
type Category struct {
	ID        string
	Name      string
	Slug      string // unique within the catalog
	ParentID  string // empty if root
	Position  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
