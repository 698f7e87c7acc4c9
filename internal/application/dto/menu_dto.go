package dto

import "time"

// CreateMenuItemRequest input to create a navigation menu item. Either a
// category slug or a free URL must be supplied.
type CreateMenuItemRequest struct {
	Label        string `json:"label" validate:"required,min=1,max=80"`
	URL          string `json:"url"`
	CategorySlug string `json:"category_slug"`
	ParentID     string `json:"parent_id"`
	Position     int    `json:"position" validate:"min=0"`
	IsActive     *bool  `json:"is_active"`
}

// UpdateMenuItemRequest input to update a menu item.
type UpdateMenuItemRequest struct {
	Label        *string `json:"label" validate:"omitempty,min=1,max=80"`
	URL          *string `json:"url"`
	CategorySlug *string `json:"category_slug"`
	ParentID     *string `json:"parent_id"`
	Position     *int    `json:"position" validate:"omitempty,min=0"`
	IsActive     *bool   `json:"is_active"`
}

// ReorderMenuRequest desired sibling order after a drag-reorder.
type ReorderMenuRequest struct {
	ParentID   string   `json:"parent_id"`
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}

// MenuItemResponse flat menu item output.
type MenuItemResponse struct {
	ID           string    `json:"id"`
	Label        string    `json:"label"`
	URL          string    `json:"url"`
	CategorySlug string    `json:"category_slug,omitempty"`
	ParentID     string    `json:"parent_id,omitempty"`
	Position     int       `json:"position"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuTreeNode nested menu output for the storefront navigation.
type MenuTreeNode struct {
	ID           string         `json:"id"`
	Label        string         `json:"label"`
	URL          string         `json:"url"`
	CategorySlug string         `json:"category_slug,omitempty"`
	Position     int            `json:"position"`
	Children     []MenuTreeNode `json:"children"`
}
