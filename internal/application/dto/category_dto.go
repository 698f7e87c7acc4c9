package dto

import "time"

// CreateCategoryRequest input to create a category. Slug is derived from
// the name server-side.
type CreateCategoryRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=120"`
	ParentID string `json:"parent_id"`
	Position int    `json:"position" validate:"min=0"`
	IsActive *bool  `json:"is_active"`
}

// UpdateCategoryRequest input to update a category.
type UpdateCategoryRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	ParentID *string `json:"parent_id"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}

// ReorderCategoriesRequest desired sibling order after a drag-reorder.
// ParentID empty targets the root level.
type ReorderCategoriesRequest struct {
	ParentID   string   `json:"parent_id"`
	OrderedIDs []string `json:"ordered_ids" validate:"required,min=1"`
}

// CategoryResponse flat category output.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  string    `json:"parent_id,omitempty"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryTreeNode nested category output for menus and filter trees.
type CategoryTreeNode struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Position int                `json:"position"`
	IsActive bool               `json:"is_active"`
	Children []CategoryTreeNode `json:"children"`
}

// CategoryTreeResponse the full forest plus the loading flag.
type CategoryTreeResponse struct {
	Tree    []CategoryTreeNode `json:"tree"`
	Loading bool               `json:"loading"`
}
