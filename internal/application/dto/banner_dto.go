package dto

import "time"

// CreateBannerRequest input to create a hero banner.
type CreateBannerRequest struct {
	Title    string `json:"title" validate:"required,min=1,max=160"`
	Subtitle string `json:"subtitle" validate:"max=240"`
	ImageURL string `json:"image_url" validate:"required,url"`
	LinkURL  string `json:"link_url"`
	Position int    `json:"position" validate:"min=0"`
	IsActive *bool  `json:"is_active"`
}

// UpdateBannerRequest input to update a banner.
type UpdateBannerRequest struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=160"`
	Subtitle *string `json:"subtitle" validate:"omitempty,max=240"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
	LinkURL  *string `json:"link_url"`
	Position *int    `json:"position" validate:"omitempty,min=0"`
	IsActive *bool   `json:"is_active"`
}

// BannerResponse banner output.
type BannerResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	ImageURL  string    `json:"image_url"`
	LinkURL   string    `json:"link_url"`
	Position  int       `json:"position"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
