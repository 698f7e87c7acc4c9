package entity

import "time"

// Banner is a hero-carousel slide managed from the admin panel.
// Position orders the carousel; inactive banners are kept but not served
// on the public endpoint.
type Banner struct {
	ID        string
	Title     string
	Subtitle  string
	ImageURL  string
	LinkURL   string // storefront path or absolute URL the slide points to
	Position  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
