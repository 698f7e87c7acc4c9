package repository

import "github.com/aaryaethnics/storefront-api/internal/domain/entity"

// BannerRepository is the persistence port for hero banners.
type BannerRepository interface {
	Create(banner *entity.Banner) error
	GetByID(id string) (*entity.Banner, error)
	Update(banner *entity.Banner) error
	List() ([]*entity.Banner, error)
	ListActive() ([]*entity.Banner, error)
	Delete(id string) error
}
