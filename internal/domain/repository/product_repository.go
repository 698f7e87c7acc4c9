package repository

import "github.com/aaryaethnics/storefront-api/internal/domain/entity"

// ProductRepository is the persistence port for Product and its variants.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	GetVariant(variantID string) (*entity.ProductVariant, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	ListByCategory(categoryID string, limit, offset int) ([]*entity.Product, error)
	ListFeatured(limit int) ([]*entity.Product, error)
	Delete(id string) error
}
