package repository

import "github.com/aaryaethnics/storefront-api/internal/domain/entity"

// CategoryRepository is the persistence port for Category (DIP).
// List returns the whole flat table; the tree is built in memory.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	Update(category *entity.Category) error
	UpdatePosition(id string, position int) error
	List() ([]entity.Category, error)
	Delete(id string) error
}
