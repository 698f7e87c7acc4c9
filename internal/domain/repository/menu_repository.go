package repository

import "github.com/aaryaethnics/storefront-api/internal/domain/entity"

// MenuRepository is the persistence port for navigation menu items.
type MenuRepository interface {
	Create(item *entity.MenuItem) error
	GetByID(id string) (*entity.MenuItem, error)
	Update(item *entity.MenuItem) error
	UpdatePosition(id string, position int) error
	List() ([]entity.MenuItem, error)
	Delete(id string) error
}
