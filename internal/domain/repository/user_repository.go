package repository

import "github.com/aaryaethnics/storefront-api/internal/domain/entity"

// UserRepository is the persistence port for store accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	FindByEmail(email string) (*entity.User, error)
	Update(user *entity.User) error
	List(limit, offset int) ([]*entity.User, error)
	Delete(id string) error
}
