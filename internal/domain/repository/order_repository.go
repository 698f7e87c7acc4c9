package repository

import "github.com/aaryaethnics/storefront-api/internal/domain/entity"

// OrderRepository is the persistence port for orders and their items.
// Create persists the order together with its items; callers run it inside
// a transaction via the TxRunner.
type OrderRepository interface {
	Create(order *entity.Order) error
	GetByID(id string) (*entity.Order, error)
	GetByNumber(number string) (*entity.Order, error)
	List(status string, limit, offset int) ([]*entity.Order, error)
	UpdateStatus(id, status string) error
}
