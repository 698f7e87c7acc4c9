package entity

import "time"

// User roles.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User is an account on the store: customers and panel admins share the
// table, distinguished by Role.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin, customer
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
