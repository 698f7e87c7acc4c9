package dto

import "time"

// RegisterRequest input to create an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Name     string `json:"name" validate:"max=120"`
	Role     string `json:"role" validate:"omitempty,oneof=admin customer"`
}

// LoginRequest credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse account output (never includes the password hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token plus account.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserListResponse paginated accounts for the admin panel.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateUserRequest admin account edit.
type UpdateUserRequest struct {
	Name   *string `json:"name" validate:"omitempty,max=120"`
	Role   *string `json:"role" validate:"omitempty,oneof=admin customer"`
	Status *string `json:"status" validate:"omitempty,oneof=active disabled"`
}
