package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
// Role vacío crea un program_manager, el caso habitual.
type CreateUserRequest struct {
	Username  string `json:"username" validate:"required"`
	Password  string `json:"password" validate:"required,min=8"`
	FullName  string `json:"full_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	Role      string `json:"role" validate:"omitempty,oneof=admin program_manager accountant"`
	CompanyID string `json:"company_id"`
}

// UpdateUserRequest entrada para actualizar un usuario; password vacío = sin cambio.
type UpdateUserRequest struct {
	Username  string `json:"username" validate:"required"`
	FullName  string `json:"full_name"`
	Email     string `json:"email" validate:"omitempty,email"`
	CompanyID string `json:"company_id"`
	Password  string `json:"password" validate:"omitempty,min=8"`
}

// UserListItem salida de listado de usuarios con su company resuelta.
type UserListItem struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
	CompanyID   string    `json:"company_id,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	CompanyAbbr string    `json:"company_abbr,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
