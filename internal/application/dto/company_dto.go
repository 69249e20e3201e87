package dto

import "time"

// CreateCompanyRequest entrada para crear una company.
type CreateCompanyRequest struct {
	Name                 string `json:"name" validate:"required"`
	Abbreviation         string `json:"abbreviation" validate:"required,max=10"`
	NotificationEmail    string `json:"notification_email" validate:"omitempty,email"`
	NotificationsEnabled bool   `json:"notifications_enabled"`
}

// CompanyResponse salida de una company.
type CompanyResponse struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Abbreviation         string    `json:"abbreviation"`
	NotificationEmail    string    `json:"notification_email,omitempty"`
	NotificationsEnabled bool      `json:"notifications_enabled"`
	CreatedAt            time.Time `json:"created_at"`
}
