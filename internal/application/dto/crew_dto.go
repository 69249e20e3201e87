package dto

import "time"

// CreateCrewChiefRequest entrada del find-or-create de crew chiefs.
type CreateCrewChiefRequest struct {
	Name         string `json:"name" validate:"required"`
	EmployeeCode string `json:"employee_code"`
	CompanyID    string `json:"company_id" validate:"required"`
}

// CrewChiefResponse salida de un crew chief. Existed solo es significativo en
// la respuesta del find-or-create: true si la fila ya estaba.
type CrewChiefResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	EmployeeCode string    `json:"employee_code,omitempty"`
	CompanyID    string    `json:"company_id"`
	CreatedAt    time.Time `json:"created_at"`
	Existed      bool      `json:"existed,omitempty"`
}
