package entity

import "time"

// CrewChief representa a la persona contra la que se registran horas.
// Pertenece a exactamente una company; (company_id, name) es único para que
// el find-or-create concurrente no duplique filas.
type CrewChief struct {
	ID           string
	Name         string
	EmployeeCode string // opcional
	CompanyID    string
	CreatedAt    time.Time
}
