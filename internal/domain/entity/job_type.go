package entity

import "time"

// JobType es el tipo de trabajo que cierra el Job ID (código corto en mayúsculas, único).
type JobType struct {
	ID          string
	Code        string
	Name        string
	Description string // opcional
	CreatedAt   time.Time
}
