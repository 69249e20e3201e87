package entity

import "time"

// Company representa una empresa contratista que reporta horas.
// Abbreviation es el código corto que encabeza el Job ID ({ABBR}-{YY}-{NNNN}-{TYPE}).
type Company struct {
	ID                   string
	Name                 string // único
	Abbreviation         string // único, corto, en mayúsculas
	NotificationEmail    string
	NotificationsEnabled bool
	CreatedAt            time.Time
}
