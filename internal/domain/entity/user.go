package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin          = "admin"
	RoleProgramManager = "program_manager"
	RoleAccountant     = "accountant"
)

// ValidRole indica si s es uno de los roles conocidos.
func ValidRole(s string) bool {
	switch s {
	case RoleAdmin, RoleProgramManager, RoleAccountant:
		return true
	}
	return false
}

// User representa un principal del sistema.
// Los program managers quedan acotados a las entries que ellos crean;
// los accountants solo leen y exportan; los admins lo ven todo.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Email        string
	Role         string // ver constantes Role*
	CompanyID    string // opcional: afiliación a una company ("" = ninguna)
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Campos de solo lectura poblados por joins en listados.
	CompanyName string
	CompanyAbbr string
}
