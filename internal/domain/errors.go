package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Unauthenticated y Forbidden son distintos a propósito: sin credencial vs.
// credencial válida con privilegios insuficientes.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrConflict           = errors.New("conflicto de clave única")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrSelfDelete         = errors.New("un usuario no puede eliminarse a sí mismo")
)
