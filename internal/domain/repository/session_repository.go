package repository

import (
	"context"
	"time"
)

// Session es una sesión server-side: token opaco atado a una cookie.
type Session struct {
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// SessionRepository puerto del almacén de sesiones.
// Get devuelve nil (sin error) si el token no existe o la sesión expiró.
type SessionRepository interface {
	Create(ctx context.Context, userID string, ttl time.Duration) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) error
}
