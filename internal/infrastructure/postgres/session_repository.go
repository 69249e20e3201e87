package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/timesheet-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo almacén de sesiones server-side sobre PostgreSQL.
// El token es opaco (uuid); el JWT paralelo no pasa por aquí.
type SessionRepo struct {
	pool *pgxpool.Pool
}

// NewSessionRepository construye el almacén de sesiones.
func NewSessionRepository(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

// Create emite una sesión nueva para el usuario con el TTL dado.
func (r *SessionRepo) Create(ctx context.Context, userID string, ttl time.Duration) (*repository.Session, error) {
	s := &repository.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
		CreatedAt: time.Now().UTC(),
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO sessions (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, $4)`,
		s.Token, s.UserID, s.ExpiresAt, s.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

// Get devuelve la sesión vigente para el token, o nil si no existe o expiró.
func (r *SessionRepo) Get(ctx context.Context, token string) (*repository.Session, error) {
	var s repository.Session
	err := r.pool.QueryRow(ctx,
		`SELECT token, user_id, expires_at, created_at FROM sessions
		 WHERE token = $1 AND expires_at > now()`, token,
	).Scan(&s.Token, &s.UserID, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Delete invalida la sesión (logout). Borrar un token inexistente no es error.
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE token = $1`, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired purga sesiones vencidas; pensado para un ticker periódico.
func (r *SessionRepo) DeleteExpired(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= now()`); err != nil {
		return fmt.Errorf("delete expired sessions: %w", err)
	}
	return nil
}
