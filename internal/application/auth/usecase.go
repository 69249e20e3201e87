package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
	"github.com/jhoicas/timesheet-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Principal es la identidad resuelta de la petición actual, venga de la
// sesión de cookie o del bearer token.
type Principal struct {
	UserID    string
	Username  string
	FullName  string
	Role      string
	CompanyID string
}

// IsAdmin indica si el principal tiene el rol admin.
func (p *Principal) IsAdmin() bool { return p.Role == entity.RoleAdmin }

// LoginResult agrupa lo que emite un login correcto: las dos formas de
// credencial en paralelo (sesión para navegadores, JWT para clientes sin cookie).
type LoginResult struct {
	Response     *dto.LoginResponse
	SessionToken string
	SessionTTL   time.Duration
}

// AuthUseCase autenticación y resolución del principal.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	jwtCfg      JWTConfig
	sessionTTL  time.Duration
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, jwtCfg JWTConfig, sessionTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, sessionRepo: sessionRepo, jwtCfg: jwtCfg, sessionTTL: sessionTTL}
}

// Login verifica username/password y emite sesión + JWT.
// Usuario inexistente y password incorrecta devuelven el mismo
// domain.ErrInvalidCredentials: el mensaje no debe permitir enumerar usuarios.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*LoginResult, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, user.Role, user.CompanyID,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	session, err := uc.sessionRepo.Create(ctx, user.ID, uc.sessionTTL)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Response: &dto.LoginResponse{
			Token: token,
			User:  *toUserResponse(user),
		},
		SessionToken: session.Token,
		SessionTTL:   uc.sessionTTL,
	}, nil
}

// Logout invalida la sesión server-side. El JWT emitido en el login sigue
// siendo válido hasta su expiración natural: no hay lista de revocación.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	return uc.sessionRepo.Delete(ctx, sessionToken)
}

// ResolveSession resuelve el principal desde un token de sesión.
// Devuelve nil, nil si el token no corresponde a una sesión vigente.
func (uc *AuthUseCase) ResolveSession(ctx context.Context, token string) (*Principal, error) {
	if token == "" {
		return nil, nil
	}
	session, err := uc.sessionRepo.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	user, err := uc.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// usuario borrado con sesión viva: la sesión ya no identifica a nadie
		_ = uc.sessionRepo.Delete(ctx, token)
		return nil, nil
	}
	return &Principal{
		UserID:    user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}, nil
}

// ResolveBearer resuelve el principal desde un bearer token, sin tocar la DB:
// los claims del JWT bastan (clientes móviles/cross-origin sin cookie).
// Devuelve nil, nil si el token es inválido o expiró.
func (uc *AuthUseCase) ResolveBearer(tokenString string) (*Principal, error) {
	if tokenString == "" {
		return nil, nil
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, tokenString)
	if err != nil {
		return nil, nil //nolint:nilerr // token inválido = sin principal, no es error del servidor
	}
	return &Principal{
		UserID:    claims.UserID,
		Username:  claims.Username,
		Role:      claims.Role,
		CompanyID: claims.CompanyID,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Email:     u.Email,
		Role:      u.Role,
		CompanyID: u.CompanyID,
	}
}

// UserResponseFor expone la conversión para el endpoint /auth/check.
func UserResponseFor(p *Principal) *dto.UserResponse {
	if p == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        p.UserID,
		Username:  p.Username,
		FullName:  p.FullName,
		Role:      p.Role,
		CompanyID: p.CompanyID,
	}
}
