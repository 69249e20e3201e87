package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/timesheet-api/internal/application/auth"
	"github.com/jhoicas/timesheet-api/internal/application/dto"
	"github.com/jhoicas/timesheet-api/internal/domain/entity"
	"github.com/jhoicas/timesheet-api/internal/domain/repository"
	apphttp "github.com/jhoicas/timesheet-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/timesheet-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testIssuer     = "timesheet-api-test"
	testExpMin     = 60
	testCookieName = "timesheet_session"
)

type fakeUserRepo struct {
	users map[string]*entity.User // por id
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) ListByRole(_ context.Context, role string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *entity.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakeSessionRepo struct {
	sessions map[string]*repository.Session
}

func (f *fakeSessionRepo) Create(_ context.Context, userID string, ttl time.Duration) (*repository.Session, error) {
	s := &repository.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
		CreatedAt: time.Now(),
	}
	f.sessions[s.Token] = s
	return s, nil
}

func (f *fakeSessionRepo) Get(_ context.Context, token string) (*repository.Session, error) {
	s, ok := f.sessions[token]
	if !ok || time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) error {
	for tok, s := range f.sessions {
		if time.Now().After(s.ExpiresAt) {
			delete(f.sessions, tok)
		}
	}
	return nil
}

type authFixture struct {
	app      *fiber.App
	authUC   *auth.AuthUseCase
	users    *fakeUserRepo
	sessions *fakeSessionRepo
}

// buildAuthFixture monta un app Fiber con el middleware de autenticación, un
// usuario de cada rol y rutas de prueba protegidas.
func buildAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, spec := range []struct{ id, username, role string }{
		{"u-admin", "admin", entity.RoleAdmin},
		{"u-pm", "pm", entity.RoleProgramManager},
		{"u-acc", "acc", entity.RoleAccountant},
	} {
		hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
		require.NoError(t, err)
		users.users[spec.id] = &entity.User{
			ID:           spec.id,
			Username:     spec.username,
			PasswordHash: string(hash),
			Role:         spec.role,
		}
	}

	sessions := &fakeSessionRepo{sessions: map[string]*repository.Session{}}
	authUC := auth.NewAuthUseCase(users, sessions,
		auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		24*time.Hour)

	app := fiber.New()
	api := app.Group("/api", apphttp.Authenticate(authUC, testCookieName))

	authHandler := apphttp.NewAuthHandler(authUC, testCookieName, false)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/logout", authHandler.Logout)
	api.Get("/auth/check", authHandler.Check)

	api.Get("/protected", apphttp.RequireAuth(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetPrincipal(c).UserID})
	})
	api.Get("/admin-only", apphttp.RequireRole(entity.RoleAdmin), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	return &authFixture{app: app, authUC: authUC, users: users, sessions: sessions}
}

func doLogin(t *testing.T, app *fiber.App, username, password string) *http.Response {
	t.Helper()
	body, err := json.Marshal(dto.LoginRequest{Username: username, Password: password})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookieName {
			return ck
		}
	}
	t.Fatal("la respuesta de login debe incluir la cookie de sesión")
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Login / logout
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_EmiteCookieYToken(t *testing.T) {
	fx := buildAuthFixture(t)
	resp := doLogin(t, fx.app, "pm", "secret123")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.Token, "el login debe devolver un bearer token")
	assert.Equal(t, "pm", out.User.Username)
	assert.NotEmpty(t, out.User.ID)

	ck := sessionCookie(t, resp)
	assert.True(t, ck.HttpOnly, "la cookie de sesión debe ser HttpOnly")
	assert.NotEmpty(t, ck.Value)
}

// Usuario inexistente y password incorrecta devuelven exactamente la misma
// respuesta: el mensaje no debe permitir enumerar usernames.
func TestLogin_MismaRespuestaParaUsuarioYPasswordInvalidos(t *testing.T) {
	fx := buildAuthFixture(t)

	respBadUser := doLogin(t, fx.app, "no-existe", "secret123")
	defer respBadUser.Body.Close()
	respBadPass := doLogin(t, fx.app, "pm", "incorrecta")
	defer respBadPass.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, respBadUser.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, respBadPass.StatusCode)

	var e1, e2 dto.ErrorResponse
	require.NoError(t, json.NewDecoder(respBadUser.Body).Decode(&e1))
	require.NoError(t, json.NewDecoder(respBadPass.Body).Decode(&e2))
	assert.Equal(t, e1, e2, "ambos fallos de login deben ser indistinguibles")
}

func TestLogout_InvalidaSoloLaSesion(t *testing.T) {
	fx := buildAuthFixture(t)
	login := doLogin(t, fx.app, "pm", "secret123")
	defer login.Body.Close()
	ck := sessionCookie(t, login)

	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(login.Body).Decode(&out))

	// logout con la cookie
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(ck)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// la cookie ya no autentica
	req = httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(ck)
	resp, err = fx.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"la sesión invalidada no debe autenticar")

	// el JWT emitido en el login sigue funcionando hasta expirar
	req = httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	resp, err = fx.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el logout no revoca el JWT, solo la sesión server-side")
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución dual de credenciales
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_CookieYBearer(t *testing.T) {
	fx := buildAuthFixture(t)
	login := doLogin(t, fx.app, "pm", "secret123")
	defer login.Body.Close()
	ck := sessionCookie(t, login)

	// vía cookie
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.AddCookie(ck)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "u-pm", body["user_id"])

	// vía bearer generado directamente
	tok, err := pkgjwt.Generate(testJWTSecret, "u-acc", "acc", entity.RoleAccountant, "", testIssuer, testExpMin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp2, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestAuthenticate_SinCredenciales_Retorna401(t *testing.T) {
	fx := buildAuthFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthenticate_TokenInvalido_Retorna401(t *testing.T) {
	fx := buildAuthFixture(t)
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer token.invalido.aqui")
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// RBAC: 401 sin identidad, 403 con identidad sin permisos
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_401Contra403(t *testing.T) {
	fx := buildAuthFixture(t)

	// sin credenciales → 401
	req := httptest.NewRequest(http.MethodGet, "/api/admin-only", nil)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// identidad válida con rol insuficiente → 403
	tok, err := pkgjwt.Generate(testJWTSecret, "u-acc", "acc", entity.RoleAccountant, "", testIssuer, testExpMin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = fx.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// admin → 200
	tok, err = pkgjwt.Generate(testJWTSecret, "u-admin", "admin", entity.RoleAdmin, "", testIssuer, testExpMin)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/api/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err = fx.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// /auth/check
// ──────────────────────────────────────────────────────────────────────────────

func TestCheck_ReportaEstadoDeAutenticacion(t *testing.T) {
	fx := buildAuthFixture(t)

	// sin credenciales
	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	resp, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "check nunca responde 401")

	var out dto.CheckResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.False(t, out.Authenticated)
	assert.Nil(t, out.User)

	// con cookie de sesión
	login := doLogin(t, fx.app, "admin", "secret123")
	defer login.Body.Close()
	req = httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(sessionCookie(t, login))
	resp2, err := fx.app.Test(req, -1)
	require.NoError(t, err)
	defer resp2.Body.Close()

	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&out))
	assert.True(t, out.Authenticated)
	require.NotNil(t, out.User)
	assert.Equal(t, "admin", out.User.Username)
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg — integridad del generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "u-1", "pm", entity.RoleProgramManager, "co-1", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, "pm", claims.Username)
	assert.Equal(t, entity.RoleProgramManager, claims.Role)
	assert.Equal(t, "co-1", claims.CompanyID)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "u-1", "pm", entity.RoleProgramManager, "", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testJWTSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "u-1", "pm", entity.RoleProgramManager, "", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
