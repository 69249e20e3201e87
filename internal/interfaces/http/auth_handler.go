package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/timesheet-api/internal/application/auth"
	"github.com/jhoicas/timesheet-api/internal/application/dto"
)

// AuthHandler maneja login, logout y chequeo de sesión.
type AuthHandler struct {
	uc         *auth.AuthUseCase
	cookieName string
	secure     bool
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookieName string, secure bool) *AuthHandler {
	return &AuthHandler{uc: uc, cookieName: cookieName, secure: secure}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    out.SessionToken,
		Expires:  time.Now().Add(out.SessionTTL),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(out.Response)
}

// Logout godoc
// @Summary      Cerrar sesión (invalida la sesión server-side, no el JWT)
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies(h.cookieName); token != "" {
		if err := h.uc.Logout(c.Context(), token); err != nil {
			return writeDomainError(c, err)
		}
	}
	c.Cookie(&fiber.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.secure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Check godoc
// @Summary      Estado de autenticación de la petición actual
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.CheckResponse
// @Router       /api/auth/check [get]
func (h *AuthHandler) Check(c *fiber.Ctx) error {
	p := GetPrincipal(c)
	if p == nil {
		return c.JSON(dto.CheckResponse{Authenticated: false})
	}
	return c.JSON(dto.CheckResponse{Authenticated: true, User: auth.UserResponseFor(p)})
}
