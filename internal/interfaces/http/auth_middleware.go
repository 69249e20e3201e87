package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/timesheet-api/internal/application/auth"
	"github.com/jhoicas/timesheet-api/internal/application/dto"
)

// LocalPrincipal key del principal resuelto en c.Locals.
const LocalPrincipal = "principal"

// Authenticate resuelve la identidad de la petición y la deja en c.Locals.
// Primero intenta la cookie de sesión (navegadores), después el Bearer token
// (clientes sin cookie). Si ninguna credencial resuelve, sigue sin principal:
// el rechazo lo deciden RequireAuth / RequireRole en cada ruta.
func Authenticate(authUC *auth.AuthUseCase, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token := c.Cookies(cookieName); token != "" {
			p, err := authUC.ResolveSession(c.Context(), token)
			if err != nil {
				return writeDomainError(c, err)
			}
			if p != nil {
				c.Locals(LocalPrincipal, p)
				return c.Next()
			}
		}
		if header := c.Get(fiber.HeaderAuthorization); header != "" {
			parts := strings.SplitN(header, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				p, err := authUC.ResolveBearer(strings.TrimSpace(parts[1]))
				if err != nil {
					return writeDomainError(c, err)
				}
				if p != nil {
					c.Locals(LocalPrincipal, p)
				}
			}
		}
		return c.Next()
	}
}

// RequireAuth rechaza con 401 las peticiones sin principal resuelto.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetPrincipal(c) == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHENTICATED", Message: "autenticación requerida",
			})
		}
		return c.Next()
	}
}

// RequireRole exige un principal con alguno de los roles indicados.
// Sin principal → 401; con principal de otro rol → 403.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := GetPrincipal(c)
		if p == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "UNAUTHENTICATED", Message: "autenticación requerida",
			})
		}
		for _, role := range roles {
			if p.Role == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "permisos insuficientes",
		})
	}
}

// GetPrincipal devuelve el principal resuelto por Authenticate, o nil.
func GetPrincipal(c *fiber.Ctx) *auth.Principal {
	v := c.Locals(LocalPrincipal)
	if v == nil {
		return nil
	}
	p, _ := v.(*auth.Principal)
	return p
}
