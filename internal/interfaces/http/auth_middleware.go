package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Turismo-api/internal/application/auth"
	"github.com/jhoicas/Turismo-api/internal/application/dto"
	"github.com/jhoicas/Turismo-api/internal/domain"
	"github.com/jhoicas/Turismo-api/internal/domain/entity"
)

// Locals keys para el usuario resuelto en Fiber.
const (
	LocalCurrentUser = "current_user"
	LocalUserID      = "user_id"
)

// CookieName nombre de la cookie http-only que transporta el token de sesión.
const CookieName = "jwt"

// Protect resuelve la sesión del request y corta con 401 si no hay una cuenta
// viva detrás del token. El token se toma del header Authorization (Bearer) y,
// en su defecto, de la cookie "jwt". La resolución consulta la DB en cada
// petición: ahí se aplica la revocación por cambio de contraseña.
func Protect(authUC *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Fail("NOT_LOGGED_IN", "no has iniciado sesión; inicia sesión para acceder"))
		}
		user, err := authUC.ResolveSession(c.Context(), token)
		if err != nil {
			// Solo los fallos de sesión son 401; un store caído u otro error
			// inesperado sale como INTERNAL sin filtrar detalle.
			if errors.Is(err, domain.ErrUnauthenticated) {
				return unauthenticated(c, err)
			}
			return respondError(c, err)
		}
		c.Locals(LocalCurrentUser, user)
		c.Locals(LocalUserID, user.ID)
		return c.Next()
	}
}

// Optional es la variante no fatal de Protect para páginas que se renderizan
// distinto para visitantes anónimos: cualquier fallo se traga y el request
// sigue como anónimo. Solo mira la cookie.
func Optional(authUC *auth.AuthUseCase) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(CookieName)
		if token == "" {
			return c.Next()
		}
		user, err := authUC.ResolveSession(c.Context(), token)
		if err != nil {
			return c.Next()
		}
		c.Locals(LocalCurrentUser, user)
		c.Locals(LocalUserID, user.ID)
		return c.Next()
	}
}

// RequireRole autoriza contra una allow-list fija de roles declarada al
// registrar la ruta. Debe usarse DESPUÉS de Protect. Si el rol del usuario
// resuelto no está en la lista responde 403 y la cadena se corta aquí.
func RequireRole(allowedRoles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		user := GetCurrentUser(c)
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(
				dto.Fail("NOT_LOGGED_IN", "no has iniciado sesión; inicia sesión para acceder"))
		}
		if _, ok := allowed[user.Role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(
				dto.Fail("FORBIDDEN", "no tienes permiso para realizar esta acción"))
		}
		return c.Next()
	}
}

// tokenFromRequest extrae el token candidato: primero Authorization Bearer;
// si el header falta o no es Bearer, cae a la cookie.
func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(CookieName)
}

func unauthenticated(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("UNAUTHENTICATED", err.Error()))
}

// GetCurrentUser devuelve el usuario resuelto por Protect/Optional (nil si anónimo).
func GetCurrentUser(c *fiber.Ctx) *entity.User {
	v := c.Locals(LocalCurrentUser)
	if v == nil {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// GetUserID devuelve el ID del usuario resuelto ("" si anónimo).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
