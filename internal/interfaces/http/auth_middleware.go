package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/receituario-api/internal/domain/entity"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUser   = "user"
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// authenticator contrato mínimo que necesita el middleware.
// Lo implementa *auth.AuthUseCase; la interfaz permite probar el middleware aislado.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, confirma que el usuario existe
// y lo deja en c.Locals (LocalUser, LocalUserID, LocalRole).
func AuthMiddleware(a authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(newErrorResponse(fiber.StatusUnauthorized, "MISSING_TOKEN", "no autenticado, inicie sesión para obtener acceso"))
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(newErrorResponse(fiber.StatusUnauthorized, "INVALID_TOKEN", "formato: Bearer <token>"))
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(newErrorResponse(fiber.StatusUnauthorized, "MISSING_TOKEN", "token vacío"))
		}
		user, err := a.Authenticate(c.Context(), tokenString)
		if err != nil {
			return writeError(c, err)
		}
		c.Locals(LocalUser, user)
		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles listados. Debe ir DESPUÉS de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(newErrorResponse(fiber.StatusUnauthorized, "MISSING_ROLE", "el token no tiene rol"))
		}
		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(newErrorResponse(fiber.StatusForbidden, "FORBIDDEN", "no tiene permiso para esta acción"))
	}
}

// GetUser devuelve el usuario autenticado (nil fuera de rutas protegidas).
func GetUser(c *fiber.Ctx) *entity.User {
	u, _ := c.Locals(LocalUser).(*entity.User)
	return u
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol del contexto (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
