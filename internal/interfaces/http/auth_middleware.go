package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farm-api/internal/domain/entity"
	"github.com/jhoicas/farm-api/pkg/jwt"
)

// Locals keys para la identidad autenticada en Fiber.
const (
	LocalUserID = "user_id"
	LocalActor  = "actor"
)

// AuthMiddleware valida el Bearer Token JWT (tipo access) y deja el UserID en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", msgMissingToken)
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", msgInvalidToken)
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return fail(c, fiber.StatusUnauthorized, "MISSING_TOKEN", msgMissingToken)
		}
		claims, err := jwt.Parse(jwtSecret, tokenString, jwt.TokenAccess)
		if err != nil {
			return fail(c, fiber.StatusUnauthorized, "INVALID_TOKEN", msgInvalidToken)
		}
		c.Locals(LocalUserID, claims.UserID)
		return c.Next()
	}
}

// actorLoader lo implementa *usecase.AccountUseCase.
type actorLoader interface {
	Actor(ctx context.Context, id string) (*entity.Account, error)
}

// LoadActor carga la cuenta del token; cuentas borradas o inactivas responden 401.
// Debe usarse DESPUÉS de AuthMiddleware.
func LoadActor(loader actorLoader) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := loader.Actor(c.UserContext(), GetUserID(c))
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalActor, actor)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetActor devuelve la cuenta autenticada o nil en rutas públicas.
func GetActor(c *fiber.Ctx) *entity.Account {
	a, _ := c.Locals(LocalActor).(*entity.Account)
	return a
}
