package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farm-api/internal/domain/access"
	"github.com/jhoicas/farm-api/internal/domain/entity"
)

// RequireCapability devuelve un middleware Fiber que exige la capacidad indicada en la cuenta
// autenticada. Debe usarse DESPUÉS de LoadActor (necesita LocalActor).
//
// Comportamiento:
//   - 401 Unauthorized → no hay actor en el contexto.
//   - 403 Forbidden    → el rol de la cuenta no concede la capacidad.
func RequireCapability(c entity.Capability) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		actor := GetActor(ctx)
		if actor == nil {
			return fail(ctx, fiber.StatusUnauthorized, "UNAUTHORIZED", msgMissingToken)
		}
		if err := access.RequireCapability(actor, c); err != nil {
			return respondError(ctx, err)
		}
		return ctx.Next()
	}
}
