package http

import (
	"errors"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/farm-api/internal/application/dto"
	"github.com/jhoicas/farm-api/internal/domain"
	"github.com/jhoicas/farm-api/pkg/i18n"
)

// Mensajes genéricos (claves del catálogo i18n).
const (
	msgInvalidBody    = "Malformed request body."
	msgInvalidQuery   = "Invalid query parameters."
	msgInvalidInput   = "Invalid input."
	msgMissingToken   = "Authentication credentials were not provided."
	msgInvalidToken   = "Given token not valid."
	msgBadCredentials = "No active account found with the given credentials."
	msgDisabled       = "User account is disabled."
	msgNotFound       = "Not found."
	msgThrottled      = "Request was throttled."
	msgInternal       = "A server error occurred."
)

// Printer idioma de la respuesta: preferred_language del actor, luego Accept-Language, luego inglés.
func Printer(c *fiber.Ctx) *i18n.Printer {
	var pref string
	if actor := GetActor(c); actor != nil {
		pref = actor.PreferredLanguage
	}
	p := i18n.NewPrinter(i18n.Match(pref, c.Get(fiber.HeaderAcceptLanguage)))
	c.Set(fiber.HeaderContentLanguage, p.Lang())
	return p
}

// fail responde con status, código y mensaje traducido.
func fail(c *fiber.Ctx, status int, code, key string) error {
	msg := Printer(c).T(key)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: msg, Detail: msg})
}

// respondError traduce errores de dominio a HTTP. Lo no clasificado es 500 y se reporta.
func respondError(c *fiber.Ctx, err error) error {
	p := Printer(c)

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: p.T(msgInvalidInput),
			Fields:  verr.Fields(p.T),
		})
	}

	var ferr *domain.ForbiddenError
	if errors.As(err, &ferr) {
		msg := p.T(ferr.Reason)
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: msg, Detail: msg})
	}

	var nerr *domain.NotFoundError
	if errors.As(err, &nerr) {
		msg := p.T(nerr.Detail)
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg, Detail: msg})
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "NOT_FOUND", msgNotFound)
	case errors.Is(err, domain.ErrUnauthorized):
		return fail(c, fiber.StatusUnauthorized, "UNAUTHORIZED", msgBadCredentials)
	case errors.Is(err, domain.ErrForbidden):
		return fail(c, fiber.StatusForbidden, "FORBIDDEN", msgDisabled)
	case errors.Is(err, domain.ErrInvalidInput):
		return fail(c, fiber.StatusBadRequest, "VALIDATION", msgInvalidInput)
	}

	zerolog.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).Str("path", c.Path()).
		Msg("error no controlado")
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return fail(c, fiber.StatusInternalServerError, "INTERNAL", msgInternal)
}

// ErrorHandler errores de Fiber (ruta inexistente, método no permitido, panics recuperados).
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch fe.Code {
		case fiber.StatusNotFound:
			return fail(c, fe.Code, "NOT_FOUND", msgNotFound)
		case fiber.StatusTooManyRequests:
			return fail(c, fe.Code, "THROTTLED", msgThrottled)
		case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
			return fail(c, fe.Code, "INVALID_BODY", msgInvalidBody)
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return respondError(c, err)
}
