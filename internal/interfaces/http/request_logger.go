package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/farm-api/pkg/logger"
)

// RequestLogger adjunta al contexto un logger con el id de petición (middleware requestid)
// y registra método, ruta, status y latencia al terminar.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		rid, _ := c.Locals("requestid").(string)
		if rid == "" {
			rid = c.GetRespHeader(fiber.HeaderXRequestID)
		}
		c.SetUserContext(log.WithRequest(c.UserContext(), rid))

		err := c.Next()
		if err != nil {
			// el ErrorHandler escribe la respuesta; así el status registrado es el final
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = log.Warn()
		}
		ev.Str("request_id", rid).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http")
		return nil
	}
}
