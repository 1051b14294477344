package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// RequestLogger registra método, ruta, estado y duración de cada petición.
// Debe ir antes de AuthMiddleware; user_id y company_id se leen al terminar la cadena.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		event := log.Info()
		if status >= fiber.StatusInternalServerError || chainErr != nil {
			event = log.Error().Err(chainErr)
		}
		event.
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Str("company_id", GetCompanyID(c)).
			Msg("petición HTTP")
		return chainErr
	}
}
