package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Doacoes-api/pkg/logger"
)

// RequestLogger registra método, ruta, status y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("user_id", GetUserID(c)).
			Dur("elapsed", time.Since(start)).
			Msg("http")
		return err
	}
}
