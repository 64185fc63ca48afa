package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger comprueba la disponibilidad del almacén de registros.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde /health.
func HealthHandler(service string, db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if db != nil {
			if err := db.Ping(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": service, "error": err.Error()})
			}
		}
		return c.JSON(fiber.Map{"status": "ok", "service": service})
	}
}
