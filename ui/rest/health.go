package rest

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kabang/kabang/domains/health"
)

type Health struct {
	Service health.IHealthUsecase
}

func InitRestHealth(app fiber.Router, service health.IHealthUsecase) Health {
	handler := Health{Service: service}
	app.Get("/health", handler.GetStatus)

	return handler
}

// GetStatus answers 200 even when degraded; the body tells the difference.
func (h *Health) GetStatus(c *fiber.Ctx) error {
	return c.JSON(h.Service.Check(c.UserContext()))
}
