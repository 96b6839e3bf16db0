package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"fabplan.dev/backend/internal/service"
)

type Health struct {
	fx.In

	HealthService *service.Health
}

func RegisterHealth(app *fiber.App, c Health) {
	app.Get("/health", c.Ping)
}

func (c *Health) Ping(ctx *fiber.Ctx) error {
	if err := c.HealthService.Ping(ctx.Context()); err != nil {
		return err
	}
	return ctx.SendStatus(fiber.StatusOK)
}
