package v1

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"fabplan.dev/backend/internal/model/types"
	"fabplan.dev/backend/internal/server/svr"
	"fabplan.dev/backend/internal/service"
	"fabplan.dev/backend/internal/util/rekuest"
)

type Plan struct {
	fx.In

	ScheduleService *service.Schedule
}

func RegisterPlan(v1 *svr.V1, c Plan) {
	v1.Get("/plan", c.GetPlan)
	v1.Post("/plan/simulate", c.Simulate)
}

// GetPlan returns the latest committed plan, computing it on demand when the
// cache holds none yet.
func (c *Plan) GetPlan(ctx *fiber.Ctx) error {
	plan, err := c.ScheduleService.Plan(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(plan)
}

// Simulate runs a what-if scenario: the submitted hypothetical orders are
// planned together with the committed backlog without persisting anything.
func (c *Plan) Simulate(ctx *fiber.Ctx) error {
	var request types.SimulationRequest
	if err := rekuest.ValidBody(ctx, &request); err != nil {
		return err
	}

	plan, err := c.ScheduleService.Simulate(ctx.Context(), request.Orders)
	if err != nil {
		return err
	}

	return ctx.JSON(plan)
}
