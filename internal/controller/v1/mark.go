package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"fabplan.dev/backend/internal/pkg/apperr"
	"fabplan.dev/backend/internal/server/svr"
	"fabplan.dev/backend/internal/service"
)

type Mark struct {
	fx.In

	MarkService *service.Mark
}

func RegisterMark(v1 *svr.V1, c Mark) {
	v1.Get("/marks/:markId", c.GetMarkByID)
	v1.Post("/marks/:markId/route", c.RegenerateRoute)
}

func (c *Mark) GetMarkByID(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("markId"))
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid mark id: %s", ctx.Params("markId"))
	}

	mark, err := c.MarkService.GetMarkByID(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(mark)
}

// RegenerateRoute rebuilds the mark's route from its current attributes.
func (c *Mark) RegenerateRoute(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("markId"))
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid mark id: %s", ctx.Params("markId"))
	}

	mark, err := c.MarkService.RegenerateRoute(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(mark)
}
