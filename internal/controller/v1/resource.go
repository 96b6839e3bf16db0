package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"fabplan.dev/backend/internal/pkg/apperr"
	"fabplan.dev/backend/internal/server/svr"
	"fabplan.dev/backend/internal/service"
)

type Resource struct {
	fx.In

	ResourceService *service.Resource
}

func RegisterResource(v1 *svr.V1, c Resource) {
	v1.Get("/resources", c.GetResources)
	v1.Get("/resources/:resourceId", c.GetResourceByID)
}

func (c *Resource) GetResources(ctx *fiber.Ctx) error {
	resources, err := c.ResourceService.GetResources(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(resources)
}

func (c *Resource) GetResourceByID(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("resourceId"))
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid resource id: %s", ctx.Params("resourceId"))
	}

	resource, err := c.ResourceService.GetResourceByID(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(resource)
}
