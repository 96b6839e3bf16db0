package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"

	"fabplan.dev/backend/internal/pkg/apperr"
	"fabplan.dev/backend/internal/server/svr"
	"fabplan.dev/backend/internal/service"
)

type Order struct {
	fx.In

	OrderService *service.Order
}

func RegisterOrder(v1 *svr.V1, c Order) {
	v1.Get("/orders", c.GetOrders)
	v1.Get("/orders/:orderId", c.GetOrderByID)
}

func (c *Order) GetOrders(ctx *fiber.Ctx) error {
	orders, err := c.OrderService.GetActiveOrders(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(orders)
}

func (c *Order) GetOrderByID(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("orderId"))
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid order id: %s", ctx.Params("orderId"))
	}

	order, err := c.OrderService.GetOrderByID(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(order)
}
