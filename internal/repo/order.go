package repo

import (
	"context"

	"github.com/uptrace/bun"

	"fabplan.dev/backend/internal/constant"
	"fabplan.dev/backend/internal/model"
	"fabplan.dev/backend/internal/repo/selector"
)

type Order struct {
	db  *bun.DB
	sel selector.S[model.Order]
}

func NewOrder(db *bun.DB) *Order {
	return &Order{
		db:  db,
		sel: selector.New[model.Order](db),
	}
}

// GetActiveOrders returns the planning backlog: every active order with its
// marks and their operations preloaded, so the engine works on one snapshot.
func (c *Order) GetActiveOrders(ctx context.Context) ([]*model.Order, error) {
	return c.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Relation("Marks").
			Relation("Marks.Operations", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Order("seq ASC", "stage ASC")
			}).
			Where("status = ?", constant.OrderStatusActive).
			Order("priority ASC", "deadline ASC", "order_id ASC")
	})
}

func (c *Order) GetOrders(ctx context.Context) ([]*model.Order, error) {
	return c.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("order_id ASC")
	})
}

func (c *Order) GetOrderByID(ctx context.Context, id int) (*model.Order, error) {
	return c.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Relation("Marks").
			Relation("Marks.Operations").
			Where("order_id = ?", id)
	})
}
