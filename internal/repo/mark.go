package repo

import (
	"context"

	"github.com/uptrace/bun"

	"fabplan.dev/backend/internal/model"
	"fabplan.dev/backend/internal/repo/selector"
)

type Mark struct {
	db  *bun.DB
	sel selector.S[model.Mark]
}

func NewMark(db *bun.DB) *Mark {
	return &Mark{
		db:  db,
		sel: selector.New[model.Mark](db),
	}
}

func (c *Mark) GetMarkByID(ctx context.Context, id int) (*model.Mark, error) {
	return c.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Relation("Operations", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Order("seq ASC", "stage ASC")
			}).
			Where("mark_id = ?", id)
	})
}

func (c *Mark) GetMarksByOrderID(ctx context.Context, orderID int) ([]*model.Mark, error) {
	return c.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.
			Relation("Operations", func(q *bun.SelectQuery) *bun.SelectQuery {
				return q.Order("seq ASC", "stage ASC")
			}).
			Where("order_id = ?", orderID).
			Order("mark_id ASC")
	})
}

// ReplaceOperations swaps a mark's route for a freshly generated one. Used
// when a mark's physical attributes change and the route must be regenerated.
func (c *Mark) ReplaceOperations(ctx context.Context, markID int, ops []*model.Operation) error {
	return c.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().
			Model((*model.Operation)(nil)).
			Where("mark_id = ?", markID).
			Exec(ctx); err != nil {
			return err
		}
		if len(ops) == 0 {
			return nil
		}
		_, err := tx.NewInsert().
			Model(&ops).
			Exec(ctx)
		return err
	})
}
