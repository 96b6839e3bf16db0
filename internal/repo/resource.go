package repo

import (
	"context"

	"github.com/uptrace/bun"

	"fabplan.dev/backend/internal/model"
	"fabplan.dev/backend/internal/repo/selector"
)

type Resource struct {
	db  *bun.DB
	sel selector.S[model.Resource]
}

func NewResource(db *bun.DB) *Resource {
	return &Resource{
		db:  db,
		sel: selector.New[model.Resource](db),
	}
}

func (c *Resource) GetResources(ctx context.Context) ([]*model.Resource, error) {
	return c.sel.SelectMany(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Order("resource_id ASC")
	})
}

func (c *Resource) GetResourceByID(ctx context.Context, id int) (*model.Resource, error) {
	return c.sel.SelectOne(ctx, func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("resource_id = ?", id)
	})
}
