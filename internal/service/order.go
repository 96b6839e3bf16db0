package service

import (
	"context"
	"time"

	"fabplan.dev/backend/internal/model"
	modelcache "fabplan.dev/backend/internal/model/cache"
	"fabplan.dev/backend/internal/repo"
)

type Order struct {
	OrderRepo *repo.Order
}

func NewOrder(orderRepo *repo.Order) *Order {
	return &Order{
		OrderRepo: orderRepo,
	}
}

// GetActiveOrders returns the planning backlog, cached briefly so the
// listing endpoint does not hammer the database between replans.
func (s *Order) GetActiveOrders(ctx context.Context) ([]*model.Order, error) {
	var orders []*model.Order
	err := modelcache.ActiveOrders.MutexGetSet(&orders, func() ([]*model.Order, error) {
		return s.OrderRepo.GetActiveOrders(ctx)
	}, time.Minute)
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *Order) GetOrderByID(ctx context.Context, id int) (*model.Order, error) {
	return s.OrderRepo.GetOrderByID(ctx, id)
}
