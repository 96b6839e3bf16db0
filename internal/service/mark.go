package service

import (
	"context"

	"fabplan.dev/backend/internal/model"
	modelcache "fabplan.dev/backend/internal/model/cache"
	"fabplan.dev/backend/internal/repo"
)

type Mark struct {
	MarkRepo     *repo.Mark
	RouteService *Route
}

func NewMark(markRepo *repo.Mark, routeService *Route) *Mark {
	return &Mark{
		MarkRepo:     markRepo,
		RouteService: routeService,
	}
}

func (s *Mark) GetMarkByID(ctx context.Context, id int) (*model.Mark, error) {
	return s.MarkRepo.GetMarkByID(ctx, id)
}

// RegenerateRoute rebuilds a mark's route from its current attributes and
// replaces the stored operations. Reported actuals on the old route are
// discarded, which is the intended behavior after a mark revision.
func (s *Mark) RegenerateRoute(ctx context.Context, markID int) (*model.Mark, error) {
	mark, err := s.MarkRepo.GetMarkByID(ctx, markID)
	if err != nil {
		return nil, err
	}
	ops := s.RouteService.GenerateForMark(mark)
	if err := s.MarkRepo.ReplaceOperations(ctx, markID, ops); err != nil {
		return nil, err
	}
	mark.Operations = ops
	if err := modelcache.Delete("activeOrders"); err != nil {
		return nil, err
	}
	return mark, nil
}
