package service

import (
	"context"
	"time"

	"fabplan.dev/backend/internal/model"
	modelcache "fabplan.dev/backend/internal/model/cache"
	"fabplan.dev/backend/internal/repo"
)

type Resource struct {
	ResourceRepo *repo.Resource
}

func NewResource(resourceRepo *repo.Resource) *Resource {
	return &Resource{
		ResourceRepo: resourceRepo,
	}
}

func (s *Resource) GetResources(ctx context.Context) ([]*model.Resource, error) {
	var resources []*model.Resource
	err := modelcache.Resources.MutexGetSet(&resources, func() ([]*model.Resource, error) {
		return s.ResourceRepo.GetResources(ctx)
	}, time.Minute)
	if err != nil {
		return nil, err
	}
	return resources, nil
}

func (s *Resource) GetResourceByID(ctx context.Context, id int) (*model.Resource, error) {
	return s.ResourceRepo.GetResourceByID(ctx, id)
}
