// Package service contains the application services between the HTTP
// handlers and the domain repositories.
package service

import (
	"context"

	"github.com/openshelf/shelfd/internal/application/dto"
	"github.com/openshelf/shelfd/internal/domain"
	"github.com/openshelf/shelfd/pkg/logger"
)

// ItemAppService exposes the item use cases to the HTTP layer.
type ItemAppService interface {
	CreateItem(ctx context.Context, req *dto.ItemRequest) (*dto.ItemResponse, error)
	GetItem(ctx context.Context, id uint64) (*dto.ItemResponse, error)
	UpdateItem(ctx context.Context, id uint64, req *dto.ItemRequest) (*dto.ItemResponse, error)
	DeleteItem(ctx context.Context, id uint64) (*dto.ItemResponse, error)
	ListItems(ctx context.Context) ([]*dto.ItemResponse, error)
}

type itemAppService struct {
	repo domain.ItemRepository
	log  logger.Logger
}

// NewItemAppService wires the item use cases over repo.
func NewItemAppService(repo domain.ItemRepository, log logger.Logger) ItemAppService {
	return &itemAppService{repo: repo, log: log}
}

func (s *itemAppService) CreateItem(ctx context.Context, req *dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.Create(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	return &dto.ItemResponse{ItemID: item.ID, Name: item.Name, Status: dto.StatusCreated}, nil
}

func (s *itemAppService) GetItem(ctx context.Context, id uint64) (*dto.ItemResponse, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ItemResponse{ItemID: item.ID, Name: item.Name}, nil
}

func (s *itemAppService) UpdateItem(ctx context.Context, id uint64, req *dto.ItemRequest) (*dto.ItemResponse, error) {
	item, err := s.repo.Update(ctx, id, req.Name)
	if err != nil {
		return nil, err
	}
	return &dto.ItemResponse{ItemID: item.ID, Name: item.Name, Status: dto.StatusUpdated}, nil
}

func (s *itemAppService) DeleteItem(ctx context.Context, id uint64) (*dto.ItemResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &dto.ItemResponse{ItemID: id, Status: dto.StatusDeleted}, nil
}

func (s *itemAppService) ListItems(ctx context.Context) ([]*dto.ItemResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, &dto.ItemResponse{ItemID: item.ID, Name: item.Name})
	}
	return out, nil
}
