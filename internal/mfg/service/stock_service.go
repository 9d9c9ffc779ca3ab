package service

import (
	"context"

	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/repository"
)

type StockService struct {
	repo *repository.StockRepository
}

func NewStockService(repo *repository.StockRepository) *StockService {
	return &StockService{repo: repo}
}

func (s *StockService) ListLevels(ctx context.Context, params repository.StockListParams) ([]entity.StockLevel, int64, error) {
	return s.repo.ListLevels(ctx, params)
}

func (s *StockService) ListEntries(ctx context.Context, params repository.StockListParams) ([]entity.StockEntry, int64, error) {
	return s.repo.ListEntries(ctx, params)
}
