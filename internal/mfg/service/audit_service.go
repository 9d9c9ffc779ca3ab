package service

import (
	"context"

	"github.com/makerflow/mfg/internal/mfg/entity"
	"github.com/makerflow/mfg/internal/mfg/repository"
)

type AuditService struct {
	repo *repository.AuditRepository
}

func NewAuditService(repo *repository.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) List(ctx context.Context, entityType string, page, size int) ([]entity.AuditLog, int64, error) {
	return s.repo.List(ctx, entityType, page, size)
}
