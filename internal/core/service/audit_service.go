package service

import (
	"context"
	"fmt"

	"github.com/accounthub/account-system/internal/core/domain"
	"github.com/accounthub/account-system/internal/core/ports"
)

const defaultRecentLimit = 100

// AuditService persists authentication events and serves the recent trail.
type AuditService struct {
	repo ports.AuditRepository
}

func NewAuditService(repo ports.AuditRepository) *AuditService {
	return &AuditService{repo: repo}
}

func (s *AuditService) Record(ctx context.Context, event domain.AuthEvent) error {
	if event.UserID == "" || event.Action == "" {
		return fmt.Errorf("audit event missing user or action")
	}
	return s.repo.Insert(ctx, event)
}

func (s *AuditService) Recent(ctx context.Context, limit int) ([]domain.AuthEvent, error) {
	if limit <= 0 || limit > defaultRecentLimit {
		limit = defaultRecentLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
