package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/accounthub/account-system/internal/core/domain"
)

type stubAuditRepo struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *stubAuditRepo) Insert(_ context.Context, event domain.AuthEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *stubAuditRepo) ListRecent(_ context.Context, limit int) ([]domain.AuthEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.events) {
		limit = len(r.events)
	}
	return r.events[:limit], nil
}

func TestAuditService_Record(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo)

	event := domain.AuthEvent{UserID: "u1", Action: domain.ActionLogin, At: time.Now()}
	if err := svc.Record(context.Background(), event); err != nil {
		t.Fatalf("record: %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
}

func TestAuditService_Record_RejectsIncomplete(t *testing.T) {
	svc := NewAuditService(&stubAuditRepo{})

	if err := svc.Record(context.Background(), domain.AuthEvent{Action: domain.ActionLogin}); err == nil {
		t.Fatalf("expected error for missing user id")
	}
	if err := svc.Record(context.Background(), domain.AuthEvent{UserID: "u1"}); err == nil {
		t.Fatalf("expected error for missing action")
	}
}

func TestAuditService_Recent_ClampsLimit(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo)
	for i := 0; i < 150; i++ {
		_ = svc.Record(context.Background(), domain.AuthEvent{UserID: "u1", Action: domain.ActionRefresh, At: time.Now()})
	}

	events, err := svc.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(events) != 100 {
		t.Fatalf("expected default limit of 100, got %d", len(events))
	}

	events, _ = svc.Recent(context.Background(), 10)
	if len(events) != 10 {
		t.Fatalf("expected 10 events, got %d", len(events))
	}
}
