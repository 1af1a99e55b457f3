package ports

import (
	"context"

	"github.com/accounthub/account-system/internal/core/domain"
)

// AuditRepository persists the authentication audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuthEvent) error
	ListRecent(ctx context.Context, limit int) ([]domain.AuthEvent, error)
}

// AuditService records and reads auth events.
type AuditService interface {
	Record(ctx context.Context, event domain.AuthEvent) error
	Recent(ctx context.Context, limit int) ([]domain.AuthEvent, error)
}

// AuditSink accepts events for asynchronous recording. Implementations must
// not block the caller beyond a bounded buffer.
type AuditSink interface {
	Enqueue(event domain.AuthEvent)
}
