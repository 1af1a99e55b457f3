package ports

import (
	"context"
	"time"
)

// RevocationLedger is the durable set of revoked refresh-token identifiers.
// Revoke must be durable before it returns; IsRevoked must observe every
// Revoke that completed before it.
type RevocationLedger interface {
	// Revoke marks tokenID unusable. ttl bounds how long the entry needs to
	// be retained (the token's remaining lifetime). Idempotent.
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
