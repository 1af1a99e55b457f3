package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entries are kept slightly past the token's own expiry so clock skew
// between this service and the token issuer cannot resurrect a token.
const revocationGrace = time.Minute

// RevocationLedger is the durable blacklist of refresh-token identifiers,
// backed by Redis. Both operations go straight to the store (no in-process
// cache), so a Revoke that returned is observed by every later IsRevoked.
//
// Revoke is idempotent at this level: re-revoking an identifier overwrites
// the existing entry and succeeds silently. The session manager reports the
// second logout of a token as revoked by checking IsRevoked first.
//
// Key format: revoked:<jti>
type RevocationLedger struct {
	client *redis.Client
}

func NewRevocationLedger(client *redis.Client) *RevocationLedger {
	return &RevocationLedger{client: client}
}

// Revoke marks tokenID as permanently unusable. The entry expires once the
// token itself would have, so the ledger does not grow without bound.
func (l *RevocationLedger) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := l.client.Set(ctx, l.key(tokenID), "1", ttl+revocationGrace).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (l *RevocationLedger) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation lookup: %w", err)
	}
	return n > 0, nil
}

func (l *RevocationLedger) key(tokenID string) string {
	return "revoked:" + tokenID
}
