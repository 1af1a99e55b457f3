package ports

import (
	"time"

	"github.com/accounthub/account-system/internal/core/domain"
)

// TokenCodec signs and decodes the service's JWT credentials.
//
// Verify is the only method that may back an authorization decision. Peek
// decodes without checking the signature and exists solely so callers can
// produce a precise error (e.g. "not a refresh token") before verification
// would fail for some other reason.
type TokenCodec interface {
	Issue(kind domain.TokenKind, subject string, ttl time.Duration) (string, error)
	Verify(raw string) (*domain.TokenClaims, error)
	Peek(raw string) (*domain.TokenClaims, error)
}
