package ports

import (
	"context"

	"github.com/accounthub/account-system/internal/core/domain"
)

// SessionService orchestrates the token lifecycle: login mints a pair,
// refresh exchanges a live refresh token for a new access token, logout
// revokes the refresh token for good.
type SessionService interface {
	Login(ctx context.Context, email, password string) (*domain.TokenPair, error)
	Refresh(ctx context.Context, rawToken string) (string, error)
	Logout(ctx context.Context, rawToken string) error
}
