package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/accounthub/account-system/internal/api/metrics"
	"github.com/accounthub/account-system/internal/core/domain"
	"github.com/accounthub/account-system/internal/core/ports"
)

const (
	defaultAccessTTL  = 15 * time.Minute
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// SessionService orchestrates login, refresh and logout. A refresh token
// moves through issued → refreshable → revoked; revocation is terminal and
// enforced through the ledger on every refresh/logout.
type SessionService struct {
	users      ports.UserRepository
	codec      ports.TokenCodec
	ledger     ports.RevocationLedger
	audit      ports.AuditSink
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        zerolog.Logger
}

func NewSessionService(
	users ports.UserRepository,
	codec ports.TokenCodec,
	ledger ports.RevocationLedger,
	audit ports.AuditSink,
	accessTTL, refreshTTL time.Duration,
	log zerolog.Logger,
) *SessionService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &SessionService{
		users:      users,
		codec:      codec,
		ledger:     ledger,
		audit:      audit,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

// Login verifies credentials and mints an access/refresh pair. Unknown
// email, wrong password and deactivated accounts all collapse to
// ErrInvalidCredentials so responses cannot be used to enumerate accounts.
func (s *SessionService) Login(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	if email == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	access, err := s.codec.Issue(domain.TokenKindAccess, user.ID, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refresh, err := s.codec.Issue(domain.TokenKindRefresh, user.ID, s.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenKindAccess)).Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenKindRefresh)).Inc()

	now := time.Now().UTC()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		// best effort; the login itself already succeeded
		s.log.Warn().Err(err).Str("user_id", user.ID).Msg("update last_login failed")
	}

	event := domain.AuthEvent{UserID: user.ID, Action: domain.ActionLogin, At: now}
	if claims, err := s.codec.Peek(refresh); err == nil {
		event.TokenID = claims.TokenID
	}
	s.record(event)

	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a live, non-revoked refresh token for exactly one new
// access token. The refresh token is not rotated: it stays valid until it
// expires or is revoked via Logout.
func (s *SessionService) Refresh(ctx context.Context, rawToken string) (string, error) {
	raw := stripBearer(rawToken)
	if raw == "" {
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		return "", domain.ErrMissingToken
	}

	claims, err := s.codec.Verify(raw)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		return "", err
	}
	if claims.Kind != domain.TokenKindRefresh {
		metrics.RefreshesTotal.WithLabelValues("invalid").Inc()
		return "", domain.ErrWrongTokenType
	}

	revoked, err := s.ledger.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return "", fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		metrics.RefreshesTotal.WithLabelValues("revoked").Inc()
		return "", domain.ErrTokenRevoked
	}

	access, err := s.codec.Issue(domain.TokenKindAccess, claims.Subject, s.accessTTL)
	if err != nil {
		return "", fmt.Errorf("issue access token: %w", err)
	}
	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues(string(domain.TokenKindAccess)).Inc()

	s.record(domain.AuthEvent{
		UserID:  claims.Subject,
		Action:  domain.ActionRefresh,
		TokenID: claims.TokenID,
		At:      time.Now().UTC(),
	})

	return access, nil
}

// Logout revokes a refresh token. The token kind is pre-checked via Peek so
// a caller handing over an access token gets ErrWrongTokenType rather than
// a generic verification failure; authorization still rests on Verify.
// Logout is not idempotent: a second call with the same token fails with
// ErrTokenRevoked.
func (s *SessionService) Logout(ctx context.Context, rawToken string) error {
	raw := stripBearer(rawToken)
	if raw == "" {
		return domain.ErrMissingToken
	}

	peeked, err := s.codec.Peek(raw)
	if err != nil {
		return domain.ErrTokenMalformed
	}
	if peeked.Kind != domain.TokenKindRefresh {
		return domain.ErrWrongTokenType
	}

	claims, err := s.codec.Verify(raw)
	if err != nil {
		return err
	}

	revoked, err := s.ledger.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return fmt.Errorf("revocation check: %w", err)
	}
	if revoked {
		return domain.ErrTokenRevoked
	}

	// Retain the entry for the token's remaining lifetime; after that the
	// expiry check alone rejects it.
	if err := s.ledger.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	metrics.RevocationsTotal.Inc()

	s.record(domain.AuthEvent{
		UserID:  claims.Subject,
		Action:  domain.ActionLogout,
		TokenID: claims.TokenID,
		At:      time.Now().UTC(),
	})

	return nil
}

func (s *SessionService) record(event domain.AuthEvent) {
	if s.audit != nil {
		s.audit.Enqueue(event)
	}
}

// stripBearer removes an optional "Bearer " scheme marker from a token
// handed over in a request body or Authorization header.
func stripBearer(raw string) string {
	raw = strings.TrimSpace(raw)
	const prefix = "Bearer "
	if len(raw) > len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
		return strings.TrimSpace(raw[len(prefix):])
	}
	return raw
}
