package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/accounthub/account-system/internal/core/domain"
)

// signedClaims is the on-the-wire JWT payload. token_type discriminates
// access from refresh; refresh tokens also carry a jti (RegisteredClaims.ID)
// so they can be revoked individually.
type signedClaims struct {
	jwt.RegisteredClaims
	TokenType string `json:"token_type"`
}

// Codec signs and decodes HS256 JWTs.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue mints a signed token of the given kind for subject, expiring after
// ttl. Refresh tokens get a fresh uuid as their jti.
func (c *Codec) Issue(kind domain.TokenKind, subject string, ttl time.Duration) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("issue token: unknown kind %q", kind)
	}
	if subject == "" {
		return "", fmt.Errorf("issue token: empty subject")
	}

	now := time.Now().UTC()
	claims := signedClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		TokenType: string(kind),
	}
	if kind == domain.TokenKindRefresh {
		claims.ID = uuid.NewString()
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks signature and expiry atomically and returns the validated
// claims. Failures collapse to ErrTokenMalformed, ErrTokenExpired or
// ErrTokenInvalid.
func (c *Codec) Verify(raw string) (*domain.TokenClaims, error) {
	sc := &signedClaims{}
	tkn, err := jwt.ParseWithClaims(raw, sc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, domain.ErrTokenMalformed
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrTokenExpired
		default:
			return nil, domain.ErrTokenInvalid
		}
	}
	if !tkn.Valid {
		return nil, domain.ErrTokenInvalid
	}
	return toDomainClaims(sc)
}

// Peek decodes claims without verifying the signature or expiry. Only for
// diagnostic branching; never an authorization input.
func (c *Codec) Peek(raw string) (*domain.TokenClaims, error) {
	sc := &signedClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, sc); err != nil {
		return nil, domain.ErrTokenMalformed
	}
	return toDomainClaims(sc)
}

// toDomainClaims validates structural requirements: subject and expiry must
// be present, token_type must be known, refresh tokens must carry a jti.
func toDomainClaims(sc *signedClaims) (*domain.TokenClaims, error) {
	kind := domain.TokenKind(sc.TokenType)
	if sc.Subject == "" || sc.ExpiresAt == nil || !kind.Valid() {
		return nil, domain.ErrTokenMalformed
	}
	if kind == domain.TokenKindRefresh && sc.ID == "" {
		return nil, domain.ErrTokenMalformed
	}

	claims := &domain.TokenClaims{
		Subject:   sc.Subject,
		Kind:      kind,
		TokenID:   sc.ID,
		ExpiresAt: sc.ExpiresAt.Time,
	}
	if sc.IssuedAt != nil {
		claims.IssuedAt = sc.IssuedAt.Time
	}
	return claims, nil
}
