package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/accounthub/account-system/internal/core/domain"
)

func TestCodec_RoundTrip_Refresh(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Issue(domain.TokenKindRefresh, "5", 7*24*time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Subject != "5" {
		t.Fatalf("expected subject 5, got %q", claims.Subject)
	}
	if claims.Kind != domain.TokenKindRefresh {
		t.Fatalf("expected refresh kind, got %q", claims.Kind)
	}
	if claims.TokenID == "" {
		t.Fatalf("refresh token missing jti")
	}

	wantExp := time.Now().Add(7 * 24 * time.Hour)
	if d := claims.ExpiresAt.Sub(wantExp); d < -time.Minute || d > time.Minute {
		t.Fatalf("expiry off by %v", d)
	}
}

func TestCodec_RoundTrip_Access(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Issue(domain.TokenKindAccess, "user-1", 15*time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Kind != domain.TokenKindAccess {
		t.Fatalf("expected access kind, got %q", claims.Kind)
	}
	if claims.TokenID != "" {
		t.Fatalf("access token should not carry a jti, got %q", claims.TokenID)
	}
}

func TestCodec_Issue_Validation(t *testing.T) {
	codec := NewCodec("secret")

	if _, err := codec.Issue("session", "1", time.Hour); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
	if _, err := codec.Issue(domain.TokenKindAccess, "", time.Hour); err == nil {
		t.Fatalf("expected error for empty subject")
	}
}

func TestCodec_Verify_Expired(t *testing.T) {
	codec := NewCodec("secret")

	raw, err := codec.Issue(domain.TokenKindAccess, "1", -time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestCodec_Verify_WrongSecret(t *testing.T) {
	other := NewCodec("other-secret")
	raw, err := other.Issue(domain.TokenKindRefresh, "1", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec := NewCodec("secret")
	if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestCodec_Verify_Malformed(t *testing.T) {
	codec := NewCodec("secret")
	if _, err := codec.Verify("not-a-token"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Verify_MissingTokenType(t *testing.T) {
	// A structurally valid JWT signed with the right secret but without a
	// token_type claim must be rejected.
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	codec := NewCodec("secret")
	if _, err := codec.Verify(raw); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestCodec_Peek_IgnoresSignatureAndExpiry(t *testing.T) {
	// Peek must decode claims from tokens Verify would reject.
	other := NewCodec("other-secret")
	raw, err := other.Issue(domain.TokenKindRefresh, "42", -time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	codec := NewCodec("secret")
	claims, err := codec.Peek(raw)
	if err != nil {
		t.Fatalf("peek: %v", err)
	}
	if claims.Subject != "42" || claims.Kind != domain.TokenKindRefresh {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestCodec_Peek_Malformed(t *testing.T) {
	codec := NewCodec("secret")
	if _, err := codec.Peek("garbage"); !errors.Is(err, domain.ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}
