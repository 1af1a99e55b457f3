package domain

import (
	"errors"
	"time"
)

// TokenKind discriminates the two credential types minted by the codec.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Valid reports whether k is one of the known token kinds.
func (k TokenKind) Valid() bool {
	return k == TokenKindAccess || k == TokenKindRefresh
}

var ErrTokenMalformed = errors.New("token is malformed")
var ErrTokenExpired = errors.New("token has expired")
var ErrTokenInvalid = errors.New("token is invalid")
var ErrWrongTokenType = errors.New("wrong token type")
var ErrTokenRevoked = errors.New("token has been revoked")
var ErrMissingToken = errors.New("no refresh token provided")

// TokenClaims is the validated payload of a signed token. TokenID is only
// populated for refresh tokens; it is the handle the revocation ledger is
// keyed by.
type TokenClaims struct {
	Subject   string
	Kind      TokenKind
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
