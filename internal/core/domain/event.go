package domain

import "time"

// AuthAction identifies the session operation an audit event records.
type AuthAction string

const (
	ActionLogin   AuthAction = "login"
	ActionRefresh AuthAction = "refresh"
	ActionLogout  AuthAction = "logout"
)

// AuthEvent is one entry in the authentication audit trail.
type AuthEvent struct {
	UserID  string     `json:"user_id"`
	Action  AuthAction `json:"action"`
	TokenID string     `json:"token_id,omitempty"` // refresh jti, when known
	At      time.Time  `json:"at"`
}
