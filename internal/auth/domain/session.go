package domain

import "time"

// Session is the server-side record backing a bearer token held in a cookie.
// Only the token's SHA-256 hash is stored.
type Session struct {
	ID         string
	TokenHash  string
	UserID     string
	ExpiresAt  time.Time
	RevokedAt  *time.Time
	LastSeenAt *time.Time
	IPAddress  string // truncated provenance metadata
	UserAgent  string
	CreatedAt  time.Time
}

// SessionError enumerates the terminal unauthenticated outcomes of session
// validation.
type SessionError string

const (
	SessionErrNone    SessionError = ""
	SessionErrAbsent  SessionError = "no_session"
	SessionErrInvalid SessionError = "invalid_session"
	SessionErrRevoked SessionError = "revoked"
	SessionErrExpired SessionError = "expired"
	SessionErrUserOff SessionError = "disabled"
)

// AuthResult is the outcome of validating a presented session token.
// Exactly one of the six terminal states holds: authenticated, or one of the
// five SessionError values.
type AuthResult struct {
	Authenticated bool
	User          *SessionUser
	SessionID     string
	Error         SessionError
}
