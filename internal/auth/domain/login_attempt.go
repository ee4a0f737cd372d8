package domain

import "time"

// LoginAttempt is one row of the append-only rate-limit ledger. Rows older
// than a day are pruned opportunistically; pruning failures never surface.
type LoginAttempt struct {
	ID          string
	Username    string
	IPAddress   string
	Success     bool
	AttemptedAt time.Time
}

// RateLimitReason explains why a login was refused before credentials were
// even checked.
type RateLimitReason string

const (
	RateLimitUsernameLocked RateLimitReason = "username_locked"
	RateLimitIPLocked       RateLimitReason = "ip_locked"
)

// RateLimitResult is the outcome of a pre-login lockout check.
type RateLimitResult struct {
	Allowed           bool
	RemainingAttempts int
	LockoutUntil      *time.Time
	Reason            RateLimitReason
}
