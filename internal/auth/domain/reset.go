package domain

import "time"

// ResetToken is a time-limited, single-use password reset credential. Like
// sessions and invites, only the hash is stored. At most one live token
// exists per user: minting a new one invalidates its predecessors.
type ResetToken struct {
	ID        string
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}
