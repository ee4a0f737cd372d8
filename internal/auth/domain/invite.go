package domain

import "time"

// InviteAudience distinguishes the two structurally identical invite
// variants: owner invites grant allowlist membership on the admin product,
// trader invites grant registration eligibility on the trader app.
type InviteAudience string

const (
	AudienceOwner  InviteAudience = "owner"
	AudienceTrader InviteAudience = "trader"
)

// Invite is a limited-use credential. Only the SHA-256 hash of the code is
// ever stored; the plaintext exists once, at mint time.
type Invite struct {
	ID        string
	CodeHash  string
	Audience  InviteAudience
	CreatedBy string
	MaxUses   int
	UseCount  int
	ExpiresAt *time.Time // nil means never expires
	RevokedAt *time.Time // non-nil means permanently invalid
	UsedAt    *time.Time // last successful redemption
	Note      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exhausted reports whether every use has been consumed. An exhausted invite
// is permanently invalid but is not auto-revoked.
func (i Invite) Exhausted() bool {
	return i.UseCount >= i.MaxUses
}
