package domain

import "time"

// User is a trader-app account, created only through invite redemption.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Disabled     bool
	TOTPSecret   string     // empty until enrolment
	TOTPEnabled  *time.Time // nil until a code has been verified
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionUser is the read-only projection returned on successful session
// validation.
type SessionUser struct {
	ID       string
	Username string
	Disabled bool
}

// AllowlistEntry grants an email owner access on the admin product. Entries
// are created by invite redemption or bootstrap seeding; the Note records
// provenance (loose coupling, not a foreign key).
type AllowlistEntry struct {
	ID        string
	Email     string
	CreatedBy string
	Note      string
	RevokedAt *time.Time
	CreatedAt time.Time
}
