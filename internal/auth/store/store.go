package store

import (
	"context"
	"errors"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Users() Users
	Invites() Invites
	Sessions() Sessions
	ResetTokens() ResetTokens
	LoginAttempts() LoginAttempts
	Allowlist() Allowlist

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. All reads and
	// writes inside fn must go through the Tx it receives, never through the
	// outer Store.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is the login-path lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetUserDisabled toggles the account-wide disable flag. Existing
	// sessions of a disabled user fail validation on their next use.
	SetUserDisabled(ctx context.Context, userID string, disabled bool) error

	// UpdateTOTPSecret stores an enrolment secret without enabling TOTP.
	UpdateTOTPSecret(ctx context.Context, userID string, secret string) error

	// EnableTOTP marks TOTP as verified and active for the user.
	EnableTOTP(ctx context.Context, userID string) error
}

type Invites interface {
	// CreateInvite writes a new invite (code_hash is SHA-256 of the
	// normalized plaintext code).
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByCodeHash returns an invite by hash regardless of state;
	// fail-closed filtering happens in the service so rejection reasons stay
	// distinguishable.
	GetInviteByCodeHash(ctx context.Context, hash string) (domain.Invite, error)

	// GetInviteByID returns an invite by id.
	GetInviteByID(ctx context.Context, id string) (domain.Invite, error)

	// RedeemInvite performs the atomic conditional increment: use_count is
	// bumped only if the invite is unrevoked, unexpired and not exhausted at
	// the instant of the update. Returns true iff exactly one row changed.
	RedeemInvite(ctx context.Context, inviteID string, now time.Time) (bool, error)

	// RevokeInvite stamps revoked_at. Returns true if a row matched.
	RevokeInvite(ctx context.Context, inviteID string, now time.Time) (bool, error)

	// ListInvites returns all invites for an audience, newest first.
	ListInvites(ctx context.Context, audience domain.InviteAudience) ([]domain.Invite, error)
}

type Sessions interface {
	// CreateSession stores a new session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns the session by its hashed bearer token.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// UpdateLastSeen stamps last_seen_at. Best-effort callers ignore errors.
	UpdateLastSeen(ctx context.Context, sessionID string, at time.Time) error

	// RevokeSession stamps revoked_at on one session. Revoking an already
	// revoked session is a no-op, not an error.
	RevokeSession(ctx context.Context, sessionID string, now time.Time) error

	// RevokeAllUserSessions bulk-revokes every active session of a user
	// (logout everywhere, forced logout on password reset).
	RevokeAllUserSessions(ctx context.Context, userID string, now time.Time) error

	// DeleteSessionsExpiredBefore removes long-dead sessions (housekeeping).
	DeleteSessionsExpiredBefore(ctx context.Context, cutoff time.Time) error
}

type ResetTokens interface {
	// CreateResetToken stores a freshly minted reset token.
	CreateResetToken(ctx context.Context, t domain.ResetToken) error

	// GetResetTokenByHash fetches a token by its hashed value.
	GetResetTokenByHash(ctx context.Context, hash string) (domain.ResetToken, error)

	// MarkResetTokenUsed consumes a token. The conditional update is the
	// single-use guard: it returns true iff this call was the one that
	// burned the token, mirroring Invites.RedeemInvite.
	MarkResetTokenUsed(ctx context.Context, id string, now time.Time) (bool, error)

	// InvalidateUserResetTokens marks all outstanding tokens of a user used,
	// enforcing the at-most-one-live-token rule before a new mint.
	InvalidateUserResetTokens(ctx context.Context, userID string, now time.Time) error

	// DeleteDeadResetTokens removes used or expired tokens (housekeeping).
	DeleteDeadResetTokens(ctx context.Context, now time.Time) error
}

type LoginAttempts interface {
	// CreateLoginAttempt appends a ledger row.
	CreateLoginAttempt(ctx context.Context, a domain.LoginAttempt) error

	// FailureTimesByUsernameSince returns the attempted_at of every failed
	// attempt for the username since the cutoff, oldest first.
	FailureTimesByUsernameSince(ctx context.Context, username string, since time.Time) ([]time.Time, error)

	// FailureTimesByIPSince is the IP-scoped counterpart.
	FailureTimesByIPSince(ctx context.Context, ip string, since time.Time) ([]time.Time, error)

	// DeleteAttemptsBefore prunes ledger rows older than the cutoff.
	DeleteAttemptsBefore(ctx context.Context, cutoff time.Time) error
}

type Allowlist interface {
	// CreateEntry inserts an allowlist row.
	CreateEntry(ctx context.Context, e domain.AllowlistEntry) error

	// GetEntryByEmail returns an entry by (unique) email.
	GetEntryByEmail(ctx context.Context, email string) (domain.AllowlistEntry, error)

	// ListEntries returns all non-revoked entries, newest first.
	ListEntries(ctx context.Context) ([]domain.AllowlistEntry, error)
}
