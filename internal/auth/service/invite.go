package service

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/store"
	"github.com/slimyai/gatehouse/pkg/cryptox"
	"github.com/slimyai/gatehouse/pkg/idx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

var (
	ErrInvalidInviteRequest = errors.New("invalid invite request")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
	ErrEmailAlreadyListed   = errors.New("email already allowlisted")
	ErrWrongAudience        = errors.New("invite was minted for a different audience")
	ErrInvalidUsername      = errors.New("username must be 3-20 characters of letters, digits, underscore or hyphen")
	ErrInvalidPassword      = errors.New("password must be at least 8 characters")
)

// usernamePattern bounds registration usernames.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,20}$`)

const (
	// MaxUsesCeiling caps multi-use invites; requests above it are clamped,
	// not rejected.
	MaxUsesCeiling = 100
	// DefaultMaxUses applies when the caller passes zero or a negative count.
	DefaultMaxUses = 1
)

// InviteValidation is the read-only outcome of checking a plaintext code.
// Rejections are expected and user-facing, so they travel as values rather
// than errors; Reason is empty iff Valid.
type InviteValidation struct {
	Valid         bool
	Reason        string
	Invite        *domain.Invite
	RemainingUses int
}

type InviteService struct {
	Store store.Store
}

// MintInvite creates a new invite and returns the plaintext code. The code
// is shown exactly once; only its hash is persisted.
func (s *InviteService) MintInvite(
	ctx context.Context,
	audience domain.InviteAudience,
	createdBy string,
	maxUses int,
	expiresAt *time.Time,
	note string,
) (string, domain.Invite, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate audience.
	if audience != domain.AudienceOwner && audience != domain.AudienceTrader {
		log.Warn("attempted to mint invite with unknown audience",
			slog.String("audience", string(audience)),
		)
		return "", domain.Invite{}, ErrInvalidInviteRequest
	}

	// 2. Clamp max uses into [1, MaxUsesCeiling]. A past expiresAt is
	// accepted; the invite is simply born expired and validation reports it
	// as such.
	if maxUses < 1 {
		maxUses = DefaultMaxUses
	}
	if maxUses > MaxUsesCeiling {
		maxUses = MaxUsesCeiling
	}

	// 3. Generate the code and hash it for storage.
	code, err := cryptox.GenerateInviteCode()
	if err != nil {
		log.Error("failed to generate invite code", slog.Any("error", err))
		return "", domain.Invite{}, err
	}

	now := time.Now().UTC()
	invite := domain.Invite{
		ID:        idx.New().String(),
		CodeHash:  cryptox.HashInviteCode(code),
		Audience:  audience,
		CreatedBy: createdBy,
		MaxUses:   maxUses,
		UseCount:  0,
		ExpiresAt: expiresAt,
		Note:      strings.TrimSpace(note),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		log.Error("failed to create invite",
			slog.String("invite_id", invite.ID),
			slog.Any("error", err),
		)
		return "", domain.Invite{}, err
	}

	log.Info("invite minted",
		slog.String("invite_id", invite.ID),
		slog.String("audience", string(audience)),
		slog.String("created_by", createdBy),
		slog.Int("max_uses", maxUses),
	)

	return code, invite, nil
}

// ValidateInvite checks a plaintext code without consuming a use. Checks run
// in a fixed order so the first failure wins: not found, revoked, expired,
// exhausted.
func (s *InviteService) ValidateInvite(ctx context.Context, code string) (InviteValidation, error) {
	log := slogx.FromContext(ctx)

	hash := cryptox.HashInviteCode(code)
	invite, err := s.Store.Invites().GetInviteByCodeHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return InviteValidation{Valid: false, Reason: "invite not found"}, nil
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return InviteValidation{}, err
	}

	if invite.RevokedAt != nil {
		return InviteValidation{Valid: false, Reason: "invite has been revoked", Invite: &invite}, nil
	}
	if invite.ExpiresAt != nil && !invite.ExpiresAt.After(time.Now()) {
		return InviteValidation{Valid: false, Reason: "invite has expired", Invite: &invite}, nil
	}
	if invite.Exhausted() {
		return InviteValidation{Valid: false, Reason: "invite has reached its maximum uses", Invite: &invite}, nil
	}

	return InviteValidation{
		Valid:         true,
		Invite:        &invite,
		RemainingUses: invite.MaxUses - invite.UseCount,
	}, nil
}

// RedeemOwnerInvite consumes one use of an owner invite and allowlists the
// email. The conditional use-count increment and the allowlist insert commit
// together or not at all.
func (s *InviteService) RedeemOwnerInvite(ctx context.Context, code string, email string) (domain.AllowlistEntry, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if code == "" || email == "" {
		return domain.AllowlistEntry{}, ErrInvalidInviteRequest
	}

	validation, err := s.ValidateInvite(ctx, code)
	if err != nil {
		return domain.AllowlistEntry{}, err
	}
	if !validation.Valid {
		log.Warn("owner invite redemption rejected",
			slog.String("reason", validation.Reason),
		)
		return domain.AllowlistEntry{}, ErrInviteNotFound
	}
	invite := *validation.Invite

	if invite.Audience != domain.AudienceOwner {
		log.Warn("owner redemption attempted with trader invite",
			slog.String("invite_id", invite.ID),
		)
		return domain.AllowlistEntry{}, ErrWrongAudience
	}

	entry := domain.AllowlistEntry{
		ID:        idx.New().String(),
		Email:     email,
		CreatedBy: invite.CreatedBy,
		Note:      "invite:" + invite.ID,
		CreatedAt: time.Now().UTC(),
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// The conditional update is the gate: it wins or loses the race
		// against concurrent redemptions in a single statement.
		ok, err := tx.Invites().RedeemInvite(ctx, invite.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInviteNotFound
		}
		if err := tx.Allowlist().CreateEntry(ctx, entry); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailAlreadyListed
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrInviteNotFound) && !errors.Is(err, ErrEmailAlreadyListed) {
			log.Error("owner invite redemption failed",
				slog.String("invite_id", invite.ID),
				slog.Any("error", err),
			)
		}
		return domain.AllowlistEntry{}, err
	}

	log.Info("owner invite redeemed",
		slog.String("invite_id", invite.ID),
		slog.String("entry_id", entry.ID),
	)

	return entry, nil
}

// RedeemTraderInvite consumes one use of a trader invite and registers a new
// trader account in the same transaction.
func (s *InviteService) RedeemTraderInvite(
	ctx context.Context,
	code string,
	username string,
	password string,
) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	if code == "" || username == "" || password == "" {
		return domain.User{}, ErrInvalidInviteRequest
	}
	if !usernamePattern.MatchString(username) {
		return domain.User{}, ErrInvalidUsername
	}
	if len(password) < 8 {
		return domain.User{}, ErrInvalidPassword
	}

	validation, err := s.ValidateInvite(ctx, code)
	if err != nil {
		return domain.User{}, err
	}
	if !validation.Valid {
		log.Warn("trader invite redemption rejected",
			slog.String("reason", validation.Reason),
		)
		return domain.User{}, ErrInviteNotFound
	}
	invite := *validation.Invite

	if invite.Audience != domain.AudienceTrader {
		log.Warn("trader redemption attempted with owner invite",
			slog.String("invite_id", invite.ID),
		)
		return domain.User{}, ErrWrongAudience
	}

	// Hash before the transaction; Argon2id is too slow to hold a write
	// transaction open for.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.User{}, err
	}

	now := time.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByUsername(ctx, username); err == nil {
			return ErrUsernameAlreadyTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		ok, err := tx.Invites().RedeemInvite(ctx, invite.ID, time.Now().UTC())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInviteNotFound
		}

		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		if !errors.Is(err, ErrInviteNotFound) && !errors.Is(err, ErrUsernameAlreadyTaken) {
			log.Error("trader invite redemption failed",
				slog.String("invite_id", invite.ID),
				slog.Any("error", err),
			)
		}
		return domain.User{}, err
	}

	log.Info("trader registered via invite",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
		slog.String("invite_id", invite.ID),
	)

	return user, nil
}

// RevokeInvite permanently invalidates an invite. Revoking an invite that is
// already revoked or missing returns ErrInviteNotFound.
func (s *InviteService) RevokeInvite(ctx context.Context, inviteID string) error {
	log := slogx.FromContext(ctx)

	ok, err := s.Store.Invites().RevokeInvite(ctx, inviteID, time.Now().UTC())
	if err != nil {
		log.Error("failed to revoke invite",
			slog.String("invite_id", inviteID),
			slog.Any("error", err),
		)
		return err
	}
	if !ok {
		return ErrInviteNotFound
	}

	log.Info("invite revoked", slog.String("invite_id", inviteID))
	return nil
}

// ListInvites returns every invite for an audience, newest first.
func (s *InviteService) ListInvites(ctx context.Context, audience domain.InviteAudience) ([]domain.Invite, error) {
	if audience != domain.AudienceOwner && audience != domain.AudienceTrader {
		return nil, ErrInvalidInviteRequest
	}
	return s.Store.Invites().ListInvites(ctx, audience)
}
