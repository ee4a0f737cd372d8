package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/store"
	"github.com/slimyai/gatehouse/pkg/cryptox"
	"github.com/slimyai/gatehouse/pkg/idx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

// DefaultResetTokenTTL is the lifetime of a password reset token.
const DefaultResetTokenTTL = time.Hour

var (
	ErrResetTokenNotFound = errors.New("reset token not found")
	ErrResetTokenUsed     = errors.New("reset token already used")
	ErrResetTokenExpired  = errors.New("reset token expired")
)

type ResetService struct {
	Store    store.Store
	Sessions *SessionService

	// TTL applied to new reset tokens. Zero means DefaultResetTokenTTL.
	TTL time.Duration
}

func (s *ResetService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultResetTokenTTL
}

// CreateResetToken mints a reset token for the username and returns the raw
// token. Any outstanding token for the user is invalidated first, so at most
// one live token exists per user.
//
// For an unknown username it returns ("", nil): callers present the same
// response either way and never confirm account existence.
func (s *ResetService) CreateResetToken(ctx context.Context, username string) (string, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("reset requested for unknown username")
			return "", nil
		}
		log.Error("failed to fetch user for reset", slog.Any("error", err))
		return "", err
	}
	if user.Disabled {
		// Same silent outcome as an unknown username.
		log.Debug("reset requested for disabled account")
		return "", nil
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate reset token", slog.Any("error", err))
		return "", err
	}

	now := time.Now().UTC()
	record := domain.ResetToken{
		ID:        idx.New().String(),
		TokenHash: cryptox.HashToken(token),
		UserID:    user.ID,
		ExpiresAt: now.Add(s.ttl()),
		CreatedAt: now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetTokens().InvalidateUserResetTokens(ctx, user.ID, now); err != nil {
			return err
		}
		return tx.ResetTokens().CreateResetToken(ctx, record)
	})
	if err != nil {
		log.Error("failed to store reset token",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
		return "", err
	}

	log.Info("reset token issued",
		slog.String("user_id", user.ID),
		slog.String("token_id", record.ID),
	)

	return token, nil
}

// ValidateResetToken resolves a raw token to its record, distinguishing the
// three rejection causes.
func (s *ResetService) ValidateResetToken(ctx context.Context, token string) (domain.ResetToken, error) {
	record, err := s.Store.ResetTokens().GetResetTokenByHash(ctx, cryptox.HashToken(token))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.ResetToken{}, ErrResetTokenNotFound
		}
		return domain.ResetToken{}, err
	}
	if record.UsedAt != nil {
		return domain.ResetToken{}, ErrResetTokenUsed
	}
	if !record.ExpiresAt.After(time.Now()) {
		return domain.ResetToken{}, ErrResetTokenExpired
	}
	return record, nil
}

// ExecuteReset consumes a valid token: the password update, the bulk session
// revocation, and the token burn commit as one transaction. If any step
// fails nothing is applied and the token stays live.
func (s *ResetService) ExecuteReset(ctx context.Context, token string, newPassword string) error {
	log := slogx.FromContext(ctx)

	record, err := s.ValidateResetToken(ctx, token)
	if err != nil {
		return err
	}

	newHash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash new password", slog.Any("error", err))
		return err
	}

	now := time.Now().UTC()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		// The conditional burn is the gate against concurrent executes with
		// the same token: the loser's password update and session
		// revocation roll back with it.
		ok, err := tx.ResetTokens().MarkResetTokenUsed(ctx, record.ID, now)
		if err != nil {
			return err
		}
		if !ok {
			return ErrResetTokenUsed
		}
		if err := tx.Users().UpdatePasswordHash(ctx, record.UserID, newHash); err != nil {
			return err
		}
		return tx.Sessions().RevokeAllUserSessions(ctx, record.UserID, now)
	})
	if err != nil {
		if !errors.Is(err, ErrResetTokenUsed) {
			log.Error("password reset failed",
				slog.String("user_id", record.UserID),
				slog.Any("error", err),
			)
		}
		return err
	}

	log.Info("password reset executed",
		slog.String("user_id", record.UserID),
		slog.String("token_id", record.ID),
	)

	return nil
}
