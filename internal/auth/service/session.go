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

// DefaultSessionTTL is the lifetime of a freshly issued session.
const DefaultSessionTTL = 24 * time.Hour

var ErrSessionNotFound = errors.New("session not found")

type SessionService struct {
	Store store.Store

	// TTL applied to new sessions. Zero means DefaultSessionTTL.
	TTL time.Duration
}

// SessionMetadata carries request provenance captured at login.
type SessionMetadata struct {
	IPAddress string
	UserAgent string
}

// Provenance columns are metadata, not identity; oversized values are cut,
// not rejected.
const (
	maxIPLength        = 45 // fits IPv6 with an IPv4-mapped suffix
	maxUserAgentLength = 500
)

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultSessionTTL
}

// CreateSession mints a bearer token for the user and persists its hash.
// The raw token is returned once and never stored.
func (s *SessionService) CreateSession(ctx context.Context, userID string, meta SessionMetadata) (string, domain.Session, error) {
	log := slogx.FromContext(ctx)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate session token", slog.Any("error", err))
		return "", domain.Session{}, err
	}

	now := time.Now().UTC()
	session := domain.Session{
		ID:        idx.New().String(),
		TokenHash: cryptox.HashToken(token),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl()),
		IPAddress: truncate(meta.IPAddress, maxIPLength),
		UserAgent: truncate(meta.UserAgent, maxUserAgentLength),
		CreatedAt: now,
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		log.Error("failed to persist session",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return "", domain.Session{}, err
	}

	log.Debug("session created",
		slog.String("session_id", session.ID),
		slog.String("user_id", userID),
		slog.Time("expires_at", session.ExpiresAt),
	)

	return token, session, nil
}

// ValidateSession resolves a presented token to exactly one of six terminal
// states. Rejections are values, not errors; the error return is reserved
// for storage failures.
func (s *SessionService) ValidateSession(ctx context.Context, token string) (domain.AuthResult, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.AuthResult{Error: domain.SessionErrAbsent}, nil
	}

	hash := cryptox.HashToken(token)
	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, hash)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.AuthResult{Error: domain.SessionErrInvalid}, nil
		}
		log.Error("failed to fetch session", slog.Any("error", err))
		return domain.AuthResult{}, err
	}

	if session.RevokedAt != nil {
		return domain.AuthResult{SessionID: session.ID, Error: domain.SessionErrRevoked}, nil
	}

	// The boundary is exclusive: a session expiring exactly now is expired.
	if !session.ExpiresAt.After(time.Now()) {
		return domain.AuthResult{SessionID: session.ID, Error: domain.SessionErrExpired}, nil
	}

	user, err := s.Store.Users().GetUserByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Orphaned session; treat the token as invalid.
			return domain.AuthResult{Error: domain.SessionErrInvalid}, nil
		}
		log.Error("failed to fetch session user", slog.Any("error", err))
		return domain.AuthResult{}, err
	}
	if user.Disabled {
		return domain.AuthResult{SessionID: session.ID, Error: domain.SessionErrUserOff}, nil
	}

	// Best-effort activity stamp; validation never waits on it.
	go func(sessionID string) {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.Store.Sessions().UpdateLastSeen(ctx, sessionID, time.Now().UTC()); err != nil {
			log.Debug("failed to stamp last_seen_at",
				slog.String("session_id", sessionID),
				slog.Any("error", err),
			)
		}
	}(session.ID)

	return domain.AuthResult{
		Authenticated: true,
		SessionID:     session.ID,
		User: &domain.SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Disabled: user.Disabled,
		},
	}, nil
}

// RevokeSession logs out one session. Idempotent.
func (s *SessionService) RevokeSession(ctx context.Context, sessionID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Sessions().RevokeSession(ctx, sessionID, time.Now().UTC()); err != nil {
		log.Error("failed to revoke session",
			slog.String("session_id", sessionID),
			slog.Any("error", err),
		)
		return err
	}

	log.Debug("session revoked", slog.String("session_id", sessionID))
	return nil
}

// RevokeAllUserSessions forces logout everywhere for a user.
func (s *SessionService) RevokeAllUserSessions(ctx context.Context, userID string) error {
	log := slogx.FromContext(ctx)

	if err := s.Store.Sessions().RevokeAllUserSessions(ctx, userID, time.Now().UTC()); err != nil {
		log.Error("failed to revoke user sessions",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return err
	}

	log.Info("all sessions revoked", slog.String("user_id", userID))
	return nil
}
