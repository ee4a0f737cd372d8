package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/store"
	"github.com/slimyai/gatehouse/pkg/cryptox"
	"github.com/slimyai/gatehouse/pkg/idx"
	"github.com/slimyai/gatehouse/pkg/slogx"
)

const (
	// RateLimitWindow is the trailing window failed attempts are counted in.
	RateLimitWindow = 15 * time.Minute
	// MaxUsernameFailures locks a username once reached within the window.
	MaxUsernameFailures = 5
	// MaxIPFailures locks an IP once reached within the window.
	MaxIPFailures = 20

	// attemptRetention is how long ledger rows are kept before pruning.
	attemptRetention = 24 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTOTPRequired       = errors.New("totp code required")
	ErrRateLimited        = errors.New("too many failed login attempts")
	ErrAccountDisabled    = errors.New("account disabled")
)

// decoyHash is verified against when the username does not exist, keeping
// the unknown-user path as slow as a real password check.
var decoyHash = sync.OnceValue(func() string {
	h, err := cryptox.HashPassword(idx.New().String())
	if err != nil {
		return ""
	}
	return h
})

type LoginService struct {
	Store    store.Store
	Sessions *SessionService
	TOTP     *TOTPService
}

// CheckLoginRateLimit decides whether a login may proceed before credentials
// are examined. The username lock takes precedence over the IP lock when
// both apply; RemainingAttempts is the tighter of the two budgets.
func (s *LoginService) CheckLoginRateLimit(ctx context.Context, username, ip string) (domain.RateLimitResult, error) {
	log := slogx.FromContext(ctx)

	now := time.Now().UTC()
	since := now.Add(-RateLimitWindow)

	userFails, err := s.Store.LoginAttempts().FailureTimesByUsernameSince(ctx, username, since)
	if err != nil {
		log.Error("failed to count username failures", slog.Any("error", err))
		return domain.RateLimitResult{}, err
	}
	ipFails, err := s.Store.LoginAttempts().FailureTimesByIPSince(ctx, ip, since)
	if err != nil {
		log.Error("failed to count ip failures", slog.Any("error", err))
		return domain.RateLimitResult{}, err
	}

	if len(userFails) >= MaxUsernameFailures {
		// The lock lifts when the oldest in-window failure ages out.
		until := userFails[0].Add(RateLimitWindow)
		log.Warn("login blocked by username lockout",
			slog.String("username", username),
			slog.Time("lockout_until", until),
		)
		return domain.RateLimitResult{
			Allowed:      false,
			LockoutUntil: &until,
			Reason:       domain.RateLimitUsernameLocked,
		}, nil
	}

	if len(ipFails) >= MaxIPFailures {
		until := ipFails[0].Add(RateLimitWindow)
		log.Warn("login blocked by ip lockout",
			slog.String("ip", ip),
			slog.Time("lockout_until", until),
		)
		return domain.RateLimitResult{
			Allowed:      false,
			LockoutUntil: &until,
			Reason:       domain.RateLimitIPLocked,
		}, nil
	}

	remaining := MaxUsernameFailures - len(userFails)
	if ipRemaining := MaxIPFailures - len(ipFails); ipRemaining < remaining {
		remaining = ipRemaining
	}

	return domain.RateLimitResult{
		Allowed:           true,
		RemainingAttempts: remaining,
	}, nil
}

// RecordLoginAttempt appends a ledger row and opportunistically prunes rows
// older than a day. Pruning failures never surface.
func (s *LoginService) RecordLoginAttempt(ctx context.Context, username, ip string, success bool) error {
	log := slogx.FromContext(ctx)

	attempt := domain.LoginAttempt{
		ID:          idx.New().String(),
		Username:    username,
		IPAddress:   ip,
		Success:     success,
		AttemptedAt: time.Now().UTC(),
	}
	if err := s.Store.LoginAttempts().CreateLoginAttempt(ctx, attempt); err != nil {
		log.Error("failed to record login attempt", slog.Any("error", err))
		return err
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cutoff := time.Now().UTC().Add(-attemptRetention)
		if err := s.Store.LoginAttempts().DeleteAttemptsBefore(ctx, cutoff); err != nil {
			log.Debug("failed to prune login attempts", slog.Any("error", err))
		}
	}()

	return nil
}

// Login runs the full password login flow: rate-limit gate, credential
// check, optional TOTP step, session issuance. Every credential failure is
// reported as ErrInvalidCredentials so response shape never leaks whether
// the username exists.
func (s *LoginService) Login(
	ctx context.Context,
	username string,
	password string,
	totpCode string,
	meta SessionMetadata,
) (string, domain.Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Rate-limit gate before any credential work.
	limit, err := s.CheckLoginRateLimit(ctx, username, meta.IPAddress)
	if err != nil {
		return "", domain.Session{}, err
	}
	if !limit.Allowed {
		return "", domain.Session{}, ErrRateLimited
	}

	// 2. Resolve the user. A miss still runs a verify against a throwaway
	// hash so response timing does not reveal whether the username exists.
	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.VerifyPassword(password, decoyHash())
			if err := s.RecordLoginAttempt(ctx, username, meta.IPAddress, false); err != nil {
				return "", domain.Session{}, err
			}
			return "", domain.Session{}, ErrInvalidCredentials
		}
		log.Error("failed to fetch user for login", slog.Any("error", err))
		return "", domain.Session{}, err
	}

	// 3. Disabled accounts are refused before any credential work.
	if user.Disabled {
		return "", domain.Session{}, ErrAccountDisabled
	}

	// 4. Verify the password.
	if !cryptox.VerifyPassword(password, user.PasswordHash) {
		log.Warn("login with wrong password",
			slog.String("username", username),
		)
		if err := s.RecordLoginAttempt(ctx, username, meta.IPAddress, false); err != nil {
			return "", domain.Session{}, err
		}
		return "", domain.Session{}, ErrInvalidCredentials
	}

	// 5. TOTP step for enrolled users.
	if user.TOTPEnabled != nil {
		if totpCode == "" {
			return "", domain.Session{}, ErrTOTPRequired
		}
		if !s.TOTP.VerifyCode(user.TOTPSecret, totpCode) {
			log.Warn("login with wrong totp code",
				slog.String("username", username),
			)
			if err := s.RecordLoginAttempt(ctx, username, meta.IPAddress, false); err != nil {
				return "", domain.Session{}, err
			}
			return "", domain.Session{}, ErrInvalidCredentials
		}
	}

	// 6. Record the success. It does not reset the failure window; the
	// window is purely time-based.
	if err := s.RecordLoginAttempt(ctx, username, meta.IPAddress, true); err != nil {
		return "", domain.Session{}, err
	}

	token, session, err := s.Sessions.CreateSession(ctx, user.ID, meta)
	if err != nil {
		return "", domain.Session{}, err
	}

	log.Info("login succeeded",
		slog.String("user_id", user.ID),
		slog.String("session_id", session.ID),
	)

	return token, session, nil
}
