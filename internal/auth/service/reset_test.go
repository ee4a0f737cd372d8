package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/pkg/cryptox"
	"github.com/slimyai/gatehouse/pkg/idx"
)

func TestCreateResetToken(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ResetService{Store: st}

	t.Run("unknown username reports nothing", func(t *testing.T) {
		token, err := svc.CreateResetToken(ctx, "ghost")
		require.NoError(t, err)
		require.Empty(t, token)
	})

	t.Run("disabled account reports nothing", func(t *testing.T) {
		user := seedUser(t, st, "disabledreset", "old password here")
		require.NoError(t, st.Users().SetUserDisabled(ctx, user.ID, true))

		token, err := svc.CreateResetToken(ctx, "disabledreset")
		require.NoError(t, err)
		require.Empty(t, token)
	})

	t.Run("second token invalidates the first", func(t *testing.T) {
		seedUser(t, st, "resetuser", "old password here")

		first, err := svc.CreateResetToken(ctx, "resetuser")
		require.NoError(t, err)
		require.NotEmpty(t, first)

		second, err := svc.CreateResetToken(ctx, "resetuser")
		require.NoError(t, err)
		require.NotEmpty(t, second)

		_, err = svc.ValidateResetToken(ctx, first)
		require.ErrorIs(t, err, ErrResetTokenUsed)

		_, err = svc.ValidateResetToken(ctx, second)
		require.NoError(t, err)
	})
}

func TestValidateResetToken_DistinctReasons(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &ResetService{Store: st}
	user := seedUser(t, st, "reasons", "old password here")

	t.Run("not found", func(t *testing.T) {
		_, err := svc.ValidateResetToken(ctx, cryptox.MustGenerateToken(cryptox.TokenSize256))
		require.ErrorIs(t, err, ErrResetTokenNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		raw := cryptox.MustGenerateToken(cryptox.TokenSize256)
		now := time.Now().UTC()
		require.NoError(t, st.ResetTokens().CreateResetToken(ctx, domain.ResetToken{
			ID:        idx.New().String(),
			TokenHash: cryptox.HashToken(raw),
			UserID:    user.ID,
			ExpiresAt: now.Add(-time.Second),
			CreatedAt: now.Add(-2 * time.Hour),
		}))

		_, err := svc.ValidateResetToken(ctx, raw)
		require.ErrorIs(t, err, ErrResetTokenExpired)
	})

	t.Run("already used", func(t *testing.T) {
		raw := cryptox.MustGenerateToken(cryptox.TokenSize256)
		now := time.Now().UTC()
		used := now.Add(-time.Minute)
		require.NoError(t, st.ResetTokens().CreateResetToken(ctx, domain.ResetToken{
			ID:        idx.New().String(),
			TokenHash: cryptox.HashToken(raw),
			UserID:    user.ID,
			ExpiresAt: now.Add(time.Hour),
			UsedAt:    &used,
			CreatedAt: now,
		}))

		_, err := svc.ValidateResetToken(ctx, raw)
		require.ErrorIs(t, err, ErrResetTokenUsed)
	})
}

func TestExecuteReset(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}
	svc := &ResetService{Store: st, Sessions: sessions}

	user := seedUser(t, st, "executereset", "old password here")

	sessionToken, _, err := sessions.CreateSession(ctx, user.ID, SessionMetadata{})
	require.NoError(t, err)

	resetToken, err := svc.CreateResetToken(ctx, "executereset")
	require.NoError(t, err)

	require.NoError(t, svc.ExecuteReset(ctx, resetToken, "brand new password"))

	t.Run("password is rotated", func(t *testing.T) {
		stored, err := st.Users().GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		require.True(t, cryptox.VerifyPassword("brand new password", stored.PasswordHash))
		require.False(t, cryptox.VerifyPassword("old password here", stored.PasswordHash))
	})

	t.Run("all sessions are revoked", func(t *testing.T) {
		result, err := sessions.ValidateSession(ctx, sessionToken)
		require.NoError(t, err)
		require.Equal(t, domain.SessionErrRevoked, result.Error)
	})

	t.Run("token is single use", func(t *testing.T) {
		err := svc.ExecuteReset(ctx, resetToken, "yet another password")
		require.ErrorIs(t, err, ErrResetTokenUsed)
	})
}

func TestExecuteReset_ConcurrentSingleUse(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	sessions := &SessionService{Store: st}
	svc := &ResetService{Store: st, Sessions: sessions}

	seedUser(t, st, "racingreset", "old password here")

	resetToken, err := svc.CreateResetToken(ctx, "racingreset")
	require.NoError(t, err)

	const attempts = 2
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.ExecuteReset(ctx, resetToken, "brand new password")
		}(i)
	}
	wg.Wait()

	wins := 0
	for i := range attempts {
		if errs[i] == nil {
			wins++
		} else {
			require.ErrorIs(t, errs[i], ErrResetTokenUsed)
		}
	}
	require.Equal(t, 1, wins)
}
