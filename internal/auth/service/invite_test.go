package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/store"
	"github.com/slimyai/gatehouse/pkg/cryptox"
	"github.com/slimyai/gatehouse/pkg/idx"
)

func TestMintInvite_ClampsMaxUses(t *testing.T) {
	ctx := context.Background()
	svc := &InviteService{Store: newTestStore(t)}

	t.Run("zero defaults to one", func(t *testing.T) {
		_, inv, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 0, nil, "")
		require.NoError(t, err)
		require.Equal(t, 1, inv.MaxUses)
	})

	t.Run("negative defaults to one", func(t *testing.T) {
		_, inv, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", -5, nil, "")
		require.NoError(t, err)
		require.Equal(t, 1, inv.MaxUses)
	})

	t.Run("above the ceiling is clamped", func(t *testing.T) {
		_, inv, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 5000, nil, "")
		require.NoError(t, err)
		require.Equal(t, MaxUsesCeiling, inv.MaxUses)
	})

	t.Run("in-range value kept as-is", func(t *testing.T) {
		_, inv, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 7, nil, "")
		require.NoError(t, err)
		require.Equal(t, 7, inv.MaxUses)
	})
}

func TestMintInvite_InputHandling(t *testing.T) {
	ctx := context.Background()
	svc := &InviteService{Store: newTestStore(t)}

	t.Run("unknown audience", func(t *testing.T) {
		_, _, err := svc.MintInvite(ctx, "superuser", "admin", 1, nil, "")
		require.ErrorIs(t, err, ErrInvalidInviteRequest)
	})

	t.Run("past expiry is accepted, not rejected", func(t *testing.T) {
		past := time.Now().UTC().Add(-time.Minute)
		code, _, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 1, &past, "")
		require.NoError(t, err)

		v, err := svc.ValidateInvite(ctx, code)
		require.NoError(t, err)
		require.False(t, v.Valid)
		require.Contains(t, v.Reason, "expired")
	})
}

func TestValidateInvite_FailClosed(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InviteService{Store: st}

	t.Run("unknown code", func(t *testing.T) {
		v, err := svc.ValidateInvite(ctx, "ZZZZ-ZZZZ-ZZZZ-ZZZZ")
		require.NoError(t, err)
		require.False(t, v.Valid)
		require.Contains(t, v.Reason, "not found")
	})

	t.Run("revoked wins over everything after lookup", func(t *testing.T) {
		code, inv, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 1, nil, "")
		require.NoError(t, err)
		require.NoError(t, svc.RevokeInvite(ctx, inv.ID))

		v, err := svc.ValidateInvite(ctx, code)
		require.NoError(t, err)
		require.False(t, v.Valid)
		require.Contains(t, v.Reason, "revoked")
	})

	t.Run("expired", func(t *testing.T) {
		expired := time.Now().UTC().Add(-time.Second)
		code := cryptox.MustGenerateToken(cryptox.TokenSize128)
		require.NoError(t, st.Invites().CreateInvite(ctx, domain.Invite{
			ID:        idx.New().String(),
			CodeHash:  cryptox.HashInviteCode(code),
			Audience:  domain.AudienceTrader,
			CreatedBy: "admin",
			MaxUses:   1,
			ExpiresAt: &expired,
		}))

		v, err := svc.ValidateInvite(ctx, code)
		require.NoError(t, err)
		require.False(t, v.Valid)
		require.Contains(t, v.Reason, "expired")
	})

	t.Run("exhausted", func(t *testing.T) {
		code := cryptox.MustGenerateToken(cryptox.TokenSize128)
		require.NoError(t, st.Invites().CreateInvite(ctx, domain.Invite{
			ID:        idx.New().String(),
			CodeHash:  cryptox.HashInviteCode(code),
			Audience:  domain.AudienceTrader,
			CreatedBy: "admin",
			MaxUses:   1,
			UseCount:  1,
		}))

		v, err := svc.ValidateInvite(ctx, code)
		require.NoError(t, err)
		require.False(t, v.Valid)
		require.Contains(t, v.Reason, "maximum uses")
	})

	t.Run("valid invite reports remaining uses", func(t *testing.T) {
		code, _, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 5, nil, "")
		require.NoError(t, err)

		v, err := svc.ValidateInvite(ctx, code)
		require.NoError(t, err)
		require.True(t, v.Valid)
		require.Empty(t, v.Reason)
		require.Equal(t, 5, v.RemainingUses)
	})

	t.Run("code form is irrelevant", func(t *testing.T) {
		code, _, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 1, nil, "")
		require.NoError(t, err)

		mangled := " " + code[:4] + " " + code[5:]
		v, err := svc.ValidateInvite(ctx, mangled)
		require.NoError(t, err)
		require.True(t, v.Valid)
	})
}

func TestRedeemInvite_ConcurrentRespectsMaxUses(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InviteService{Store: st}

	_, inv, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 2, nil, "")
	require.NoError(t, err)

	const attempts = 3
	results := make([]bool, attempts)
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = st.Invites().RedeemInvite(ctx, inv.ID, time.Now().UTC())
		}(i)
	}
	wg.Wait()

	wins := 0
	for i := range attempts {
		require.NoError(t, errs[i])
		if results[i] {
			wins++
		}
	}
	require.Equal(t, 2, wins)

	after, err := st.Invites().GetInviteByID(ctx, inv.ID)
	require.NoError(t, err)
	require.Equal(t, 2, after.UseCount)
}

func TestRedeemOwnerInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InviteService{Store: st}

	t.Run("allowlists the email and consumes a use", func(t *testing.T) {
		code, inv, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 1, nil, "")
		require.NoError(t, err)

		entry, err := svc.RedeemOwnerInvite(ctx, code, "Boss@Slimy.AI ")
		require.NoError(t, err)
		require.Equal(t, "boss@slimy.ai", entry.Email)

		stored, err := st.Allowlist().GetEntryByEmail(ctx, "boss@slimy.ai")
		require.NoError(t, err)
		require.Equal(t, entry.ID, stored.ID)

		after, err := st.Invites().GetInviteByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, 1, after.UseCount)
		require.NotNil(t, after.UsedAt)
	})

	t.Run("failed redemption is a complete no-op", func(t *testing.T) {
		code, inv, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 1, nil, "")
		require.NoError(t, err)
		require.NoError(t, svc.RevokeInvite(ctx, inv.ID))

		_, err = svc.RedeemOwnerInvite(ctx, code, "nobody@slimy.ai")
		require.ErrorIs(t, err, ErrInviteNotFound)

		after, err := st.Invites().GetInviteByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, 0, after.UseCount)

		_, err = st.Allowlist().GetEntryByEmail(ctx, "nobody@slimy.ai")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate email rolls back the use", func(t *testing.T) {
		code, inv, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 5, nil, "")
		require.NoError(t, err)

		_, err = svc.RedeemOwnerInvite(ctx, code, "twice@slimy.ai")
		require.NoError(t, err)
		_, err = svc.RedeemOwnerInvite(ctx, code, "twice@slimy.ai")
		require.ErrorIs(t, err, ErrEmailAlreadyListed)

		after, err := st.Invites().GetInviteByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, 1, after.UseCount)
	})

	t.Run("trader invite is refused", func(t *testing.T) {
		code, _, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 1, nil, "")
		require.NoError(t, err)

		_, err = svc.RedeemOwnerInvite(ctx, code, "cross@slimy.ai")
		require.ErrorIs(t, err, ErrWrongAudience)
	})
}

func TestRedeemTraderInvite(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &InviteService{Store: st}

	t.Run("registers a user", func(t *testing.T) {
		code, _, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 1, nil, "")
		require.NoError(t, err)

		user, err := svc.RedeemTraderInvite(ctx, code, "snailfan", "correct horse battery")
		require.NoError(t, err)
		require.Equal(t, "snailfan", user.Username)

		stored, err := st.Users().GetUserByUsername(ctx, "snailfan")
		require.NoError(t, err)
		require.Equal(t, user.ID, stored.ID)
		require.True(t, cryptox.VerifyPassword("correct horse battery", stored.PasswordHash))
	})

	t.Run("taken username leaves the invite unconsumed", func(t *testing.T) {
		code, inv, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 1, nil, "")
		require.NoError(t, err)

		_, err = svc.RedeemTraderInvite(ctx, code, "snailfan", "another pass")
		require.ErrorIs(t, err, ErrUsernameAlreadyTaken)

		after, err := st.Invites().GetInviteByID(ctx, inv.ID)
		require.NoError(t, err)
		require.Equal(t, 0, after.UseCount)
	})

	t.Run("owner invite is refused", func(t *testing.T) {
		code, _, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 1, nil, "")
		require.NoError(t, err)

		_, err = svc.RedeemTraderInvite(ctx, code, "crossuser", "a fine password")
		require.ErrorIs(t, err, ErrWrongAudience)
	})

	t.Run("missing fields rejected", func(t *testing.T) {
		_, err := svc.RedeemTraderInvite(ctx, "", "user", "a fine password")
		require.ErrorIs(t, err, ErrInvalidInviteRequest)
		_, err = svc.RedeemTraderInvite(ctx, "CODE", "", "a fine password")
		require.ErrorIs(t, err, ErrInvalidInviteRequest)
		_, err = svc.RedeemTraderInvite(ctx, "CODE", "user", "")
		require.ErrorIs(t, err, ErrInvalidInviteRequest)
	})

	t.Run("username and password rules", func(t *testing.T) {
		_, err := svc.RedeemTraderInvite(ctx, "CODE", "ab", "a fine password")
		require.ErrorIs(t, err, ErrInvalidUsername)
		_, err = svc.RedeemTraderInvite(ctx, "CODE", "name with spaces", "a fine password")
		require.ErrorIs(t, err, ErrInvalidUsername)
		_, err = svc.RedeemTraderInvite(ctx, "CODE", strings.Repeat("a", 21), "a fine password")
		require.ErrorIs(t, err, ErrInvalidUsername)
		_, err = svc.RedeemTraderInvite(ctx, "CODE", "fineuser", "short")
		require.ErrorIs(t, err, ErrInvalidPassword)
	})
}

func TestRevokeInvite(t *testing.T) {
	ctx := context.Background()
	svc := &InviteService{Store: newTestStore(t)}

	code, inv, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 3, nil, "")
	require.NoError(t, err)

	require.NoError(t, svc.RevokeInvite(ctx, inv.ID))

	v, err := svc.ValidateInvite(ctx, code)
	require.NoError(t, err)
	require.False(t, v.Valid)

	// Revoking again reports not found rather than succeeding silently.
	require.ErrorIs(t, svc.RevokeInvite(ctx, inv.ID), ErrInviteNotFound)
	require.ErrorIs(t, svc.RevokeInvite(ctx, idx.New().String()), ErrInviteNotFound)
}

func TestListInvites(t *testing.T) {
	ctx := context.Background()
	svc := &InviteService{Store: newTestStore(t)}

	for range 3 {
		_, _, err := svc.MintInvite(ctx, domain.AudienceTrader, "admin", 1, nil, "")
		require.NoError(t, err)
	}
	_, _, err := svc.MintInvite(ctx, domain.AudienceOwner, "admin", 1, nil, "")
	require.NoError(t, err)

	traders, err := svc.ListInvites(ctx, domain.AudienceTrader)
	require.NoError(t, err)
	require.Len(t, traders, 3)

	owners, err := svc.ListInvites(ctx, domain.AudienceOwner)
	require.NoError(t, err)
	require.Len(t, owners, 1)

	_, err = svc.ListInvites(ctx, "everything")
	require.ErrorIs(t, err, ErrInvalidInviteRequest)
}
