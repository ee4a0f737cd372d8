package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/store"
	"github.com/slimyai/gatehouse/pkg/idx"
)

// BootstrapService seeds the owner allowlist from configuration so a fresh
// deployment has at least one owner before any invite exists.
type BootstrapService struct {
	Store  store.Store
	Logger *slog.Logger
}

// SeedAllowlist inserts each configured email that is not already listed.
// Existing entries are left untouched, so the seed is safe to run on every
// startup.
func (s *BootstrapService) SeedAllowlist(ctx context.Context, emails []string) error {
	now := time.Now().UTC()
	seeded := 0

	for _, email := range emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}

		err := s.Store.Allowlist().CreateEntry(ctx, domain.AllowlistEntry{
			ID:        idx.New().String(),
			Email:     email,
			CreatedBy: "bootstrap",
			Note:      "seeded from configuration",
			CreatedAt: now,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			continue
		}
		if err != nil {
			s.Logger.Error("failed to seed allowlist entry",
				slog.String("email", email),
				slog.Any("error", err),
			)
			return err
		}
		seeded++
	}

	if seeded > 0 {
		s.Logger.Info("seeded owner allowlist", slog.Int("entries", seeded))
	}
	return nil
}
