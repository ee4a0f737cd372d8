package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/slimyai/gatehouse/internal/auth/domain"
	"github.com/slimyai/gatehouse/internal/auth/store"
)

type allowlistRepo struct {
	db dbtx
}

const allowlistColumns = `id, email, created_by, note, revoked_at, created_at`

func scanAllowlistEntry(row interface{ Scan(...any) error }) (domain.AllowlistEntry, error) {
	var (
		e         domain.AllowlistEntry
		revokedAt sql.NullTime
	)
	err := row.Scan(&e.ID, &e.Email, &e.CreatedBy, &e.Note, &revokedAt, &e.CreatedAt)
	if err != nil {
		return domain.AllowlistEntry{}, mapNotFound(err)
	}
	e.RevokedAt = mapNullTimePtr(revokedAt)
	return e, nil
}

func (r *allowlistRepo) CreateEntry(ctx context.Context, e domain.AllowlistEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO owner_allowlist (id, email, created_by, note, revoked_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Email, e.CreatedBy, e.Note,
		mapOptionalTime(e.RevokedAt), e.CreatedAt.UTC(),
	)
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *allowlistRepo) GetEntryByEmail(ctx context.Context, email string) (domain.AllowlistEntry, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+allowlistColumns+` FROM owner_allowlist WHERE email = ?`, email)
	return scanAllowlistEntry(row)
}

func (r *allowlistRepo) ListEntries(ctx context.Context) ([]domain.AllowlistEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+allowlistColumns+` FROM owner_allowlist WHERE revoked_at IS NULL ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AllowlistEntry
	for rows.Next() {
		e, err := scanAllowlistEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
