package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
)

type resetTokensRepo struct {
	db dbtx
}

const resetTokenColumns = `id, token_hash, user_id, expires_at, used_at, created_at`

func scanResetToken(row interface{ Scan(...any) error }) (domain.ResetToken, error) {
	var (
		t      domain.ResetToken
		usedAt sql.NullTime
	)
	err := row.Scan(
		&t.ID,
		&t.TokenHash,
		&t.UserID,
		&t.ExpiresAt,
		&usedAt,
		&t.CreatedAt,
	)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	t.UsedAt = mapNullTimePtr(usedAt)
	return t, nil
}

func (r *resetTokensRepo) CreateResetToken(ctx context.Context, t domain.ResetToken) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (id, token_hash, user_id, expires_at, used_at, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.TokenHash, t.UserID, t.ExpiresAt.UTC(),
		mapOptionalTime(t.UsedAt), t.CreatedAt.UTC(),
	)
	return err
}

func (r *resetTokensRepo) GetResetTokenByHash(ctx context.Context, hash string) (domain.ResetToken, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+resetTokenColumns+` FROM reset_tokens WHERE token_hash = ?`, hash)
	return scanResetToken(row)
}

func (r *resetTokensRepo) MarkResetTokenUsed(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET used_at = ? WHERE id = ? AND used_at IS NULL`,
		now.UTC(), id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *resetTokensRepo) InvalidateUserResetTokens(ctx context.Context, userID string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET used_at = ? WHERE user_id = ? AND used_at IS NULL`,
		now.UTC(), userID)
	return err
}

func (r *resetTokensRepo) DeleteDeadResetTokens(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE used_at IS NOT NULL OR expires_at < ?`,
		now.UTC())
	return err
}
