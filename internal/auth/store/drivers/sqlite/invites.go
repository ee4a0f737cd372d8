package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
)

type invitesRepo struct {
	db dbtx
}

const inviteColumns = `id, code_hash, audience, created_by, max_uses, use_count, expires_at, revoked_at, used_at, note, created_at, updated_at`

func scanInvite(row interface{ Scan(...any) error }) (domain.Invite, error) {
	var (
		inv       domain.Invite
		audience  string
		expiresAt sql.NullTime
		revokedAt sql.NullTime
		usedAt    sql.NullTime
	)
	err := row.Scan(
		&inv.ID,
		&inv.CodeHash,
		&audience,
		&inv.CreatedBy,
		&inv.MaxUses,
		&inv.UseCount,
		&expiresAt,
		&revokedAt,
		&usedAt,
		&inv.Note,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.Audience = domain.InviteAudience(audience)
	inv.ExpiresAt = mapNullTimePtr(expiresAt)
	inv.RevokedAt = mapNullTimePtr(revokedAt)
	inv.UsedAt = mapNullTimePtr(usedAt)
	return inv, nil
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO invites (id, code_hash, audience, created_by, max_uses, use_count, expires_at, revoked_at, used_at, note, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.CodeHash, string(inv.Audience), inv.CreatedBy,
		inv.MaxUses, inv.UseCount,
		mapOptionalTime(inv.ExpiresAt), mapOptionalTime(inv.RevokedAt),
		mapOptionalTime(inv.UsedAt), inv.Note, now, now,
	)
	return err
}

func (r *invitesRepo) GetInviteByCodeHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE code_hash = ?`, hash)
	return scanInvite(row)
}

func (r *invitesRepo) GetInviteByID(ctx context.Context, id string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE id = ?`, id)
	return scanInvite(row)
}

// RedeemInvite is the load-bearing conditional update: the guard and the
// increment execute as one statement, so concurrent redemptions can never
// both consume the final use. Zero rows affected means the guard failed
// (revoked, expired, exhausted, or the race was lost).
func (r *invitesRepo) RedeemInvite(ctx context.Context, inviteID string, now time.Time) (bool, error) {
	now = now.UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites
		 SET use_count = use_count + 1, used_at = ?, updated_at = ?
		 WHERE id = ?
		   AND use_count < max_uses
		   AND revoked_at IS NULL
		   AND (expires_at IS NULL OR expires_at > ?)`,
		now, now, inviteID, now,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

func (r *invitesRepo) RevokeInvite(ctx context.Context, inviteID string, now time.Time) (bool, error) {
	now = now.UTC()
	res, err := r.db.ExecContext(ctx,
		`UPDATE invites SET revoked_at = ?, updated_at = ? WHERE id = ? AND revoked_at IS NULL`,
		now, now, inviteID,
	)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *invitesRepo) ListInvites(ctx context.Context, audience domain.InviteAudience) ([]domain.Invite, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE audience = ? ORDER BY created_at DESC`,
		string(audience))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
