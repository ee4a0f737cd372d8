package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
)

type sessionsRepo struct {
	db dbtx
}

const sessionColumns = `id, token_hash, user_id, expires_at, revoked_at, last_seen_at, ip_address, user_agent, created_at`

func scanSession(row interface{ Scan(...any) error }) (domain.Session, error) {
	var (
		s          domain.Session
		revokedAt  sql.NullTime
		lastSeenAt sql.NullTime
	)
	err := row.Scan(
		&s.ID,
		&s.TokenHash,
		&s.UserID,
		&s.ExpiresAt,
		&revokedAt,
		&lastSeenAt,
		&s.IPAddress,
		&s.UserAgent,
		&s.CreatedAt,
	)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.RevokedAt = mapNullTimePtr(revokedAt)
	s.LastSeenAt = mapNullTimePtr(lastSeenAt)
	return s, nil
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (id, token_hash, user_id, expires_at, revoked_at, last_seen_at, ip_address, user_agent, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.TokenHash, s.UserID, s.ExpiresAt.UTC(),
		mapOptionalTime(s.RevokedAt), mapOptionalTime(s.LastSeenAt),
		s.IPAddress, s.UserAgent, time.Now().UTC(),
	)
	return err
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE token_hash = ?`, hash)
	return scanSession(row)
}

func (r *sessionsRepo) UpdateLastSeen(ctx context.Context, sessionID string, at time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET last_seen_at = ? WHERE id = ?`, at.UTC(), sessionID)
	return err
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, sessionID string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		now.UTC(), sessionID)
	return err
}

func (r *sessionsRepo) RevokeAllUserSessions(ctx context.Context, userID string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE user_id = ? AND revoked_at IS NULL`,
		now.UTC(), userID)
	return err
}

func (r *sessionsRepo) DeleteSessionsExpiredBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, cutoff.UTC())
	return err
}
