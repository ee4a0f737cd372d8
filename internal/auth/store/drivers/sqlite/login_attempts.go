package sqlite

import (
	"context"
	"time"

	"github.com/slimyai/gatehouse/internal/auth/domain"
)

type loginAttemptsRepo struct {
	db dbtx
}

func (r *loginAttemptsRepo) CreateLoginAttempt(ctx context.Context, a domain.LoginAttempt) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_attempts (id, username, ip_address, success, attempted_at)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Username, a.IPAddress, a.Success, a.AttemptedAt.UTC(),
	)
	return err
}

func (r *loginAttemptsRepo) FailureTimesByUsernameSince(ctx context.Context, username string, since time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT attempted_at FROM login_attempts
		 WHERE username = ? AND success = 0 AND attempted_at >= ?
		 ORDER BY attempted_at ASC`,
		username, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimes(rows)
}

func (r *loginAttemptsRepo) FailureTimesByIPSince(ctx context.Context, ip string, since time.Time) ([]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT attempted_at FROM login_attempts
		 WHERE ip_address = ? AND success = 0 AND attempted_at >= ?
		 ORDER BY attempted_at ASC`,
		ip, since.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTimes(rows)
}

func collectTimes(rows interface {
	Next() bool
	Scan(...any) error
	Err() error
}) ([]time.Time, error) {
	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		times = append(times, t)
	}
	return times, rows.Err()
}

func (r *loginAttemptsRepo) DeleteAttemptsBefore(ctx context.Context, cutoff time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM login_attempts WHERE attempted_at < ?`, cutoff.UTC())
	return err
}
