package sqlite

import (
	"context"
	"time"

	"github.com/republichq/republic/internal/republic/domain"
)

type resetTokensRepo struct {
	q *queries
}

func (r *resetTokensRepo) Create(ctx context.Context, t domain.ResetToken) (int64, error) {
	var id int64
	err := r.q.db.QueryRowContext(ctx,
		`INSERT INTO tokens (user_id, token, expiration) VALUES (?, ?, ?) RETURNING id`,
		t.UserID, t.Fingerprint, formatTime(t.Expiration),
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *resetTokensRepo) GetByFingerprint(ctx context.Context, fingerprint string) (domain.ResetToken, error) {
	var t domain.ResetToken
	err := r.q.db.QueryRowContext(ctx,
		`SELECT id, user_id, token, expiration FROM tokens WHERE token = ?`, fingerprint,
	).Scan(&t.ID, &t.UserID, &t.Fingerprint, &t.Expiration)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	t.Expiration = t.Expiration.UTC()
	return t, nil
}

func (r *resetTokensRepo) DeleteByFingerprint(ctx context.Context, fingerprint string) (int64, error) {
	res, err := r.q.db.ExecContext(ctx, `DELETE FROM tokens WHERE token = ?`, fingerprint)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *resetTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.db.ExecContext(ctx, `DELETE FROM tokens WHERE expiration <= ?`, formatTime(now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
