package postgres

import (
	"context"
	"time"

	"github.com/republichq/republic/internal/republic/domain"
)

type resetTokensRepo struct {
	q *queries
}

// expiration is TIMESTAMP WITHOUT TIME ZONE; values are always written and
// compared in UTC.

func (r *resetTokensRepo) Create(ctx context.Context, t domain.ResetToken) (int64, error) {
	var id int64
	err := r.q.db.QueryRowContext(ctx,
		`INSERT INTO tokens (user_id, token, expiration) VALUES ($1, $2, $3) RETURNING id`,
		t.UserID, t.Fingerprint, t.Expiration.UTC().Truncate(time.Second),
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *resetTokensRepo) GetByFingerprint(ctx context.Context, fingerprint string) (domain.ResetToken, error) {
	var t domain.ResetToken
	err := r.q.db.QueryRowContext(ctx,
		`SELECT id, user_id, token, expiration FROM tokens WHERE token = $1`, fingerprint,
	).Scan(&t.ID, &t.UserID, &t.Fingerprint, &t.Expiration)
	if err != nil {
		return domain.ResetToken{}, mapNotFound(err)
	}
	e := t.Expiration
	t.Expiration = time.Date(e.Year(), e.Month(), e.Day(), e.Hour(), e.Minute(), e.Second(), e.Nanosecond(), time.UTC)
	return t, nil
}

func (r *resetTokensRepo) DeleteByFingerprint(ctx context.Context, fingerprint string) (int64, error) {
	res, err := r.q.db.ExecContext(ctx, `DELETE FROM tokens WHERE token = $1`, fingerprint)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *resetTokensRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.q.db.ExecContext(ctx, `DELETE FROM tokens WHERE expiration <= $1`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
