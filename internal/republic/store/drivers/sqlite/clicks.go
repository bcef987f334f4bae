package sqlite

import (
	"context"

	"github.com/republichq/republic/internal/republic/domain"
)

type clicksRepo struct {
	q *queries
}

func (r *clicksRepo) Increment(ctx context.Context, eventName string) error {
	_, err := r.q.db.ExecContext(ctx,
		`INSERT INTO click_counts (event_name, count) VALUES (?, 1)
		 ON CONFLICT (event_name) DO UPDATE SET count = click_counts.count + 1`,
		eventName,
	)
	return err
}

func (r *clicksRepo) Get(ctx context.Context, eventName string) (domain.ClickCount, error) {
	c := domain.ClickCount{EventName: eventName}
	err := r.q.db.QueryRowContext(ctx,
		`SELECT COALESCE(count, 0) FROM click_counts WHERE event_name = ?`, eventName,
	).Scan(&c.Count)
	if err != nil {
		return domain.ClickCount{}, mapNotFound(err)
	}
	return c, nil
}

func (r *clicksRepo) List(ctx context.Context) ([]domain.ClickCount, error) {
	rows, err := r.q.db.QueryContext(ctx,
		`SELECT event_name, COALESCE(count, 0) FROM click_counts ORDER BY event_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ClickCount
	for rows.Next() {
		var c domain.ClickCount
		if err := rows.Scan(&c.EventName, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
