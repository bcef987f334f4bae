package postgres

import (
	"context"
	"database/sql"

	"github.com/republichq/republic/internal/republic/domain"
	"github.com/republichq/republic/internal/republic/store"
)

type usersRepo struct {
	q *queries
}

const userColumns = `id, nome, email, senha, COALESCE(telefone, ''), COALESCE(tipo_usuario, ''), COALESCE(solicitacao_exclusao, 0)`

func scanUser(row *sql.Row) (domain.User, error) {
	var (
		u       domain.User
		deleted int64
	)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.UserType, &deleted); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.DeletionRequested = deleted != 0
	return u, nil
}

func (r *usersRepo) Create(ctx context.Context, u domain.NewUser) (int64, error) {
	var id int64
	err := r.q.db.QueryRowContext(ctx,
		`INSERT INTO usuarios (nome, email, senha, telefone, tipo_usuario) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		u.Name, u.Email, u.PasswordHash, u.Phone, u.UserType,
	).Scan(&id)
	if err != nil {
		return 0, mapConstraint(err)
	}
	return id, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (domain.User, error) {
	return scanUser(r.q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE email = $1`, email))
}

func (r *usersRepo) UpdateProfile(ctx context.Context, id int64, p domain.ProfileUpdate) error {
	res, err := r.q.db.ExecContext(ctx,
		`UPDATE usuarios SET nome = $1, email = $2, senha = $3, telefone = $4 WHERE id = $5`,
		p.Name, p.Email, p.PasswordHash, p.Phone, id,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return requireOneRow(res)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	res, err := r.q.db.ExecContext(ctx, `UPDATE usuarios SET senha = $1 WHERE id = $2`, hash, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func (r *usersRepo) RequestDeletion(ctx context.Context, id int64) error {
	res, err := r.q.db.ExecContext(ctx, `UPDATE usuarios SET solicitacao_exclusao = 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireOneRow(res)
}

func requireOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
