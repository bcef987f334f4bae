package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgmigrate "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/republichq/republic/internal/republic/store/drivers/postgres/migrations"
)

// EnsureSchema applies the embedded migrations. Each file wraps its DDL in
// BEGIN/COMMIT, and the migrate driver holds an advisory lock so concurrent
// starts do not race.
//
// Migrations run on their own short-lived pool: the migrate driver pins a
// connection and closes the whole *sql.DB when it is done.
func (s *Store) EnsureSchema(ctx context.Context) error {
	db, err := sql.Open("postgres", s.url)
	if err != nil {
		return fmt.Errorf("postgres: open migration pool: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("postgres: ping migration pool: %w", err)
	}

	driver, err := pgmigrate.WithInstance(db, &pgmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("postgres: migrate driver: %w", err)
	}

	src, err := iofs.New(migrations.Migrations, ".")
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("postgres: migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		_ = driver.Close()
		return fmt.Errorf("postgres: migrate: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: apply migrations: %w", err)
	}
	return nil
}
