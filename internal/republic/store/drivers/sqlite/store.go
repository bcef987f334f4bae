package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/republichq/republic/internal/republic/store"
)

// timeLayout is how timestamps are written: UTC, second precision. Values
// in this layout sort lexically, which the expiry sweep relies on.
const timeLayout = "2006-01-02 15:04:05"

type Config struct {
	// Path is a file path or a "file:" URI.
	Path        string
	BusyTimeout time.Duration
}

type Store struct {
	db *sql.DB
	q  *queries
}

var _ store.Store = (*Store)(nil)

// Open opens (creating if needed) the database file and verifies it answers.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	if !strings.HasPrefix(cfg.Path, "file:") {
		if dir := filepath.Dir(cfg.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn(cfg))
	if err != nil {
		return nil, err
	}

	// SQLite serialises writers anyway; one connection avoids SQLITE_BUSY
	// between our own goroutines.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	return &Store{db: db, q: &queries{db: db}}, nil
}

func dsn(cfg Config) string {
	d := cfg.Path
	if !strings.HasPrefix(d, "file:") {
		d = "file:" + d
	}
	sep := "?"
	if strings.Contains(d, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%s_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)",
		d, sep, cfg.BusyTimeout.Milliseconds())
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Conn(ctx context.Context) (store.Conn, error) {
	c, err := s.db.Conn(ctx)
	if err != nil {
		return nil, err
	}
	return &connStore{c: c, q: &queries{db: c}}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return withTx(ctx, s.db, fn)
}

func (s *Store) Users() store.Users             { return &usersRepo{q: s.q} }
func (s *Store) ResetTokens() store.ResetTokens { return &resetTokensRepo{q: s.q} }
func (s *Store) Clicks() store.Clicks           { return &clicksRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique violations into store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %v", store.ErrAlreadyExists, err)
		}
	}
	return err
}

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeLayout)
}
