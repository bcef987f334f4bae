package service_test

import (
	"context"
	"database/sql"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/republichq/republic/internal/republic/mail"
	"github.com/republichq/republic/internal/republic/store/drivers/sqlite"
	"github.com/republichq/republic/pkg/cryptox"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newStore(t *testing.T) *sqlite.Store {
	t.Helper()
	st, _ := newStoreAt(t)
	return st
}

// newStoreAt also returns the database file so tests can inspect rows
// directly.
func newStoreAt(t *testing.T) (*sqlite.Store, string) {
	t.Helper()
	ctx := context.Background()

	file := filepath.Join(t.TempDir(), "banco.db")
	st, err := sqlite.Open(ctx, sqlite.Config{Path: file})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.EnsureSchema(ctx))
	return st, file
}

// countRows runs a COUNT(*) query against the database file on its own
// connection.
func countRows(t *testing.T, file, query string, args ...any) int {
	t.Helper()
	db, err := sql.Open("sqlite", file)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRowContext(context.Background(), query, args...).Scan(&n))
	return n
}

// recordingMailer keeps every message and fails when err is set.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (r *recordingMailer) Send(_ context.Context, m mail.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, m)
	return nil
}

func (r *recordingMailer) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

// lastToken pulls the raw token out of the most recent reset link.
func (r *recordingMailer) lastToken(t *testing.T) string {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.sent)

	text := r.sent[len(r.sent)-1].Text
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "http") {
			return path.Base(line)
		}
	}
	t.Fatalf("no link in mail body: %q", text)
	return ""
}
