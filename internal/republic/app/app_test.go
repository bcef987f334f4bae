package app

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/republichq/republic/internal/republic/mail"
)

func testConfig(t *testing.T) Config {
	dir := t.TempDir()
	return Config{
		DatabaseFile:         filepath.Join(dir, "instance", "banco.db"),
		DBConnectTimeout:     5 * time.Second,
		PepperFile:           filepath.Join(dir, "pepper"),
		PublicBaseURL:        "http://localhost:8080",
		SessionTTL:           time.Hour,
		RequestTimeout:       5 * time.Second,
		Env:                  "dev",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 8080,
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNewWiresSQLiteBackend(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	require.IsType(t, mail.LogMailer{}, app.mailer)
	require.NotNil(t, app.sessions)

	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestNewRunsSchemaIdempotently(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.db.Close())

	second, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, second.db.Close())
}

func TestNewUsesSendGridWhenKeySet(t *testing.T) {
	cfg := testConfig(t)
	cfg.SendGridAPIKey = "SG.test"
	cfg.MailDefaultSender = "no-reply@republic.example"

	app, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	require.IsType(t, &mail.SendGrid{}, app.mailer)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "prod"

	_, err := New(cfg)
	require.ErrorContains(t, err, "SECRET_KEY")
}

func TestShutdownClosesStore(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)

	app.housekeepingService.Start()
	require.NoError(t, app.Shutdown())
	require.Error(t, app.db.Ping(t.Context()))
}

func TestInitDatabaseLogsBackendOnlyAfterOpen(t *testing.T) {
	cfg := testConfig(t)
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.DatabaseFile = filepath.Join(blocker, "instance", "banco.db")

	var buf bytes.Buffer
	failed := &Application{cfg: cfg, logger: slog.New(slog.NewTextHandler(&buf, nil))}
	require.Error(t, failed.initDatabase())
	require.NotContains(t, buf.String(), "using sqlite backend")

	buf.Reset()
	ok := &Application{cfg: testConfig(t), logger: slog.New(slog.NewTextHandler(&buf, nil))}
	require.NoError(t, ok.initDatabase())
	t.Cleanup(func() { _ = ok.db.Close() })
	require.Contains(t, buf.String(), "using sqlite backend")
}
