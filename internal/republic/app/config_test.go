package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, k := range []string{"SECRET_KEY", "DATABASE_URL", "DATABASE_FILE", "PORT", "SESSION_TTL", "PUBLIC_BASE_URL", "ENV"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "instance/banco.db", cfg.DatabaseFile)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, "http://localhost:8080", cfg.PublicBaseURL)
	require.True(t, cfg.IsDev())
	require.NoError(t, cfg.Validate())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://republic@db/republic")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REQUEST_TIMEOUT", "30")
	t.Setenv("MAIL_TIMEOUT", "not-a-duration")
	t.Setenv("PUBLIC_BASE_URL", "https://republic.example")

	cfg := LoadConfig()
	require.Equal(t, "postgres://republic@db/republic", cfg.DatabaseURL)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 2*time.Hour, cfg.SessionTTL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 10*time.Second, cfg.MailTimeout)
	require.Equal(t, "https://republic.example", cfg.PublicBaseURL)
}

func TestValidate(t *testing.T) {
	base := Config{Env: "prod", DatabaseFile: "banco.db", Port: 8080}

	require.ErrorContains(t, base.Validate(), "SECRET_KEY is required")

	short := base
	short.SecretKey = "short"
	require.ErrorContains(t, short.Validate(), "at least 16 bytes")

	ok := base
	ok.SecretKey = "0123456789abcdef0123"
	require.NoError(t, ok.Validate())

	noDB := ok
	noDB.DatabaseFile = ""
	noDB.Port = 0
	err := noDB.Validate()
	require.ErrorContains(t, err, "DATABASE_URL")
	require.ErrorContains(t, err, "PORT")
}
