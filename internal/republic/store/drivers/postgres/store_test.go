package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/republichq/republic/internal/republic/domain"
	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/internal/republic/store/drivers/postgres"
)

// startPostgres runs a throwaway server and returns its URL. Tests are
// skipped when Docker is unavailable.
func startPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres driver tests need Docker")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "republic",
				"POSTGRES_PASSWORD": "republic",
				"POSTGRES_DB":       "republic",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("postgres://republic:republic@%s:%s/republic?sslmode=disable", host, port.Port())
}

func newStore(t *testing.T, url string) *postgres.Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	st, err := postgres.Open(ctx, postgres.Config{URL: url})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.EnsureSchema(ctx))
	return st
}

func TestPostgresStore(t *testing.T) {
	url := startPostgres(t)
	st := newStore(t, url)
	ctx := context.Background()

	t.Run("schema is idempotent", func(t *testing.T) {
		require.NoError(t, st.Clicks().Increment(ctx, domain.ContactAdvertiserClick))
		require.NoError(t, st.EnsureSchema(ctx))

		// A second process adopting the same database.
		other := newStore(t, url)
		c, err := other.Clicks().Get(ctx, domain.ContactAdvertiserClick)
		require.NoError(t, err)
		require.Equal(t, int64(1), c.Count)
	})

	var uid int64
	t.Run("users", func(t *testing.T) {
		var err error
		uid, err = st.Users().Create(ctx, domain.NewUser{Name: "Ana", Email: "ana@example.com", PasswordHash: "h", UserType: "proprietario"})
		require.NoError(t, err)

		_, err = st.Users().Create(ctx, domain.NewUser{Name: "B", Email: "ana@example.com", PasswordHash: "h"})
		require.ErrorIs(t, err, store.ErrAlreadyExists)

		_, err = st.Users().GetByEmail(ctx, "Ana@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.NoError(t, st.Users().UpdateProfile(ctx, uid, domain.ProfileUpdate{Name: "Ana M", Email: "anam@example.com", PasswordHash: "h2", Phone: "1"}))
		require.NoError(t, st.Users().RequestDeletion(ctx, uid))

		u, err := st.Users().GetByID(ctx, uid)
		require.NoError(t, err)
		require.Equal(t, "anam@example.com", u.Email)
		require.True(t, u.DeletionRequested)
		require.Equal(t, "proprietario", u.UserType)
	})

	t.Run("reset tokens", func(t *testing.T) {
		issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
		_, err := st.ResetTokens().Create(ctx, domain.ResetToken{UserID: uid, Fingerprint: "fp", Expiration: issued.Add(time.Hour)})
		require.NoError(t, err)

		got, err := st.ResetTokens().GetByFingerprint(ctx, "fp")
		require.NoError(t, err)
		require.True(t, got.Expiration.Equal(issued.Add(time.Hour)), "got %s", got.Expiration)

		n, err := st.ResetTokens().DeleteExpired(ctx, issued)
		require.NoError(t, err)
		require.Zero(t, n)

		n, err = st.ResetTokens().DeleteExpired(ctx, issued.Add(time.Hour))
		require.NoError(t, err)
		require.Equal(t, int64(1), n)
	})

	t.Run("concurrent increments", func(t *testing.T) {
		const n = 40
		var wg sync.WaitGroup
		for range n {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = st.Clicks().Increment(ctx, "pg_click")
			}()
		}
		wg.Wait()

		c, err := st.Clicks().Get(ctx, "pg_click")
		require.NoError(t, err)
		require.Equal(t, int64(n), c.Count)
	})

	t.Run("rollback", func(t *testing.T) {
		boom := errors.New("boom")
		err := st.WithTx(ctx, func(tx store.Tx) error {
			_, err := tx.Users().Create(ctx, domain.NewUser{Name: "T", Email: "tx@example.com", PasswordHash: "h"})
			require.NoError(t, err)
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = st.Users().GetByEmail(ctx, "tx@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}
