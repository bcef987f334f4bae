package jwtx_test

import (
	"testing"
	"time"

	"github.com/republichq/republic/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestHS256_RoundTrip(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "republic")
	require.NoError(t, err)

	now := time.Now().UTC()
	token, err := h.Sign(jwtx.NewSessionClaims(42, "proprietario", "republic", time.Hour, now))
	require.NoError(t, err)

	claims, err := h.Verify(token)
	require.NoError(t, err)

	id, err := claims.UserID()
	require.NoError(t, err)
	require.Equal(t, int64(42), id)
	require.Equal(t, "proprietario", claims.UserType)
	require.NotEmpty(t, claims.ID)
}

func TestNewHS256_ShortSecret(t *testing.T) {
	_, err := jwtx.NewHS256("short", "republic")
	require.Error(t, err)
}

func TestHS256_Rejects(t *testing.T) {
	h, err := jwtx.NewHS256(testSecret, "republic")
	require.NoError(t, err)
	now := time.Now().UTC()

	t.Run("other secret", func(t *testing.T) {
		other, err := jwtx.NewHS256("another-secret-of-sufficient-size", "republic")
		require.NoError(t, err)
		token, err := other.Sign(jwtx.NewSessionClaims(1, "", "republic", time.Hour, now))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := h.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("issuer mismatch", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewSessionClaims(1, "", "someone-else", time.Hour, now))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("expired", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewSessionClaims(1, "", "republic", time.Minute, now.Add(-time.Hour)))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		token, err := h.Sign(jwtx.NewSessionClaims(1, "", "republic", time.Hour, now.Add(time.Hour)))
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrNotYetValid)
	})

	t.Run("bad subject", func(t *testing.T) {
		c := jwtx.NewSessionClaims(1, "", "republic", time.Hour, now)
		c.Subject = "abc"
		token, err := h.Sign(c)
		require.NoError(t, err)

		_, err = h.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrSubject)
	})
}

func TestClaims_ValidateExpiryBoundary(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	c := jwtx.NewSessionClaims(7, "", "republic", time.Hour, now)

	require.NoError(t, c.ValidateExpiry(now))
	require.NoError(t, c.ValidateExpiry(now.Add(time.Hour-time.Second)))
	require.ErrorIs(t, c.ValidateExpiry(now.Add(time.Hour)), jwtx.ErrExpired)
}
