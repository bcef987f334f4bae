package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/republichq/republic/internal/republic/service"
)

func register(t *testing.T, svc *service.AccountService, email, password string) int64 {
	t.Helper()
	id, err := svc.Register(context.Background(), service.RegisterInput{
		Name:     "Ana",
		Email:    email,
		Password: password,
		Phone:    "11999990000",
		UserType: "inquilino",
	})
	require.NoError(t, err)
	return id
}

func TestRegisterAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &service.AccountService{Store: st}

	id := register(t, svc, "ana@example.com", "s3nha-forte")

	u, err := svc.Authenticate(ctx, "ana@example.com", "s3nha-forte")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, "inquilino", u.UserType)

	stored, err := st.Users().GetByID(ctx, id)
	require.NoError(t, err)
	require.NotEqual(t, "s3nha-forte", stored.PasswordHash)
	require.Contains(t, stored.PasswordHash, "$argon2id$")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	st, file := newStoreAt(t)
	svc := &service.AccountService{Store: st}

	id := register(t, svc, "ana@example.com", "one")
	_, err := svc.Register(ctx, service.RegisterInput{Name: "Other", Email: "ana@example.com", Password: "two"})
	require.ErrorIs(t, err, service.ErrDuplicateEmail)

	// Nothing of the second attempt was persisted.
	require.Equal(t, 1, countRows(t, file, "SELECT COUNT(*) FROM usuarios WHERE email = ?", "ana@example.com"))
	require.Equal(t, 1, countRows(t, file, "SELECT COUNT(*) FROM usuarios"))

	// The first account is untouched.
	u, err := svc.Authenticate(ctx, "ana@example.com", "one")
	require.NoError(t, err)
	require.Equal(t, id, u.ID)
	require.Equal(t, "Ana", u.Name)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	svc := &service.AccountService{Store: newStore(t)}
	_, err := svc.Register(context.Background(), service.RegisterInput{Name: "Ana", Email: "", Password: "x"})
	require.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	svc := &service.AccountService{Store: newStore(t)}
	register(t, svc, "ana@example.com", "right")

	_, wrongPassword := svc.Authenticate(ctx, "ana@example.com", "wrong")
	_, unknownEmail := svc.Authenticate(ctx, "nobody@example.com", "right")
	_, wrongCase := svc.Authenticate(ctx, "ANA@example.com", "right")
	_, passwordCase := svc.Authenticate(ctx, "ana@example.com", "RIGHT")

	require.ErrorIs(t, wrongPassword, service.ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, service.ErrInvalidCredentials)
	require.ErrorIs(t, wrongCase, service.ErrInvalidCredentials)
	require.ErrorIs(t, passwordCase, service.ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := &service.AccountService{Store: newStore(t)}
	id := register(t, svc, "ana@example.com", "old")
	other := register(t, svc, "bruno@example.com", "pw")

	err := svc.UpdateProfile(ctx, id, service.ProfileInput{Name: "Ana Maria", Email: "ana.maria@example.com", Password: "new", Phone: "2"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "ana@example.com", "old")
	require.ErrorIs(t, err, service.ErrInvalidCredentials)
	_, err = svc.Authenticate(ctx, "ana.maria@example.com", "new")
	require.NoError(t, err)

	p, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Ana Maria", p.Name)
	require.Equal(t, "2", p.Phone)

	err = svc.UpdateProfile(ctx, other, service.ProfileInput{Name: "B", Email: "ana.maria@example.com", Password: "pw"})
	require.ErrorIs(t, err, service.ErrDuplicateEmail)

	err = svc.UpdateProfile(ctx, 9999, service.ProfileInput{Name: "X", Email: "x@example.com", Password: "pw"})
	require.ErrorIs(t, err, service.ErrUserNotFound)
}

func TestRequestDeletion(t *testing.T) {
	ctx := context.Background()
	svc := &service.AccountService{Store: newStore(t)}
	id := register(t, svc, "ana@example.com", "pw")

	p, err := svc.Profile(ctx, id)
	require.NoError(t, err)
	require.False(t, p.DeletionRequested)

	require.NoError(t, svc.RequestDeletion(ctx, id))

	p, err = svc.Profile(ctx, id)
	require.NoError(t, err)
	require.True(t, p.DeletionRequested)

	// The account still works until an administrator acts.
	_, err = svc.Authenticate(ctx, "ana@example.com", "pw")
	require.NoError(t, err)

	require.ErrorIs(t, svc.RequestDeletion(ctx, 4242), service.ErrUserNotFound)
}

func TestStorageFailureIsReported(t *testing.T) {
	ctx := context.Background()
	st := newStore(t)
	svc := &service.AccountService{Store: st}
	require.NoError(t, st.Close())

	_, err := svc.Register(ctx, service.RegisterInput{Name: "A", Email: "a@example.com", Password: "pw"})
	require.ErrorIs(t, err, service.ErrStorage)

	_, err = svc.Authenticate(ctx, "a@example.com", "pw")
	require.ErrorIs(t, err, service.ErrStorage)
}
