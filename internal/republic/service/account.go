package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/republichq/republic/internal/republic/domain"
	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/pkg/cryptox"
	"github.com/republichq/republic/pkg/slogx"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	UserType string
}

type ProfileInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// Profile is the account view shown to its owner.
type Profile struct {
	ID                int64  `json:"id"`
	Name              string `json:"nome"`
	Email             string `json:"email"`
	Phone             string `json:"telefone"`
	UserType          string `json:"tipo_usuario"`
	DeletionRequested bool   `json:"solicitacao_exclusao"`
}

type AccountService struct {
	Store store.Store
}

// Register creates an account and returns its id.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (int64, error) {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return 0, ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return 0, err
	}

	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		log.Error("failed to acquire connection", slog.Any("error", err))
		return 0, storageErr(err)
	}

	var id int64
	err = q.WithTx(ctx, func(tx store.Tx) error {
		id, err = tx.Users().Create(ctx, domain.NewUser{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Phone:        in.Phone,
			UserType:     in.UserType,
		})
		return err
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		log.Info("registration with taken email")
		return 0, ErrDuplicateEmail
	case err != nil:
		log.Error("failed to create user", slog.Any("error", err))
		return 0, storageErr(err)
	}

	log.Info("user registered", slog.Int64("user_id", id))
	return id, nil
}

// Authenticate returns the id of the account matching email and password.
// An unknown email and a wrong password are indistinguishable to the caller,
// in result and in timing.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		log.Error("failed to acquire connection", slog.Any("error", err))
		return domain.User{}, storageErr(err)
	}

	u, err := q.Users().GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		cryptox.DummyVerify(password)
		return domain.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Error("failed to look up user", slog.Any("error", err))
		return domain.User{}, storageErr(err)
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if !errors.Is(err, cryptox.ErrPasswordMismatch) {
			// Unreadable hash, e.g. a plaintext password left by the old app.
			log.Warn("stored password hash rejected", slog.Int64("user_id", u.ID), slog.Any("error", err))
		}
		return domain.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile overwrites name, email, password and phone of userID.
func (s *AccountService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) error {
	log := slogx.FromContext(ctx)

	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		log.Error("failed to acquire connection", slog.Any("error", err))
		return storageErr(err)
	}

	err = q.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().UpdateProfile(ctx, userID, domain.ProfileUpdate{
			Name:         in.Name,
			Email:        in.Email,
			PasswordHash: hash,
			Phone:        in.Phone,
		})
	})
	switch {
	case errors.Is(err, store.ErrAlreadyExists):
		return ErrDuplicateEmail
	case errors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	case err != nil:
		log.Error("failed to update profile", slog.Int64("user_id", userID), slog.Any("error", err))
		return storageErr(err)
	}
	return nil
}

// RequestDeletion flags userID for removal by an administrator.
func (s *AccountService) RequestDeletion(ctx context.Context, userID int64) error {
	log := slogx.FromContext(ctx)

	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		log.Error("failed to acquire connection", slog.Any("error", err))
		return storageErr(err)
	}

	err = q.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().RequestDeletion(ctx, userID)
	})
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrUserNotFound
	case err != nil:
		log.Error("failed to flag deletion request", slog.Int64("user_id", userID), slog.Any("error", err))
		return storageErr(err)
	}

	log.Info("account deletion requested", slog.Int64("user_id", userID))
	return nil
}

func (s *AccountService) Profile(ctx context.Context, userID int64) (Profile, error) {
	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		return Profile{}, storageErr(err)
	}

	u, err := q.Users().GetByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return Profile{}, ErrUserNotFound
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to load profile", slog.Int64("user_id", userID), slog.Any("error", err))
		return Profile{}, storageErr(err)
	}

	return Profile{
		ID:                u.ID,
		Name:              u.Name,
		Email:             u.Email,
		Phone:             u.Phone,
		UserType:          u.UserType,
		DeletionRequested: u.DeletionRequested,
	}, nil
}
