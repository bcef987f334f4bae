package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/republichq/republic/internal/republic/domain"
	"github.com/republichq/republic/internal/republic/mail"
	"github.com/republichq/republic/internal/republic/store"
	"github.com/republichq/republic/pkg/cryptox"
	"github.com/republichq/republic/pkg/metricsx"
	"github.com/republichq/republic/pkg/slogx"
)

// ResetPath is where reset links point, relative to the public base URL.
const ResetPath = "/v1/password/reset/"

// ResetService runs the forgotten-password flow: mail a one-hour link,
// check it, and swap the password while consuming the token.
type ResetService struct {
	Store   store.Store
	Mailer  mail.Mailer
	BaseURL string

	Metrics *metricsx.Metrics // optional

	// Now is overridable in tests.
	Now func() time.Time
}

func (s *ResetService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// RequestReset mails a reset link to email if an account has it. A missing
// account is not an error, so callers cannot probe which emails exist.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	log := slogx.FromContext(ctx)

	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		log.Error("failed to acquire connection", slog.Any("error", err))
		return storageErr(err)
	}

	u, err := q.Users().GetByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		log.Info("password reset requested for unknown email")
		return nil
	}
	if err != nil {
		log.Error("failed to look up user", slog.Any("error", err))
		return storageErr(err)
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate reset token", slog.Any("error", err))
		return err
	}

	issuedAt := s.now().Truncate(time.Second)
	_, err = q.ResetTokens().Create(ctx, domain.ResetToken{
		UserID:      u.ID,
		Fingerprint: cryptox.FingerprintToken(token),
		Expiration:  issuedAt.Add(domain.ResetTokenTTL),
	})
	if err != nil {
		log.Error("failed to store reset token", slog.Int64("user_id", u.ID), slog.Any("error", err))
		return storageErr(err)
	}

	// Nothing below touches the database; free the pinned connection before
	// the mail provider call.
	if err := store.Yield(ctx); err != nil {
		log.Warn("failed to release database connection", slog.Any("error", err))
	}

	link, err := url.JoinPath(s.BaseURL, ResetPath, token)
	if err != nil {
		return fmt.Errorf("build reset link: %w", err)
	}

	msg, err := mail.PasswordReset(u.Email, link)
	if err != nil {
		log.Error("failed to render reset email", slog.Any("error", err))
		return err
	}

	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Error("failed to send reset email", slog.Int64("user_id", u.ID), slog.Any("error", err))
		s.observeMail("failed")
		return fmt.Errorf("%w: %w", ErrEmailDispatch, err)
	}

	s.observeMail("sent")
	log.Info("password reset email sent", slog.Int64("user_id", u.ID))
	return nil
}

// ValidateToken returns the user a live token belongs to. It changes nothing.
func (s *ResetService) ValidateToken(ctx context.Context, token string) (int64, error) {
	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		return 0, storageErr(err)
	}
	return s.validate(ctx, q, token)
}

func (s *ResetService) validate(ctx context.Context, q store.Repos, token string) (int64, error) {
	if token == "" {
		return 0, ErrInvalidOrExpiredToken
	}

	t, err := q.ResetTokens().GetByFingerprint(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrInvalidOrExpiredToken
	}
	if err != nil {
		slogx.FromContext(ctx).Error("failed to look up reset token", slog.Any("error", err))
		return 0, storageErr(err)
	}

	if t.Expired(s.now()) {
		return 0, ErrInvalidOrExpiredToken
	}
	return t.UserID, nil
}

// CompleteReset sets a new password and consumes the token. On a mismatch
// the token stays usable.
func (s *ResetService) CompleteReset(ctx context.Context, token, newPassword, confirmPassword string) error {
	log := slogx.FromContext(ctx)

	q, err := store.Acquire(ctx, s.Store)
	if err != nil {
		log.Error("failed to acquire connection", slog.Any("error", err))
		return storageErr(err)
	}

	userID, err := s.validate(ctx, q, token)
	if err != nil {
		return err
	}

	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	if newPassword == "" {
		return ErrInvalidInput
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	fingerprint := cryptox.FingerprintToken(token)
	err = q.WithTx(ctx, func(tx store.Tx) error {
		// Deleting first makes a concurrent completion of the same token
		// block here and then see zero rows.
		n, err := tx.ResetTokens().DeleteByFingerprint(ctx, fingerprint)
		if err != nil {
			return err
		}
		if n != 1 {
			return ErrInvalidOrExpiredToken
		}
		return tx.Users().UpdatePasswordHash(ctx, userID, hash)
	})
	switch {
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return err
	case errors.Is(err, store.ErrNotFound):
		// The account vanished between validation and update.
		return ErrInvalidOrExpiredToken
	case err != nil:
		log.Error("failed to complete password reset", slog.Int64("user_id", userID), slog.Any("error", err))
		return storageErr(err)
	}

	log.Info("password reset completed", slog.Int64("user_id", userID))
	return nil
}

func (s *ResetService) observeMail(result string) {
	if s.Metrics != nil {
		s.Metrics.ObserveResetMail(result)
	}
}
