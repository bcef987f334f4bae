package service

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail        = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidOrExpiredToken = errors.New("reset token is invalid or expired")
	ErrPasswordMismatch      = errors.New("passwords do not match")
	ErrInvalidEvent          = errors.New("event name is required")
	ErrInvalidInput          = errors.New("invalid input")
	ErrUserNotFound          = errors.New("user not found")

	// ErrStorage wraps any unexpected data-layer failure, including a
	// request deadline hit while talking to the database.
	ErrStorage = errors.New("storage error")

	// ErrEmailDispatch wraps mail delivery failures.
	ErrEmailDispatch = errors.New("email dispatch failed")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
