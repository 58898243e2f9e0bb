package services

import (
	"errors"
	"fmt"
)

var (
	// ErrStore wraps every failure of the record store or the admin store.
	ErrStore = errors.New("store unavailable")

	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidRegisterToken = errors.New("invalid registration token")
	ErrRegistrationDisabled = errors.New("admin registration disabled")
	ErrDuplicateAdmin       = errors.New("usuario or email already registered")
	ErrAdminNotFound        = errors.New("admin not found")
)

func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStore, err)
}
