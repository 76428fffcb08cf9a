package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("user not authenticated")
	ErrForbidden       = errors.New("this deal requires account verification")
	ErrNotFound        = errors.New("not found")
	ErrAlreadyClaimed  = errors.New("you have already claimed this deal")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

var (
	ErrDealNotFound  = fmt.Errorf("deal %w", ErrNotFound)
	ErrUserNotFound  = fmt.Errorf("user %w", ErrNotFound)
	ErrClaimNotFound = fmt.Errorf("claim %w", ErrNotFound)
)

// InvalidInput wraps ErrInvalidInput with a user-facing reason.
func InvalidInput(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, reason)
}
