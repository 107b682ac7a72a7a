package domain

import (
	"github.com/allisson/bookstore/internal/errors"
)

// Account error definitions.
var (
	// ErrAccountNotFound indicates the account does not exist.
	ErrAccountNotFound = errors.Wrap(errors.ErrNotFound, "account not found")

	// ErrAccountAlreadyExists indicates the username or email is already registered.
	ErrAccountAlreadyExists = errors.Wrap(errors.ErrConflict, "username or email already registered")

	// ErrInvalidCredentials is returned for both unknown accounts and wrong passwords.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "Your username and/or password is incorrect")

	// ErrRegistrationNotFound indicates the pending registration does not exist.
	ErrRegistrationNotFound = errors.Wrap(errors.ErrNotFound, "registration not found")

	// ErrInvalidOTP indicates a wrong, expired or exhausted verification code.
	ErrInvalidOTP = errors.Wrap(errors.ErrUnauthorized, "invalid or expired verification code")

	// ErrPasswordResetNotFound indicates no reset matches the token.
	ErrPasswordResetNotFound = errors.Wrap(errors.ErrNotFound, "password reset not found")

	// ErrInvalidResetToken indicates an unknown, used or expired reset token.
	ErrInvalidResetToken = errors.Wrap(errors.ErrInvalidInput, "invalid or expired reset token")

	// ErrCannotDeleteSelf indicates an admin tried to delete their own account.
	ErrCannotDeleteSelf = errors.Wrap(errors.ErrInvalidInput, "cannot delete your own account")
)
