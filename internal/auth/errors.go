package auth

import "errors"

var (
	// ErrUnknownRight is returned when a right has no role column.
	ErrUnknownRight = errors.New("unknown right")

	// ErrUserNameOrEmailExists is returned when attempting to create a user with a login or email that already exists.
	ErrUserNameOrEmailExists = errors.New("user with login or email already exists")

	// ErrUserAccountDisabled is returned when attempting to authenticate a disabled user account.
	ErrUserAccountDisabled = errors.New("user account is disabled")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when a user cannot be found in the database.
	ErrUserNotFound = errors.New("user not found")
)
