package model

import "errors"

var (
	// ErrUserNotFound is returned when a user record is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a duplicate username
	ErrUsernameTaken = errors.New("username already registered")

	// ErrEmailTaken is returned when registering a duplicate email
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned on failed login; it deliberately
	// does not distinguish unknown user from wrong password
	ErrInvalidCredentials = errors.New("incorrect username or password")
)
