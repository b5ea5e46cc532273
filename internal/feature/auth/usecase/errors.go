// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrOperatorNotFound is returned when no operator matches the email.
	ErrOperatorNotFound = errors.New("operator not found")

	// ErrInvalidCredentials is returned when the email or password does not match.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
