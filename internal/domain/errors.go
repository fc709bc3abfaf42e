package domain

import "errors"

// Common domain errors
var (
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrForbidden     = errors.New("forbidden")
	ErrAlreadyExists = errors.New("already exists")
	ErrConflict      = errors.New("concurrent modification conflict")
)

// ErrActionNotAllowed signals a business-rule rejection of a loan state
// transition or protocol action. It is a client error, never a crash.
var ErrActionNotAllowed = errors.New("action not allowed")
