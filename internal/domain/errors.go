package domain

import "errors"

// Sentinel errors shared by repositories, services and handlers.
// Services wrap them with a reason: fmt.Errorf("%w: title is required", ErrValidation).
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("not found")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
	ErrDuplicateCode = errors.New("duplicate confirmation code")
)
