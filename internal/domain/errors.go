package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrAlreadyEnrolled    = errors.New("already enrolled")
	ErrCourseFull         = errors.New("course is full")
	ErrValidation         = errors.New("validation failed")
)
