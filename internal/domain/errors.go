package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrValidation     = errors.New("validation failed")
	ErrGateway        = errors.New("ai service error")
)
