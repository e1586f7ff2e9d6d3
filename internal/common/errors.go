// Package common defines shared constants and sentinel errors used across
// the layers of cloudshelf. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrInternal   = errors.New("internal error")
	ErrValidation = errors.New("validation error")

	// Auth errors. Deliberately coarse: callers must not learn which check failed.
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// External dependency errors, surfaced rather than masked.
	ErrStorageUnavailable     = errors.New("object storage unavailable")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
)
