package service

import "errors"

// Request-scoped error kinds. Handlers map these to HTTP status codes;
// none of them is fatal to the process.
var (
	ErrValidation           = errors.New("validation failed")
	ErrInvalidItemType      = errors.New("invalid item type")
	ErrInsufficientQuantity = errors.New("insufficient quantity")
	ErrInvalidCredentials   = errors.New("invalid username or password")
	ErrPermissionDenied     = errors.New("permission denied")
	ErrNotFound             = errors.New("not found")
)
