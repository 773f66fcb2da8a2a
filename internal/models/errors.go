package models

import "errors"

// Sentinel errors shared by services and handlers.
var (
	ErrNotFound      = errors.New("record not found")
	ErrUnknownField  = errors.New("unknown field")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidValue  = errors.New("invalid value")
	ErrEmptyName     = errors.New("name is required")
	ErrDuplicateName = errors.New("name already exists")
)

// IsValidation reports whether err is a caller mistake rather than a store failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrUnknownField) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidValue) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrDuplicateName)
}
