package hhdex

import "github.com/kailas-cloud/hhdex/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound             = domain.ErrNotFound
	ErrUnsupportedFormat    = domain.ErrUnsupportedFormat
	ErrSourceUnavailable    = domain.ErrSourceUnavailable
	ErrInvalidQuery         = domain.ErrInvalidQuery
	ErrEmptyInput           = domain.ErrEmptyInput
	ErrTypeMismatch         = domain.ErrTypeMismatch
	ErrMissingRequiredField = domain.ErrMissingRequiredField
)
