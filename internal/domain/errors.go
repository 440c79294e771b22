package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingRequiredField signals a source record without a nested key the mapper requires.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrTypeMismatch signals a vacancy compared against a non-vacancy value.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrEmptyInput signals an ordering operation over an empty list.
	ErrEmptyInput = errors.New("empty input")
	// ErrNotFound signals a missing resource (file, cache key).
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedFormat signals a storage file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrSourceUnavailable signals a failed call to the vacancy source API.
	ErrSourceUnavailable = errors.New("vacancy source unavailable")
	// ErrInvalidQuery signals a malformed search request.
	ErrInvalidQuery = errors.New("invalid query")
)

// MissingFieldError wraps ErrMissingRequiredField with the dotted path that failed to resolve.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField.Error(), e.Path)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingRequiredField }

// NewMissingField creates a missing field error for the given path.
func NewMissingField(path string) error {
	return &MissingFieldError{Path: path}
}

// TypeMismatchError wraps ErrTypeMismatch with the Go type of the offending operand.
type TypeMismatchError struct {
	Got string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: cannot compare vacancy with %s", ErrTypeMismatch.Error(), e.Got)
}

func (e *TypeMismatchError) Unwrap() error { return ErrTypeMismatch }

// NewTypeMismatch creates a type mismatch error for the given operand.
func NewTypeMismatch(operand any) error {
	return &TypeMismatchError{Got: fmt.Sprintf("%T", operand)}
}
