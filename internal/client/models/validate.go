// Package models defines the data-transfer types exchanged with the MindCare
// API and validates them at the client boundary.
//
// Every payload decoded from the API is checked with Validate before it
// reaches a store; a shape mismatch fails fast with ErrInvalidPayload instead
// of leaking zero values into the UI.
package models

import (
	"errors"
	"fmt"
)

var ErrInvalidPayload = errors.New("invalid payload")

// Validator is implemented by every decoded DTO.
type Validator interface {
	Validate() error
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidPayload, fmt.Sprintf(format, args...))
}

func required(kind, field, value string) error {
	if value == "" {
		return invalid("%s: missing %s", kind, field)
	}
	return nil
}

// ValidateAll validates each item of a decoded list, reporting the index of
// the first bad one.
func ValidateAll[T Validator](items []T) error {
	for i, it := range items {
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	return nil
}
