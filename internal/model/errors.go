package model

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used across the application
var (
	// Transfer errors
	ErrTransferNotFound = errors.New("transfer not found")
	ErrInvalidStatus    = errors.New("invalid transfer status")
	ErrEmptyUpdate      = errors.New("update names no fields")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already exists")
)

// ValidationError reports which input fields failed validation
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError creates a ValidationError for the given field names
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
