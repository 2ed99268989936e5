// Package core defines the fundamental types and errors for foodfire.
package core

import "errors"

// Core errors that can occur across the system
var (
	// Record errors
	ErrRecordNotFound  = errors.New("record not found")
	ErrDuplicateRecord = errors.New("duplicate record")

	// Storage errors
	ErrCorruptDocument = errors.New("corrupt document")
	ErrUnknownBackend  = errors.New("unknown storage backend")
	ErrMigrationFailed = errors.New("migration failed")

	// Streak errors
	ErrUnknownRule = errors.New("unknown streak rule")

	// Validation errors
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
