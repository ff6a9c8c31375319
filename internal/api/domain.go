package api

import "errors"

// Sentinel errors shared across the data access layer.
var (
	// ErrNotFound marks writes that matched no row. Single-row lookups
	// return a nil result instead of this error.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks unique-constraint violations (duplicate slug etc.).
	ErrConflict = errors.New("conflict")
)

// Response represents a generic API response for success or error messages.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
