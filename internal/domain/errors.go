// internal/domain/errors.go
package domain

import "errors"

// Sentinel errors for the failure taxonomy. Services wrap these with
// fmt.Errorf("...: %w", err) so callers can match with errors.Is.
var (
	// ErrNotFound signals a referenced product, inventory row or plan is
	// absent (or the product is inactive where an active one is required).
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput signals out-of-range configuration or payload values,
	// rejected before any computation runs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientStock signals an operation that would drive
	// current_stock negative. The inventory row is left unchanged.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrConflict signals a uniqueness violation, e.g. a duplicate
	// (product, plan month, version) monthly plan.
	ErrConflict = errors.New("already exists")
)
