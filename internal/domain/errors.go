package domain

import (
	"errors"
	"fmt"
)

// Domain sentinel errors (no external dependencies).
var (
	ErrNotFound              = errors.New("resource not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrInvalidInput          = errors.New("invalid input")
	ErrDuplicate             = errors.New("duplicate resource")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrForbidden             = errors.New("forbidden")
	ErrConflict              = errors.New("conflict with current state")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInvalidAllocation     = errors.New("invalid allocation method")
)

// Error kinds carried by DomainError for machine-readable translation at the edges.
const (
	KindInsufficientInventory = "INSUFFICIENT_INVENTORY"
	KindInvalidAllocation     = "INVALID_ALLOCATION_METHOD"
	KindMassBalanceFailed     = "MASS_BALANCE_FAILED"
	KindProvenance            = "PROVENANCE_INHERITANCE"
)

// DomainError is a value-object error with a machine-readable kind and
// structured detail fields. Callers unwrap to the matching sentinel and
// translate the details to whatever external format they need.
type DomainError struct {
	Kind    string
	Message string
	Details map[string]any
	wrapped error
}

// NewDomainError builds a DomainError wrapping the given sentinel.
func NewDomainError(kind, message string, sentinel error, details map[string]any) *DomainError {
	return &DomainError{Kind: kind, Message: message, Details: details, wrapped: sentinel}
}

func (e *DomainError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return e.Kind
}

// Unwrap lets errors.Is match against the sentinel.
func (e *DomainError) Unwrap() error { return e.wrapped }
