package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an operation referencing a campaign or line
	// item that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateProduct reports an attempt to add a product that is
	// already part of the campaign.
	ErrDuplicateProduct = errors.New("product already in campaign")
	// ErrInsufficientStock reports a sale that would push soldQuantity
	// past stockQuantity.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStoreUnavailable reports that the persistence layer could not
	// be reached or timed out. Reads are safe to retry; RecordSale is
	// not without an idempotency token.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError reports malformed input to a create or update
// operation. It is always correctable by the caller and never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
