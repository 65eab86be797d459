package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCriteria signals a criteria field outside its allowed domain.
	ErrInvalidCriteria = errors.New("invalid criteria")
	// ErrInvalidProduct signals a product record that violates the data model.
	ErrInvalidProduct = errors.New("invalid product")
	// ErrEmptyQuery signals a blank natural-language query.
	ErrEmptyQuery = errors.New("query is empty")

	// ErrCatalogNotFound signals a missing catalog source.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrCatalogMalformed signals a catalog source that cannot be decoded.
	ErrCatalogMalformed = errors.New("catalog malformed")

	// ErrIntentProviderError signals an intent extraction provider failure.
	ErrIntentProviderError = errors.New("intent provider error")
	// ErrMalformedExtraction signals tool-call arguments that cannot be decoded.
	ErrMalformedExtraction = errors.New("malformed extraction")
	// ErrRateLimited signals a rate limit hit.
	ErrRateLimited = errors.New("rate limited")
	// ErrIntentQuotaExceeded signals an exhausted intent token budget.
	ErrIntentQuotaExceeded = errors.New("intent quota exceeded")
)

// InvalidCriteriaError wraps ErrInvalidCriteria with the offending field.
type InvalidCriteriaError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidCriteriaError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s %q: %s", ErrInvalidCriteria.Error(), e.Field, e.Value, e.Reason)
	}
	return fmt.Sprintf("%s: %s %q", ErrInvalidCriteria.Error(), e.Field, e.Value)
}

func (e *InvalidCriteriaError) Unwrap() error { return ErrInvalidCriteria }

// NewInvalidCriteria creates an invalid criteria error for a field.
func NewInvalidCriteria(field, value, reason string) error {
	return &InvalidCriteriaError{Field: field, Value: value, Reason: reason}
}
