package jsfilter

import "errors"

var (
	// ErrUnbalanced is returned for an end without a matching start and for
	// input that ends with scopes still open.
	ErrUnbalanced = errors.New("unbalanced object or list nesting")
	// ErrInvalidRule is returned when a rule pattern fails to compile.
	ErrInvalidRule = errors.New("invalid rule pattern")
	// ErrConflictingOptions is returned when both the inline code finder and
	// a subfilter are configured.
	ErrConflictingOptions = errors.New("code finder and subfilter are mutually exclusive")
	// ErrSubfilter wraps a subfilter failure on an extracted value.
	ErrSubfilter = errors.New("subfilter failed")
)
