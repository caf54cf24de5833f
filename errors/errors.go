// Package errors provides the typed error kinds surfaced by the curies
// library. It includes error classification, constructors for each kind,
// and helper functions for consistent error wrapping across the system.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for handling purposes. Boundaries (service,
// CLI) render the kind as the human-readable message category.
type Kind int

const (
	// KindNotFound indicates a prefix, URI prefix, or URI with no
	// matching record in the registry.
	KindNotFound Kind = iota
	// KindInvalidCURIE indicates a compact identifier that did not split
	// into exactly two parts on the configured delimiter.
	KindInvalidCURIE
	// KindInvalidFormat indicates a malformed source document, an
	// uncompilable or unmatched validation pattern, or an empty chain input.
	KindInvalidFormat
	// KindDuplicateRecord indicates an insertion that would violate the
	// global prefix/URI-prefix uniqueness invariant.
	KindDuplicateRecord
	// KindFetch indicates a failure retrieving a remote registry document.
	KindFetch
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidCURIE:
		return "invalid_curie"
	case KindInvalidFormat:
		return "invalid_format"
	case KindDuplicateRecord:
		return "duplicate_record"
	case KindFetch:
		return "fetch"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by the library. Key holds the
// offending input (prefix, URI, CURIE) when one exists; Detail carries a
// free-form message for format and fetch failures.
type Error struct {
	Kind   Kind
	Key    string
	Detail string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("not found: %s", e.Key)
	case KindInvalidCURIE:
		return fmt.Sprintf("invalid CURIE: %s", e.Key)
	case KindInvalidFormat:
		return fmt.Sprintf("invalid format: %s", e.Detail)
	case KindDuplicateRecord:
		return fmt.Sprintf("duplicate record: %s", e.Key)
	case KindFetch:
		if e.Err != nil {
			return fmt.Sprintf("fetch failed: %s: %v", e.Detail, e.Err)
		}
		return fmt.Sprintf("fetch failed: %s", e.Detail)
	default:
		if e.Err != nil {
			return e.Err.Error()
		}
		return e.Detail
	}
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that key (a prefix, URI prefix, or URI) has no matching
// record.
func NotFound(key string) error {
	return &Error{Kind: KindNotFound, Key: key}
}

// InvalidCURIE reports that input is not a valid compact identifier.
func InvalidCURIE(input string) error {
	return &Error{Kind: KindInvalidCURIE, Key: input}
}

// InvalidFormat reports a malformed document, pattern, or argument.
func InvalidFormat(detail string) error {
	return &Error{Kind: KindInvalidFormat, Detail: detail}
}

// InvalidFormatf is InvalidFormat with fmt.Sprintf formatting.
func InvalidFormatf(format string, args ...any) error {
	return &Error{Kind: KindInvalidFormat, Detail: fmt.Sprintf(format, args...)}
}

// Duplicate reports that inserting key would collide with an existing
// canonical prefix, canonical URI prefix, or synonym.
func Duplicate(key string) error {
	return &Error{Kind: KindDuplicateRecord, Key: key}
}

// Fetch wraps a retrieval failure for the given source.
func Fetch(source string, err error) error {
	return &Error{Kind: KindFetch, Detail: source, Err: err}
}

// KindOf returns the Kind of err, or ok=false if err is not a library error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// is reports whether err is a library error of the given kind.
func is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// IsNotFound reports whether err is a NotFound error.
func IsNotFound(err error) bool { return is(err, KindNotFound) }

// IsInvalidCURIE reports whether err is an InvalidCURIE error.
func IsInvalidCURIE(err error) bool { return is(err, KindInvalidCURIE) }

// IsInvalidFormat reports whether err is an InvalidFormat error.
func IsInvalidFormat(err error) bool { return is(err, KindInvalidFormat) }

// IsDuplicate reports whether err is a DuplicateRecord error.
func IsDuplicate(err error) bool { return is(err, KindDuplicateRecord) }

// IsFetch reports whether err is a Fetch error.
func IsFetch(err error) bool { return is(err, KindFetch) }

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}
