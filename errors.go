package gochart

import (
	"errors"
	"fmt"
)

// ErrType classifies a request value of the wrong kind: a string, map,
// struct or scalar where a sequence is required, or a non-numeric element.
var ErrType = errors.New("type error")

// ErrValue classifies a well-typed request whose content is invalid: empty
// sequences, mismatched lengths or a domain rule violation.
var ErrValue = errors.New("value error")

// ErrUnknownKind indicates a chart kind tag that is not registered.
var ErrUnknownKind = fmt.Errorf("%w: unknown chart kind", ErrValue)

// ErrUnsupportedFormat indicates an output format the serializer cannot write.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ErrorClass is the classification of a ValidationError.
type ErrorClass int

const (
	ClassType ErrorClass = iota + 1
	ClassValue
)

func (c ErrorClass) String() string {
	if c == ClassType {
		return "type error"
	}
	return "value error"
}

// ValidationError describes the first rule a chart request violated.
type ValidationError struct {
	Kind   Kind
	Field  string
	Class  ErrorClass
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s chart: %s on %s: %s", e.Kind, e.Class, e.Field, e.Reason)
}

// Unwrap returns ErrType or ErrValue so callers can use errors.Is.
func (e *ValidationError) Unwrap() error {
	if e.Class == ClassType {
		return ErrType
	}
	return ErrValue
}

func typeError(kind Kind, field, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Class: ClassType, Reason: reason}
}

func valueError(kind Kind, field, reason string) *ValidationError {
	return &ValidationError{Kind: kind, Field: field, Class: ClassValue, Reason: reason}
}
