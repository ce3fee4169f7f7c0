package convert

import (
	"errors"
	"fmt"
)

// Kind classifies a ConversionError.
type Kind string

// Conversion failure kinds.
const (
	InvalidEnumValue  Kind = "invalid enum value"
	MalformedJSON     Kind = "malformed json"
	InvalidIdentifier Kind = "invalid identifier"
	NumericOverflow   Kind = "numeric overflow"
)

// ConversionError reports a value that cannot cross the row/domain boundary.
// Field names the column (or domain field) at fault.
type ConversionError struct {
	Kind  Kind
	Field string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("convert %s: %s", e.Field, e.Kind)
	if e.Value != "" {
		msg += fmt.Sprintf(" %q", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is matches another *ConversionError with the same Kind, so callers can test
// errors.Is(err, &ConversionError{Kind: InvalidEnumValue}).
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Field == "" || t.Field == e.Field)
}

// KindOf returns the kind of the first ConversionError in err's chain.
func KindOf(err error) (Kind, bool) {
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ce.Kind, true
	}
	return "", false
}

func enumErr(field, value string) error {
	return &ConversionError{Kind: InvalidEnumValue, Field: field, Value: value}
}

func jsonErr(field string, err error) error {
	return &ConversionError{Kind: MalformedJSON, Field: field, Err: err}
}

func idErr(field, value string, err error) error {
	return &ConversionError{Kind: InvalidIdentifier, Field: field, Value: value, Err: err}
}

func overflowErr(field string, value any) error {
	return &ConversionError{Kind: NumericOverflow, Field: field, Value: fmt.Sprint(value)}
}
