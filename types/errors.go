package types

import (
	"errors"
	"fmt"
)

// MalformedInputError is returned when the results record cannot be read as
// the expected record structure, e.g. a required attribute is missing.
type MalformedInputError struct {
	Record    string // description of the offending record, e.g. "test record #3"
	Attribute string // offending attribute, empty when not attributable
	Reason    string
	Err       error
}

func (e *MalformedInputError) Error() string {
	msg := "malformed input"
	if e.Record != "" {
		msg += ": " + e.Record
	}
	if e.Attribute != "" {
		msg += fmt.Sprintf(": attribute %q", e.Attribute)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap implements the errors.Unwrap interface
func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// UnknownComponentError is returned when a record names a component outside
// the fixed set.
type UnknownComponentError struct {
	Value  string
	Record string
}

func (e *UnknownComponentError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("unknown component %q in %s", e.Value, e.Record)
	}
	return fmt.Sprintf("unknown component %q", e.Value)
}

// IncompleteReportError is returned when a component has no overview record
type IncompleteReportError struct {
	Component Component
}

func (e *IncompleteReportError) Error() string {
	return fmt.Sprintf("incomplete report: no overview record for component %q", e.Component)
}

// IOError wraps a failure to read the input or write an output
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *IOError) Unwrap() error {
	return e.Err
}

// IsInputError checks if the error is or wraps one of the input validation errors
func IsInputError(err error) bool {
	if err == nil {
		return false
	}
	var (
		malformed  *MalformedInputError
		unknown    *UnknownComponentError
		incomplete *IncompleteReportError
	)
	return errors.As(err, &malformed) || errors.As(err, &unknown) || errors.As(err, &incomplete)
}

// IsIOError checks if the error is or wraps an IOError
func IsIOError(err error) bool {
	var ioErr *IOError
	return err != nil && errors.As(err, &ioErr)
}
