package contract

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the errors that abort a run.
type ErrorKind string

// Error kinds.
const (
	UsageKind       ErrorKind = "usage"
	SelectionKind   ErrorKind = "selection"
	ParseKind       ErrorKind = "parse"
	AggregationKind ErrorKind = "aggregation"
)

// Error is a run-aborting failure, optionally tied to one file.
type Error struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error in %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UsageError marks invalid flags or configuration.
func UsageError(err error) error {
	return &Error{Kind: UsageKind, Err: err}
}

// SelectionError marks a failure to list the files of a run.
func SelectionError(path string, err error) error {
	return &Error{Kind: SelectionKind, Path: path, Err: err}
}

// ParseError marks a file that could not be read or parsed.
func ParseError(path string, err error) error {
	return &Error{Kind: ParseKind, Path: path, Err: err}
}

// AggregationError marks a failure of the complexity engine.
func AggregationError(path string, err error) error {
	return &Error{Kind: AggregationKind, Path: path, Err: err}
}

// IsKind reports whether err wraps a contract Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
