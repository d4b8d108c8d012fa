// Package jsparse turns JavaScript source text into a jsast tree.
//
// Parsing is backed by the tree-sitter JavaScript grammar (ES2022 and later,
// JSX, object spread/rest, decorators). Builds without cgo get a stub whose
// Parse always fails with ErrNoCGO.
package jsparse

import (
	"errors"
	"fmt"
)

// ErrNoCGO is returned when parsing is unavailable because cgo is disabled.
var ErrNoCGO = errors.New("javascript parsing requires CGO (tree-sitter)")

// ParseError reports the first syntax error found in a source file.
type ParseError struct {
	Line   int // 1-based
	Column int // 0-based
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %d: %s", e.Line, e.Column, e.Msg)
}
