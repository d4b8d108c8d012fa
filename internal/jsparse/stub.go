//go:build !cgo

package jsparse

import (
	"context"

	"github.com/huangsam/codeinsights/internal/jsast"
)

// Parser is a stub for non-CGO builds.
type Parser struct{}

// NewParser returns a parser whose Parse always fails.
func NewParser() *Parser {
	return &Parser{}
}

// Available reports whether parsing is supported in this build.
func Available() bool {
	return false
}

// Parse always returns ErrNoCGO.
func (p *Parser) Parse(_ context.Context, _ []byte) (*jsast.Node, error) {
	return nil, ErrNoCGO
}
