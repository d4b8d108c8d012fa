//go:build cgo

package jsparse

import (
	"context"
	"fmt"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/huangsam/codeinsights/internal/jsast"
)

// Parser parses JavaScript source with JSX. Flow and TypeScript type annotations
// are syntax errors. A Parser is not safe for concurrent use.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new tree-sitter backed parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &Parser{parser: p}
}

// Available reports whether parsing is supported in this build.
func Available() bool {
	return true
}

// Parse parses src and returns its Program node.
// Syntax errors are reported as *ParseError.
func (p *Parser) Parse(ctx context.Context, src []byte) (*jsast.Node, error) {
	if !utf8.Valid(src) {
		return nil, &ParseError{Line: 1, Column: 0, Msg: "source is not valid UTF-8"}
	}

	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, src)
	}

	l := &lowerer{src: src}
	return l.program(root), nil
}

// syntaxError locates the first ERROR or MISSING node below n.
func syntaxError(n *sitter.Node, src []byte) *ParseError {
	bad := firstError(n)
	if bad == nil {
		bad = n
	}
	pos := bad.StartPoint()
	perr := &ParseError{Line: int(pos.Row) + 1, Column: int(pos.Column)}
	if bad.IsMissing() {
		perr.Msg = fmt.Sprintf("missing %q", bad.Type())
		return perr
	}
	snippet := bad.Content(src)
	if len(snippet) > 24 {
		snippet = snippet[:24] + "..."
	}
	perr.Msg = fmt.Sprintf("unexpected %q", snippet)
	return perr
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil || !(c.HasError() || c.IsMissing()) {
			continue
		}
		if bad := firstError(c); bad != nil {
			return bad
		}
	}
	return nil
}
