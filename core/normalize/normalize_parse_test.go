//go:build cgo

package normalize

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/codeinsights/internal/jsast"
	"github.com/huangsam/codeinsights/internal/jsparse"
)

const componentSource = `import React from 'react';
import { connect } from "react-redux";

export const double = n => n * 2;

export default class Counter extends React.Component {
  constructor(props) {
    super(props);
  }
  render() {
    return this.props.items.map(item => item.id);
  }
  handleClick = () => {
    this.setState({ clicked: true });
  };
  label = 'counter';
}
`

func requireCalls(root *jsast.Node) []string {
	var sources []string
	jsast.Inspect(root, func(n, _ *jsast.Node) bool {
		if n.Kind != jsast.CallExpression {
			return true
		}
		callee := n.Child(jsast.FieldCallee)
		args := n.List(jsast.FieldArguments)
		if callee != nil && callee.Name == "require" && len(args) == 1 {
			sources = append(sources, args[0].Value)
		}
		return true
	})
	return sources
}

func TestNormalizeParsedComponent(t *testing.T) {
	root, err := jsparse.NewParser().Parse(context.Background(), []byte(componentSource))
	require.NoError(t, err)

	require.Equal(t, 2, jsast.Count(root, jsast.ImportDeclaration))
	require.Equal(t, 1, jsast.Count(root, jsast.ExportNamedDeclaration))
	require.Equal(t, 1, jsast.Count(root, jsast.ExportDefaultDeclaration))
	require.Equal(t, 3, jsast.Count(root, jsast.ArrowFunctionExpression))
	require.Equal(t, 1, jsast.Count(root, jsast.ClassDeclaration))

	out := Normalize(root)

	for _, k := range []jsast.Kind{
		jsast.ImportDeclaration, jsast.ExportNamedDeclaration, jsast.ExportDefaultDeclaration,
		jsast.ArrowFunctionExpression, jsast.ClassDeclaration,
	} {
		assert.Zero(t, jsast.Count(out, k), "%s should be rewritten", k)
	}
	assert.Equal(t, []string{"react", "react-redux"}, requireCalls(out))

	body := out.List(jsast.FieldBody)
	require.Len(t, body, 4)
	assert.Equal(t, jsast.VariableDeclaration, body[2].Kind)
	assert.Equal(t, 4, body[2].Loc.Start.Line)

	arr := body[3]
	require.Equal(t, jsast.ArrayExpression, arr.Kind)
	elements := arr.List(jsast.FieldElements)
	require.Len(t, elements, 3)
	assert.Equal(t, "constructor", elements[0].Child(jsast.FieldID).Name)
	assert.Equal(t, "render", elements[1].Child(jsast.FieldID).Name)
	assert.Equal(t, "handleClick", elements[2].Child(jsast.FieldID).Name)
	assert.Equal(t, 13, elements[2].Loc.Start.Line)

	// double, the three class members and the callback inside render.
	assert.Equal(t, 5, jsast.Count(out, jsast.FunctionExpression))
}

func TestNormalizeParsedIsIdempotent(t *testing.T) {
	root, err := jsparse.NewParser().Parse(context.Background(), []byte(componentSource))
	require.NoError(t, err)

	once := jsast.Clone(Normalize(root))
	twice := Normalize(jsast.Clone(once))
	assert.True(t, jsast.Equal(once, twice))
}
