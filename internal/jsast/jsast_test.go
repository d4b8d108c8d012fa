package jsast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(line, col int) Loc {
	return Loc{Start: Position{Line: line, Column: col}, End: Position{Line: line, Column: col + 1}}
}

func sampleTree() *Node {
	call := Call(Ident("foo", at(1, 0)), []*Node{StringLiteral("x", `"x"`, at(1, 4))}, at(1, 0))
	stmt := New(ExpressionStatement, at(1, 0)).SetChild(FieldExpression, call)
	ret := Return(Ident("y", at(2, 7)), at(2, 0))
	return New(Program, at(1, 0)).SetList(FieldBody, []*Node{stmt, ret})
}

func TestKindAndFieldNames(t *testing.T) {
	assert.Equal(t, "ArrowFunctionExpression", ArrowFunctionExpression.String())
	assert.Equal(t, "JSXExpressionContainer", JSXExpressionContainer.String())
	assert.Equal(t, "Invalid", Kind(250).String())
	assert.Equal(t, "superClass", FieldSuperClass.String())
	assert.Equal(t, "?", Field(0).String())

	for k := Invalid; k < kindCount; k++ {
		assert.NotEmpty(t, k.String(), "kind %d has no name", k)
	}
}

func TestSlots(t *testing.T) {
	n := New(IfStatement, at(1, 0))
	n.SetChild(FieldTest, Ident("a", at(1, 4)))
	n.SetChild(FieldAlternate, nil)
	assert.Equal(t, []Field{FieldTest}, n.Fields())
	assert.Nil(t, n.Child(FieldAlternate))

	n.SetChild(FieldTest, nil)
	assert.Empty(t, n.Fields())

	n.SetList(FieldBody, []*Node{nil, Ident("b", at(2, 0)), nil})
	require.Len(t, n.List(FieldBody), 1)
	assert.True(t, n.HasList(FieldBody))
	assert.False(t, n.HasList(FieldParams))

	n.Append(FieldBody, Ident("c", at(3, 0)))
	assert.Len(t, n.List(FieldBody), 2)

	var nilNode *Node
	assert.Nil(t, nilNode.Child(FieldBody))
	assert.Nil(t, nilNode.List(FieldBody))
}

func TestFlags(t *testing.T) {
	n := New(FunctionExpression, at(1, 0)).With(FlagAsync | FlagGenerator)
	assert.True(t, n.Is(FlagAsync))
	assert.True(t, n.Is(FlagAsync|FlagGenerator))
	assert.False(t, n.Is(FlagStatic))
}

func TestInspectAndCount(t *testing.T) {
	root := sampleTree()
	assert.Equal(t, 3, Count(root, Identifier))
	assert.Equal(t, 1, Count(root, Literal))
	assert.Equal(t, 1, Count(root, Program))

	var order []Kind
	Inspect(root, func(n, parent *Node) bool {
		order = append(order, n.Kind)
		if n.Kind == Program {
			assert.Nil(t, parent)
		}
		return n.Kind != ReturnStatement
	})
	assert.Equal(t, []Kind{Program, ExpressionStatement, CallExpression, Identifier, Literal, ReturnStatement}, order)
}

func TestRewriteReplaceAndRemove(t *testing.T) {
	root := sampleTree()

	r := NewRewriter().
		On(ReturnStatement, func(*Node) *Node { return nil }).
		On(Identifier, func(n *Node) *Node {
			if n.Name == "foo" {
				return Ident("bar", n.Loc)
			}
			return n
		})
	out := r.Rewrite(root)

	require.Len(t, out.List(FieldBody), 1)
	call := out.List(FieldBody)[0].Child(FieldExpression)
	assert.Equal(t, "bar", call.Child(FieldCallee).Name)
}

func TestRewriteRedispatchesOnReplacement(t *testing.T) {
	// A -> B -> C chain: the walk keeps transforming until the kind is stable.
	root := New(Program, at(1, 0)).SetList(FieldBody, []*Node{New(ExportNamedDeclaration, at(1, 0)).
		SetChild(FieldDeclaration, New(ClassDeclaration, at(1, 7)))})

	r := NewRewriter().
		On(ExportNamedDeclaration, func(n *Node) *Node { return n.Child(FieldDeclaration) }).
		On(ClassDeclaration, func(n *Node) *Node { return Array(nil, n.Loc) })

	out := r.Rewrite(root)
	require.Len(t, out.List(FieldBody), 1)
	assert.Equal(t, ArrayExpression, out.List(FieldBody)[0].Kind)
	assert.Equal(t, at(1, 7), out.List(FieldBody)[0].Loc)
}

func TestRewriteDropsEmptiedChild(t *testing.T) {
	root := New(ExpressionStatement, at(1, 0)).SetChild(FieldExpression, Ident("x", at(1, 0)))
	out := NewRewriter().On(Identifier, func(*Node) *Node { return nil }).Rewrite(root)
	assert.Empty(t, out.Fields())
}

func TestEqualAndClone(t *testing.T) {
	a := sampleTree()
	b := Clone(a)
	assert.True(t, Equal(a, b))

	b.List(FieldBody)[1].Child(FieldArgument).Name = "z"
	assert.False(t, Equal(a, b))
	assert.Equal(t, "y", a.List(FieldBody)[1].Child(FieldArgument).Name)

	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(a, nil))

	moved := Clone(a)
	moved.Loc.Start.Line = 9
	assert.False(t, Equal(a, moved))
}

func TestDump(t *testing.T) {
	out := Dump(sampleTree())
	assert.Contains(t, out, "Program 1:0\n")
	assert.Contains(t, out, "  body[]: ExpressionStatement 1:0\n")
	assert.Contains(t, out, "      callee: Identifier 1:0 foo\n")
	assert.Contains(t, out, `arguments[]: Literal 1:4 "x"`)
	assert.Empty(t, Dump(nil))
}
