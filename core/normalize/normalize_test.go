package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/huangsam/codeinsights/internal/jsast"
)

func loc(line, col int) jsast.Loc {
	return jsast.Loc{Start: jsast.Position{Line: line, Column: col}, End: jsast.Position{Line: line, Column: col + 10}}
}

func program(body ...*jsast.Node) *jsast.Node {
	return jsast.New(jsast.Program, loc(1, 0)).SetList(jsast.FieldBody, body)
}

func arrow(body *jsast.Node, expr bool, at jsast.Loc) *jsast.Node {
	n := jsast.New(jsast.ArrowFunctionExpression, at).
		SetList(jsast.FieldParams, []*jsast.Node{jsast.Ident("x", at)}).
		SetChild(jsast.FieldBody, body)
	if expr {
		n.With(jsast.FlagExpressionBody)
	}
	return n
}

func TestImportBecomesRequire(t *testing.T) {
	source := jsast.StringLiteral("./b", `"./b"`, loc(3, 14))
	imp := jsast.New(jsast.ImportDeclaration, loc(3, 0)).SetChild(jsast.FieldSource, source)

	out := Normalize(program(imp))
	body := out.List(jsast.FieldBody)
	require.Len(t, body, 1)

	call := body[0]
	assert.Equal(t, jsast.CallExpression, call.Kind)
	assert.Equal(t, loc(3, 0), call.Loc)
	assert.Equal(t, "require", call.Child(jsast.FieldCallee).Name)
	args := call.List(jsast.FieldArguments)
	require.Len(t, args, 1)
	assert.Equal(t, "./b", args[0].Value)
	assert.Equal(t, loc(3, 14), args[0].Loc)
}

func TestExportsAreUnwrapped(t *testing.T) {
	decl := jsast.New(jsast.FunctionDeclaration, loc(1, 7)).
		SetChild(jsast.FieldID, jsast.Ident("f", loc(1, 16))).
		SetChild(jsast.FieldBody, jsast.Block(nil, loc(1, 20)))
	named := jsast.New(jsast.ExportNamedDeclaration, loc(1, 0)).SetChild(jsast.FieldDeclaration, decl)
	list := jsast.New(jsast.ExportNamedDeclaration, loc(2, 0)).
		SetList(jsast.FieldSpecifiers, []*jsast.Node{jsast.New(jsast.ExportSpecifier, loc(2, 9))})
	def := jsast.New(jsast.ExportDefaultDeclaration, loc(3, 0)).SetChild(jsast.FieldDeclaration, jsast.Ident("f", loc(3, 15)))
	all := jsast.New(jsast.ExportAllDeclaration, loc(4, 0))

	out := Normalize(program(named, list, def, all))
	body := out.List(jsast.FieldBody)
	require.Len(t, body, 3)
	assert.Equal(t, jsast.FunctionDeclaration, body[0].Kind)
	assert.Equal(t, loc(1, 7), body[0].Loc)
	assert.Equal(t, jsast.Identifier, body[1].Kind)
	assert.Equal(t, jsast.ExportAllDeclaration, body[2].Kind)
}

func TestArrowExpressionBody(t *testing.T) {
	expr := jsast.Ident("y", loc(1, 20))
	stmt := jsast.New(jsast.ExpressionStatement, loc(1, 0)).
		SetChild(jsast.FieldExpression, arrow(expr, true, loc(1, 10)))

	out := Normalize(program(stmt))
	fn := out.List(jsast.FieldBody)[0].Child(jsast.FieldExpression)
	require.Equal(t, jsast.FunctionExpression, fn.Kind)
	assert.Equal(t, loc(1, 10), fn.Loc)
	assert.Nil(t, fn.Child(jsast.FieldID))
	assert.False(t, fn.Is(jsast.FlagExpressionBody))
	assert.Len(t, fn.List(jsast.FieldParams), 1)

	block := fn.Child(jsast.FieldBody)
	require.Equal(t, jsast.BlockStatement, block.Kind)
	stmts := block.List(jsast.FieldBody)
	require.Len(t, stmts, 1)
	assert.Equal(t, jsast.ReturnStatement, stmts[0].Kind)
	assert.Equal(t, "y", stmts[0].Child(jsast.FieldArgument).Name)
	assert.Equal(t, loc(1, 20), stmts[0].Loc)
}

func TestArrowBlockBodyIsKept(t *testing.T) {
	block := jsast.Block([]*jsast.Node{jsast.Return(jsast.Ident("z", loc(2, 9)), loc(2, 2))}, loc(1, 16))
	original := jsast.Clone(block)
	stmt := jsast.New(jsast.ExpressionStatement, loc(1, 0)).
		SetChild(jsast.FieldExpression, arrow(block, false, loc(1, 10)).With(jsast.FlagAsync))

	out := Normalize(program(stmt))
	fn := out.List(jsast.FieldBody)[0].Child(jsast.FieldExpression)
	assert.True(t, fn.Is(jsast.FlagAsync))
	assert.True(t, jsast.Equal(original, fn.Child(jsast.FieldBody)))
}

func classWith(methods []string, arrowProps []string, plainProps int) *jsast.Node {
	var members []*jsast.Node
	line := 2
	for _, name := range methods {
		value := jsast.Function(nil, nil, jsast.Block(nil, loc(line, 10)), loc(line, 2))
		members = append(members, jsast.New(jsast.MethodDefinition, loc(line, 2)).
			SetChild(jsast.FieldKey, jsast.Ident(name, loc(line, 2))).
			SetChild(jsast.FieldValue, value))
		line++
	}
	for _, name := range arrowProps {
		members = append(members, jsast.New(jsast.ClassProperty, loc(line, 2)).
			SetChild(jsast.FieldKey, jsast.Ident(name, loc(line, 2))).
			SetChild(jsast.FieldValue, arrow(jsast.Ident("x", loc(line, 20)), true, loc(line, 10))))
		line++
	}
	for i := 0; i < plainProps; i++ {
		members = append(members, jsast.New(jsast.ClassProperty, loc(line, 2)).
			SetChild(jsast.FieldKey, jsast.Ident("n", loc(line, 2))).
			SetChild(jsast.FieldValue, jsast.New(jsast.Literal, loc(line, 6))))
		line++
	}
	body := jsast.New(jsast.ClassBody, loc(1, 10)).SetList(jsast.FieldBody, members)
	return jsast.New(jsast.ClassDeclaration, loc(1, 0)).
		SetChild(jsast.FieldID, jsast.Ident("C", loc(1, 6))).
		SetChild(jsast.FieldBody, body)
}

func TestClassBecomesArray(t *testing.T) {
	tests := []struct {
		name       string
		methods    []string
		arrowProps []string
		plainProps int
	}{
		{"empty class", nil, nil, 0},
		{"methods only", []string{"a", "b", "c"}, nil, 0},
		{"arrow properties only", nil, []string{"onClick"}, 0},
		{"mixed members", []string{"constructor", "render"}, []string{"handle", "reset"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Normalize(program(classWith(tt.methods, tt.arrowProps, tt.plainProps)))
			arr := out.List(jsast.FieldBody)[0]
			require.Equal(t, jsast.ArrayExpression, arr.Kind)
			assert.Equal(t, loc(1, 0), arr.Loc)

			elements := arr.List(jsast.FieldElements)
			want := append(append([]string{}, tt.methods...), tt.arrowProps...)
			require.Len(t, elements, len(want))
			for i, el := range elements {
				assert.Equal(t, jsast.FunctionExpression, el.Kind)
				assert.Equal(t, want[i], el.Child(jsast.FieldID).Name)
				assert.Equal(t, i+2, el.Loc.Start.Line)
			}
			assert.Zero(t, jsast.Count(out, jsast.ArrowFunctionExpression))
		})
	}
}

func TestExportedClassIsRewritten(t *testing.T) {
	exp := jsast.New(jsast.ExportDefaultDeclaration, loc(1, 0)).
		SetChild(jsast.FieldDeclaration, classWith([]string{"m"}, nil, 0))

	out := Normalize(program(exp))
	body := out.List(jsast.FieldBody)
	require.Len(t, body, 1)
	assert.Equal(t, jsast.ArrayExpression, body[0].Kind)
	assert.Zero(t, jsast.Count(out, jsast.ClassDeclaration))
}

func TestNestedArrowsAreRewritten(t *testing.T) {
	inner := arrow(jsast.Ident("x", loc(1, 30)), true, loc(1, 24))
	outer := arrow(inner, true, loc(1, 10))
	stmt := jsast.New(jsast.ExpressionStatement, loc(1, 0)).SetChild(jsast.FieldExpression, outer)

	out := Normalize(program(stmt))
	assert.Zero(t, jsast.Count(out, jsast.ArrowFunctionExpression))
	assert.Equal(t, 2, jsast.Count(out, jsast.FunctionExpression))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	root := program(
		jsast.New(jsast.ImportDeclaration, loc(1, 0)).SetChild(jsast.FieldSource, jsast.StringLiteral("a", `'a'`, loc(1, 7))),
		jsast.New(jsast.ExportNamedDeclaration, loc(2, 0)).SetChild(jsast.FieldDeclaration, classWith([]string{"m"}, []string{"p"}, 1)),
		jsast.New(jsast.ExpressionStatement, loc(9, 0)).SetChild(jsast.FieldExpression, arrow(jsast.Ident("q", loc(9, 8)), true, loc(9, 0))),
	)

	once := Normalize(root)
	snapshot := jsast.Clone(once)
	twice := Normalize(once)
	assert.True(t, jsast.Equal(snapshot, twice))
	assert.Nil(t, Normalize(nil))
}
