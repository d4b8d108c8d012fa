// Package normalize rewrites modern JavaScript constructs into the older forms
// walked by the complexity engine.
//
// Four node kinds are rewritten: export declarations are unwrapped, imports
// become require calls, arrow functions become function expressions and class
// declarations become arrays of function expressions. Every replacement keeps
// the source location of the node it replaces, and the pass is idempotent.
package normalize

import "github.com/huangsam/codeinsights/internal/jsast"

var rewriter = jsast.NewRewriter().
	On(jsast.ExportNamedDeclaration, unwrapExport).
	On(jsast.ExportDefaultDeclaration, unwrapExport).
	On(jsast.ImportDeclaration, importToRequire).
	On(jsast.ArrowFunctionExpression, arrowToFunction).
	On(jsast.ClassDeclaration, classToArray)

// Normalize rewrites root in place and returns it.
func Normalize(root *jsast.Node) *jsast.Node {
	if root == nil {
		return nil
	}
	return rewriter.Rewrite(root)
}

// unwrapExport replaces an export with the declaration it wraps.
// Exports without a declaration, such as export lists, are removed.
func unwrapExport(n *jsast.Node) *jsast.Node {
	return n.Child(jsast.FieldDeclaration)
}

// importToRequire turns an import declaration into require(<source>).
func importToRequire(n *jsast.Node) *jsast.Node {
	source := n.Child(jsast.FieldSource)
	return jsast.Call(jsast.Ident("require", n.Loc), []*jsast.Node{source}, n.Loc)
}

// arrowToFunction turns an arrow function into an anonymous function expression.
// An expression body is wrapped in a block with a single return statement.
func arrowToFunction(n *jsast.Node) *jsast.Node {
	body := n.Child(jsast.FieldBody)
	if body != nil && body.Kind != jsast.BlockStatement {
		body = jsast.Block([]*jsast.Node{jsast.Return(body, body.Loc)}, body.Loc)
	}
	fn := jsast.Function(nil, n.List(jsast.FieldParams), body, n.Loc)
	fn.Flags = n.Flags &^ jsast.FlagExpressionBody
	return fn
}

// classToArray turns a class declaration into an array of function expressions:
// every method in declaration order, followed by every class property whose
// value is an arrow function.
func classToArray(n *jsast.Node) *jsast.Node {
	var methods, properties []*jsast.Node
	for _, member := range n.Child(jsast.FieldBody).List(jsast.FieldBody) {
		switch member.Kind {
		case jsast.MethodDefinition:
			value := member.Child(jsast.FieldValue)
			if value == nil {
				continue
			}
			fn := jsast.Function(memberName(member), value.List(jsast.FieldParams), value.Child(jsast.FieldBody), member.Loc)
			fn.Flags = value.Flags
			methods = append(methods, fn)
		case jsast.ClassProperty:
			value := member.Child(jsast.FieldValue)
			if value == nil || value.Kind != jsast.ArrowFunctionExpression {
				continue
			}
			fn := arrowToFunction(value)
			fn.SetChild(jsast.FieldID, memberName(member))
			fn.Loc = member.Loc
			properties = append(properties, fn)
		}
	}
	return jsast.Array(append(methods, properties...), n.Loc)
}

// memberName returns an identifier naming a class member, or nil for computed
// and literal keys.
func memberName(member *jsast.Node) *jsast.Node {
	key := member.Child(jsast.FieldKey)
	if key == nil || key.Kind != jsast.Identifier || member.Is(jsast.FlagComputed) {
		return nil
	}
	return jsast.Ident(key.Name, key.Loc)
}
