//go:build cgo

package jsparse

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/huangsam/codeinsights/internal/jsast"
)

// lowerer converts tree-sitter concrete syntax into jsast nodes.
type lowerer struct {
	src []byte
}

func (l *lowerer) loc(n *sitter.Node) jsast.Loc {
	s, e := n.StartPoint(), n.EndPoint()
	return jsast.Loc{
		Start: jsast.Position{Line: int(s.Row) + 1, Column: int(s.Column)},
		End:   jsast.Position{Line: int(e.Row) + 1, Column: int(e.Column)},
	}
}

func (l *lowerer) text(n *sitter.Node) string {
	return n.Content(l.src)
}

// named returns the named children of n, skipping comments.
func named(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	count := int(n.NamedChildCount())
	out := make([]*sitter.Node, 0, count)
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c == nil || isTrivia(c) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func firstNamed(n *sitter.Node) *sitter.Node {
	if kids := named(n); len(kids) > 0 {
		return kids[0]
	}
	return nil
}

func isTrivia(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "html_comment", "hash_bang_line":
		return true
	}
	return false
}

// hasToken reports whether n has an anonymous child of the given type.
func hasToken(n *sitter.Node, tok string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c != nil && !c.IsNamed() && c.Type() == tok {
			return true
		}
	}
	return false
}

func sameNode(a, b *sitter.Node) bool {
	if a == nil || b == nil {
		return false
	}
	return a.StartByte() == b.StartByte() && a.EndByte() == b.EndByte() && a.Type() == b.Type()
}

func (l *lowerer) list(nodes []*sitter.Node) []*jsast.Node {
	out := make([]*jsast.Node, 0, len(nodes))
	for _, n := range nodes {
		if c := l.node(n); c != nil {
			out = append(out, c)
		}
	}
	return out
}

func (l *lowerer) program(root *sitter.Node) *jsast.Node {
	return jsast.New(jsast.Program, l.loc(root)).SetList(jsast.FieldBody, l.list(named(root)))
}

// node lowers any statement, expression or pattern.
func (l *lowerer) node(n *sitter.Node) *jsast.Node {
	if n == nil || isTrivia(n) {
		return nil
	}
	loc := l.loc(n)

	switch n.Type() {
	// Statements.
	case "expression_statement":
		return jsast.New(jsast.ExpressionStatement, loc).SetChild(jsast.FieldExpression, l.node(firstNamed(n)))
	case "statement_block":
		return jsast.Block(l.list(named(n)), loc)
	case "empty_statement":
		return jsast.New(jsast.EmptyStatement, loc)
	case "debugger_statement":
		return jsast.New(jsast.DebuggerStatement, loc)
	case "variable_declaration", "lexical_declaration":
		return l.variableDeclaration(n, loc)
	case "variable_declarator":
		return jsast.New(jsast.VariableDeclarator, loc).
			SetChild(jsast.FieldID, l.node(n.ChildByFieldName("name"))).
			SetChild(jsast.FieldInit, l.node(n.ChildByFieldName("value")))
	case "if_statement":
		out := jsast.New(jsast.IfStatement, loc).
			SetChild(jsast.FieldTest, l.node(n.ChildByFieldName("condition"))).
			SetChild(jsast.FieldConsequent, l.node(n.ChildByFieldName("consequence")))
		if alt := n.ChildByFieldName("alternative"); alt != nil {
			if alt.Type() == "else_clause" {
				alt = firstNamed(alt)
			}
			out.SetChild(jsast.FieldAlternate, l.node(alt))
		}
		return out
	case "switch_statement":
		out := jsast.New(jsast.SwitchStatement, loc).
			SetChild(jsast.FieldDiscriminant, l.node(n.ChildByFieldName("value")))
		return out.SetList(jsast.FieldCases, l.list(named(n.ChildByFieldName("body"))))
	case "switch_case", "switch_default":
		test := n.ChildByFieldName("value")
		var body []*sitter.Node
		for _, c := range named(n) {
			if !sameNode(c, test) {
				body = append(body, c)
			}
		}
		return jsast.New(jsast.SwitchCase, loc).
			SetChild(jsast.FieldTest, l.node(test)).
			SetList(jsast.FieldConsequent, l.list(body))
	case "for_statement":
		return jsast.New(jsast.ForStatement, loc).
			SetChild(jsast.FieldInit, l.forClause(n.ChildByFieldName("initializer"))).
			SetChild(jsast.FieldTest, l.forClause(n.ChildByFieldName("condition"))).
			SetChild(jsast.FieldUpdate, l.forClause(n.ChildByFieldName("increment"))).
			SetChild(jsast.FieldBody, l.node(n.ChildByFieldName("body")))
	case "for_in_statement":
		return l.forIn(n, loc)
	case "while_statement":
		return jsast.New(jsast.WhileStatement, loc).
			SetChild(jsast.FieldTest, l.node(n.ChildByFieldName("condition"))).
			SetChild(jsast.FieldBody, l.node(n.ChildByFieldName("body")))
	case "do_statement":
		return jsast.New(jsast.DoWhileStatement, loc).
			SetChild(jsast.FieldBody, l.node(n.ChildByFieldName("body"))).
			SetChild(jsast.FieldTest, l.node(n.ChildByFieldName("condition")))
	case "try_statement":
		return l.try(n, loc)
	case "return_statement":
		return jsast.Return(l.node(firstNamed(n)), loc)
	case "throw_statement":
		return jsast.New(jsast.ThrowStatement, loc).SetChild(jsast.FieldArgument, l.node(firstNamed(n)))
	case "break_statement", "continue_statement":
		kind := jsast.BreakStatement
		if n.Type() == "continue_statement" {
			kind = jsast.ContinueStatement
		}
		return jsast.New(kind, loc).SetChild(jsast.FieldLabel, l.node(n.ChildByFieldName("label")))
	case "labeled_statement":
		body := n.ChildByFieldName("body")
		if kids := named(n); body == nil && len(kids) > 0 {
			body = kids[len(kids)-1]
		}
		return jsast.New(jsast.LabeledStatement, loc).
			SetChild(jsast.FieldLabel, l.node(n.ChildByFieldName("label"))).
			SetChild(jsast.FieldBody, l.node(body))
	case "with_statement":
		return jsast.New(jsast.WithStatement, loc).
			SetChild(jsast.FieldObject, l.node(n.ChildByFieldName("object"))).
			SetChild(jsast.FieldBody, l.node(n.ChildByFieldName("body")))

	// Functions and classes.
	case "function_declaration", "generator_function_declaration":
		return l.function(n, jsast.FunctionDeclaration, loc)
	case "function_expression", "function", "generator_function":
		return l.function(n, jsast.FunctionExpression, loc)
	case "arrow_function":
		return l.arrow(n, loc)
	case "class_declaration":
		return l.class(n, jsast.ClassDeclaration, loc)
	case "class":
		return l.class(n, jsast.ClassExpression, loc)

	// Modules.
	case "import_statement":
		return l.importDeclaration(n, loc)
	case "export_statement":
		return l.exportDeclaration(n, loc)

	// Expressions.
	case "parenthesized_expression":
		return l.node(firstNamed(n))
	case "identifier", "property_identifier", "shorthand_property_identifier",
		"shorthand_property_identifier_pattern", "statement_identifier",
		"private_property_identifier", "undefined", "import":
		return jsast.Ident(l.text(n), loc)
	case "this":
		return jsast.New(jsast.ThisExpression, loc)
	case "super":
		return jsast.New(jsast.Super, loc)
	case "string":
		return jsast.StringLiteral(l.stringValue(n), l.text(n), loc)
	case "number", "true", "false", "null", "regex":
		return l.literal(n, loc)
	case "template_string":
		out := jsast.New(jsast.TemplateLiteral, loc)
		out.Raw = l.text(n)
		var exprs []*jsast.Node
		for _, c := range named(n) {
			if c.Type() == "template_substitution" {
				exprs = append(exprs, l.node(firstNamed(c)))
			}
		}
		return out.SetList(jsast.FieldExpressions, exprs)
	case "assignment_expression":
		out := jsast.New(jsast.AssignmentExpression, loc).
			SetChild(jsast.FieldLeft, l.node(n.ChildByFieldName("left"))).
			SetChild(jsast.FieldRight, l.node(n.ChildByFieldName("right")))
		out.Operator = "="
		return out
	case "augmented_assignment_expression":
		out := jsast.New(jsast.AssignmentExpression, loc).
			SetChild(jsast.FieldLeft, l.node(n.ChildByFieldName("left"))).
			SetChild(jsast.FieldRight, l.node(n.ChildByFieldName("right")))
		out.Operator = l.operator(n)
		return out
	case "binary_expression":
		op := l.operator(n)
		kind := jsast.BinaryExpression
		switch op {
		case "&&", "||", "??":
			kind = jsast.LogicalExpression
		}
		out := jsast.New(kind, loc).
			SetChild(jsast.FieldLeft, l.node(n.ChildByFieldName("left"))).
			SetChild(jsast.FieldRight, l.node(n.ChildByFieldName("right")))
		out.Operator = op
		return out
	case "unary_expression":
		out := jsast.New(jsast.UnaryExpression, loc).
			SetChild(jsast.FieldArgument, l.node(n.ChildByFieldName("argument"))).
			With(jsast.FlagPrefix)
		out.Operator = l.operator(n)
		return out
	case "update_expression":
		op := l.operator(n)
		out := jsast.New(jsast.UpdateExpression, loc).
			SetChild(jsast.FieldArgument, l.node(n.ChildByFieldName("argument")))
		out.Operator = op
		if first := n.Child(0); first != nil && first.Type() == op {
			out.With(jsast.FlagPrefix)
		}
		return out
	case "ternary_expression":
		return jsast.New(jsast.ConditionalExpression, loc).
			SetChild(jsast.FieldTest, l.node(n.ChildByFieldName("condition"))).
			SetChild(jsast.FieldConsequent, l.node(n.ChildByFieldName("consequence"))).
			SetChild(jsast.FieldAlternate, l.node(n.ChildByFieldName("alternative")))
	case "call_expression":
		return l.call(n, loc)
	case "new_expression":
		return jsast.New(jsast.NewExpression, loc).
			SetChild(jsast.FieldCallee, l.node(n.ChildByFieldName("constructor"))).
			SetList(jsast.FieldArguments, l.list(named(n.ChildByFieldName("arguments"))))
	case "member_expression":
		out := jsast.New(jsast.MemberExpression, loc).
			SetChild(jsast.FieldObject, l.node(n.ChildByFieldName("object"))).
			SetChild(jsast.FieldProperty, l.node(n.ChildByFieldName("property")))
		if hasOptionalChain(n) {
			out.With(jsast.FlagOptional)
		}
		return out
	case "subscript_expression":
		out := jsast.New(jsast.MemberExpression, loc).
			SetChild(jsast.FieldObject, l.node(n.ChildByFieldName("object"))).
			SetChild(jsast.FieldProperty, l.node(n.ChildByFieldName("index"))).
			With(jsast.FlagComputed)
		if hasOptionalChain(n) {
			out.With(jsast.FlagOptional)
		}
		return out
	case "sequence_expression":
		return jsast.New(jsast.SequenceExpression, loc).SetList(jsast.FieldExpressions, l.sequence(n, nil))
	case "array":
		return jsast.Array(l.list(named(n)), loc)
	case "object":
		return jsast.New(jsast.ObjectExpression, loc).SetList(jsast.FieldProperties, l.properties(n))
	case "pair":
		return l.pair(n, loc)
	case "method_definition":
		return l.objectMethod(n, loc)
	case "spread_element":
		return jsast.New(jsast.SpreadElement, loc).SetChild(jsast.FieldArgument, l.node(firstNamed(n)))
	case "await_expression":
		return jsast.New(jsast.AwaitExpression, loc).SetChild(jsast.FieldArgument, l.node(firstNamed(n)))
	case "yield_expression":
		out := jsast.New(jsast.YieldExpression, loc).SetChild(jsast.FieldArgument, l.node(firstNamed(n)))
		if hasToken(n, "*") {
			out.With(jsast.FlagDelegate)
		}
		return out
	case "meta_property":
		out := jsast.New(jsast.MetaProperty, loc)
		out.Name = l.text(n)
		return out
	case "computed_property_name":
		return l.node(firstNamed(n))

	// Patterns.
	case "object_pattern":
		return jsast.New(jsast.ObjectPattern, loc).SetList(jsast.FieldProperties, l.properties(n))
	case "pair_pattern":
		return l.pair(n, loc)
	case "object_assignment_pattern":
		left := l.node(n.ChildByFieldName("left"))
		value := jsast.New(jsast.AssignmentPattern, loc).
			SetChild(jsast.FieldLeft, left).
			SetChild(jsast.FieldRight, l.node(n.ChildByFieldName("right")))
		return jsast.New(jsast.Property, loc).
			SetChild(jsast.FieldKey, jsast.Clone(left)).
			SetChild(jsast.FieldValue, value).
			With(jsast.FlagShorthand)
	case "array_pattern":
		return jsast.New(jsast.ArrayPattern, loc).SetList(jsast.FieldElements, l.list(named(n)))
	case "assignment_pattern":
		return jsast.New(jsast.AssignmentPattern, loc).
			SetChild(jsast.FieldLeft, l.node(n.ChildByFieldName("left"))).
			SetChild(jsast.FieldRight, l.node(n.ChildByFieldName("right")))
	case "rest_pattern":
		return jsast.New(jsast.RestElement, loc).SetChild(jsast.FieldArgument, l.node(firstNamed(n)))

	// JSX.
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return l.jsxElement(n, loc)
	case "jsx_expression":
		return jsast.New(jsast.JSXExpressionContainer, loc).SetChild(jsast.FieldExpression, l.node(firstNamed(n)))
	case "jsx_text":
		return nil

	case "decorator":
		return nil
	}

	out := jsast.New(jsast.Unknown, loc)
	out.Name = n.Type()
	return out.SetList(jsast.FieldChildren, l.list(named(n)))
}

func (l *lowerer) operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	return ""
}

func hasOptionalChain(n *sitter.Node) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && c.Type() == "optional_chain" {
			return true
		}
	}
	return false
}

func (l *lowerer) literal(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	out := jsast.New(jsast.Literal, loc)
	out.Raw = l.text(n)
	out.Value = out.Raw
	switch n.Type() {
	case "number":
		out.Literal = jsast.LitNumber
	case "true", "false":
		out.Literal = jsast.LitBoolean
	case "null":
		out.Literal = jsast.LitNull
	case "regex":
		out.Literal = jsast.LitRegExp
	}
	return out
}

// stringValue returns the contents of a string literal without its quotes.
// Escape sequences are kept as written.
func (l *lowerer) stringValue(n *sitter.Node) string {
	var sb strings.Builder
	for _, c := range named(n) {
		sb.WriteString(l.text(c))
	}
	return sb.String()
}

func (l *lowerer) sequence(n *sitter.Node, acc []*jsast.Node) []*jsast.Node {
	for _, c := range named(n) {
		if c.Type() == "sequence_expression" {
			acc = l.sequence(c, acc)
			continue
		}
		acc = append(acc, l.node(c))
	}
	return acc
}

func (l *lowerer) variableDeclaration(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	out := jsast.New(jsast.VariableDeclaration, loc)
	if kind := n.ChildByFieldName("kind"); kind != nil {
		out.Operator = kind.Type()
	} else if first := n.Child(0); first != nil {
		out.Operator = first.Type()
	}
	var decls []*sitter.Node
	for _, c := range named(n) {
		if c.Type() == "variable_declarator" {
			decls = append(decls, c)
		}
	}
	return out.SetList(jsast.FieldDeclarations, l.list(decls))
}

// forClause lowers one of the three parts of a for(;;) header.
func (l *lowerer) forClause(n *sitter.Node) *jsast.Node {
	if n == nil {
		return nil
	}
	switch n.Type() {
	case "empty_statement", ";":
		return nil
	case "expression_statement":
		return l.node(firstNamed(n))
	}
	return l.node(n)
}

func (l *lowerer) forIn(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	kind := jsast.ForInStatement
	if op := n.ChildByFieldName("operator"); op != nil && op.Type() == "of" {
		kind = jsast.ForOfStatement
	} else if hasToken(n, "of") {
		kind = jsast.ForOfStatement
	}

	left := l.node(n.ChildByFieldName("left"))
	if declKind := n.ChildByFieldName("kind"); declKind != nil && left != nil {
		decl := jsast.New(jsast.VariableDeclaration, left.Loc).
			SetList(jsast.FieldDeclarations, []*jsast.Node{
				jsast.New(jsast.VariableDeclarator, left.Loc).SetChild(jsast.FieldID, left),
			})
		decl.Operator = declKind.Type()
		left = decl
	}

	out := jsast.New(kind, loc).
		SetChild(jsast.FieldLeft, left).
		SetChild(jsast.FieldRight, l.node(n.ChildByFieldName("right"))).
		SetChild(jsast.FieldBody, l.node(n.ChildByFieldName("body")))
	if hasToken(n, "await") {
		out.With(jsast.FlagAwait)
	}
	return out
}

func (l *lowerer) try(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	out := jsast.New(jsast.TryStatement, loc).SetChild(jsast.FieldBlock, l.node(n.ChildByFieldName("body")))
	if h := n.ChildByFieldName("handler"); h != nil {
		out.SetChild(jsast.FieldHandler, jsast.New(jsast.CatchClause, l.loc(h)).
			SetChild(jsast.FieldParam, l.node(h.ChildByFieldName("parameter"))).
			SetChild(jsast.FieldBody, l.node(h.ChildByFieldName("body"))))
	}
	if f := n.ChildByFieldName("finalizer"); f != nil {
		body := f.ChildByFieldName("body")
		if body == nil {
			body = firstNamed(f)
		}
		out.SetChild(jsast.FieldFinalizer, l.node(body))
	}
	return out
}

// params lowers a formal_parameters node.
func (l *lowerer) params(n *sitter.Node) []*jsast.Node {
	var out []*jsast.Node
	for _, c := range named(n) {
		if c.Type() == "decorator" {
			continue
		}
		out = append(out, l.node(c))
	}
	return out
}

func (l *lowerer) functionFlags(n *sitter.Node, out *jsast.Node) {
	if hasToken(n, "async") {
		out.With(jsast.FlagAsync)
	}
	if hasToken(n, "*") {
		out.With(jsast.FlagGenerator)
	}
}

func (l *lowerer) function(n *sitter.Node, kind jsast.Kind, loc jsast.Loc) *jsast.Node {
	out := jsast.New(kind, loc).
		SetChild(jsast.FieldID, l.node(n.ChildByFieldName("name"))).
		SetList(jsast.FieldParams, l.params(n.ChildByFieldName("parameters"))).
		SetChild(jsast.FieldBody, l.node(n.ChildByFieldName("body")))
	l.functionFlags(n, out)
	return out
}

func (l *lowerer) arrow(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	var params []*jsast.Node
	if p := n.ChildByFieldName("parameter"); p != nil {
		params = []*jsast.Node{l.node(p)}
	} else {
		params = l.params(n.ChildByFieldName("parameters"))
	}

	bodyNode := n.ChildByFieldName("body")
	out := jsast.New(jsast.ArrowFunctionExpression, loc).
		SetList(jsast.FieldParams, params).
		SetChild(jsast.FieldBody, l.node(bodyNode))
	if bodyNode != nil && bodyNode.Type() != "statement_block" {
		out.With(jsast.FlagExpressionBody)
	}
	if hasToken(n, "async") {
		out.With(jsast.FlagAsync)
	}
	return out
}

// propertyKey lowers a property name and reports whether it was computed.
func (l *lowerer) propertyKey(n *sitter.Node) (*jsast.Node, bool) {
	if n == nil {
		return nil, false
	}
	return l.node(n), n.Type() == "computed_property_name"
}

// methodKind classifies a method_definition by its leading keywords.
func (l *lowerer) methodKind(n *sitter.Node, key *jsast.Node, inClass bool) string {
	switch {
	case hasToken(n, "get"):
		return "get"
	case hasToken(n, "set"):
		return "set"
	case inClass && key != nil && key.Kind == jsast.Identifier && key.Name == "constructor":
		return "constructor"
	case inClass:
		return "method"
	default:
		return "init"
	}
}

// methodValue builds the FunctionExpression that holds a method's params and body.
func (l *lowerer) methodValue(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	fn := jsast.Function(nil, l.params(n.ChildByFieldName("parameters")), l.node(n.ChildByFieldName("body")), loc)
	l.functionFlags(n, fn)
	return fn
}

func (l *lowerer) objectMethod(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	key, computed := l.propertyKey(n.ChildByFieldName("name"))
	out := jsast.New(jsast.Property, loc).
		SetChild(jsast.FieldKey, key).
		SetChild(jsast.FieldValue, l.methodValue(n, loc)).
		With(jsast.FlagMethod)
	out.Operator = l.methodKind(n, key, false)
	if computed {
		out.With(jsast.FlagComputed)
	}
	return out
}

func (l *lowerer) pair(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	key, computed := l.propertyKey(n.ChildByFieldName("key"))
	out := jsast.New(jsast.Property, loc).
		SetChild(jsast.FieldKey, key).
		SetChild(jsast.FieldValue, l.node(n.ChildByFieldName("value")))
	out.Operator = "init"
	if computed {
		out.With(jsast.FlagComputed)
	}
	return out
}

// properties lowers the members of an object literal or object pattern.
func (l *lowerer) properties(n *sitter.Node) []*jsast.Node {
	var out []*jsast.Node
	for _, c := range named(n) {
		loc := l.loc(c)
		switch c.Type() {
		case "shorthand_property_identifier", "shorthand_property_identifier_pattern":
			prop := jsast.New(jsast.Property, loc).
				SetChild(jsast.FieldKey, jsast.Ident(l.text(c), loc)).
				SetChild(jsast.FieldValue, jsast.Ident(l.text(c), loc)).
				With(jsast.FlagShorthand)
			prop.Operator = "init"
			out = append(out, prop)
		default:
			out = append(out, l.node(c))
		}
	}
	return out
}

func (l *lowerer) call(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	callee := l.node(n.ChildByFieldName("function"))
	args := n.ChildByFieldName("arguments")
	if args != nil && args.Type() == "template_string" {
		return jsast.New(jsast.TaggedTemplateExpression, loc).
			SetChild(jsast.FieldTag, callee).
			SetChild(jsast.FieldQuasi, l.node(args))
	}
	out := jsast.Call(callee, l.list(named(args)), loc)
	if hasOptionalChain(n) {
		out.With(jsast.FlagOptional)
	}
	return out
}

func (l *lowerer) class(n *sitter.Node, kind jsast.Kind, loc jsast.Loc) *jsast.Node {
	out := jsast.New(kind, loc).SetChild(jsast.FieldID, l.node(n.ChildByFieldName("name")))
	for _, c := range named(n) {
		if c.Type() == "class_heritage" {
			out.SetChild(jsast.FieldSuperClass, l.node(firstNamed(c)))
		}
	}

	bodyNode := n.ChildByFieldName("body")
	body := jsast.New(jsast.ClassBody, loc)
	if bodyNode != nil {
		body.Loc = l.loc(bodyNode)
	}
	var members []*jsast.Node
	for _, m := range named(bodyNode) {
		if member := l.classMember(m); member != nil {
			members = append(members, member)
		}
	}
	body.SetList(jsast.FieldBody, members)
	return out.SetChild(jsast.FieldBody, body)
}

func (l *lowerer) classMember(m *sitter.Node) *jsast.Node {
	loc := l.loc(m)
	switch m.Type() {
	case "method_definition":
		key, computed := l.propertyKey(m.ChildByFieldName("name"))
		out := jsast.New(jsast.MethodDefinition, loc).
			SetChild(jsast.FieldKey, key).
			SetChild(jsast.FieldValue, l.methodValue(m, loc))
		out.Operator = l.methodKind(m, key, true)
		if computed {
			out.With(jsast.FlagComputed)
		}
		if hasToken(m, "static") {
			out.With(jsast.FlagStatic)
		}
		return out
	case "field_definition":
		key, computed := l.propertyKey(m.ChildByFieldName("property"))
		out := jsast.New(jsast.ClassProperty, loc).
			SetChild(jsast.FieldKey, key).
			SetChild(jsast.FieldValue, l.node(m.ChildByFieldName("value")))
		if computed {
			out.With(jsast.FlagComputed)
		}
		if hasToken(m, "static") {
			out.With(jsast.FlagStatic)
		}
		return out
	case "class_static_block":
		body := m.ChildByFieldName("body")
		if body == nil {
			body = firstNamed(m)
		}
		return jsast.New(jsast.StaticBlock, loc).SetChild(jsast.FieldBody, l.node(body))
	}
	return nil
}

func (l *lowerer) importDeclaration(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	out := jsast.New(jsast.ImportDeclaration, loc)
	var specs []*jsast.Node
	for _, c := range named(n) {
		if c.Type() != "import_clause" {
			continue
		}
		for _, part := range named(c) {
			specs = append(specs, l.importSpecifiers(part)...)
		}
	}
	out.SetList(jsast.FieldSpecifiers, specs)
	return out.SetChild(jsast.FieldSource, l.node(n.ChildByFieldName("source")))
}

func (l *lowerer) importSpecifiers(part *sitter.Node) []*jsast.Node {
	loc := l.loc(part)
	switch part.Type() {
	case "identifier":
		return []*jsast.Node{jsast.New(jsast.ImportDefaultSpecifier, loc).SetChild(jsast.FieldLocal, l.node(part))}
	case "namespace_import":
		return []*jsast.Node{jsast.New(jsast.ImportNamespaceSpecifier, loc).SetChild(jsast.FieldLocal, l.node(firstNamed(part)))}
	case "named_imports":
		var out []*jsast.Node
		for _, spec := range named(part) {
			if spec.Type() != "import_specifier" {
				continue
			}
			imported := l.node(spec.ChildByFieldName("name"))
			local := l.node(spec.ChildByFieldName("alias"))
			if local == nil {
				local = jsast.Clone(imported)
			}
			out = append(out, jsast.New(jsast.ImportSpecifier, l.loc(spec)).
				SetChild(jsast.FieldImported, imported).
				SetChild(jsast.FieldLocal, local))
		}
		return out
	}
	return nil
}

func (l *lowerer) exportDeclaration(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	source := l.node(n.ChildByFieldName("source"))

	if hasToken(n, "default") {
		out := jsast.New(jsast.ExportDefaultDeclaration, loc)
		if decl := n.ChildByFieldName("declaration"); decl != nil {
			return out.SetChild(jsast.FieldDeclaration, l.node(decl))
		}
		value := l.node(n.ChildByFieldName("value"))
		if value != nil {
			// An anonymous default function or class is a declaration, not an expression.
			switch value.Kind {
			case jsast.FunctionExpression:
				value.Kind = jsast.FunctionDeclaration
			case jsast.ClassExpression:
				value.Kind = jsast.ClassDeclaration
			}
		}
		return out.SetChild(jsast.FieldDeclaration, value)
	}

	if decl := n.ChildByFieldName("declaration"); decl != nil {
		return jsast.New(jsast.ExportNamedDeclaration, loc).SetChild(jsast.FieldDeclaration, l.node(decl))
	}

	if hasToken(n, "*") {
		out := jsast.New(jsast.ExportAllDeclaration, loc).SetChild(jsast.FieldSource, source)
		for _, c := range named(n) {
			if c.Type() == "namespace_export" {
				out.SetChild(jsast.FieldExported, l.node(firstNamed(c)))
			}
		}
		return out
	}

	var specs []*jsast.Node
	for _, c := range named(n) {
		if c.Type() != "export_clause" {
			continue
		}
		for _, spec := range named(c) {
			local := l.node(spec.ChildByFieldName("name"))
			exported := l.node(spec.ChildByFieldName("alias"))
			if exported == nil {
				exported = jsast.Clone(local)
			}
			specs = append(specs, jsast.New(jsast.ExportSpecifier, l.loc(spec)).
				SetChild(jsast.FieldLocal, local).
				SetChild(jsast.FieldExported, exported))
		}
	}
	return jsast.New(jsast.ExportNamedDeclaration, loc).
		SetList(jsast.FieldSpecifiers, specs).
		SetChild(jsast.FieldSource, source)
}

// jsxElement keeps only the embedded expressions and nested elements of a JSX tree.
func (l *lowerer) jsxElement(n *sitter.Node, loc jsast.Loc) *jsast.Node {
	out := jsast.New(jsast.JSXElement, loc)
	tag := n.ChildByFieldName("open_tag")
	for _, c := range named(n) {
		if tag == nil && c.Type() == "jsx_opening_element" {
			tag = c
		}
	}
	if tag == nil {
		tag = n
	}
	if name := tag.ChildByFieldName("name"); name != nil {
		out.Name = l.text(name)
	}
	var children []*jsast.Node
	for _, c := range named(n) {
		children = append(children, l.jsxChildren(c)...)
	}
	return out.SetList(jsast.FieldChildren, children)
}

func (l *lowerer) jsxChildren(n *sitter.Node) []*jsast.Node {
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment", "jsx_expression":
		if c := l.node(n); c != nil {
			return []*jsast.Node{c}
		}
		return nil
	case "jsx_text", "string", "identifier", "property_identifier", "jsx_namespace_name",
		"member_expression", "nested_identifier", "html_character_reference":
		return nil
	}
	var out []*jsast.Node
	for _, c := range named(n) {
		out = append(out, l.jsxChildren(c)...)
	}
	return out
}
