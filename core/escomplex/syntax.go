// Package escomplex computes escomplex-style complexity metrics over jsast trees.
//
// The engine never parses source: callers hand it trees that have already been
// normalized. Only the node kinds listed in the syntax table are measured; any
// other kind is skipped together with its children.
package escomplex

import (
	"github.com/huangsam/codeinsights/internal/jsast"
	"github.com/huangsam/codeinsights/schema"
)

// Settings tune which constructs add cyclomatic complexity.
type Settings struct {
	LogicalOr  bool `mapstructure:"logicalor"`  // || counts as a branch
	SwitchCase bool `mapstructure:"switchcase"` // each case with a test counts as a branch
	ForIn      bool `mapstructure:"forin"`      // for-in and for-of loops count as branches
	TryCatch   bool `mapstructure:"trycatch"`   // catch clauses count as branches
}

// DefaultSettings matches the classic escomplex defaults.
func DefaultSettings() Settings {
	return Settings{LogicalOr: true, SwitchCase: true}
}

// Dependency types.
const (
	CommonJS = "CommonJS"
	AMD      = "AMD"
)

type operation struct {
	name   func(n *jsast.Node) string
	filter func(n *jsast.Node) bool
}

type syntax struct {
	lloc           func(n *jsast.Node) int
	cyclomatic     func(n *jsast.Node, s Settings) int
	operators      []operation
	operands       []operation
	children       []jsast.Field
	assignableName func(n *jsast.Node) string
	newScope       bool
	dependencies   func(n *jsast.Node) []schema.Dependency
}

func fixed(v int) func(*jsast.Node) int {
	return func(*jsast.Node) int { return v }
}

func always(v int) func(*jsast.Node, Settings) int {
	return func(*jsast.Node, Settings) int { return v }
}

func named(name string) operation {
	return operation{name: func(*jsast.Node) string { return name }}
}

func namedIf(name string, filter func(n *jsast.Node) bool) operation {
	return operation{name: func(*jsast.Node) string { return name }, filter: filter}
}

func operatorOf(n *jsast.Node) string {
	return n.Operator
}

func has(f jsast.Field) func(n *jsast.Node) bool {
	return func(n *jsast.Node) bool { return n.Child(f) != nil }
}

func lacks(f jsast.Field) func(n *jsast.Node) bool {
	return func(n *jsast.Node) bool { return n.Child(f) == nil }
}

func ifHas(f jsast.Field) func(*jsast.Node, Settings) int {
	return func(n *jsast.Node, _ Settings) int {
		if n.Child(f) != nil {
			return 1
		}
		return 0
	}
}

// lineOpeningExpression counts a logical line when an expression's target is an
// inline function, object or array literal.
func lineOpeningExpression(f jsast.Field, kinds ...jsast.Kind) func(*jsast.Node) int {
	return func(n *jsast.Node) int {
		target := n.Child(f)
		if target == nil {
			return 0
		}
		for _, k := range kinds {
			if target.Kind == k {
				return 1
			}
		}
		return 0
	}
}

// syntaxes lists every node kind the engine measures.
var syntaxes = map[jsast.Kind]*syntax{
	jsast.ArrayExpression: {
		operators: []operation{named("[]")},
		children:  []jsast.Field{jsast.FieldElements},
	},
	jsast.ArrayPattern: {
		operators: []operation{named("[]")},
		children:  []jsast.Field{jsast.FieldElements},
	},
	jsast.AssignmentExpression: {
		operators:      []operation{{name: operatorOf}},
		children:       []jsast.Field{jsast.FieldLeft, jsast.FieldRight},
		assignableName: func(n *jsast.Node) string { return targetName(n.Child(jsast.FieldLeft)) },
	},
	jsast.AssignmentPattern: {
		operators: []operation{named("=")},
		children:  []jsast.Field{jsast.FieldLeft, jsast.FieldRight},
	},
	jsast.AwaitExpression: {
		operators: []operation{named("await")},
		children:  []jsast.Field{jsast.FieldArgument},
	},
	jsast.BinaryExpression: {
		operators: []operation{{name: operatorOf}},
		children:  []jsast.Field{jsast.FieldLeft, jsast.FieldRight},
	},
	jsast.BlockStatement: {
		children: []jsast.Field{jsast.FieldBody},
	},
	jsast.BreakStatement: {
		lloc:      fixed(1),
		operators: []operation{named("break")},
		children:  []jsast.Field{jsast.FieldLabel},
	},
	jsast.CallExpression: {
		lloc:         lineOpeningExpression(jsast.FieldCallee, jsast.FunctionExpression),
		operators:    []operation{named("()")},
		children:     []jsast.Field{jsast.FieldArguments, jsast.FieldCallee},
		dependencies: callDependencies,
	},
	jsast.CatchClause: {
		lloc: fixed(1),
		cyclomatic: func(_ *jsast.Node, s Settings) int {
			if s.TryCatch {
				return 1
			}
			return 0
		},
		operators: []operation{named("catch")},
		children:  []jsast.Field{jsast.FieldParam, jsast.FieldBody},
	},
	jsast.ConditionalExpression: {
		cyclomatic: always(1),
		operators:  []operation{named(":?")},
		children:   []jsast.Field{jsast.FieldTest, jsast.FieldConsequent, jsast.FieldAlternate},
	},
	jsast.ContinueStatement: {
		lloc:      fixed(1),
		operators: []operation{named("continue")},
		children:  []jsast.Field{jsast.FieldLabel},
	},
	jsast.DebuggerStatement: {
		lloc:      fixed(1),
		operators: []operation{named("debugger")},
	},
	jsast.DoWhileStatement: {
		lloc:       fixed(2),
		cyclomatic: ifHas(jsast.FieldTest),
		operators:  []operation{named("dowhile")},
		children:   []jsast.Field{jsast.FieldTest, jsast.FieldBody},
	},
	jsast.EmptyStatement: {},
	jsast.ExpressionStatement: {
		lloc:     fixed(1),
		children: []jsast.Field{jsast.FieldExpression},
	},
	jsast.ForInStatement: {
		lloc:       fixed(1),
		cyclomatic: loopOverKeys,
		operators:  []operation{named("forin")},
		children:   []jsast.Field{jsast.FieldLeft, jsast.FieldRight, jsast.FieldBody},
	},
	jsast.ForOfStatement: {
		lloc:       fixed(1),
		cyclomatic: loopOverKeys,
		operators:  []operation{named("forof")},
		children:   []jsast.Field{jsast.FieldLeft, jsast.FieldRight, jsast.FieldBody},
	},
	jsast.ForStatement: {
		lloc:       fixed(1),
		cyclomatic: ifHas(jsast.FieldTest),
		operators:  []operation{named("for")},
		children:   []jsast.Field{jsast.FieldInit, jsast.FieldTest, jsast.FieldUpdate, jsast.FieldBody},
	},
	jsast.FunctionDeclaration: {
		lloc:      fixed(1),
		operators: []operation{named("function")},
		operands:  []operation{{name: idName, filter: has(jsast.FieldID)}},
		children:  []jsast.Field{jsast.FieldParams, jsast.FieldBody},
		newScope:  true,
	},
	jsast.FunctionExpression: {
		operators: []operation{named("function")},
		operands:  []operation{{name: idName, filter: has(jsast.FieldID)}},
		children:  []jsast.Field{jsast.FieldParams, jsast.FieldBody},
		newScope:  true,
	},
	jsast.Identifier: {
		operands: []operation{{name: func(n *jsast.Node) string { return n.Name }}},
	},
	jsast.IfStatement: {
		lloc: func(n *jsast.Node) int {
			if n.Child(jsast.FieldAlternate) != nil {
				return 2
			}
			return 1
		},
		cyclomatic: always(1),
		operators:  []operation{named("if"), namedIf("else", has(jsast.FieldAlternate))},
		children:   []jsast.Field{jsast.FieldTest, jsast.FieldConsequent, jsast.FieldAlternate},
	},
	jsast.JSXElement: {
		children: []jsast.Field{jsast.FieldChildren},
	},
	jsast.JSXExpressionContainer: {
		children: []jsast.Field{jsast.FieldExpression},
	},
	jsast.LabeledStatement: {
		children: []jsast.Field{jsast.FieldBody},
	},
	jsast.Literal: {
		operands: []operation{{name: literalName}},
	},
	jsast.LogicalExpression: {
		cyclomatic: func(n *jsast.Node, s Settings) int {
			switch {
			case n.Operator == "&&":
				return 1
			case n.Operator == "||" && s.LogicalOr:
				return 1
			}
			return 0
		},
		operators: []operation{{name: operatorOf}},
		children:  []jsast.Field{jsast.FieldLeft, jsast.FieldRight},
	},
	jsast.MemberExpression: {
		lloc:      lineOpeningExpression(jsast.FieldObject, jsast.ObjectExpression, jsast.ArrayExpression, jsast.FunctionExpression),
		operators: []operation{named(".")},
		children:  []jsast.Field{jsast.FieldObject, jsast.FieldProperty},
	},
	jsast.MetaProperty: {
		operands: []operation{{name: func(n *jsast.Node) string { return n.Name }}},
	},
	jsast.NewExpression: {
		lloc:      lineOpeningExpression(jsast.FieldCallee, jsast.FunctionExpression),
		operators: []operation{named("new")},
		children:  []jsast.Field{jsast.FieldArguments, jsast.FieldCallee},
	},
	jsast.ObjectExpression: {
		operators: []operation{named("{}")},
		children:  []jsast.Field{jsast.FieldProperties},
	},
	jsast.ObjectPattern: {
		operators: []operation{named("{}")},
		children:  []jsast.Field{jsast.FieldProperties},
	},
	jsast.Property: {
		lloc:           fixed(1),
		operators:      []operation{named(":")},
		children:       []jsast.Field{jsast.FieldKey, jsast.FieldValue},
		assignableName: func(n *jsast.Node) string { return keyName(n.Child(jsast.FieldKey)) },
	},
	jsast.RestElement: {
		operators: []operation{named("...")},
		children:  []jsast.Field{jsast.FieldArgument},
	},
	jsast.ReturnStatement: {
		lloc:      fixed(1),
		operators: []operation{named("return")},
		children:  []jsast.Field{jsast.FieldArgument},
	},
	jsast.SequenceExpression: {
		children: []jsast.Field{jsast.FieldExpressions},
	},
	jsast.SpreadElement: {
		operators: []operation{named("...")},
		children:  []jsast.Field{jsast.FieldArgument},
	},
	jsast.Super: {
		operands: []operation{named("super")},
	},
	jsast.SwitchCase: {
		lloc: fixed(1),
		cyclomatic: func(n *jsast.Node, s Settings) int {
			if s.SwitchCase && n.Child(jsast.FieldTest) != nil {
				return 1
			}
			return 0
		},
		operators: []operation{namedIf("case", has(jsast.FieldTest)), namedIf("default", lacks(jsast.FieldTest))},
		children:  []jsast.Field{jsast.FieldTest, jsast.FieldConsequent},
	},
	jsast.SwitchStatement: {
		lloc:      fixed(1),
		operators: []operation{named("switch")},
		children:  []jsast.Field{jsast.FieldDiscriminant, jsast.FieldCases},
	},
	jsast.TaggedTemplateExpression: {
		operators: []operation{named("()")},
		children:  []jsast.Field{jsast.FieldTag, jsast.FieldQuasi},
	},
	jsast.TemplateLiteral: {
		operators: []operation{named("``")},
		children:  []jsast.Field{jsast.FieldExpressions},
	},
	jsast.ThisExpression: {
		operands: []operation{named("this")},
	},
	jsast.ThrowStatement: {
		lloc:      fixed(1),
		operators: []operation{named("throw")},
		children:  []jsast.Field{jsast.FieldArgument},
	},
	jsast.TryStatement: {
		lloc:     fixed(1),
		children: []jsast.Field{jsast.FieldBlock, jsast.FieldHandler, jsast.FieldFinalizer},
	},
	jsast.UnaryExpression: {
		operators: []operation{{name: operatorOf}},
		children:  []jsast.Field{jsast.FieldArgument},
	},
	jsast.Unknown: {
		children: []jsast.Field{jsast.FieldChildren},
	},
	jsast.UpdateExpression: {
		operators: []operation{{name: func(n *jsast.Node) string {
			if n.Is(jsast.FlagPrefix) {
				return n.Operator + " (prefix)"
			}
			return n.Operator + " (postfix)"
		}}},
		children: []jsast.Field{jsast.FieldArgument},
	},
	jsast.VariableDeclaration: {
		operators: []operation{{name: operatorOf}},
		children:  []jsast.Field{jsast.FieldDeclarations},
	},
	jsast.VariableDeclarator: {
		lloc:           fixed(1),
		operators:      []operation{namedIf("=", has(jsast.FieldInit))},
		children:       []jsast.Field{jsast.FieldID, jsast.FieldInit},
		assignableName: func(n *jsast.Node) string { return targetName(n.Child(jsast.FieldID)) },
	},
	jsast.WhileStatement: {
		lloc:       fixed(1),
		cyclomatic: ifHas(jsast.FieldTest),
		operators:  []operation{named("while")},
		children:   []jsast.Field{jsast.FieldTest, jsast.FieldBody},
	},
	jsast.WithStatement: {
		lloc:      fixed(1),
		operators: []operation{named("with")},
		children:  []jsast.Field{jsast.FieldObject, jsast.FieldBody},
	},
	jsast.YieldExpression: {
		operators: []operation{named("yield")},
		children:  []jsast.Field{jsast.FieldArgument},
	},
}

func loopOverKeys(_ *jsast.Node, s Settings) int {
	if s.ForIn {
		return 1
	}
	return 0
}

func idName(n *jsast.Node) string {
	return n.Child(jsast.FieldID).Name
}

// literalName renders a literal operand; strings are quoted so that "1" and 1 differ.
func literalName(n *jsast.Node) string {
	if n.Literal == jsast.LitString {
		return `"` + n.Value + `"`
	}
	return n.Raw
}

// targetName names the binding an assignment or declaration writes to.
func targetName(n *jsast.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case jsast.Identifier:
		return n.Name
	case jsast.ThisExpression:
		return "this"
	case jsast.MemberExpression:
		if n.Is(jsast.FlagComputed) {
			return ""
		}
		object := targetName(n.Child(jsast.FieldObject))
		property := n.Child(jsast.FieldProperty)
		if object == "" || property == nil {
			return ""
		}
		return object + "." + property.Name
	}
	return ""
}

func keyName(n *jsast.Node) string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case jsast.Identifier:
		return n.Name
	case jsast.Literal:
		return n.Value
	}
	return ""
}

// callDependencies recognizes CommonJS require("x") and AMD define/require([...]) calls.
func callDependencies(n *jsast.Node) []schema.Dependency {
	callee := n.Child(jsast.FieldCallee)
	if callee == nil || callee.Kind != jsast.Identifier {
		return nil
	}
	args := n.List(jsast.FieldArguments)
	line := n.Loc.Start.Line

	if callee.Name == "require" && len(args) == 1 && args[0].Kind != jsast.ArrayExpression {
		path := schema.DynamicDependency
		if args[0].Kind == jsast.Literal && args[0].Literal == jsast.LitString {
			path = args[0].Value
		}
		return []schema.Dependency{{Line: line, Path: path, Type: CommonJS}}
	}

	if callee.Name != "require" && callee.Name != "define" {
		return nil
	}
	for i, arg := range args {
		if i > 1 {
			break
		}
		if arg.Kind != jsast.ArrayExpression {
			continue
		}
		var deps []schema.Dependency
		for _, el := range arg.List(jsast.FieldElements) {
			path := schema.DynamicDependency
			if el.Kind == jsast.Literal && el.Literal == jsast.LitString {
				path = el.Value
			}
			deps = append(deps, schema.Dependency{Line: line, Path: path, Type: AMD})
		}
		return deps
	}
	return nil
}
