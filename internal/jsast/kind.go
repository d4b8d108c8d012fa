// Package jsast is a compact ESTree-shaped syntax tree for JavaScript.
//
// Every node carries a Kind from a closed enumeration, a source location and a
// list of named child slots. Kind names follow ESTree so that metrics and debug
// dumps read the same as the tooling they were modeled on.
package jsast

// Kind identifies the syntactic category of a Node.
type Kind uint8

// Node kinds.
const (
	Invalid Kind = iota

	Program
	Unknown // any construct the front-end does not model; children are kept

	// Statements.
	ExpressionStatement
	BlockStatement
	EmptyStatement
	DebuggerStatement
	WithStatement
	ReturnStatement
	LabeledStatement
	BreakStatement
	ContinueStatement
	IfStatement
	SwitchStatement
	SwitchCase
	ThrowStatement
	TryStatement
	CatchClause
	WhileStatement
	DoWhileStatement
	ForStatement
	ForInStatement
	ForOfStatement

	// Declarations.
	FunctionDeclaration
	VariableDeclaration
	VariableDeclarator
	ClassDeclaration

	// Expressions.
	Identifier
	Literal
	TemplateLiteral
	TaggedTemplateExpression
	ThisExpression
	Super
	ArrayExpression
	ObjectExpression
	Property
	FunctionExpression
	ArrowFunctionExpression
	ClassExpression
	ClassBody
	MethodDefinition
	ClassProperty
	StaticBlock
	UnaryExpression
	UpdateExpression
	BinaryExpression
	AssignmentExpression
	LogicalExpression
	MemberExpression
	ConditionalExpression
	CallExpression
	NewExpression
	SequenceExpression
	YieldExpression
	AwaitExpression
	SpreadElement
	MetaProperty

	// Patterns.
	ObjectPattern
	ArrayPattern
	RestElement
	AssignmentPattern

	// Modules.
	ImportDeclaration
	ImportSpecifier
	ImportDefaultSpecifier
	ImportNamespaceSpecifier
	ExportNamedDeclaration
	ExportSpecifier
	ExportDefaultDeclaration
	ExportAllDeclaration

	// JSX.
	JSXElement
	JSXExpressionContainer

	kindCount
)

var kindNames = [kindCount]string{
	Invalid:                  "Invalid",
	Program:                  "Program",
	Unknown:                  "Unknown",
	ExpressionStatement:      "ExpressionStatement",
	BlockStatement:           "BlockStatement",
	EmptyStatement:           "EmptyStatement",
	DebuggerStatement:        "DebuggerStatement",
	WithStatement:            "WithStatement",
	ReturnStatement:          "ReturnStatement",
	LabeledStatement:         "LabeledStatement",
	BreakStatement:           "BreakStatement",
	ContinueStatement:        "ContinueStatement",
	IfStatement:              "IfStatement",
	SwitchStatement:          "SwitchStatement",
	SwitchCase:               "SwitchCase",
	ThrowStatement:           "ThrowStatement",
	TryStatement:             "TryStatement",
	CatchClause:              "CatchClause",
	WhileStatement:           "WhileStatement",
	DoWhileStatement:         "DoWhileStatement",
	ForStatement:             "ForStatement",
	ForInStatement:           "ForInStatement",
	ForOfStatement:           "ForOfStatement",
	FunctionDeclaration:      "FunctionDeclaration",
	VariableDeclaration:      "VariableDeclaration",
	VariableDeclarator:       "VariableDeclarator",
	ClassDeclaration:         "ClassDeclaration",
	Identifier:               "Identifier",
	Literal:                  "Literal",
	TemplateLiteral:          "TemplateLiteral",
	TaggedTemplateExpression: "TaggedTemplateExpression",
	ThisExpression:           "ThisExpression",
	Super:                    "Super",
	ArrayExpression:          "ArrayExpression",
	ObjectExpression:         "ObjectExpression",
	Property:                 "Property",
	FunctionExpression:       "FunctionExpression",
	ArrowFunctionExpression:  "ArrowFunctionExpression",
	ClassExpression:          "ClassExpression",
	ClassBody:                "ClassBody",
	MethodDefinition:         "MethodDefinition",
	ClassProperty:            "ClassProperty",
	StaticBlock:              "StaticBlock",
	UnaryExpression:          "UnaryExpression",
	UpdateExpression:         "UpdateExpression",
	BinaryExpression:         "BinaryExpression",
	AssignmentExpression:     "AssignmentExpression",
	LogicalExpression:        "LogicalExpression",
	MemberExpression:         "MemberExpression",
	ConditionalExpression:    "ConditionalExpression",
	CallExpression:           "CallExpression",
	NewExpression:            "NewExpression",
	SequenceExpression:       "SequenceExpression",
	YieldExpression:          "YieldExpression",
	AwaitExpression:          "AwaitExpression",
	SpreadElement:            "SpreadElement",
	MetaProperty:             "MetaProperty",
	ObjectPattern:            "ObjectPattern",
	ArrayPattern:             "ArrayPattern",
	RestElement:              "RestElement",
	AssignmentPattern:        "AssignmentPattern",
	ImportDeclaration:        "ImportDeclaration",
	ImportSpecifier:          "ImportSpecifier",
	ImportDefaultSpecifier:   "ImportDefaultSpecifier",
	ImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	ExportNamedDeclaration:   "ExportNamedDeclaration",
	ExportSpecifier:          "ExportSpecifier",
	ExportDefaultDeclaration: "ExportDefaultDeclaration",
	ExportAllDeclaration:     "ExportAllDeclaration",
	JSXElement:               "JSXElement",
	JSXExpressionContainer:   "JSXExpressionContainer",
}

// String returns the ESTree type name of k.
func (k Kind) String() string {
	if k >= kindCount {
		return "Invalid"
	}
	return kindNames[k]
}

// Field names a child slot of a Node.
type Field uint8

// Child slot names.
const (
	FieldBody Field = iota + 1
	FieldExpression
	FieldExpressions
	FieldDeclarations
	FieldDeclaration
	FieldID
	FieldInit
	FieldTest
	FieldConsequent
	FieldAlternate
	FieldUpdate
	FieldLeft
	FieldRight
	FieldArgument
	FieldArguments
	FieldCallee
	FieldObject
	FieldProperty
	FieldKey
	FieldValue
	FieldParams
	FieldElements
	FieldProperties
	FieldLabel
	FieldDiscriminant
	FieldCases
	FieldBlock
	FieldHandler
	FieldFinalizer
	FieldParam
	FieldSource
	FieldSpecifiers
	FieldLocal
	FieldImported
	FieldExported
	FieldSuperClass
	FieldTag
	FieldQuasi
	FieldChildren

	fieldCount
)

var fieldNames = [fieldCount]string{
	FieldBody:         "body",
	FieldExpression:   "expression",
	FieldExpressions:  "expressions",
	FieldDeclarations: "declarations",
	FieldDeclaration:  "declaration",
	FieldID:           "id",
	FieldInit:         "init",
	FieldTest:         "test",
	FieldConsequent:   "consequent",
	FieldAlternate:    "alternate",
	FieldUpdate:       "update",
	FieldLeft:         "left",
	FieldRight:        "right",
	FieldArgument:     "argument",
	FieldArguments:    "arguments",
	FieldCallee:       "callee",
	FieldObject:       "object",
	FieldProperty:     "property",
	FieldKey:          "key",
	FieldValue:        "value",
	FieldParams:       "params",
	FieldElements:     "elements",
	FieldProperties:   "properties",
	FieldLabel:        "label",
	FieldDiscriminant: "discriminant",
	FieldCases:        "cases",
	FieldBlock:        "block",
	FieldHandler:      "handler",
	FieldFinalizer:    "finalizer",
	FieldParam:        "param",
	FieldSource:       "source",
	FieldSpecifiers:   "specifiers",
	FieldLocal:        "local",
	FieldImported:     "imported",
	FieldExported:     "exported",
	FieldSuperClass:   "superClass",
	FieldTag:          "tag",
	FieldQuasi:        "quasi",
	FieldChildren:     "children",
}

// String returns the ESTree property name of f.
func (f Field) String() string {
	if f == 0 || f >= fieldCount {
		return "?"
	}
	return fieldNames[f]
}

// Flags are boolean node attributes.
type Flags uint16

// Node attribute flags.
const (
	FlagAsync Flags = 1 << iota
	FlagGenerator
	FlagComputed
	FlagStatic
	FlagPrefix
	FlagOptional
	FlagShorthand
	FlagMethod
	FlagDelegate
	FlagExpressionBody
	FlagAwait
)

// LiteralKind distinguishes the value type of a Literal node.
type LiteralKind uint8

// Literal value types.
const (
	LitNone LiteralKind = iota
	LitString
	LitNumber
	LitBoolean
	LitNull
	LitRegExp
)
