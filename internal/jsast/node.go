package jsast

// Position is a point in source text. Line is 1-based, Column is a 0-based byte offset.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// Loc is the source span of a node.
type Loc struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// Node is a single syntax tree node.
//
// Scalar attributes are shared across kinds: Name holds identifier and label
// names, Operator holds operators and declaration or method kinds, Value and Raw
// hold literal contents.
type Node struct {
	Kind     Kind
	Loc      Loc
	Name     string
	Operator string
	Value    string
	Raw      string
	Literal  LiteralKind
	Flags    Flags

	slots []slot
}

type slot struct {
	field  Field
	node   *Node
	list   []*Node
	isList bool
}

// New returns an empty node of the given kind.
func New(kind Kind, loc Loc) *Node {
	return &Node{Kind: kind, Loc: loc}
}

func (n *Node) find(f Field) int {
	for i := range n.slots {
		if n.slots[i].field == f {
			return i
		}
	}
	return -1
}

// Child returns the single child stored under f, or nil.
func (n *Node) Child(f Field) *Node {
	if n == nil {
		return nil
	}
	if i := n.find(f); i >= 0 {
		return n.slots[i].node
	}
	return nil
}

// List returns the child list stored under f, or nil.
func (n *Node) List(f Field) []*Node {
	if n == nil {
		return nil
	}
	if i := n.find(f); i >= 0 {
		return n.slots[i].list
	}
	return nil
}

// HasList reports whether f holds a list, even an empty one.
func (n *Node) HasList(f Field) bool {
	if i := n.find(f); i >= 0 {
		return n.slots[i].isList
	}
	return false
}

// SetChild stores c under f. A nil c removes the slot.
func (n *Node) SetChild(f Field, c *Node) *Node {
	i := n.find(f)
	switch {
	case c == nil && i >= 0:
		n.slots = append(n.slots[:i], n.slots[i+1:]...)
	case c == nil:
	case i >= 0:
		n.slots[i] = slot{field: f, node: c}
	default:
		n.slots = append(n.slots, slot{field: f, node: c})
	}
	return n
}

// SetList stores list under f. Nil entries are dropped.
func (n *Node) SetList(f Field, list []*Node) *Node {
	kept := make([]*Node, 0, len(list))
	for _, c := range list {
		if c != nil {
			kept = append(kept, c)
		}
	}
	s := slot{field: f, list: kept, isList: true}
	if i := n.find(f); i >= 0 {
		n.slots[i] = s
	} else {
		n.slots = append(n.slots, s)
	}
	return n
}

// Append adds c to the list stored under f, creating the list if needed.
func (n *Node) Append(f Field, c *Node) *Node {
	if c == nil {
		return n
	}
	return n.SetList(f, append(n.List(f), c))
}

// Fields returns the populated slots in insertion order.
func (n *Node) Fields() []Field {
	fields := make([]Field, len(n.slots))
	for i, s := range n.slots {
		fields[i] = s.field
	}
	return fields
}

// Is reports whether every flag in fl is set.
func (n *Node) Is(fl Flags) bool {
	return n != nil && n.Flags&fl == fl
}

// With sets fl and returns n.
func (n *Node) With(fl Flags) *Node {
	n.Flags |= fl
	return n
}

// Ident builds an Identifier.
func Ident(name string, loc Loc) *Node {
	n := New(Identifier, loc)
	n.Name = name
	return n
}

// StringLiteral builds a string Literal with its cooked value and source text.
func StringLiteral(value, raw string, loc Loc) *Node {
	n := New(Literal, loc)
	n.Literal = LitString
	n.Value = value
	n.Raw = raw
	return n
}

// Call builds a CallExpression.
func Call(callee *Node, args []*Node, loc Loc) *Node {
	return New(CallExpression, loc).SetChild(FieldCallee, callee).SetList(FieldArguments, args)
}

// Block builds a BlockStatement.
func Block(body []*Node, loc Loc) *Node {
	return New(BlockStatement, loc).SetList(FieldBody, body)
}

// Return builds a ReturnStatement.
func Return(arg *Node, loc Loc) *Node {
	return New(ReturnStatement, loc).SetChild(FieldArgument, arg)
}

// Array builds an ArrayExpression.
func Array(elements []*Node, loc Loc) *Node {
	return New(ArrayExpression, loc).SetList(FieldElements, elements)
}

// Function builds a FunctionExpression. A nil id makes it anonymous.
func Function(id *Node, params []*Node, body *Node, loc Loc) *Node {
	return New(FunctionExpression, loc).
		SetChild(FieldID, id).
		SetList(FieldParams, params).
		SetChild(FieldBody, body)
}
