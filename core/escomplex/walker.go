package escomplex

import "github.com/huangsam/codeinsights/internal/jsast"

const anonymous = "<anonymous>"

// visitor receives measured nodes in source order.
type visitor interface {
	processNode(n *jsast.Node, s *syntax)
	createScope(name string, n *jsast.Node)
	popScope()
}

// walk visits the statements of a program depth first.
func walk(root *jsast.Node, v visitor) {
	visitList(root.List(jsast.FieldBody), "", v)
}

func visitList(nodes []*jsast.Node, assignedName string, v visitor) {
	for _, n := range nodes {
		visitNode(n, assignedName, v)
	}
}

func visitNode(n *jsast.Node, assignedName string, v visitor) {
	if n == nil {
		return
	}
	s, ok := syntaxes[n.Kind]
	if !ok {
		return
	}

	v.processNode(n, s)
	if s.newScope {
		v.createScope(functionName(n, assignedName), n)
	}

	name := ""
	if s.assignableName != nil {
		name = s.assignableName(n)
	}
	for _, f := range s.children {
		if n.HasList(f) {
			visitList(n.List(f), name, v)
			continue
		}
		visitNode(n.Child(f), name, v)
	}

	if s.newScope {
		v.popScope()
	}
}

// functionName prefers the function's own identifier over the name it is assigned to.
func functionName(n *jsast.Node, assignedName string) string {
	if id := n.Child(jsast.FieldID); id != nil && id.Name != "" {
		return id.Name
	}
	if assignedName != "" {
		return assignedName
	}
	return anonymous
}
