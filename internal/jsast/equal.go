package jsast

import (
	"fmt"
	"strings"
)

// Equal reports whether two trees have the same shape, attributes and locations.
func Equal(a, b *Node) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Loc != b.Loc || a.Name != b.Name || a.Operator != b.Operator ||
		a.Value != b.Value || a.Raw != b.Raw || a.Literal != b.Literal || a.Flags != b.Flags {
		return false
	}
	if len(a.slots) != len(b.slots) {
		return false
	}
	for i := range a.slots {
		sa, sb := a.slots[i], b.slots[i]
		if sa.field != sb.field || sa.isList != sb.isList {
			return false
		}
		if !sa.isList {
			if !Equal(sa.node, sb.node) {
				return false
			}
			continue
		}
		if len(sa.list) != len(sb.list) {
			return false
		}
		for j := range sa.list {
			if !Equal(sa.list[j], sb.list[j]) {
				return false
			}
		}
	}
	return true
}

// Clone returns a deep copy of n.
func Clone(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := *n
	c.slots = make([]slot, len(n.slots))
	for i, s := range n.slots {
		cs := slot{field: s.field, isList: s.isList, node: Clone(s.node)}
		if s.isList {
			cs.list = make([]*Node, len(s.list))
			for j, item := range s.list {
				cs.list[j] = Clone(item)
			}
		}
		c.slots[i] = cs
	}
	return &c
}

// Dump renders the tree as indented text, one node per line.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, "", 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, label string, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if label != "" {
		sb.WriteString(label)
		sb.WriteString(": ")
	}
	fmt.Fprintf(sb, "%s %d:%d", n.Kind, n.Loc.Start.Line, n.Loc.Start.Column)
	switch {
	case n.Name != "":
		fmt.Fprintf(sb, " %s", n.Name)
	case n.Raw != "":
		fmt.Fprintf(sb, " %s", n.Raw)
	}
	if n.Operator != "" {
		fmt.Fprintf(sb, " (%s)", n.Operator)
	}
	sb.WriteByte('\n')
	for _, s := range n.slots {
		if !s.isList {
			dump(sb, s.node, s.field.String(), depth+1)
			continue
		}
		for _, c := range s.list {
			dump(sb, c, s.field.String()+"[]", depth+1)
		}
	}
}
