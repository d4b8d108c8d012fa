package jsast

// Inspect visits n and its descendants depth-first in slot order.
// Children of a node are skipped when fn returns false.
func Inspect(n *Node, fn func(n, parent *Node) bool) {
	inspect(n, nil, fn)
}

func inspect(n, parent *Node, fn func(n, parent *Node) bool) {
	if n == nil || !fn(n, parent) {
		return
	}
	for _, s := range n.slots {
		if s.isList {
			for _, c := range s.list {
				inspect(c, n, fn)
			}
			continue
		}
		inspect(s.node, n, fn)
	}
}

// Count returns the number of nodes of kind k under root, root included.
func Count(root *Node, k Kind) int {
	total := 0
	Inspect(root, func(n, _ *Node) bool {
		if n.Kind == k {
			total++
		}
		return true
	})
	return total
}

// Transform replaces a node. Returning nil removes the node from its parent,
// returning the argument keeps it.
type Transform func(n *Node) *Node

// Rewriter applies registered transforms to a tree in place.
type Rewriter struct {
	transforms [kindCount]Transform
}

// NewRewriter returns a Rewriter with no transforms.
func NewRewriter() *Rewriter {
	return &Rewriter{}
}

// On registers fn for nodes of kind k, replacing any earlier registration.
func (r *Rewriter) On(k Kind, fn Transform) *Rewriter {
	r.transforms[k] = fn
	return r
}

// Rewrite walks the tree rooted at n and returns its replacement.
//
// A node is transformed before its children are visited. When a transform
// returns a node of another registered kind, that node is transformed in turn,
// so a replacement is always fully rewritten before the walk descends into it.
// Transforms must eventually return a node whose kind has no transform or
// return the node they were given.
func (r *Rewriter) Rewrite(n *Node) *Node {
	if n == nil {
		return nil
	}
	for {
		fn := r.transforms[n.Kind]
		if fn == nil {
			break
		}
		repl := fn(n)
		if repl == nil {
			return nil
		}
		if repl == n {
			break
		}
		n = repl
	}
	for i := range n.slots {
		s := &n.slots[i]
		if !s.isList {
			s.node = r.Rewrite(s.node)
			continue
		}
		kept := s.list[:0]
		for _, c := range s.list {
			if c = r.Rewrite(c); c != nil {
				kept = append(kept, c)
			}
		}
		s.list = kept
	}
	n.compact()
	return n
}

// compact drops single-child slots emptied by a rewrite.
func (n *Node) compact() {
	kept := n.slots[:0]
	for _, s := range n.slots {
		if s.isList || s.node != nil {
			kept = append(kept, s)
		}
	}
	n.slots = kept
}
