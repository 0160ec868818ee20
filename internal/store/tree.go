package store

// Tree exclusively owns its root node; every other node in the tree is
// reachable from it through child/sibling links.
type Tree struct {
	root *Node
}

// NewTree constructs a tree whose root wraps the given data.
func NewTree(rootData any) *Tree {
	return &Tree{root: NewNode(rootData)}
}

// Root returns the tree's root node.
func (t *Tree) Root() *Node { return t.root }

// Replace swaps the tree's root wholesale. Callers must have released
// (or be prepared to release) any selection/highlight references into
// the old tree before calling this, per the model's invalidate-before-
// free discipline.
func (t *Tree) Replace(root *Node) { t.root = root }

// PreOrder visits n and its descendants depth-first, parent before
// children. fn returning false skips n's children (but traversal still
// continues to n's siblings via the caller's own recursion, matching
// the contract used by scene-graph traversal elsewhere in the module).
func PreOrder(n *Node, fn func(*Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		PreOrder(c, fn)
	}
}

// PostOrder visits n and its descendants depth-first, children before
// parent.
func PostOrder(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		PostOrder(c, fn)
	}
	fn(n)
}

// Leaves visits every leaf beneath n, left to right, deepest first
// within each subtree's traversal order.
func Leaves(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	if n.IsLeaf() {
		fn(n)
		return
	}
	for c := n.firstChild; c != nil; c = c.nextSibling {
		Leaves(c, fn)
	}
}

// Siblings visits every sibling of n (n included), in list order,
// starting from the first child of n's parent.
func Siblings(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	first := n
	for first.prevSibling != nil {
		first = first.prevSibling
	}
	for c := first; c != nil; c = c.nextSibling {
		fn(c)
	}
}
