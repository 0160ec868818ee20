// Package store implements the tree arena described by the data model:
// an owned tree of Nodes linked by parent/first-child/last-child/
// sibling pointers, with detach, stable sibling sort, and pre-order,
// post-order, leaf, and sibling traversals.
//
// A Node's parent link is a non-owning back reference; a node
// exclusively owns its children and they are released when the node
// is detached and dropped by its last referrer. The tree exclusively
// owns its root.
package store

// Node is a node in an owned tree. Data carries the caller's payload
// (a *fsmodel.VizBlock in this module); the tree package itself has no
// dependency on fsmodel so it can be exercised in isolation.
type Node struct {
	Data any

	parent      *Node
	firstChild  *Node
	lastChild   *Node
	prevSibling *Node
	nextSibling *Node
	childCount  int
}

// NewNode constructs a detached node carrying data. Used both for a
// tree's root and for subtrees built outside a parent (e.g. before an
// AppendChild call that will attach them).
func NewNode(data any) *Node {
	return &Node{Data: data}
}

// Parent returns the node's non-owning parent reference, or nil at the root.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child in sibling order, or nil if n is a leaf.
func (n *Node) FirstChild() *Node { return n.firstChild }

// LastChild returns the last child in sibling order, or nil if n is a leaf.
func (n *Node) LastChild() *Node { return n.lastChild }

// PrevSibling returns the previous sibling, or nil if n is the first child.
func (n *Node) PrevSibling() *Node { return n.prevSibling }

// NextSibling returns the next sibling, or nil if n is the last child.
func (n *Node) NextSibling() *Node { return n.nextSibling }

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int { return n.childCount }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.firstChild == nil }

// AppendChild creates a new node wrapping data and attaches it as the
// last child of n.
func (n *Node) AppendChild(data any) *Node {
	child := NewNode(data)
	n.AppendNode(child)
	return child
}

// AppendNode attaches an already-constructed (and currently detached)
// subtree as the last child of n.
func (n *Node) AppendNode(child *Node) {
	child.parent = n
	child.nextSibling = nil
	child.prevSibling = n.lastChild

	if n.lastChild != nil {
		n.lastChild.nextSibling = child
	} else {
		n.firstChild = child
	}
	n.lastChild = child
	n.childCount++
}

// PrependChild creates a new node wrapping data and attaches it as the
// first child of n.
func (n *Node) PrependChild(data any) *Node {
	child := NewNode(data)
	n.PrependNode(child)
	return child
}

// PrependNode attaches an already-constructed (and currently detached)
// subtree as the first child of n.
func (n *Node) PrependNode(child *Node) {
	child.parent = n
	child.prevSibling = nil
	child.nextSibling = n.firstChild

	if n.firstChild != nil {
		n.firstChild.prevSibling = child
	} else {
		n.lastChild = child
	}
	n.firstChild = child
	n.childCount++
}

// Detach removes n from its parent's child list, rewiring neighbours
// and the parent's first/last-child pointers. The detached subtree
// remains internally valid and may be reattached elsewhere, or left to
// be garbage collected once the caller drops its last reference.
func (n *Node) Detach() {
	parent := n.parent
	if parent == nil {
		return
	}

	if n.prevSibling != nil {
		n.prevSibling.nextSibling = n.nextSibling
	} else {
		parent.firstChild = n.nextSibling
	}

	if n.nextSibling != nil {
		n.nextSibling.prevSibling = n.prevSibling
	} else {
		parent.lastChild = n.prevSibling
	}

	parent.childCount--

	n.parent = nil
	n.prevSibling = nil
	n.nextSibling = nil
}

// SortChildrenBy performs a stable in-place merge sort of n's sibling
// list according to less, preserving child-count and all sibling
// links. less(a, b) should report whether a must sort before b.
func (n *Node) SortChildrenBy(less func(a, b *Node) bool) {
	if n.childCount < 2 {
		return
	}

	children := make([]*Node, 0, n.childCount)
	for c := n.firstChild; c != nil; c = c.nextSibling {
		children = append(children, c)
	}

	children = mergeSort(children, less)

	for i, c := range children {
		if i == 0 {
			c.prevSibling = nil
		} else {
			c.prevSibling = children[i-1]
		}
		if i == len(children)-1 {
			c.nextSibling = nil
		} else {
			c.nextSibling = children[i+1]
		}
	}
	n.firstChild = children[0]
	n.lastChild = children[len(children)-1]
}

// mergeSort is a textbook stable merge sort over a slice of *Node.
func mergeSort(nodes []*Node, less func(a, b *Node) bool) []*Node {
	if len(nodes) < 2 {
		return nodes
	}
	mid := len(nodes) / 2
	left := mergeSort(append([]*Node(nil), nodes[:mid]...), less)
	right := mergeSort(append([]*Node(nil), nodes[mid:]...), less)

	merged := make([]*Node, 0, len(nodes))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		if less(right[j], left[i]) {
			merged = append(merged, right[j])
			j++
		} else {
			merged = append(merged, left[i])
			i++
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return merged
}

// Depth returns the distance from n to the tree's root (0 at the root).
func Depth(n *Node) int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// DescendantCount returns the number of nodes strictly beneath n.
func DescendantCount(n *Node) int {
	count := 0
	PostOrder(n, func(c *Node) {
		if c != n {
			count++
		}
	})
	return count
}
