package store

import "testing"

func wellFormed(t *testing.T, n *Node) {
	t.Helper()
	if n.firstChild == nil && n.lastChild == nil {
		return
	}
	if n.firstChild == nil || n.lastChild == nil {
		t.Fatalf("node has exactly one of firstChild/lastChild nil")
	}

	count := 0
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c.parent != n {
			t.Fatalf("child parent pointer does not equal n")
		}
		count++
		if c == n.lastChild {
			break
		}
	}
	if count != n.childCount {
		t.Fatalf("childCount %d does not match realized list length %d", n.childCount, count)
	}

	// lastChild must be reachable from firstChild via nextSibling.
	reached := false
	for c := n.firstChild; c != nil; c = c.nextSibling {
		if c == n.lastChild {
			reached = true
			break
		}
	}
	if !reached {
		t.Fatalf("lastChild not reachable from firstChild via nextSibling")
	}

	for c := n.firstChild; c != nil; c = c.nextSibling {
		wellFormed(t, c)
	}
}

func TestAppendAndPrependWellFormed(t *testing.T) {
	tree := NewTree("root")
	root := tree.Root()

	a := root.AppendChild("a")
	root.AppendChild("b")
	root.PrependChild("z")

	wellFormed(t, root)

	if root.ChildCount() != 3 {
		t.Fatalf("expected 3 children, got %d", root.ChildCount())
	}
	if root.FirstChild().Data != "z" {
		t.Fatalf("expected prepend to land first, got %v", root.FirstChild().Data)
	}
	a.AppendChild("nested")
	wellFormed(t, root)
}

func TestDetachRewiresNeighbours(t *testing.T) {
	tree := NewTree("root")
	root := tree.Root()

	root.AppendChild("a")
	b := root.AppendChild("b")
	root.AppendChild("c")

	b.Detach()
	wellFormed(t, root)

	if root.ChildCount() != 2 {
		t.Fatalf("expected 2 children after detach, got %d", root.ChildCount())
	}

	var names []any
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		names = append(names, c.Data)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "c" {
		t.Fatalf("unexpected sibling order after detach: %v", names)
	}

	// Detached node remains internally valid and reattachable.
	if b.Parent() != nil {
		t.Fatalf("expected detached node to have nil parent")
	}
	root.AppendNode(b)
	wellFormed(t, root)
	if root.ChildCount() != 3 {
		t.Fatalf("expected 3 children after reattach, got %d", root.ChildCount())
	}
}

func TestDetachFirstAndLast(t *testing.T) {
	tree := NewTree("root")
	root := tree.Root()
	first := root.AppendChild("first")
	root.AppendChild("mid")
	last := root.AppendChild("last")

	first.Detach()
	wellFormed(t, root)
	if root.FirstChild().Data != "mid" {
		t.Fatalf("expected mid to become first child")
	}

	last.Detach()
	wellFormed(t, root)
	if root.LastChild().Data != "mid" {
		t.Fatalf("expected mid to become last child")
	}
}

func TestSortChildrenByIsStableAndPreservesLinks(t *testing.T) {
	tree := NewTree("root")
	root := tree.Root()

	type item struct {
		size int
		tag  string
	}
	root.AppendChild(item{3, "a"})
	root.AppendChild(item{1, "b"})
	root.AppendChild(item{3, "c"}) // same size as "a"; must stay after it
	root.AppendChild(item{2, "d"})

	root.SortChildrenBy(func(a, b *Node) bool {
		return a.Data.(item).size > b.Data.(item).size
	})

	wellFormed(t, root)

	var tags []string
	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		tags = append(tags, c.Data.(item).tag)
	}
	want := []string{"a", "c", "d", "b"}
	for i, tag := range want {
		if tags[i] != tag {
			t.Fatalf("expected stable sort order %v, got %v", want, tags)
		}
	}
	if root.ChildCount() != 4 {
		t.Fatalf("expected 4 children, got %d", root.ChildCount())
	}
}

func TestTraversalsPreOrderPostOrderLeaves(t *testing.T) {
	tree := NewTree("root")
	root := tree.Root()
	a := root.AppendChild("a")
	root.AppendChild("b")
	a.AppendChild("a1")
	a.AppendChild("a2")

	var pre []string
	PreOrder(root, func(n *Node) bool {
		pre = append(pre, n.Data.(string))
		return true
	})
	wantPre := []string{"root", "a", "a1", "a2", "b"}
	for i, v := range wantPre {
		if pre[i] != v {
			t.Fatalf("pre-order mismatch: want %v got %v", wantPre, pre)
		}
	}

	var post []string
	PostOrder(root, func(n *Node) {
		post = append(post, n.Data.(string))
	})
	wantPost := []string{"a1", "a2", "a", "b", "root"}
	for i, v := range wantPost {
		if post[i] != v {
			t.Fatalf("post-order mismatch: want %v got %v", wantPost, post)
		}
	}

	var leaves []string
	Leaves(root, func(n *Node) {
		leaves = append(leaves, n.Data.(string))
	})
	wantLeaves := []string{"a1", "a2", "b"}
	for i, v := range wantLeaves {
		if leaves[i] != v {
			t.Fatalf("leaves mismatch: want %v got %v", wantLeaves, leaves)
		}
	}
}

func TestSiblingTraversal(t *testing.T) {
	tree := NewTree("root")
	root := tree.Root()
	root.AppendChild("a")
	b := root.AppendChild("b")
	root.AppendChild("c")

	var names []string
	Siblings(b, func(n *Node) {
		names = append(names, n.Data.(string))
	})
	want := []string{"a", "b", "c"}
	for i, v := range want {
		if names[i] != v {
			t.Fatalf("sibling traversal mismatch: want %v got %v", want, names)
		}
	}
}

func TestDepthAndDescendantCount(t *testing.T) {
	tree := NewTree("root")
	root := tree.Root()
	a := root.AppendChild("a")
	a1 := a.AppendChild("a1")
	a1.AppendChild("a1a")

	if Depth(root) != 0 {
		t.Fatalf("expected root depth 0, got %d", Depth(root))
	}
	if Depth(a1) != 2 {
		t.Fatalf("expected depth 2, got %d", Depth(a1))
	}
	if DescendantCount(root) != 3 {
		t.Fatalf("expected 3 descendants of root, got %d", DescendantCount(root))
	}
	if DescendantCount(a) != 2 {
		t.Fatalf("expected 2 descendants of a, got %d", DescendantCount(a))
	}
}
