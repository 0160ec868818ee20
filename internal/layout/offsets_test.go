package layout

import (
	"testing"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

func TestAssignVboOffsetsContiguousPreOrder(t *testing.T) {
	tree := buildSampleTree()

	n := AssignVboOffsets(tree, fsmodel.VisibilityFilter{})
	if n != 5 {
		t.Fatalf("expected 5 visible nodes, got %d", n)
	}

	var wantOrder []string
	store.PreOrder(tree.Root(), func(node *store.Node) bool {
		wantOrder = append(wantOrder, node.Data.(*fsmodel.VizBlock).File.Name)
		return true
	})

	seen := make(map[uint32]bool)
	store.PreOrder(tree.Root(), func(node *store.Node) bool {
		off := node.Data.(*fsmodel.VizBlock).VboOffset
		if off == fsmodel.InvalidVboOffset {
			t.Fatalf("node %s left unassigned", node.Data.(*fsmodel.VizBlock).File.Name)
		}
		if seen[off] {
			t.Fatalf("duplicate offset %d", off)
		}
		seen[off] = true
		return true
	})
	for i := 0; i < n; i++ {
		if !seen[uint32(i)] {
			t.Fatalf("offset %d never assigned, offsets must be contiguous in [0,n)", i)
		}
	}
}

func TestAssignVboOffsetsSkipsFilteredNodes(t *testing.T) {
	tree := buildSampleTree()

	n := AssignVboOffsets(tree, fsmodel.VisibilityFilter{OnlyShowDirectories: true})
	if n != 2 {
		t.Fatalf("expected 2 directories visible (root, sub), got %d", n)
	}

	store.PreOrder(tree.Root(), func(node *store.Node) bool {
		block := node.Data.(*fsmodel.VizBlock)
		if block.File.Kind != fsmodel.Directory && block.VboOffset != fsmodel.InvalidVboOffset {
			t.Fatalf("file node %s should have been left unassigned", block.File.Name)
		}
		return true
	})
}
