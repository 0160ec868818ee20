package layout

import (
	"math"
	"testing"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

func newFileNode(name string, size uint64) *store.Node {
	return store.NewNode(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: name, SizeBytes: size, Kind: fsmodel.Regular},
	})
}

func newDirNode(name string, size uint64) *store.Node {
	return store.NewNode(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: name, SizeBytes: size, Kind: fsmodel.Directory},
	})
}

func buildSampleTree() *store.Tree {
	tree := store.NewTree(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{Name: "root", Kind: fsmodel.Directory, SizeBytes: 1000},
	})
	root := tree.Root()
	root.AppendNode(newFileNode("big.bin", 500))
	root.AppendNode(newFileNode("medium.bin", 300))
	sub := newDirNode("sub", 200)
	root.AppendNode(sub)
	sub.AppendNode(newFileNode("nested.bin", 200))
	return tree
}

func TestParseProducesVolumeEverywhere(t *testing.T) {
	tree := buildSampleTree()
	Parse(tree, DefaultOptions())

	store.PreOrder(tree.Root(), func(n *store.Node) bool {
		block := vizBlockOf(n).Block
		if !block.HasVolume() {
			t.Fatalf("node %q has no volume: %+v", vizBlockOf(n).File.Name, block)
		}
		return true
	})
}

func TestParseChildWithinParentHorizontalExtent(t *testing.T) {
	const eps = 1e-6
	tree := buildSampleTree()
	Parse(tree, DefaultOptions())

	root := tree.Root()
	rootBlock := vizBlockOf(root).Block

	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		cb := vizBlockOf(c).Block
		if cb.Origin.X < rootBlock.Origin.X-eps {
			t.Fatalf("child %q starts before parent's left edge", vizBlockOf(c).File.Name)
		}
		if cb.Origin.X+cb.Width > rootBlock.Origin.X+rootBlock.Width+eps {
			t.Fatalf("child %q extends past parent's right edge", vizBlockOf(c).File.Name)
		}
		if cb.Origin.Z > rootBlock.Origin.Z+eps {
			t.Fatalf("child %q starts beyond parent's near edge", vizBlockOf(c).File.Name)
		}
		if cb.Origin.Z-cb.Depth < rootBlock.Origin.Z-rootBlock.Depth-eps {
			t.Fatalf("child %q extends past parent's far edge", vizBlockOf(c).File.Name)
		}
		if math.Abs(cb.Origin.Y-(rootBlock.Origin.Y+rootBlock.Height)) > eps {
			t.Fatalf("child %q does not sit atop parent: origin.Y=%v want %v", vizBlockOf(c).File.Name, cb.Origin.Y, rootBlock.Origin.Y+rootBlock.Height)
		}
	}
}

func TestParseAreaProportionalToSize(t *testing.T) {
	const tolerance = 0.05 // padding eats a few percent of each block's area
	tree := buildSampleTree()
	Parse(tree, DefaultOptions())

	root := tree.Root()
	rootBlock := vizBlockOf(root).Block
	parentArea := rootBlock.Width * rootBlock.Depth
	parentSize := float64(vizBlockOf(root).File.SizeBytes)

	for c := root.FirstChild(); c != nil; c = c.NextSibling() {
		cb := vizBlockOf(c).Block
		gotFraction := (cb.Width * cb.Depth) / parentArea
		wantFraction := float64(vizBlockOf(c).File.SizeBytes) / parentSize

		if math.Abs(gotFraction-wantFraction) > tolerance {
			t.Fatalf("child %q area fraction %v too far from size fraction %v", vizBlockOf(c).File.Name, gotFraction, wantFraction)
		}
	}
}

func TestComputeBoundingBoxesEnclosesDescendants(t *testing.T) {
	tree := buildSampleTree()
	Parse(tree, DefaultOptions())
	ComputeBoundingBoxes(tree)

	store.PostOrder(tree.Root(), func(n *store.Node) {
		data := vizBlockOf(n)
		if n.IsLeaf() {
			if data.Bbox != data.Block {
				t.Fatalf("leaf %q bbox should equal its block", data.File.Name)
			}
			return
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			childBbox := vizBlockOf(c).Bbox
			if data.Bbox.Height < data.Block.Height+childBbox.Height-1e-9 {
				t.Fatalf("%q bbox height %v does not enclose child %q bbox height %v (own block height %v)",
					data.File.Name, data.Bbox.Height, vizBlockOf(c).File.Name, childBbox.Height, data.Block.Height)
			}
		}
	})
}
