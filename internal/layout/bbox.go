package layout

import (
	"github.com/tsevere/dviz/internal/store"
)

// ComputeBoundingBoxes runs the bounding-box pass: every leaf's bbox is
// its own block; every interior node's bbox spans its own block's
// footprint but its height grows to enclose its tallest child's bbox.
// Must run after Parse has assigned every node a block.
func ComputeBoundingBoxes(tree *store.Tree) {
	store.PostOrder(tree.Root(), func(n *store.Node) {
		data := vizBlockOf(n)

		if n.IsLeaf() {
			data.Bbox = data.Block
			return
		}

		maxChildBboxHeight := 0.0
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			h := vizBlockOf(c).Bbox.Height
			if h > maxChildBboxHeight {
				maxChildBboxHeight = h
			}
		}

		bbox := data.Block
		bbox.Height = data.Block.Height + maxChildBboxHeight
		data.Bbox = bbox
	})
}
