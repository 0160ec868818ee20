package layout

import (
	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

// AssignVboOffsets walks tree in pre-order and assigns each node passing
// filter a dense, contiguous index in [0, n), matching the order the
// renderer's transform and color buffers are built in. Nodes rejected
// by filter keep fsmodel.InvalidVboOffset and contribute no slot.
func AssignVboOffsets(tree *store.Tree, filter fsmodel.VisibilityFilter) int {
	next := uint32(0)
	store.PreOrder(tree.Root(), func(n *store.Node) bool {
		block := vizBlockOf(n)
		if !filter.Accepts(block.File) {
			block.VboOffset = fsmodel.InvalidVboOffset
			return true
		}
		block.VboOffset = next
		next++
		return true
	})
	return int(next)
}
