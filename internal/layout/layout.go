// Package layout implements the squarified treemap described by the
// component design: a greedy row-building algorithm that minimizes
// sibling aspect ratio subject to each child's ground area being
// proportional to its share of its parent's size, followed by a
// bounding-box pass that gives every node a tight enclosing volume.
package layout

import (
	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

const (
	// maxPadding bounds per-side padding regardless of block size.
	maxPadding = 0.75
	// paddingRatio is the fallback fraction of an axis kept after
	// padding when the ratio-based padding would collapse the block.
	paddingRatio = 0.9
)

// Options configures a layout run.
type Options struct {
	RootWidth   float64
	RootDepth   float64
	BlockHeight float64
}

// DefaultOptions returns the options used when the caller has no
// stronger opinion.
func DefaultOptions() Options {
	return Options{RootWidth: 1000, RootDepth: 1000, BlockHeight: 2.5}
}

// Parse assigns a block to every node in tree: the root gets a fixed
// footprint at the world origin, and every other node is placed by the
// squarified algorithm, recursing top-down one generation of children
// at a time. Each directory's children must already be sorted
// descending by size (internal/scan's post-processing guarantees
// this).
func Parse(tree *store.Tree, opts Options) {
	root := tree.Root()
	vizBlockOf(root).Block = fsmodel.NewBlock(fsmodel.Point3D{}, opts.RootWidth, opts.BlockHeight, opts.RootDepth)

	squarifyRecursively(root, opts)
}

func vizBlockOf(n *store.Node) *fsmodel.VizBlock {
	return n.Data.(*fsmodel.VizBlock)
}
