package scene

import (
	"sync/atomic"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tsevere/dviz/internal/color"
	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/pick"
	"github.com/tsevere/dviz/internal/store"
	"github.com/tsevere/dviz/internal/treepath"
)

var nextID atomic.Uint32

// Graph is the root of the scene hierarchy, a render-ready projection
// of a laid-out store.Tree. It is rebuilt wholesale after every
// reparse, expand/collapse and visibility-filter change; between
// rebuilds only a node's Color changes, through paint hints.
type Graph struct {
	Root       *SceneNode
	NodeIndex  map[uint32]*SceneNode
	NodeByPath map[string]*SceneNode
	NodeCount  int

	tree     *store.Tree
	rootPath string
	filter   fsmodel.VisibilityFilter
}

// NewGraph builds a Graph from tree, which must already have passed
// through layout.Parse and layout.ComputeBoundingBoxes. rootPath is the
// absolute filesystem path of tree's root, used to resolve paths for
// the sidebar and input bar. expandedPaths controls which directories
// start expanded in the traversal.
func NewGraph(tree *store.Tree, rootPath string, filter fsmodel.VisibilityFilter, expandedPaths map[string]bool) *Graph {
	g := &Graph{
		NodeIndex:  make(map[uint32]*SceneNode),
		NodeByPath: make(map[string]*SceneNode),
		tree:       tree,
		rootPath:   rootPath,
		filter:     filter,
	}
	if tree == nil || tree.Root() == nil {
		return g
	}
	g.Root = g.buildNode(tree.Root(), nil, expandedPaths)
	return g
}

func (g *Graph) buildNode(n *store.Node, parent *SceneNode, expandedPaths map[string]bool) *SceneNode {
	block := n.Data.(*fsmodel.VizBlock)
	path := treepath.Of(g.rootPath, n)

	id := nextID.Add(1)
	node := &SceneNode{
		ID:   id,
		Node: n,
		Path: path,
		Position: rl.NewVector3(
			float32(block.Block.Origin.X+block.Block.Width/2),
			float32(block.Block.Origin.Y+block.Block.Height/2),
			float32(block.Block.Origin.Z-block.Block.Depth/2),
		),
		Size:     rl.NewVector3(float32(block.Block.Width), float32(block.Block.Height), float32(block.Block.Depth)),
		Color:    blockColor(block.File),
		Visible:  g.filter.Accepts(block.File),
		Expanded: expandedPaths[path],
		Depth:    store.Depth(n),
		Parent:   parent,
	}
	node.ComputeBounds()

	g.NodeIndex[id] = node
	g.NodeByPath[path] = node
	g.NodeCount++

	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		child := g.buildNode(c, node, expandedPaths)
		node.Children = append(node.Children, child)
	}

	return node
}

func blockColor(rec fsmodel.FileRecord) rl.Color {
	if rec.Kind == fsmodel.Directory {
		return color.DirColor
	}
	return color.ColorFromSize(int64(rec.SizeBytes), 1<<30)
}

// Traverse calls fn for every visible node in depth-first order.
// If fn returns false, children of that node are skipped.
func (g *Graph) Traverse(fn func(node *SceneNode) bool) {
	if g.Root == nil {
		return
	}
	traverseNode(g.Root, fn)
}

func traverseNode(node *SceneNode, fn func(*SceneNode) bool) {
	if !node.Visible {
		return
	}
	if !fn(node) {
		return
	}
	if node.Expanded {
		for _, child := range node.Children {
			traverseNode(child, fn)
		}
	}
}

// Pick casts ray against the underlying tree via internal/pick and
// maps the resulting node back to its SceneNode.
func (g *Graph) Pick(ray rl.Ray, isInFront func(rl.Vector3) bool) *SceneNode {
	if g.tree == nil {
		return nil
	}

	pickRay := pick.Ray{
		Origin:    fsmodel.Point3D{X: float64(ray.Position.X), Y: float64(ray.Position.Y), Z: float64(ray.Position.Z)},
		Direction: fsmodel.Point3D{X: float64(ray.Direction.X), Y: float64(ray.Direction.Y), Z: float64(ray.Direction.Z)},
	}

	result, ok := pick.Pick(g.tree, pickRay, func(p fsmodel.Point3D) bool {
		return isInFront(rl.NewVector3(float32(p.X), float32(p.Y), float32(p.Z)))
	}, g.filter)
	if !ok {
		return nil
	}

	path := treepath.Of(g.rootPath, result.Node)
	return g.NodeByPath[path]
}

// FindByPath returns the node at the given filesystem path.
func (g *Graph) FindByPath(path string) *SceneNode {
	return g.NodeByPath[path]
}

// VisibleNodeCount returns the number of currently visible nodes.
func (g *Graph) VisibleNodeCount() int {
	count := 0
	g.Traverse(func(node *SceneNode) bool {
		count++
		return true
	})
	return count
}
