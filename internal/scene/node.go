package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

// SceneNode is a renderable entity in the 3D scene, built from a single
// store.Node once a layout pass has given every node a block and
// bounding box. Node is the scene's only link back to the tree;
// everything else here is a cached, render-ready projection of it.
type SceneNode struct {
	ID       uint32
	Node     *store.Node
	Path     string
	Position rl.Vector3
	Size     rl.Vector3
	Color    rl.Color
	Bounds   rl.BoundingBox
	Visible  bool
	Expanded bool
	Depth    int
	Children []*SceneNode
	Parent   *SceneNode
}

// Record returns the file record backing this scene node.
func (n *SceneNode) Record() fsmodel.FileRecord {
	return n.Node.Data.(*fsmodel.VizBlock).File
}

// IsDir reports whether this node represents a directory.
func (n *SceneNode) IsDir() bool {
	return n.Record().Kind == fsmodel.Directory
}

// ComputeBounds calculates the axis-aligned bounding box from position and size.
func (n *SceneNode) ComputeBounds() {
	halfSize := rl.NewVector3(n.Size.X/2, n.Size.Y/2, n.Size.Z/2)
	n.Bounds = rl.BoundingBox{
		Min: rl.NewVector3(n.Position.X-halfSize.X, n.Position.Y-halfSize.Y, n.Position.Z-halfSize.Z),
		Max: rl.NewVector3(n.Position.X+halfSize.X, n.Position.Y+halfSize.Y, n.Position.Z+halfSize.Z),
	}
}

// ContainsPoint checks if a point is inside this node's bounds.
func (n *SceneNode) ContainsPoint(point rl.Vector3) bool {
	return point.X >= n.Bounds.Min.X && point.X <= n.Bounds.Max.X &&
		point.Y >= n.Bounds.Min.Y && point.Y <= n.Bounds.Max.Y &&
		point.Z >= n.Bounds.Min.Z && point.Z <= n.Bounds.Max.Z
}
