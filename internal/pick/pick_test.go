package pick

import (
	"testing"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

func alwaysInFront(fsmodel.Point3D) bool { return true }

func blockNode(name string, b fsmodel.Block) *store.Node {
	return store.NewNode(&fsmodel.VizBlock{
		File:  fsmodel.FileRecord{Name: name, SizeBytes: 1, Kind: fsmodel.Regular},
		Block: b,
		Bbox:  b,
	})
}

func TestPickHitsTopFaceOfSingleBlock(t *testing.T) {
	tree := store.NewTree(nil)
	block := fsmodel.NewBlock(fsmodel.Point3D{X: 0, Y: 0, Z: 0}, 10, 2, 10)
	root := blockNode("root", block)
	tree.Replace(root)

	ray := Ray{Origin: fsmodel.Point3D{X: 5, Y: 100, Z: -5}, Direction: fsmodel.Point3D{Y: -1}}
	result, ok := Pick(tree, ray, alwaysInFront, fsmodel.VisibilityFilter{})
	if !ok {
		t.Fatalf("expected a hit")
	}
	if result.Node != root {
		t.Fatalf("expected root to be hit")
	}
	if result.Hit.Y != 2 {
		t.Fatalf("expected hit at top face y=2, got %v", result.Hit.Y)
	}
}

func TestPickMissesWhenRayPassesBeside(t *testing.T) {
	tree := store.NewTree(nil)
	block := fsmodel.NewBlock(fsmodel.Point3D{X: 0, Y: 0, Z: 0}, 10, 2, 10)
	root := blockNode("root", block)
	tree.Replace(root)

	ray := Ray{Origin: fsmodel.Point3D{X: 500, Y: 100, Z: -5}, Direction: fsmodel.Point3D{Y: -1}}
	_, ok := Pick(tree, ray, alwaysInFront, fsmodel.VisibilityFilter{})
	if ok {
		t.Fatalf("expected no hit for a ray passing beside the block")
	}
}

func TestPickReturnsClosestAmongOverlappingCandidates(t *testing.T) {
	tree := store.NewTree(nil)
	parentBlock := fsmodel.NewBlock(fsmodel.Point3D{X: 0, Y: 0, Z: 0}, 10, 2, 10)
	root := blockNode("root", parentBlock)
	tree.Replace(root)

	// Child sits directly atop the parent; a straight-down ray should
	// hit the child's (higher) top face first.
	childBlock := fsmodel.NewBlock(fsmodel.Point3D{X: 1, Y: 2, Z: -1}, 5, 2, 5)
	child := blockNode("child", childBlock)
	root.AppendNode(child)

	ray := Ray{Origin: fsmodel.Point3D{X: 3, Y: 100, Z: -3}, Direction: fsmodel.Point3D{Y: -1}}
	result, ok := Pick(tree, ray, alwaysInFront, fsmodel.VisibilityFilter{})
	if !ok {
		t.Fatalf("expected a hit")
	}
	if result.Node != child {
		t.Fatalf("expected the closer child block to be hit, got %v", result.Node.Data.(*fsmodel.VizBlock).File.Name)
	}
}

func TestPickSkipsSubtreeRejectedByFilter(t *testing.T) {
	tree := store.NewTree(nil)
	parentBlock := fsmodel.NewBlock(fsmodel.Point3D{X: 0, Y: 0, Z: 0}, 10, 2, 10)
	root := blockNode("root", parentBlock)
	root.Data.(*fsmodel.VizBlock).File.SizeBytes = 5
	tree.Replace(root)

	childBlock := fsmodel.NewBlock(fsmodel.Point3D{X: 1, Y: 2, Z: -1}, 5, 2, 5)
	child := blockNode("child", childBlock)
	child.Data.(*fsmodel.VizBlock).File.SizeBytes = 5
	root.AppendNode(child)

	filter := fsmodel.VisibilityFilter{MinSizeBytes: 100}
	ray := Ray{Origin: fsmodel.Point3D{X: 3, Y: 100, Z: -3}, Direction: fsmodel.Point3D{Y: -1}}
	_, ok := Pick(tree, ray, alwaysInFront, filter)
	if ok {
		t.Fatalf("expected filter to reject both nodes")
	}
}

func TestPickRejectsHitsBehindCamera(t *testing.T) {
	tree := store.NewTree(nil)
	block := fsmodel.NewBlock(fsmodel.Point3D{X: 0, Y: 0, Z: 0}, 10, 2, 10)
	root := blockNode("root", block)
	tree.Replace(root)

	ray := Ray{Origin: fsmodel.Point3D{X: 5, Y: 100, Z: -5}, Direction: fsmodel.Point3D{Y: -1}}
	neverInFront := func(fsmodel.Point3D) bool { return false }
	_, ok := Pick(tree, ray, neverInFront, fsmodel.VisibilityFilter{})
	if ok {
		t.Fatalf("expected no recorded hit when every candidate is behind the camera")
	}
}

func TestPickPanicsOnZeroDirection(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a zero-direction ray")
		}
	}()

	tree := store.NewTree(nil)
	root := blockNode("root", fsmodel.NewBlock(fsmodel.Point3D{}, 1, 1, 1))
	tree.Replace(root)

	Pick(tree, Ray{}, alwaysInFront, fsmodel.VisibilityFilter{})
}

func TestAdvanceSkipsToNextSibling(t *testing.T) {
	tree := store.NewTree("root")
	root := tree.Root()
	a := root.AppendChild("a")
	b := root.AppendChild("b")

	if got := advance(a); got != b {
		t.Fatalf("expected advance(a) to reach b")
	}
	if got := advance(b); got != nil {
		t.Fatalf("expected advance(b) to reach nil, the last node")
	}
}

func TestAdvanceWalksUpToAncestorSibling(t *testing.T) {
	tree := store.NewTree("root")
	root := tree.Root()
	a := root.AppendChild("a")
	a1 := a.AppendChild("a1")
	b := root.AppendChild("b")

	if got := advance(a1); got != b {
		t.Fatalf("expected advance(a1) to climb to b via a")
	}
}
