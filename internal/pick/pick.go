// Package pick implements ray-vs-treemap picking: a hierarchical walk
// of the tree that intersects a ray against each node's bounding box
// before testing its own block, returning whichever hit point lies
// closest to the ray's origin. It has no rendering dependency — the
// scene graph converts the camera's ray into a pick.Ray and nothing
// here reaches for raylib's opaque box-collision helper.
package pick

import (
	"fmt"
	"math"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

// epsilon is both the ray/face-parallel rejection tolerance and the
// margin allowed when checking whether a hit point lies within a
// face's 2D extent.
const epsilon = 1e-4

// Ray is a picking ray. Direction must be unit length and non-zero.
type Ray struct {
	Origin    fsmodel.Point3D
	Direction fsmodel.Point3D
}

// Result pairs a hit node with the point on its block where the ray
// struck it.
type Result struct {
	Node *store.Node
	Hit  fsmodel.Point3D
}

// Pick walks tree looking for the node whose block is hit closest to
// ray's origin. isInFront reports whether a world point lies in front
// of the camera; nodes rejected by filter are skipped along with their
// entire subtree. Panics if ray.Direction is the zero vector — an
// ill-formed ray is a programmer error, not a runtime condition.
func Pick(tree *store.Tree, ray Ray, isInFront func(fsmodel.Point3D) bool, filter fsmodel.VisibilityFilter) (Result, bool) {
	if ray.Direction == (fsmodel.Point3D{}) {
		panic(fmt.Errorf("pick: ray has zero direction"))
	}

	var (
		best    Result
		found   bool
		bestDis = math.Inf(1)
	)

	n := tree.Root()
	for n != nil {
		data := n.Data.(*fsmodel.VizBlock)

		if !filter.Accepts(data.File) {
			n = advance(n)
			continue
		}

		if _, hitBbox := intersectBlock(ray, data.Bbox); !hitBbox {
			n = advance(n)
			continue
		}

		if hit, ok := intersectBlock(ray, data.Block); ok && isInFront(hit) {
			if d := distance(ray.Origin, hit); d < bestDis {
				bestDis = d
				best = Result{Node: n, Hit: hit}
				found = true
			}
		}

		if n.FirstChild() != nil {
			n = n.FirstChild()
		} else {
			n = advance(n)
		}
	}

	return best, found
}

// advance moves to the next node that is not a descendant of n: its
// next sibling, or the next sibling of the nearest ancestor that has
// one, or nil if none remains.
func advance(n *store.Node) *store.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.NextSibling() != nil {
			return cur.NextSibling()
		}
	}
	return nil
}

// intersectBlock tests a ray against a block's five visible faces
// (every face but the bottom) and returns the closest hit, if any.
func intersectBlock(ray Ray, b fsmodel.Block) (fsmodel.Point3D, bool) {
	ox, oy, oz := b.Origin.X, b.Origin.Y, b.Origin.Z
	w, h, d := b.Width, b.Height, b.Depth

	type hit struct {
		point fsmodel.Point3D
		dist  float64
	}
	var best *hit

	consider := func(point fsmodel.Point3D, ok bool) {
		if !ok {
			return
		}
		dist := distance(ray.Origin, point)
		if best == nil || dist < best.dist {
			best = &hit{point: point, dist: dist}
		}
	}

	// Top face: y = oy + h, extent x in [ox, ox+w], z in [oz-d, oz].
	if p, ok := intersectPlane(ray, fsmodel.Point3D{X: ox, Y: oy + h, Z: oz}, fsmodel.Point3D{Y: 1}); ok {
		if withinRange(p.X, ox, ox+w) && withinRange(p.Z, oz-d, oz) {
			consider(p, true)
		}
	}

	// Front face (near side, z = oz): extent x in [ox, ox+w], y in [oy, oy+h].
	if p, ok := intersectPlane(ray, fsmodel.Point3D{X: ox, Y: oy, Z: oz}, fsmodel.Point3D{Z: 1}); ok {
		if withinRange(p.X, ox, ox+w) && withinRange(p.Y, oy, oy+h) {
			consider(p, true)
		}
	}

	// Back face (far side, z = oz-d): same 2D extent as the front face.
	if p, ok := intersectPlane(ray, fsmodel.Point3D{X: ox, Y: oy, Z: oz - d}, fsmodel.Point3D{Z: -1}); ok {
		if withinRange(p.X, ox, ox+w) && withinRange(p.Y, oy, oy+h) {
			consider(p, true)
		}
	}

	// Left face (x = ox): extent z in [oz-d, oz], y in [oy, oy+h].
	if p, ok := intersectPlane(ray, fsmodel.Point3D{X: ox, Y: oy, Z: oz}, fsmodel.Point3D{X: -1}); ok {
		if withinRange(p.Z, oz-d, oz) && withinRange(p.Y, oy, oy+h) {
			consider(p, true)
		}
	}

	// Right face (x = ox+w): same 2D extent as the left face.
	if p, ok := intersectPlane(ray, fsmodel.Point3D{X: ox + w, Y: oy, Z: oz}, fsmodel.Point3D{X: 1}); ok {
		if withinRange(p.Z, oz-d, oz) && withinRange(p.Y, oy, oy+h) {
			consider(p, true)
		}
	}

	if best == nil {
		return fsmodel.Point3D{}, false
	}
	return best.point, true
}

// intersectPlane intersects ray with the plane through planePoint with
// the given normal, rejecting rays parallel to the plane and hits
// behind the ray's origin.
func intersectPlane(ray Ray, planePoint, normal fsmodel.Point3D) (fsmodel.Point3D, bool) {
	denom := dot(ray.Direction, normal)
	if math.Abs(denom) < epsilon {
		return fsmodel.Point3D{}, false
	}

	t := dot(sub(planePoint, ray.Origin), normal) / denom
	if t < 0 {
		return fsmodel.Point3D{}, false
	}

	return add(ray.Origin, scale(ray.Direction, t)), true
}

func withinRange(v, lo, hi float64) bool {
	return v >= lo-epsilon && v <= hi+epsilon
}

func dot(a, b fsmodel.Point3D) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func sub(a, b fsmodel.Point3D) fsmodel.Point3D {
	return fsmodel.Point3D{X: a.X - b.X, Y: a.Y - b.Y, Z: a.Z - b.Z}
}

func add(a, b fsmodel.Point3D) fsmodel.Point3D {
	return fsmodel.Point3D{X: a.X + b.X, Y: a.Y + b.Y, Z: a.Z + b.Z}
}

func scale(a fsmodel.Point3D, s float64) fsmodel.Point3D {
	return fsmodel.Point3D{X: a.X * s, Y: a.Y * s, Z: a.Z * s}
}

func distance(a, b fsmodel.Point3D) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
