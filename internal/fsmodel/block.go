// Package fsmodel holds the data model shared by the scanner, layouter,
// pick engine, and model-update pipeline: FileRecord, Block, VizBlock,
// Metadata, and the filesystem-event and visibility-filter types.
package fsmodel

// Point3D is a point or vector in world space. All layout geometry is
// computed in float64; only the final conversion to a GPU-facing
// transform is allowed to narrow to float32.
type Point3D struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of p and q.
func (p Point3D) Add(q Point3D) Point3D {
	return Point3D{p.X + q.X, p.Y + q.Y, p.Z + q.Z}
}

// Block is an axis-aligned rectangular prism on the xz plane. Width
// extends along +x, depth extends along -z, height is constant and
// extends along +y.
type Block struct {
	Origin Point3D
	Width  float64
	Height float64
	Depth  float64

	// nextRowOrigin and coverage are squarified-treemap layout
	// bookkeeping, meaningful only on a directory block mid-layout.
	nextRowOrigin Point3D
	coverage      float64
}

// NewBlock constructs a block and seeds its next-row origin at the
// child plane (origin offset by height), matching the convention that
// a freshly placed block's first row starts flush against its top face.
func NewBlock(origin Point3D, width, height, depth float64) Block {
	return Block{
		Origin:        origin,
		Width:         width,
		Height:        height,
		Depth:         depth,
		nextRowOrigin: origin.Add(Point3D{0, height, 0}),
	}
}

// HasVolume reports whether every dimension is strictly positive, the
// invariant every laid-out block (root included) must satisfy.
func (b Block) HasVolume() bool {
	return b.Width > 0 && b.Height > 0 && b.Depth > 0
}

// ComputeNextChildOrigin returns the point at which to begin laying
// out this block's immediate children: the origin raised by height.
func (b Block) ComputeNextChildOrigin() Point3D {
	return b.Origin.Add(Point3D{0, b.Height, 0})
}

// NextRowOrigin returns where the next not-yet-placed row should begin.
func (b Block) NextRowOrigin() Point3D {
	return b.nextRowOrigin
}

// SetNextRowOrigin advances the row cursor after a row has been placed.
func (b *Block) SetNextRowOrigin(origin Point3D) {
	b.nextRowOrigin = origin
}

// Coverage returns the fraction, in [0,1], of the current row's
// long-side extent already consumed by placed children.
func (b Block) Coverage() float64 {
	return b.coverage
}

// IncreaseCoverageBy accumulates additional row coverage after a child
// has been placed within the row.
func (b *Block) IncreaseCoverageBy(additional float64) {
	b.coverage += additional
}
