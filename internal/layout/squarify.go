package layout

import (
	"math"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

// squarifyRecursively lays out one generation of children at a time,
// then descends into each child's own children.
func squarifyRecursively(n *store.Node, opts Options) {
	first := n.FirstChild()
	if first == nil {
		return
	}

	children := make([]*store.Node, 0, n.ChildCount())
	for c := first; c != nil; c = c.NextSibling() {
		children = append(children, c)
	}

	squarifyAndLayoutRows(children, opts)

	for _, c := range children {
		squarifyRecursively(c, opts)
	}
}

// squarifyAndLayoutRows greedily builds rows of nodes, closing a row
// and starting a new one whenever adding the next node would make the
// worst aspect ratio in the row worse than leaving it out.
func squarifyAndLayoutRows(nodes []*store.Node, opts Options) {
	if len(nodes) == 0 {
		return
	}

	parent := nodes[0].Parent()
	parentData := vizBlockOf(parent)

	var row []*store.Node
	shortestEdge := computeShortestEdgeOfRemainingBounds(parentData.Block)

	for _, node := range nodes {
		size := vizBlockOf(node).File.SizeBytes

		withRatio := computeWorstAspectRatio(row, size, parent, shortestEdge)
		withoutRatio := computeWorstAspectRatio(row, 0, parent, shortestEdge)

		if withRatio <= withoutRatio {
			row = append(row, node)
			continue
		}

		layoutRow(row, parent, opts)
		row = []*store.Node{node}
		shortestEdge = computeShortestEdgeOfRemainingBounds(parentData.Block)
	}

	if len(row) > 0 {
		layoutRow(row, parent, opts)
	}
}

// computeRemainingArea returns the sub-rectangle of the parent block's
// top face not yet covered by placed rows.
func computeRemainingArea(block fsmodel.Block) fsmodel.Block {
	nearCorner := block.NextRowOrigin()
	childOrigin := block.ComputeNextChildOrigin()

	farCorner := fsmodel.Point3D{
		X: childOrigin.X + block.Width,
		Y: childOrigin.Y,
		Z: childOrigin.Z - block.Depth,
	}

	return fsmodel.NewBlock(nearCorner, farCorner.X-nearCorner.X, block.Height, nearCorner.Z-farCorner.Z)
}

func computeShortestEdgeOfRemainingBounds(parentBlock fsmodel.Block) float64 {
	remaining := computeRemainingArea(parentBlock)
	if remaining.Width < remaining.Depth {
		return remaining.Width
	}
	return remaining.Depth
}

func computeBytesInRow(row []*store.Node, candidateSize uint64) uint64 {
	sum := candidateSize
	for _, n := range row {
		sum += vizBlockOf(n).File.SizeBytes
	}
	return sum
}

// calculateRowBounds computes the sub-rectangle of the parent's
// remaining area that a row totalling bytesInRow would occupy. When
// updateOffset is set, the parent's next-row cursor is advanced past
// the row (only the row that is actually being placed should do this;
// computeWorstAspectRatio calls this speculatively with updateOffset
// false).
func calculateRowBounds(bytesInRow uint64, parent *store.Node, updateOffset bool) fsmodel.Block {
	parentData := vizBlockOf(parent)
	parentBlock := &parentData.Block

	remainingLand := computeRemainingArea(*parentBlock)

	parentArea := parentBlock.Width * parentBlock.Depth
	remainingArea := remainingLand.Width * remainingLand.Depth
	remainingBytes := (remainingArea / parentArea) * float64(parentData.File.SizeBytes)

	rowToParentRatio := float64(bytesInRow) / remainingBytes
	nearCorner := parentBlock.NextRowOrigin()

	var row fsmodel.Block
	if remainingLand.Width > remainingLand.Depth {
		row = fsmodel.NewBlock(nearCorner, remainingLand.Width*rowToParentRatio, remainingLand.Height, remainingLand.Depth)
		if updateOffset {
			parentBlock.SetNextRowOrigin(nearCorner.Add(fsmodel.Point3D{X: row.Width}))
		}
	} else {
		row = fsmodel.NewBlock(nearCorner, remainingLand.Width, remainingLand.Height, remainingLand.Depth*rowToParentRatio)
		if updateOffset {
			parentBlock.SetNextRowOrigin(nearCorner.Add(fsmodel.Point3D{Z: -row.Depth}))
		}
	}
	return row
}

// computeWorstAspectRatio evaluates the worst aspect ratio that would
// result from laying out row with candidateSize optionally added to
// it. row is assumed sorted descending by size, per the scanner's
// post-processing.
func computeWorstAspectRatio(row []*store.Node, candidateSize uint64, parent *store.Node, shortestEdge float64) float64 {
	if len(row) == 0 && candidateSize == 0 {
		return math.MaxFloat64
	}

	var largest uint64
	switch {
	case len(row) > 0:
		largest = vizBlockOf(row[0]).File.SizeBytes
		if candidateSize > largest {
			largest = candidateSize
		}
	default:
		largest = candidateSize
	}

	bytesInRow := computeBytesInRow(row, candidateSize)
	rowBounds := calculateRowBounds(bytesInRow, parent, false)
	totalRowArea := rowBounds.Width * rowBounds.Depth

	largestArea := (float64(largest) / float64(bytesInRow)) * totalRowArea

	var smallest uint64
	switch {
	case candidateSize > 0 && len(row) > 0:
		smallest = vizBlockOf(row[len(row)-1]).File.SizeBytes
		if candidateSize < smallest {
			smallest = candidateSize
		}
	case candidateSize > 0:
		smallest = candidateSize
	default:
		smallest = vizBlockOf(row[len(row)-1]).File.SizeBytes
	}

	smallestArea := (float64(smallest) / float64(bytesInRow)) * totalRowArea

	lengthSquared := shortestEdge * shortestEdge
	areaSquared := totalRowArea * totalRowArea

	return math.Max(
		(lengthSquared*largestArea)/areaSquared,
		areaSquared/(lengthSquared*smallestArea),
	)
}

// layoutRow places every node in row within the parent's remaining
// area, then advances the row-local coverage cursor after each
// placement.
func layoutRow(row []*store.Node, parent *store.Node, opts Options) {
	if len(row) == 0 {
		return
	}

	bytesInRow := computeBytesInRow(row, 0)
	land := calculateRowBounds(bytesInRow, parent, true)

	nodeCount := len(row)
	for _, node := range row {
		data := vizBlockOf(node)
		percentageOfParent := float64(data.File.SizeBytes) / float64(bytesInRow)

		var additionalCoverage float64
		if land.Width > land.Depth {
			additionalCoverage = slicePerpendicularToWidth(&land, percentageOfParent, data, nodeCount, opts)
		} else {
			additionalCoverage = slicePerpendicularToDepth(&land, percentageOfParent, data, nodeCount, opts)
		}

		land.IncreaseCoverageBy(additionalCoverage)
	}
}

// slicePerpendicularToWidth places a child's block by cutting a slice
// out of land along its width axis, with padding derived from the
// child's share of the row and the row's node count.
func slicePerpendicularToWidth(land *fsmodel.Block, percentageOfParent float64, data *fsmodel.VizBlock, nodeCount int, opts Options) float64 {
	blockWidthPlusPadding := land.Width * percentageOfParent
	ratioBasedPadding := (land.Width * 0.1 / float64(nodeCount)) / 2.0

	widthPaddingPerSide := math.Min(ratioBasedPadding, maxPadding)
	finalBlockWidth := blockWidthPlusPadding - 2.0*widthPaddingPerSide
	if finalBlockWidth < 0.0 {
		finalBlockWidth = blockWidthPlusPadding * paddingRatio
		widthPaddingPerSide = (blockWidthPlusPadding * (1.0 - paddingRatio)) / 2.0
	}

	ratioBasedBlockDepth := land.Depth * paddingRatio
	depthPaddingPerSide := math.Min((land.Depth-ratioBasedBlockDepth)/2.0, maxPadding)

	var finalBlockDepth float64
	if depthPaddingPerSide == maxPadding {
		finalBlockDepth = land.Depth - 2.0*maxPadding
	} else {
		finalBlockDepth = ratioBasedBlockDepth
	}

	offset := fsmodel.Point3D{
		X: land.Width*land.Coverage() + widthPaddingPerSide,
		Z: -depthPaddingPerSide,
	}

	data.Block = fsmodel.NewBlock(land.Origin.Add(offset), finalBlockWidth, opts.BlockHeight, finalBlockDepth)

	return blockWidthPlusPadding / land.Width
}

// slicePerpendicularToDepth is slicePerpendicularToWidth's mirror for
// rows whose remaining area is taller (in depth) than it is wide.
func slicePerpendicularToDepth(land *fsmodel.Block, percentageOfParent float64, data *fsmodel.VizBlock, nodeCount int, opts Options) float64 {
	blockDepthPlusPadding := land.Depth * percentageOfParent
	ratioBasedPadding := (land.Depth * 0.1 / float64(nodeCount)) / 2.0

	depthPaddingPerSide := math.Min(ratioBasedPadding, maxPadding)
	finalBlockDepth := blockDepthPlusPadding - 2.0*depthPaddingPerSide
	if finalBlockDepth < 0.0 {
		finalBlockDepth = blockDepthPlusPadding * paddingRatio
		depthPaddingPerSide = (blockDepthPlusPadding * (1.0 - paddingRatio)) / 2.0
	}

	ratioBasedWidth := land.Width * paddingRatio
	widthPaddingPerSide := math.Min((land.Width-ratioBasedWidth)/2.0, maxPadding)

	var finalBlockWidth float64
	if widthPaddingPerSide == maxPadding {
		finalBlockWidth = land.Width - 2.0*maxPadding
	} else {
		finalBlockWidth = ratioBasedWidth
	}

	offset := fsmodel.Point3D{
		X: widthPaddingPerSide,
		Z: -(land.Depth*land.Coverage() + depthPaddingPerSide),
	}

	data.Block = fsmodel.NewBlock(land.Origin.Add(offset), finalBlockWidth, opts.BlockHeight, finalBlockDepth)

	return blockDepthPlusPadding / land.Depth
}
