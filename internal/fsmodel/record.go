package fsmodel

// EntryKind distinguishes a regular file from a directory. Symlinks
// and reparse points are excluded at scan time and never appear here.
type EntryKind uint8

const (
	Regular EntryKind = iota
	Directory
)

// String returns a human-readable label for the kind.
func (k EntryKind) String() string {
	if k == Directory {
		return "directory"
	}
	return "file"
}

// FileRecord is the immutable-except-for-size payload every tree node
// carries. SizeBytes is mutated only by scan post-processing and by
// OnFileModification (via the model-update pipeline).
type FileRecord struct {
	Name      string
	Extension string
	SizeBytes uint64
	Kind      EntryKind
}

// VizBlock pairs a FileRecord with its laid-out geometry. Bbox is set
// only by the bounding-box pass; VboOffset is meaningful only after a
// layout run has assigned dense pre-order offsets to visible nodes.
type VizBlock struct {
	File      FileRecord
	Block     Block
	Bbox      Block
	VboOffset uint32
}

// InvalidVboOffset marks a VizBlock that has not yet been assigned an
// offset by a layout pass (or one excluded by the visibility filter).
const InvalidVboOffset = ^uint32(0)

// Metadata summarizes a completed scan. Set once by post-processing.
type Metadata struct {
	FileCount      int
	DirectoryCount int
	TotalBytes     uint64
}

// SizePrefix selects how the UI renders byte counts; it has no effect
// on scanning, layout, pick, or search.
type SizePrefix uint8

const (
	Binary  SizePrefix = iota // 1 KiB = 1024 B
	Decimal                   // 1 kB = 1000 B
)

// VisibilityFilter controls which nodes participate in layout, pick,
// search, and highlight.
type VisibilityFilter struct {
	MinSizeBytes        uint64
	OnlyShowDirectories bool
}

// Accepts reports whether a record passes this filter.
func (f VisibilityFilter) Accepts(rec FileRecord) bool {
	if f.OnlyShowDirectories && rec.Kind != Directory {
		return false
	}
	return rec.SizeBytes >= f.MinSizeBytes
}

// FileEventKind enumerates the normalized events the filesystem
// monitor emits.
type FileEventKind uint8

const (
	Created FileEventKind = iota
	Deleted
	Touched
	Renamed
)

// String returns a human-readable label for the event kind.
func (k FileEventKind) String() string {
	switch k {
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	case Touched:
		return "touched"
	case Renamed:
		return "renamed"
	default:
		return "unknown"
	}
}

// FileEvent is a normalized filesystem change notification, produced
// by internal/monitor and consumed by internal/pipeline.
type FileEvent struct {
	Path      string
	Kind      FileEventKind
	SizeBytes uint64
	ID        uint64
}
