// Package scan implements the concurrent directory walk that builds a
// store.Tree of *fsmodel.VizBlock, followed by the single-threaded
// post-processing pass: size aggregation, sizeless-node pruning, and a
// descending sort by size.
package scan

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/tsevere/dviz/internal/dverr"
	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

// Progress reports monotonically increasing scan counters. Safe to read
// from another goroutine while a scan is in flight.
type Progress struct {
	FilesScanned   int64
	DirsScanned    int64
	BytesProcessed int64
}

// Options configures a Scanner.
type Options struct {
	// WorkerCount bounds directory-read concurrency. Zero selects
	// runtime.NumCPU, capped at 4.
	WorkerCount int

	// Logger receives per-entry I/O failures. Defaults to slog.Default().
	Logger *slog.Logger
}

// Scanner performs a bounded-concurrency filesystem walk.
type Scanner struct {
	workerCount int
	logger      *slog.Logger

	filesScanned   atomic.Int64
	dirsScanned    atomic.Int64
	bytesProcessed atomic.Int64
}

// NewScanner constructs a Scanner from opts.
func NewScanner(opts Options) *Scanner {
	workers := opts.WorkerCount
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > 4 {
			workers = 4
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{workerCount: workers, logger: logger}
}

// Progress returns the current scan counters.
func (s *Scanner) Progress() Progress {
	return Progress{
		FilesScanned:   s.filesScanned.Load(),
		DirsScanned:    s.dirsScanned.Load(),
		BytesProcessed: s.bytesProcessed.Load(),
	}
}

// Scan walks root, building a tree of VizBlocks under bounded
// concurrency, then runs post-processing. If ctx is cancelled mid-walk,
// Scan still runs post-processing against the partial tree and returns
// it alongside dverr.Cancelled.
func (s *Scanner) Scan(ctx context.Context, root string) (*store.Tree, error) {
	s.filesScanned.Store(0)
	s.dirsScanned.Store(0)
	s.bytesProcessed.Store(0)

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Join(dverr.Io, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, errors.Join(dverr.Io, err)
	}
	if !info.IsDir() {
		return nil, dverr.NotADirectory
	}

	rootNode := store.NewNode(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{
			Name: filepath.Base(absRoot),
			Kind: fsmodel.Directory,
		},
	})

	// sem bounds the number of directories being read concurrently. A
	// worker that can't acquire a slot recurses in its own goroutine
	// instead of blocking on the semaphore, so a busy parent can never
	// deadlock waiting on a slot only its own (blocked) children could
	// free — see walkDir.
	sem := make(chan struct{}, s.workerCount)
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		s.walkDir(ctx, sem, &wg, rootNode, absRoot, &mu)
	}()
	wg.Wait()

	tree := store.NewTree(nil)
	tree.Replace(rootNode)

	aggregateSizes(rootNode)
	pruneSizeless(tree)
	sortDescending(tree.Root())

	if ctx.Err() != nil {
		return tree, dverr.Cancelled
	}
	return tree, nil
}

// walkDir scans one directory and dispatches each subdirectory to a
// worker pool task queue bounded by sem. When no slot is free, the
// subdirectory is walked synchronously in the current goroutine rather
// than blocking for one: every goroutine calling walkDir may itself be
// occupying a slot, so blocking here for a slot a sibling must free
// first is how a bushy, several-levels-deep tree deadlocks. Per-entry
// I/O failures are logged and skipped; only cancellation halts descent
// early.
func (s *Scanner) walkDir(ctx context.Context, sem chan struct{}, wg *sync.WaitGroup, parent *store.Node, dirPath string, mu *sync.Mutex) {
	if ctx.Err() != nil {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		s.logger.Warn("scan: read directory failed", "path", dirPath, "error", err)
		return
	}
	s.dirsScanned.Add(1)

	for _, de := range entries {
		if ctx.Err() != nil {
			return
		}

		name := de.Name()
		if name == "." || name == ".." {
			continue
		}
		if de.Type()&os.ModeSymlink != 0 {
			continue
		}

		childPath := filepath.Join(dirPath, name)

		if de.IsDir() {
			child := store.NewNode(&fsmodel.VizBlock{
				File: fsmodel.FileRecord{Name: name, Kind: fsmodel.Directory},
			})
			mu.Lock()
			parent.AppendNode(child)
			mu.Unlock()

			if ctx.Err() != nil {
				return
			}
			select {
			case sem <- struct{}{}:
				wg.Add(1)
				go func() {
					defer wg.Done()
					defer func() { <-sem }()
					s.walkDir(ctx, sem, wg, child, childPath, mu)
				}()
			default:
				s.walkDir(ctx, sem, wg, child, childPath, mu)
			}
			continue
		}

		if !de.Type().IsRegular() {
			continue
		}

		fi, err := de.Info()
		if err != nil {
			fi, err = os.Stat(childPath)
			if err != nil {
				s.logger.Warn("scan: stat failed", "path", childPath, "error", err)
				continue
			}
		}

		size := uint64(fi.Size())
		if size == 0 {
			continue
		}

		child := store.NewNode(&fsmodel.VizBlock{
			File: fsmodel.FileRecord{
				Name:      name,
				Extension: strings.TrimPrefix(filepath.Ext(name), "."),
				SizeBytes: size,
				Kind:      fsmodel.Regular,
			},
		})
		mu.Lock()
		parent.AppendNode(child)
		mu.Unlock()

		s.filesScanned.Add(1)
		s.bytesProcessed.Add(int64(size))
	}
}

// aggregateSizes adds every node's size to its parent, post-order, so a
// directory's size reflects its full subtree once the pass completes.
func aggregateSizes(root *store.Node) {
	store.PostOrder(root, func(n *store.Node) {
		if n == root {
			return
		}
		parent := n.Parent()
		if parent == nil {
			return
		}
		parentBlock := parent.Data.(*fsmodel.VizBlock)
		if parentBlock.File.Kind != fsmodel.Directory {
			return
		}
		childBlock := n.Data.(*fsmodel.VizBlock)
		parentBlock.File.SizeBytes += childBlock.File.SizeBytes
	})
}

// pruneSizeless removes every non-root node whose size is still zero
// after aggregation: directories left empty by skipped children, and
// zero-byte files that slipped through (defensive; walkDir already
// skips these at discovery time).
func pruneSizeless(tree *store.Tree) {
	root := tree.Root()
	var dead []*store.Node
	store.PostOrder(root, func(n *store.Node) {
		if n == root {
			return
		}
		if n.Data.(*fsmodel.VizBlock).File.SizeBytes == 0 {
			dead = append(dead, n)
		}
	})
	for _, n := range dead {
		n.Detach()
	}
}

// sortDescending sorts every node's children by size, largest first,
// post-order so a directory's children are sorted before its own
// position among its siblings is decided by its parent.
func sortDescending(root *store.Node) {
	store.PostOrder(root, func(n *store.Node) {
		n.SortChildrenBy(func(a, b *store.Node) bool {
			return a.Data.(*fsmodel.VizBlock).File.SizeBytes > b.Data.(*fsmodel.VizBlock).File.SizeBytes
		})
	})
}

// ComputeMetadata summarizes a completed scan by walking the finished tree.
func ComputeMetadata(tree *store.Tree) fsmodel.Metadata {
	var md fsmodel.Metadata
	root := tree.Root()
	store.PreOrder(root, func(n *store.Node) bool {
		block := n.Data.(*fsmodel.VizBlock)
		switch block.File.Kind {
		case fsmodel.Directory:
			if n != root {
				md.DirectoryCount++
			}
		case fsmodel.Regular:
			md.FileCount++
			md.TotalBytes += block.File.SizeBytes
		}
		return true
	})
	return md
}
