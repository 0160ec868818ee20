package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
}

func blockOf(n *store.Node) *fsmodel.VizBlock {
	return n.Data.(*fsmodel.VizBlock)
}

func findChild(n *store.Node, name string) *store.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if blockOf(c).File.Name == name {
			return c
		}
	}
	return nil
}

func TestScanAggregatesSizesAndSorts(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "small.txt"), 10)
	writeFile(t, filepath.Join(root, "big.txt"), 1000)
	writeFile(t, filepath.Join(root, "sub", "nested.txt"), 500)

	s := NewScanner(Options{WorkerCount: 2})
	tree, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	rootNode := tree.Root()
	wantTotal := uint64(10 + 1000 + 500)
	if got := blockOf(rootNode).File.SizeBytes; got != wantTotal {
		t.Fatalf("expected aggregated root size %d, got %d", wantTotal, got)
	}

	// Descending sort: big.txt (1000) first, then sub/ (500), then small.txt (10).
	first := rootNode.FirstChild()
	if blockOf(first).File.Name != "big.txt" {
		t.Fatalf("expected big.txt first, got %v", blockOf(first).File.Name)
	}
	second := first.NextSibling()
	if blockOf(second).File.Name != "sub" {
		t.Fatalf("expected sub second, got %v", blockOf(second).File.Name)
	}
	third := second.NextSibling()
	if blockOf(third).File.Name != "small.txt" {
		t.Fatalf("expected small.txt third, got %v", blockOf(third).File.Name)
	}

	sub := findChild(rootNode, "sub")
	if sub == nil {
		t.Fatalf("expected sub directory present")
	}
	if blockOf(sub).File.SizeBytes != 500 {
		t.Fatalf("expected sub size 500, got %d", blockOf(sub).File.SizeBytes)
	}
}

func TestScanPrunesEmptyDirsAndZeroByteFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "real.txt"), 42)
	if err := os.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(root, "zero.txt"), 0)

	s := NewScanner(Options{})
	tree, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if findChild(tree.Root(), "empty") != nil {
		t.Fatalf("expected empty directory to be pruned")
	}
	if findChild(tree.Root(), "zero.txt") != nil {
		t.Fatalf("expected zero-byte file to be pruned")
	}
	if findChild(tree.Root(), "real.txt") == nil {
		t.Fatalf("expected real.txt to survive")
	}
}

func TestScanSkipsSymlinks(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "target.txt")
	writeFile(t, target, 100)
	link := filepath.Join(root, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unsupported on this platform: %v", err)
	}

	s := NewScanner(Options{})
	tree, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if findChild(tree.Root(), "link.txt") != nil {
		t.Fatalf("expected symlink to be skipped")
	}
	if findChild(tree.Root(), "target.txt") == nil {
		t.Fatalf("expected regular target file to survive")
	}
}

func TestScanRejectsNonDirectoryRoot(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "not_a_dir.txt")
	writeFile(t, file, 1)

	s := NewScanner(Options{})
	_, err := s.Scan(context.Background(), file)
	if err == nil {
		t.Fatalf("expected an error for a non-directory root")
	}
}

func TestScanCancellationStillPostProcesses(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewScanner(Options{})
	tree, err := s.Scan(ctx, root)
	if err == nil {
		t.Fatalf("expected cancellation to be surfaced")
	}
	if tree == nil {
		t.Fatalf("expected a partial tree even on cancellation")
	}
}

// TestScanBushyDeepTreeDoesNotDeadlock reproduces the shape that wedges
// a worker pool built on a blocking-acquire semaphore: a worker count
// of 2 with more than two sibling subdirectories, each itself
// containing a further subdirectory. A goroutine each occupying a slot
// while blocked trying to acquire one for its own child is exactly the
// deadlock a non-blocking try-or-recurse dispatch must avoid.
func TestScanBushyDeepTreeDoesNotDeadlock(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 8; i++ {
		dir := filepath.Join(root, fmt.Sprintf("d%d", i))
		writeFile(t, filepath.Join(dir, "nested", "leaf.txt"), 10)
	}

	s := NewScanner(Options{WorkerCount: 2})

	done := make(chan struct{})
	var tree *store.Tree
	var scanErr error
	go func() {
		tree, scanErr = s.Scan(context.Background(), root)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("scan did not complete within 10s; bounded worker pool likely deadlocked")
	}

	if scanErr != nil {
		t.Fatalf("scan failed: %v", scanErr)
	}
	if got := blockOf(tree.Root()).File.SizeBytes; got != 80 {
		t.Fatalf("expected aggregated root size 80, got %d", got)
	}
}

func TestComputeMetadata(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), 10)
	writeFile(t, filepath.Join(root, "sub", "b.txt"), 20)

	s := NewScanner(Options{})
	tree, err := s.Scan(context.Background(), root)
	if err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	md := ComputeMetadata(tree)
	if md.FileCount != 2 {
		t.Fatalf("expected 2 files, got %d", md.FileCount)
	}
	if md.DirectoryCount != 1 {
		t.Fatalf("expected 1 directory, got %d", md.DirectoryCount)
	}
	if md.TotalBytes != 30 {
		t.Fatalf("expected 30 total bytes, got %d", md.TotalBytes)
	}
}
