package pipeline

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
)

func newTestTree() (*store.Tree, *store.Node) {
	root := store.NewNode(&fsmodel.VizBlock{File: fsmodel.FileRecord{Name: "a", Kind: fsmodel.Directory, SizeBytes: 10}})
	tree := store.NewTree(nil)
	tree.Replace(root)
	b := root.AppendChild(&fsmodel.VizBlock{File: fsmodel.FileRecord{Name: "b", Kind: fsmodel.Regular, SizeBytes: 10}})
	return tree, b
}

func TestQueueOrdering(t *testing.T) {
	q := NewQueue()
	q.Push(fsmodel.FileEvent{ID: 1})
	q.Push(fsmodel.FileEvent{ID: 2})

	ev, ok := q.WaitPop()
	if !ok || ev.ID != 1 {
		t.Fatalf("expected first event id 1, got %+v ok=%v", ev, ok)
	}
	ev, ok = q.WaitPop()
	if !ok || ev.ID != 2 {
		t.Fatalf("expected second event id 2, got %+v ok=%v", ev, ok)
	}
}

func TestQueueAbandonWakesWaiter(t *testing.T) {
	q := NewQueue()
	done := make(chan bool, 1)
	go func() {
		_, ok := q.WaitPop()
		done <- ok
	}()

	time.Sleep(20 * time.Millisecond)
	q.Abandon()

	select {
	case ok := <-done:
		if ok {
			t.Fatalf("expected abandoned WaitPop to report ok=false")
		}
	case <-time.After(time.Second):
		t.Fatalf("WaitPop did not wake after Abandon")
	}

	// A second Abandon must not panic or block.
	q.Abandon()
}

func TestPipelineFansOutInOrder(t *testing.T) {
	p := New(nil)
	var running atomic.Bool
	running.Store(true)
	p.Start(running.Load)

	p.RawEvents.Push(fsmodel.FileEvent{ID: 1, Path: "/a/b", Kind: fsmodel.Created})
	p.RawEvents.Push(fsmodel.FileEvent{ID: 2, Path: "/a/b", Kind: fsmodel.Touched, SizeBytes: 42})
	p.RawEvents.Push(fsmodel.FileEvent{ID: 3, Path: "/a/b", Kind: fsmodel.Deleted})

	for _, q := range []*Queue{p.PendingVisual, p.PendingModel} {
		for _, wantID := range []uint64{1, 2, 3} {
			ev := waitForPop(t, q)
			if ev.ID != wantID {
				t.Fatalf("expected event id %d, got %d", wantID, ev.ID)
			}
		}
	}

	running.Store(false)
	p.Stop()
}

func waitForPop(t *testing.T, q *Queue) fsmodel.FileEvent {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if ev, ok := q.TryPop(); ok {
			return ev
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for queue item")
	return fsmodel.FileEvent{}
}

// TestRefreshTreemapScenario exercises spec scenario S4: Created,
// Touched, Deleted on the same path leaves the node absent and the
// parent's own size untouched (RefreshTreemap never re-aggregates
// directory sizes).
func TestRefreshTreemapScenario(t *testing.T) {
	tree, _ := newTestTree()
	root := tree.Root()
	beforeSize := root.Data.(*fsmodel.VizBlock).File.SizeBytes

	q := NewQueue()
	q.Push(fsmodel.FileEvent{Path: "/a/c", Kind: fsmodel.Created, SizeBytes: 5})
	q.Push(fsmodel.FileEvent{Path: "/a/c", Kind: fsmodel.Touched, SizeBytes: 42})
	q.Push(fsmodel.FileEvent{Path: "/a/c", Kind: fsmodel.Deleted})

	RefreshTreemap(tree, "/a", nil, q)

	if found := findByName(root, "c"); found != nil {
		t.Fatalf("expected node c to be absent after delete, found %+v", found.Data)
	}
	if root.Data.(*fsmodel.VizBlock).File.SizeBytes != beforeSize {
		t.Fatalf("expected root size unchanged by RefreshTreemap, got %d want %d",
			root.Data.(*fsmodel.VizBlock).File.SizeBytes, beforeSize)
	}
}

func TestRefreshTreemapRenameIsNoOp(t *testing.T) {
	tree, b := newTestTree()
	before := b.Data.(*fsmodel.VizBlock).File.Name

	q := NewQueue()
	q.Push(fsmodel.FileEvent{Path: "/a/b", Kind: fsmodel.Renamed})
	RefreshTreemap(tree, "/a", nil, q)

	if b.Data.(*fsmodel.VizBlock).File.Name != before {
		t.Fatalf("rename event must not mutate the tree")
	}
}

func findByName(n *store.Node, name string) *store.Node {
	var found *store.Node
	store.PreOrder(n, func(c *store.Node) bool {
		if c.Data.(*fsmodel.VizBlock).File.Name == name {
			found = c
			return false
		}
		return true
	})
	return found
}
