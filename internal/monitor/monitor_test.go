package monitor

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tsevere/dviz/internal/fsmodel"
)

type collector struct {
	mu     sync.Mutex
	events []fsmodel.FileEvent
}

func (c *collector) record(ev fsmodel.FileEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, ev)
}

func (c *collector) snapshot() []fsmodel.FileEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]fsmodel.FileEvent, len(c.events))
	copy(out, c.events)
	return out
}

func (c *collector) waitFor(t *testing.T, pred func(fsmodel.FileEvent) bool, timeout time.Duration) fsmodel.FileEvent {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		for _, ev := range c.snapshot() {
			if pred(ev) {
				return ev
			}
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for matching event, saw %v", c.snapshot())
	return fsmodel.FileEvent{}
}

func TestMonitorReportsFileModification(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "watched.txt")
	if err := os.WriteFile(target, []byte("one"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	c := &collector{}
	m := New(nil)
	if err := m.Start(dir, c.record); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer m.Stop()

	if err := os.WriteFile(target, []byte("two"), 0o644); err != nil {
		t.Fatalf("modify file: %v", err)
	}

	ev := c.waitFor(t, func(ev fsmodel.FileEvent) bool {
		return ev.Kind == fsmodel.Touched && ev.Path == target
	}, 2*time.Second)
	if ev.Path != target {
		t.Fatalf("expected event path %q, got %q", target, ev.Path)
	}
}

func TestMonitorReportsDeletion(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "gone.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	c := &collector{}
	m := New(nil)
	if err := m.Start(dir, c.record); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer m.Stop()

	if err := os.Remove(target); err != nil {
		t.Fatalf("remove file: %v", err)
	}

	c.waitFor(t, func(ev fsmodel.FileEvent) bool {
		return ev.Kind == fsmodel.Deleted && ev.Path == target
	}, 2*time.Second)
}

func TestMonitorRegistersNewSubdirectory(t *testing.T) {
	dir := t.TempDir()

	c := &collector{}
	m := New(nil)
	if err := m.Start(dir, c.record); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer m.Stop()

	sub := filepath.Join(dir, "newdir")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	c.waitFor(t, func(ev fsmodel.FileEvent) bool {
		return ev.Kind == fsmodel.Created && ev.Path == sub
	}, 2*time.Second)

	nested := filepath.Join(sub, "inner.txt")
	if err := os.WriteFile(nested, []byte("x"), 0o644); err != nil {
		t.Fatalf("write nested file: %v", err)
	}
	c.waitFor(t, func(ev fsmodel.FileEvent) bool {
		return ev.Path == nested
	}, 2*time.Second)
}

func TestMonitorStopIsIdempotentAndJoinsGoroutine(t *testing.T) {
	dir := t.TempDir()
	m := New(nil)
	if err := m.Start(dir, func(fsmodel.FileEvent) {}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if !m.IsActive() {
		t.Fatalf("expected monitor to be active after Start")
	}

	m.Stop()
	if m.IsActive() {
		t.Fatalf("expected monitor to be inactive after Stop")
	}
	m.Stop() // must not block or panic
}
