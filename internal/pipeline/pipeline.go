// Package pipeline implements the model-update pipeline described by
// the component design: three MPSC-style queues sitting between the
// filesystem monitor and the rest of the system, and refresh_treemap,
// which drains the model queue and mutates the tree in place.
//
// raw_events is written only by the monitor and read only by the
// pipeline goroutine; pending_visual is read by the UI tick;
// pending_model is read by RefreshTreemap. None of the three queues
// recompute layout geometry — that is a separate, explicit step the
// caller runs after RefreshTreemap, per the no-incremental-relayout
// contract.
package pipeline

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tsevere/dviz/internal/fsmodel"
	"github.com/tsevere/dviz/internal/store"
	"github.com/tsevere/dviz/internal/treepath"
)

// Queue is an unbounded MPSC-style thread-safe deque of FileEvents.
// Push and TryPop never block. WaitPop blocks until a value is pushed
// or the queue is abandoned. Abandon wakes every blocked waiter
// without delivering a value, used to unblock shutdown.
type Queue struct {
	mu        sync.Mutex
	cond      *sync.Cond
	items     []fsmodel.FileEvent
	abandoned bool
}

// NewQueue constructs an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends ev to the tail of the queue and wakes one waiter.
func (q *Queue) Push(ev fsmodel.FileEvent) {
	q.mu.Lock()
	q.items = append(q.items, ev)
	q.mu.Unlock()
	q.cond.Signal()
}

// TryPop removes and returns the head of the queue without blocking.
func (q *Queue) TryPop() (fsmodel.FileEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return fsmodel.FileEvent{}, false
	}
	ev := q.items[0]
	q.items = q.items[1:]
	return ev, true
}

// WaitPop blocks until an item is available or the queue is
// abandoned. ok is false only in the abandoned case.
func (q *Queue) WaitPop() (ev fsmodel.FileEvent, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.abandoned {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return fsmodel.FileEvent{}, false
	}
	ev = q.items[0]
	q.items = q.items[1:]
	return ev, true
}

// Abandon wakes every blocked waiter without delivering a value. Used
// to unblock a WaitPop loop during shutdown. Idempotent.
func (q *Queue) Abandon() {
	q.mu.Lock()
	q.abandoned = true
	q.mu.Unlock()
	q.cond.Broadcast()
}

// Pipeline drains raw filesystem events from the monitor and fans each
// one out, in arrival order, to PendingVisual (for the renderer's
// paint hints) and PendingModel (for RefreshTreemap).
type Pipeline struct {
	logger *slog.Logger

	RawEvents     *Queue
	PendingVisual *Queue
	PendingModel  *Queue

	wg sync.WaitGroup
}

// New constructs a Pipeline with its three queues ready to use. A nil
// logger defaults to slog.Default().
func New(logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		logger:        logger,
		RawEvents:     NewQueue(),
		PendingVisual: NewQueue(),
		PendingModel:  NewQueue(),
	}
}

// Start launches the pipeline goroutine: wait_pop on raw_events, log,
// push a copy to both downstream queues, repeat. The loop ends when
// shouldKeep reports false before a wait, or when RawEvents has been
// abandoned and holds no more items.
func (p *Pipeline) Start(shouldKeep func() bool) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for shouldKeep() {
			ev, ok := p.RawEvents.WaitPop()
			if !ok {
				return
			}
			p.logger.Info("pipeline: event", "kind", ev.Kind.String(), "path", ev.Path)
			p.PendingVisual.Push(ev)
			p.PendingModel.Push(ev)
		}
	}()
}

// Stop abandons RawEvents, waking the pipeline goroutine, and joins it.
func (p *Pipeline) Stop() {
	p.RawEvents.Abandon()
	p.wg.Wait()
}

// RefreshTreemap drains PendingModel in arrival order and applies each
// event to tree. It never recomputes block geometry; callers that want
// fresh layout must re-run the layouter afterward. rootPath is the
// absolute path of tree's root, used to resolve event paths against
// tree nodes.
func RefreshTreemap(tree *store.Tree, rootPath string, logger *slog.Logger, pendingModel *Queue) {
	if logger == nil {
		logger = slog.Default()
	}
	for {
		ev, ok := pendingModel.TryPop()
		if !ok {
			return
		}
		applyEvent(tree, rootPath, logger, ev)
	}
}

func applyEvent(tree *store.Tree, rootPath string, logger *slog.Logger, ev fsmodel.FileEvent) {
	switch ev.Kind {
	case fsmodel.Created:
		applyCreated(tree, rootPath, logger, ev)
	case fsmodel.Deleted:
		applyDeleted(tree, rootPath, logger, ev)
	case fsmodel.Touched:
		applyTouched(tree, rootPath, logger, ev)
	case fsmodel.Renamed:
		// Deliberately a no-op: see DESIGN.md's Open Question decision
		// on rename semantics. Logged so the event is not silently lost.
		logger.Info("pipeline: rename ignored", "path", ev.Path)
	default:
		logger.Warn("pipeline: unknown event kind", "kind", ev.Kind, "path", ev.Path)
	}
}

func applyCreated(tree *store.Tree, rootPath string, logger *slog.Logger, ev fsmodel.FileEvent) {
	parentPath := filepath.Dir(ev.Path)
	parent := treepath.Find(rootPath, tree.Root(), parentPath)
	if parent == nil {
		logger.Warn("pipeline: created event has no known parent", "path", ev.Path)
		return
	}
	name := filepath.Base(ev.Path)
	parent.AppendChild(&fsmodel.VizBlock{
		File: fsmodel.FileRecord{
			Name:      name,
			Extension: strings.TrimPrefix(filepath.Ext(name), "."),
			SizeBytes: ev.SizeBytes,
			Kind:      fsmodel.Regular,
		},
	})
}

func applyDeleted(tree *store.Tree, rootPath string, logger *slog.Logger, ev fsmodel.FileEvent) {
	n := treepath.Find(rootPath, tree.Root(), ev.Path)
	if n == nil || n == tree.Root() {
		logger.Warn("pipeline: deleted event targets unknown node", "path", ev.Path)
		return
	}
	n.Detach()
}

func applyTouched(tree *store.Tree, rootPath string, logger *slog.Logger, ev fsmodel.FileEvent) {
	n := treepath.Find(rootPath, tree.Root(), ev.Path)
	if n == nil {
		logger.Warn("pipeline: touched event targets unknown node", "path", ev.Path)
		return
	}
	data := n.Data.(*fsmodel.VizBlock)
	if data.File.Kind != fsmodel.Regular {
		// Directory touch events are deliberately ignored: see
		// DESIGN.md's Open Question decision on directory Touched.
		return
	}
	data.File.SizeBytes = ev.SizeBytes
}
