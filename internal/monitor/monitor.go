// Package monitor implements the filesystem watch described by the
// component design: a Linux inotify/epoll backend that recursively
// watches a directory subtree and emits normalized fsmodel.FileEvent
// values to a caller-supplied callback, entirely off the caller's
// thread.
package monitor

import (
	"encoding/binary"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/tsevere/dviz/internal/dverr"
	"github.com/tsevere/dviz/internal/fsmodel"
)

// watchMask is registered on every directory: file content changes,
// creation (so new directories can be registered as they appear),
// removal, and the watch's own removal.
const watchMask = unix.IN_MODIFY | unix.IN_CREATE | unix.IN_DELETE | unix.IN_DELETE_SELF | unix.IN_IGNORED

const (
	maxEpollEvents = 32
	eventBufSize   = 64 * (unix.SizeofInotifyEvent + 256)
)

// Monitor watches a directory subtree recursively and survives the
// entire visualization lifetime. Start and Stop may each be called
// exactly once over a Monitor's life; Stop is idempotent.
type Monitor struct {
	logger *slog.Logger

	active    atomic.Bool
	inotifyFD int
	epollFD   int
	stopFD    int
	nextID    atomic.Uint64

	mu          sync.Mutex
	watchToPath map[int32]string

	wg sync.WaitGroup
}

// New constructs a Monitor. A nil logger defaults to slog.Default().
func New(logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{logger: logger, watchToPath: make(map[int32]string)}
}

// IsActive reports whether a watch is currently running.
func (m *Monitor) IsActive() bool {
	return m.active.Load()
}

// Start registers watches on root and every directory beneath it, then
// begins delivering events to onEvent from a background goroutine.
// onEvent must not block for long; it is called from the monitor's own
// goroutine and a slow handler delays delivery of subsequent events.
func (m *Monitor) Start(root string, onEvent func(fsmodel.FileEvent)) error {
	inFD, err := unix.InotifyInit1(unix.IN_NONBLOCK)
	if err != nil {
		return errors.Join(dverr.WatchFailed, err)
	}

	epFD, err := unix.EpollCreate1(0)
	if err != nil {
		unix.Close(inFD)
		return errors.Join(dverr.WatchFailed, err)
	}

	if err := unix.EpollCtl(epFD, unix.EPOLL_CTL_ADD, inFD, &unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLET,
		Fd:     int32(inFD),
	}); err != nil {
		unix.Close(inFD)
		unix.Close(epFD)
		return errors.Join(dverr.WatchFailed, err)
	}

	stopFD, err := unix.Eventfd(0, unix.EFD_NONBLOCK)
	if err != nil {
		unix.Close(inFD)
		unix.Close(epFD)
		return errors.Join(dverr.WatchFailed, err)
	}

	if err := unix.EpollCtl(epFD, unix.EPOLL_CTL_ADD, stopFD, &unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLET,
		Fd:     int32(stopFD),
	}); err != nil {
		unix.Close(inFD)
		unix.Close(epFD)
		unix.Close(stopFD)
		return errors.Join(dverr.WatchFailed, err)
	}

	m.inotifyFD = inFD
	m.epollFD = epFD
	m.stopFD = stopFD

	if err := m.registerRecursively(root); err != nil {
		unix.Close(inFD)
		unix.Close(epFD)
		unix.Close(stopFD)
		return err
	}

	m.active.Store(true)
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		m.monitorLoop(onEvent)
	}()

	return nil
}

// Stop halts the monitor and joins its background goroutine. Calling
// Stop on an inactive or never-started Monitor is a no-op.
func (m *Monitor) Stop() {
	if !m.active.CompareAndSwap(true, false) {
		return
	}

	var payload [8]byte
	binary.LittleEndian.PutUint64(payload[:], 1)
	unix.Write(m.stopFD, payload[:])

	m.wg.Wait()

	unix.EpollCtl(m.epollFD, unix.EPOLL_CTL_DEL, m.inotifyFD, nil)
	unix.Close(m.inotifyFD)
	unix.Close(m.epollFD)
	unix.Close(m.stopFD)
}

func (m *Monitor) registerRecursively(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.logger.Warn("monitor: walk failed", "path", path, "error", err)
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		m.registerWatcher(path)
		return nil
	})
}

// statSize returns the current size of path, or 0 if it can no longer
// be stat'd (already deleted, a directory, or otherwise inaccessible).
// Reported sizes are best-effort: the pipeline stores the reported
// size, 0 included, rather than failing the event.
func statSize(path string) uint64 {
	info, err := os.Lstat(path)
	if err != nil || info.IsDir() {
		return 0
	}
	return uint64(info.Size())
}

func (m *Monitor) registerWatcher(path string) {
	wd, err := unix.InotifyAddWatch(m.inotifyFD, path, watchMask)
	if err != nil {
		m.logger.Warn("monitor: failed to register watch", "path", path, "error", err)
		return
	}

	m.mu.Lock()
	m.watchToPath[int32(wd)] = path
	m.mu.Unlock()
}

func (m *Monitor) monitorLoop(onEvent func(fsmodel.FileEvent)) {
	events := make([]unix.EpollEvent, maxEpollEvents)
	buf := make([]byte, eventBufSize)

	for m.active.Load() {
		n, err := unix.EpollWait(m.epollFD, events, -1)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return
		}

		stopped := false
		for i := 0; i < n; i++ {
			if int(events[i].Fd) == m.stopFD {
				stopped = true
				break
			}

			// The inotify fd is registered edge-triggered (EPOLLET):
			// epoll only wakes us again on the next arrival, so a
			// single read per wakeup can strand events still sitting
			// in the kernel buffer. Drain it until EAGAIN.
			for {
				read, err := unix.Read(m.inotifyFD, buf)
				if err != nil || read <= 0 {
					break
				}
				m.processEvents(buf[:read], onEvent)
			}
		}
		if stopped {
			return
		}
	}
}

// processEvents walks the raw inotify read buffer, which packs a
// variable-length run of inotify_event records back to back.
func (m *Monitor) processEvents(buf []byte, onEvent func(fsmodel.FileEvent)) {
	offset := 0
	for offset+unix.SizeofInotifyEvent <= len(buf) {
		raw := (*unix.InotifyEvent)(unsafe.Pointer(&buf[offset]))
		nameLen := int(raw.Len)
		nameStart := offset + unix.SizeofInotifyEvent

		var name string
		if nameLen > 0 && nameStart+nameLen <= len(buf) {
			name = strings.TrimRight(string(buf[nameStart:nameStart+nameLen]), "\x00")
		}
		offset = nameStart + nameLen

		if raw.Mask&unix.IN_IGNORED != 0 {
			m.mu.Lock()
			delete(m.watchToPath, raw.Wd)
			m.mu.Unlock()
			continue
		}

		m.mu.Lock()
		dir, ok := m.watchToPath[raw.Wd]
		m.mu.Unlock()
		if !ok {
			m.logger.Warn("monitor: event for unregistered watch descriptor", "wd", raw.Wd)
			continue
		}

		path := dir
		if name != "" {
			path = filepath.Join(dir, name)
		}

		switch {
		case raw.Mask&unix.IN_CREATE != 0:
			if raw.Mask&unix.IN_ISDIR != 0 {
				m.registerWatcher(path)
			}
			onEvent(fsmodel.FileEvent{Path: path, Kind: fsmodel.Created, SizeBytes: statSize(path), ID: m.nextID.Add(1)})
		case raw.Mask&unix.IN_DELETE != 0 || raw.Mask&unix.IN_DELETE_SELF != 0:
			onEvent(fsmodel.FileEvent{Path: path, Kind: fsmodel.Deleted, ID: m.nextID.Add(1)})
		case raw.Mask&unix.IN_MODIFY != 0:
			onEvent(fsmodel.FileEvent{Path: path, Kind: fsmodel.Touched, SizeBytes: statSize(path), ID: m.nextID.Add(1)})
		}
	}
}
