// Package state implements FileSystemState, the open/closed lifecycle and
// resource registry: closing the file system closes every
// registered resource, and registration races with close are resolved by
// a two-phase protocol (bump a "registering" counter before checking
// closed, decrement after) so a resource can never slip in after Close
// has started draining the registry nor leak because it resolved "open"
// a moment before Close flipped the flag.
package state

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	zerr "github.com/zerofs-dev/zerofs/errors"
)

// Closeable is any resource FileSystemState tracks: an open channel,
// stream, or watch service.
type Closeable interface {
	Close() error
}

// TimeSource produces the current time, overridable for tests and for
// a configured file time source.
type TimeSource func() time.Time

// FileSystemState tracks whether a file system is open and owns the set of
// resources that must be closed alongside it.
type FileSystemState struct {
	mu         sync.Mutex
	open       bool
	resources  map[Closeable]struct{}
	onClose    func()
	now        TimeSource
	registerer int32 // count of in-flight Register calls racing Close
}

// New constructs an open FileSystemState. onClose, if non-nil, runs after
// every registered resource has been closed.
func New(now TimeSource, onClose func()) *FileSystemState {
	if now == nil {
		now = time.Now
	}
	return &FileSystemState{
		open:      true,
		resources: make(map[Closeable]struct{}),
		onClose:   onClose,
		now:       now,
	}
}

// IsOpen reports whether the file system has not yet been closed.
func (s *FileSystemState) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Now returns the current time from the configured source.
func (s *FileSystemState) Now() time.Time { return s.now() }

// Register adds r to the resource set, failing with ClosedFileSystem if the
// file system is already closed. The registering counter is bumped before
// the closed check and decremented after, so a call that starts before
// Close begins draining the registry is either admitted into the set or
// observes closed==true — it can never do neither.
func (s *FileSystemState) Register(r Closeable) error {
	atomic.AddInt32(&s.registerer, 1)
	defer atomic.AddInt32(&s.registerer, -1)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return zerr.New("register", "", zerr.KindClosedFileSystem)
	}
	s.resources[r] = struct{}{}
	return nil
}

// Unregister removes r from the resource set, e.g. when it closes itself
// independently of a file-system-wide Close.
func (s *FileSystemState) Unregister(r Closeable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.resources, r)
}

// Close flips the file system to closed, waits for any Register call that
// is already in flight to finish observing the open state, then closes
// every resource that was (or raced its way into being) registered.
// Idempotent.
func (s *FileSystemState) Close() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return nil
	}
	s.open = false
	s.mu.Unlock()

	// Drain any Register call that read open==true a moment before the
	// flip above but has not yet inserted into the map.
	for atomic.LoadInt32(&s.registerer) > 0 {
		// registrations are in-memory map inserts, not blocking I/O, so this
		// window is always extremely short; yield rather than spin a full
		// OS thread while draining it.
		runtime.Gosched()
	}

	s.mu.Lock()
	resources := make([]Closeable, 0, len(s.resources))
	for r := range s.resources {
		resources = append(resources, r)
	}
	s.resources = make(map[Closeable]struct{})
	s.mu.Unlock()

	var firstErr error
	for _, r := range resources {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.onClose != nil {
		s.onClose()
	}
	return firstErr
}
