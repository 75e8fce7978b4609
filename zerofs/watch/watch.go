// Package watch implements a directory-polling WatchService:
// snapshot-and-diff change notifications, bounded per-key
// event queues with overflow reporting, and a sentinel-key close
// mechanism that unblocks every pending Take.
package watch

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/pathsvc"
)

// EventKind identifies the category of a change event.
type EventKind int

const (
	EntryCreate EventKind = iota
	EntryDelete
	EntryModify
	Overflow
)

// Event pairs a kind with the affected entry name; for Overflow, Name holds
// the number of dropped events in decimal.
type Event struct {
	Kind EventKind
	Name string
}

// defaultEventCapacity bounds a key's pending event queue.
const defaultEventCapacity = 256

type keyState int

const (
	stateReady keyState = iota
	stateSignalled
	stateInvalid
)

// Key represents one registered watch.
type Key struct {
	id       uuid.UUID
	service  *Service
	path     pathsvc.Path
	dir      *core.File
	kinds    map[EventKind]bool
	snapshot map[string]time.Time

	mu       sync.Mutex
	state    keyState
	events   []Event
	overflow int
}

// ID returns the key's process-unique identifier.
func (k *Key) ID() uuid.UUID { return k.id }

// PollEvents drains the key's event queue. If more events accrued than the
// bounded capacity since the last drain, a single synthetic Overflow event
// whose Name encodes the dropped count is appended.
func (k *Key) PollEvents() []Event {
	k.mu.Lock()
	defer k.mu.Unlock()
	out := k.events
	if k.overflow > 0 {
		out = append(out, Event{Kind: Overflow, Name: strconv.Itoa(k.overflow)})
	}
	k.events = nil
	k.overflow = 0
	return out
}

// Reset transitions SIGNALLED -> READY; if events accrued while signalled,
// the key is immediately re-enqueued. Returns
// IsValid().
func (k *Key) Reset() bool {
	k.mu.Lock()
	wasNonEmpty := len(k.events) > 0 || k.overflow > 0
	if k.state == stateSignalled {
		k.state = stateReady
	}
	valid := k.state != stateInvalid
	k.mu.Unlock()

	if valid && wasNonEmpty {
		k.service.enqueue(k)
	}
	return valid
}

// Cancel marks the key invalid; the next poll removes its snapshot.
func (k *Key) Cancel() {
	k.mu.Lock()
	k.state = stateInvalid
	k.mu.Unlock()
}

// IsValid reports whether the key has not been cancelled.
func (k *Key) IsValid() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.state != stateInvalid
}

func (k *Key) post(evt Event) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if len(k.events) >= defaultEventCapacity {
		k.overflow++
		return
	}
	k.events = append(k.events, evt)
}

// signal transitions READY -> SIGNALLED, returning true exactly on that
// transition.
func (k *Key) signal() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	if k.state == stateReady {
		k.state = stateSignalled
		return true
	}
	return false
}

// Snapshotter captures the current Name->lastModifiedTime map of a watched
// directory. It is satisfied by view.FileSystemView
// via a thin adapter to avoid watch depending on view (which itself depends
// on store/tree — watch only needs directory contents).
type Snapshotter interface {
	Snapshot(dir *core.File) (map[string]time.Time, error)
}

// Service is the polling watch service. A single
// goroutine polls every registered key at the configured interval under
// the service's mutex (its "intrinsic monitor").
type Service struct {
	mu        sync.Mutex
	snapshots Snapshotter
	keys      map[uuid.UUID]*Key
	queue     chan *Key
	poison    *Key
	closed    bool
	interval  time.Duration
	stop      chan struct{}
	wg        sync.WaitGroup
}

// New constructs a Service polling at the given interval and starts its
// background poller.
func New(snapshots Snapshotter, interval time.Duration) *Service {
	s := &Service{
		snapshots: snapshots,
		keys:      make(map[uuid.UUID]*Key),
		queue:     make(chan *Key, 4096),
		interval:  interval,
		stop:      make(chan struct{}),
	}
	s.poison = &Key{id: uuid.New()}
	s.wg.Add(1)
	go s.pollLoop()
	return s
}

// Register registers dir for watching under the given event-kind subset.
func (s *Service) Register(path pathsvc.Path, dir *core.File, kinds ...EventKind) (*Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, zerr.New("register", path.String(), zerr.KindClosedWatchService)
	}

	kindSet := make(map[EventKind]bool, len(kinds))
	for _, k := range kinds {
		kindSet[k] = true
	}

	snap, err := s.snapshots.Snapshot(dir)
	if err != nil {
		return nil, err
	}

	key := &Key{
		id:       uuid.New(),
		service:  s,
		path:     path,
		dir:      dir,
		kinds:    kindSet,
		snapshot: snap,
	}
	s.keys[key.id] = key
	return key, nil
}

func (s *Service) enqueue(k *Key) {
	select {
	case s.queue <- k:
	default:
		// Queue is saturated; the key will be picked up on the next poll
		// cycle's re-signal regardless, so dropping the enqueue here cannot
		// lose events (only delay delivery of the "key is ready" wakeup).
	}
}

// pollLoop runs the periodic snapshot-diff.
func (s *Service) pollLoop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.pollOnce()
		}
	}
}

func (s *Service) pollOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]*Key, 0, len(s.keys))
	for _, k := range s.keys {
		keys = append(keys, k)
	}

	for _, k := range keys {
		if !k.IsValid() {
			delete(s.keys, k.id)
			continue
		}

		newSnap, err := s.snapshots.Snapshot(k.dir)
		if err != nil {
			k.Cancel()
			delete(s.keys, k.id)
			continue
		}

		k.mu.Lock()
		oldSnap := k.snapshot
		k.snapshot = newSnap
		k.mu.Unlock()

		changed := diffAndPost(k, oldSnap, newSnap)
		if changed && k.signal() {
			s.enqueue(k)
		}
	}
}

// diffAndPost computes the create/delete/modify diff between two snapshots
// and posts subscribed events to k, returning whether anything was posted.
func diffAndPost(k *Key, oldSnap, newSnap map[string]time.Time) bool {
	posted := false
	if k.kinds[EntryCreate] {
		for name := range newSnap {
			if _, ok := oldSnap[name]; !ok {
				k.post(Event{Kind: EntryCreate, Name: name})
				posted = true
			}
		}
	}
	if k.kinds[EntryDelete] {
		for name := range oldSnap {
			if _, ok := newSnap[name]; !ok {
				k.post(Event{Kind: EntryDelete, Name: name})
				posted = true
			}
		}
	}
	if k.kinds[EntryModify] {
		for name, newTime := range newSnap {
			if oldTime, ok := oldSnap[name]; ok && !oldTime.Equal(newTime) {
				k.post(Event{Kind: EntryModify, Name: name})
				posted = true
			}
		}
	}
	return posted
}

// Take blocks until a signalled key is available or the service is closed,
// in which case it returns ClosedWatchService.
func (s *Service) Take() (*Key, error) {
	k := <-s.queue
	if k == s.poison {
		s.queue <- s.poison // let other blocked takers observe it too
		return nil, zerr.New("take", "", zerr.KindClosedWatchService)
	}
	return k, nil
}

// Poll is like Take but honours a timeout.
func (s *Service) Poll(timeout time.Duration) (*Key, error) {
	select {
	case k := <-s.queue:
		if k == s.poison {
			s.queue <- s.poison
			return nil, zerr.New("poll", "", zerr.KindClosedWatchService)
		}
		return k, nil
	case <-time.After(timeout):
		return nil, nil
	}
}

// Close stops polling, drains the key queue, and injects the poison key so
// every blocked Take/Poll raises ClosedWatchService. Idempotent.
func (s *Service) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	close(s.stop)
	s.wg.Wait()

	for {
		select {
		case <-s.queue:
		default:
			s.queue <- s.poison
			return nil
		}
	}
}
