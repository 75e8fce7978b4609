// Package store implements FileStore, the single container holding the
// file tree, the heap disk, the attribute service, and the file factory,
// plus the file-store-wide reader/writer lock
// that protects the entire tree.
package store

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/zerofs-dev/zerofs/attr"
	"github.com/zerofs-dev/zerofs/core"
	"github.com/zerofs-dev/zerofs/disk"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/tree"
)

// TimeSource produces the current time as used for file timestamps.
type TimeSource func() time.Time

// FileStore combines the file tree, the heap disk, the attribute service,
// and monotonic file-id allocation behind the single tree-wide
// reader/writer lock.
type FileStore struct {
	TreeLock sync.RWMutex

	tree       *tree.FileTree
	disk       *disk.HeapDisk
	attributes *attr.Service
	pathSvc    *pathsvc.Service
	now        TimeSource
	instanceID uuid.UUID

	nextID int64
}

// New constructs a FileStore. If now is nil, time.Now is used.
func New(pathSvc *pathsvc.Service, d *disk.HeapDisk, attrs *attr.Service, now TimeSource) *FileStore {
	if now == nil {
		now = time.Now
	}
	return &FileStore{
		tree:       tree.New(),
		disk:       d,
		attributes: attrs,
		pathSvc:    pathSvc,
		now:        now,
		instanceID: uuid.New(),
	}
}

// InstanceID returns the process-unique id for this file-system instance,
// used as the URI host component and by fsreg.
func (s *FileStore) InstanceID() uuid.UUID { return s.instanceID }

// Tree returns the underlying FileTree.
func (s *FileStore) Tree() *tree.FileTree { return s.tree }

// Disk returns the underlying HeapDisk.
func (s *FileStore) Disk() *disk.HeapDisk { return s.disk }

// Attributes returns the attribute service.
func (s *FileStore) Attributes() *attr.Service { return s.attributes }

// PathService returns the owning path service.
func (s *FileStore) PathService() *pathsvc.Service { return s.pathSvc }

// Now returns the current time from the configured time source.
func (s *FileStore) Now() time.Time { return s.now() }

// allocateID returns the next id from this store's monotonic counter; ids
// are unique within one FileStore.
func (s *FileStore) allocateID() int64 {
	return atomic.AddInt64(&s.nextID, 1)
}

// NewDirectory constructs a new Directory file with a fresh id, applies
// configured default attributes, and returns it. It does not link the
// directory anywhere; the caller (typically view.FileSystemView) does
// that while holding the tree write lock.
func (s *FileStore) NewDirectory() *core.File {
	d := core.NewDirectory(s.allocateID(), s.Now())
	s.attributes.ApplyDefaults(d)
	return d
}

// NewRegularFile constructs a new empty RegularFile backed by this store's
// disk.
func (s *FileStore) NewRegularFile() *core.File {
	f := core.NewRegularFile(s.allocateID(), s.Now(), s.disk)
	s.attributes.ApplyDefaults(f)
	return f
}

// NewSymbolicLink constructs a new SymbolicLink with the given target.
func (s *FileStore) NewSymbolicLink(target pathsvc.Path) *core.File {
	l := core.NewSymbolicLink(s.allocateID(), s.Now(), target)
	s.attributes.ApplyDefaults(l)
	return l
}

// AddRoot registers a new root directory for rootName, creating it if one
// does not already exist, and returns it. The root directory's "." entry
// and parent-facing back-reference both point to itself.
func (s *FileStore) AddRoot(rootName name.Name) *core.File {
	if existing, ok := s.tree.Root(rootName); ok {
		return existing
	}
	root := s.NewDirectory()
	root.Link(name.SELF, root)
	// A root directory is its own parent; its parent-facing entry names it by its root
	// name rather than ".".
	root.SetEntryInParent(&core.DirectoryEntry{Directory: root, Name: rootName, File: root})
	s.tree.AddRoot(rootName, root)
	return root
}
