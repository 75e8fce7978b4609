// Package core implements the polymorphic File entity:
// Directory, RegularFile, and SymbolicLink variants sharing id, timestamps,
// link count, and a lazily-created attribute table.
package core

import (
	"encoding/binary"
	"sync"
	"time"

	"github.com/eknkc/basex"

	"github.com/zerofs-dev/zerofs/disk"
	"github.com/zerofs-dev/zerofs/pathsvc"
)

// Kind identifies which File variant a value represents.
type Kind int

const (
	KindDirectory Kind = iota
	KindRegularFile
	KindSymbolicLink
)

func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindRegularFile:
		return "file"
	case KindSymbolicLink:
		return "symlink"
	default:
		return "unknown"
	}
}

// keyEncoding renders a file's monotonic id as a compact base62 string for
// display/debugging.
var keyEncoding = mustBasex("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")

func mustBasex(alphabet string) *basex.Encoding {
	enc, err := basex.NewEncoding(alphabet)
	if err != nil {
		panic(err)
	}
	return enc
}

// File is the shared representation for all three variants. Which fields
// are meaningful is determined by Kind; metaMu guards the timestamp and
// attribute fields only — directory entry mutation is protected by the
// file store's tree-wide lock, and regular-file content
// mutation is protected by ContentLock.
type File struct {
	id   int64
	kind Kind

	metaMu           sync.Mutex
	creationTime     time.Time
	lastAccessTime   time.Time
	lastModifiedTime time.Time
	links            int
	openHandles      int

	attributes map[string]map[string]any

	// Directory fields.
	entries       map[string]*DirectoryEntry // keyed by Name.Canonical()
	entryInParent *DirectoryEntry

	// RegularFile fields.
	ContentLock sync.RWMutex
	disk        *disk.HeapDisk
	blocks      []*disk.Block
	size        int64

	// SymbolicLink fields.
	target pathsvc.Path
}

// ID returns the file's process-unique, monotonic identifier, exposed as
// the fileKey attribute.
func (f *File) ID() int64 { return f.id }

// Key renders the file's id as a compact base62 string.
func (f *File) Key() string {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, uint64(f.id))
	i := 0
	for i < len(buf)-1 && buf[i] == 0 {
		i++
	}
	return keyEncoding.Encode(buf[i:])
}

// Kind returns which variant this File is.
func (f *File) Kind() Kind { return f.kind }

// Links returns the current directory-entry reference count.
func (f *File) Links() int {
	f.metaMu.Lock()
	defer f.metaMu.Unlock()
	return f.links
}

func (f *File) adjustLinks(delta int) int {
	f.metaMu.Lock()
	defer f.metaMu.Unlock()
	f.links += delta
	return f.links
}

// AcquireHandle registers one more open channel or stream against the
// file, deferring block release (see ReleaseIfUnreferenced) until every
// acquired handle has been released, even if links drops to zero first.
func (f *File) AcquireHandle() {
	f.metaMu.Lock()
	f.openHandles++
	f.metaMu.Unlock()
}

// ReleaseHandle unregisters one previously acquired handle.
func (f *File) ReleaseHandle() {
	f.metaMu.Lock()
	f.openHandles--
	f.metaMu.Unlock()
}

// hasOpenHandles reports whether any channel or stream still holds the
// file open.
func (f *File) hasOpenHandles() bool {
	f.metaMu.Lock()
	defer f.metaMu.Unlock()
	return f.openHandles > 0
}

// Times returns the creation, last-access, and last-modified timestamps.
func (f *File) Times() (creation, access, modified time.Time) {
	f.metaMu.Lock()
	defer f.metaMu.Unlock()
	return f.creationTime, f.lastAccessTime, f.lastModifiedTime
}

// SetLastAccessTime updates the last-access timestamp.
func (f *File) SetLastAccessTime(t time.Time) {
	f.metaMu.Lock()
	f.lastAccessTime = t
	f.metaMu.Unlock()
}

// SetLastModifiedTime updates the last-modified timestamp.
func (f *File) SetLastModifiedTime(t time.Time) {
	f.metaMu.Lock()
	f.lastModifiedTime = t
	f.metaMu.Unlock()
}

// Attribute looks up a single attribute value in the given view.
func (f *File) Attribute(view, attr string) (any, bool) {
	f.metaMu.Lock()
	defer f.metaMu.Unlock()
	if f.attributes == nil {
		return nil, false
	}
	v, ok := f.attributes[view][attr]
	return v, ok
}

// SetAttribute stores a single attribute value in the given view,
// lazily creating the nested map.
func (f *File) SetAttribute(view, attr string, value any) {
	f.metaMu.Lock()
	defer f.metaMu.Unlock()
	if f.attributes == nil {
		f.attributes = make(map[string]map[string]any)
	}
	if f.attributes[view] == nil {
		f.attributes[view] = make(map[string]any)
	}
	f.attributes[view][attr] = value
}

// AttributeView returns a shallow copy of all attributes set in a view.
func (f *File) AttributeView(view string) map[string]any {
	f.metaMu.Lock()
	defer f.metaMu.Unlock()
	src := f.attributes[view]
	out := make(map[string]any, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
