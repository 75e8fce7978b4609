package core

import (
	"sort"
	"time"

	"github.com/zerofs-dev/zerofs/name"
)

// NewDirectory constructs a Directory File with the given id and creation
// time. Callers (the store's factory) are responsible for linking it into
// its parent and installing its "." / ".." structure.
func NewDirectory(id int64, now time.Time) *File {
	return &File{
		id:               id,
		kind:             KindDirectory,
		creationTime:     now,
		lastAccessTime:   now,
		lastModifiedTime: now,
		entries:          make(map[string]*DirectoryEntry),
	}
}

// Get performs a hash lookup on canonical form.
func (f *File) Get(n name.Name) *DirectoryEntry {
	return f.entries[n.Canonical()]
}

// Link inserts an entry for name -> file and increments file's link count.
// The caller must hold the file-store tree write lock.
//
// Link does not touch file.entryInParent: every directory gains a "."
// self-link and a ".." back-link to its parent, both of which link the
// *parent* as a Directory-kind file too, so an unconditional "linked file
// is a directory => update its entryInParent" rule would clobber the
// parent's own back-reference. Callers establishing the one true
// parent-facing entry for a newly created or moved directory must call
// SetEntryInParent explicitly.
func (f *File) Link(n name.Name, file *File) *DirectoryEntry {
	entry := &DirectoryEntry{Directory: f, Name: n, File: file}
	f.entries[n.Canonical()] = entry
	file.adjustLinks(1)
	return entry
}

// Unlink removes the entry for name, decrements the referenced file's link
// count, and returns the file that was unlinked, or nil if no such entry
// existed. The caller must hold the tree write lock.
func (f *File) Unlink(n name.Name) *File {
	entry, ok := f.entries[n.Canonical()]
	if !ok {
		return nil
	}
	delete(f.entries, n.Canonical())
	entry.File.adjustLinks(-1)
	return entry.File
}

// DirEntry describes one live entry in a directory snapshot, pairing its
// current Name with the file it references.
type DirEntry struct {
	Name name.Name
	File *File
}

// Snapshot returns an ordered list of the directory's current entries, used
// by directory streams and by the watch service.
// The caller must hold at least the tree read lock.
func (f *File) Snapshot() []DirEntry {
	out := make([]DirEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, DirEntry{Name: e.Name, File: e.File})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name.Canonical() < out[j].Name.Canonical()
	})
	return out
}

// IsEmptyDirectory reports whether a directory contains no entries other
// than "." and any ".." back-links from child directories.
func (f *File) IsEmptyDirectory() bool {
	for k := range f.entries {
		if k == "." || k == ".." {
			continue
		}
		return false
	}
	return true
}

// EntryInParent returns the entry in the parent directory that references
// this directory, used so lookups of "." or ".." resolve to the real
// parent-facing entry.
func (f *File) EntryInParent() *DirectoryEntry { return f.entryInParent }

// SetEntryInParent installs the parent-facing back-reference; used when
// constructing a root directory (whose "parent" is itself) and when a
// directory is created, moved or copied into place.
func (f *File) SetEntryInParent(e *DirectoryEntry) { f.entryInParent = e }
