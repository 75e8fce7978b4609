package core

import "github.com/zerofs-dev/zerofs/name"

// DirectoryEntry is a (directory, name, file) triple. A File
// of nil describes "parent exists, last element does not" — the
// non-existent-entry sentinel lookups return so callers can distinguish
// "create here" from "fail".
type DirectoryEntry struct {
	Directory *File
	Name      name.Name
	File      *File
}

// Exists reports whether this entry names a real file.
func (e *DirectoryEntry) Exists() bool { return e != nil && e.File != nil }
