package core

import (
	"time"

	"github.com/zerofs-dev/zerofs/pathsvc"
)

// NewSymbolicLink constructs a SymbolicLink File with an immutable target
// path. Symbolic links never have more than one link and
// cannot be hard-linked.
func NewSymbolicLink(id int64, now time.Time, target pathsvc.Path) *File {
	return &File{
		id:               id,
		kind:             KindSymbolicLink,
		creationTime:     now,
		lastAccessTime:   now,
		lastModifiedTime: now,
		target:           target,
	}
}

// Target returns the symbolic link's immutable target path.
func (f *File) Target() pathsvc.Path { return f.target }
