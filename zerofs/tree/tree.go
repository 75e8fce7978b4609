// Package tree implements the FileTree root registry and the recursive
// name-resolution algorithm, including symlink following
// with depth-capped cycle detection.
package tree

import (
	"github.com/zerofs-dev/zerofs/core"
	"github.com/zerofs-dev/zerofs/name"
)

// maxSymbolicLinkDepth bounds symlink-following recursion: exceeding it raises TooManySymbolicLinks.
const maxSymbolicLinkDepth = 40

// FileTree is the root registry: each configured root string maps to its
// own top-level Directory File.
type FileTree struct {
	roots map[string]*core.File
}

// New constructs an empty FileTree.
func New() *FileTree {
	return &FileTree{roots: make(map[string]*core.File)}
}

// AddRoot registers a root directory under the given root name's canonical
// form.
func (t *FileTree) AddRoot(root name.Name, dir *core.File) {
	t.roots[root.Canonical()] = dir
}

// Root looks up a registered root directory.
func (t *FileTree) Root(root name.Name) (*core.File, bool) {
	d, ok := t.roots[root.Canonical()]
	return d, ok
}

// Roots returns every registered root name's canonical string, for
// diagnostics.
func (t *FileTree) Roots() []string {
	out := make([]string, 0, len(t.roots))
	for k := range t.roots {
		out = append(out, k)
	}
	return out
}
