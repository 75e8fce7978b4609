package tree

import (
	perrors "github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathsvc"
)

// Options controls how the final path component is resolved.
type Options struct {
	// NoFollowLinks, if set, causes a symlink at the final path component to
	// be returned as-is rather than followed.
	NoFollowLinks bool
}

// LookUp resolves path against workingDir (used when path is relative),
// returning the DirectoryEntry for its final component. A nil File on the
// returned entry means "parent exists, last element does not". The caller must hold the file store's tree lock (read lock
// suffices; LookUp never mutates the tree).
func (t *FileTree) LookUp(workingDir *core.File, path pathsvc.Path, opts Options) (*core.DirectoryEntry, error) {
	return t.lookUp(workingDir, path, opts, 0)
}

// lookUp is LookUp starting from depth symbolic links already followed by
// enclosing resolutions, so nested resolution of link targets shares one cap.
func (t *FileTree) lookUp(workingDir *core.File, path pathsvc.Path, opts Options, depth int) (*core.DirectoryEntry, error) {
	var dir *core.File
	if root, ok := path.Root(); ok {
		d, ok := t.Root(root)
		if !ok {
			return nil, zerr.New("lookup", path.String(), zerr.KindNoSuchFile)
		}
		dir = d
	} else {
		dir = workingDir
	}

	names := path.Names()
	if len(names) == 0 || (len(names) == 1 && names[0].IsEmpty()) {
		return realEntry(dir.EntryInParent()), nil
	}

	for i := 0; i < len(names)-1; i++ {
		n := names[i]
		if dir.Kind() != core.KindDirectory {
			return nil, zerr.New("lookup", path.String(), zerr.KindNotDirectory)
		}
		entry := dir.Get(n)
		if entry == nil || entry.File == nil {
			return nil, zerr.New("lookup", path.String(), zerr.KindNoSuchFile)
		}
		resolved, newDepth, err := t.followIfLink(dir, entry.File, depth)
		if err != nil {
			return nil, err
		}
		depth = newDepth
		dir = resolved
	}

	last := names[len(names)-1]
	if dir.Kind() != core.KindDirectory {
		return nil, zerr.New("lookup", path.String(), zerr.KindNotDirectory)
	}
	entry := dir.Get(last)
	if entry == nil || entry.File == nil {
		return &core.DirectoryEntry{Directory: dir, Name: last, File: nil}, nil
	}

	if entry.File.Kind() == core.KindSymbolicLink && !opts.NoFollowLinks {
		resolved, _, err := t.followIfLink(dir, entry.File, depth)
		if err != nil {
			return nil, err
		}
		return realEntry(&core.DirectoryEntry{Directory: dir, Name: last, File: resolved}), nil
	}

	return realEntry(entry), nil
}

// followIfLink resolves file if it is a symbolic link, repeatedly, up to
// maxSymbolicLinkDepth total hops counted from startDepth. containingDir supplies the resolution context for a
// relative symlink target (it is the directory the link was found in, not
// the link itself).
func (t *FileTree) followIfLink(containingDir *core.File, file *core.File, startDepth int) (*core.File, int, error) {
	depth := startDepth
	for file.Kind() == core.KindSymbolicLink {
		depth++
		if depth > maxSymbolicLinkDepth {
			return nil, depth, perrors.Wrap(
				zerr.New("lookup", "", zerr.KindTooManySymbolicLinks),
				"too many levels of symbolic links",
			)
		}
		target := file.Target()
		entry, err := t.lookUp(containingDir, target, Options{}, depth)
		if err != nil {
			return nil, depth, err
		}
		if entry == nil || entry.File == nil {
			return nil, depth, zerr.New("lookup", target.String(), zerr.KindNoSuchFile)
		}
		file = entry.File
	}
	return file, depth, nil
}

// realEntry translates a "." or ".." entry back to the real parent-facing
// entry via EntryInParent, so a lookup ending in "." on directory foo
// returns parent(foo)->"foo"->foo rather than foo->"."->foo.
func realEntry(entry *core.DirectoryEntry) *core.DirectoryEntry {
	if entry == nil || entry.File == nil {
		return entry
	}
	if entry.Name.IsSelf() || entry.Name.IsParent() {
		if entry.File.Kind() == core.KindDirectory {
			if real := entry.File.EntryInParent(); real != nil {
				return real
			}
		}
	}
	return entry
}
