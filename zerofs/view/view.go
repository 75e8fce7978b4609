// Package view implements FileSystemView, the mutating operation surface:
// create/open/read/write/link/unlink/move/copy, under a
// locking discipline of tree lock for namespace mutation and
// per-file content lock for regular-file I/O.
package view

import (
	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/store"
	"github.com/zerofs-dev/zerofs/tree"
)

// FileSystemView holds a FileStore plus a working-directory context.
type FileSystemView struct {
	Store          *store.FileStore
	workingDir     *core.File
	workingDirPath pathsvc.Path
	features       map[Feature]bool
}

// New constructs a FileSystemView rooted at workingDir/workingDirPath with
// the given supported features enabled.
func New(s *store.FileStore, workingDir *core.File, workingDirPath pathsvc.Path, features ...Feature) *FileSystemView {
	v := &FileSystemView{Store: s, workingDir: workingDir, workingDirPath: workingDirPath, features: make(map[Feature]bool)}
	for _, f := range features {
		v.features[f] = true
	}
	return v
}

// WorkingDirectory returns the view's current working directory path.
func (v *FileSystemView) WorkingDirectory() pathsvc.Path { return v.workingDirPath }

func (v *FileSystemView) hasFeature(f Feature) bool { return v.features[f] }

// lookup resolves path under the tree read lock.
func (v *FileSystemView) lookup(path pathsvc.Path, opts tree.Options) (*core.DirectoryEntry, error) {
	v.Store.TreeLock.RLock()
	defer v.Store.TreeLock.RUnlock()
	return v.Store.Tree().LookUp(v.workingDir, path, opts)
}

// lookupLocked resolves path while the caller already holds the tree write
// lock (used internally by mutating operations).
func (v *FileSystemView) lookupLocked(path pathsvc.Path, opts tree.Options) (*core.DirectoryEntry, error) {
	return v.Store.Tree().LookUp(v.workingDir, path, opts)
}

func parentAndLeaf(p pathsvc.Path) (pathsvc.Path, name.Name, error) {
	names := p.Names()
	if len(names) == 0 {
		return pathsvc.Path{}, name.Name{}, zerr.New("resolve", p.String(), zerr.KindInvalidPath)
	}
	if parent, ok := p.GetParent(); ok {
		return parent, names[len(names)-1], nil
	}
	// p is a single relative name with no root (e.g. "a"): its parent is
	// the canonical empty relative path, which LookUp resolves to the
	// calling view's working directory itself.
	return p.Service().NewPath(nil, []name.Name{name.EMPTY}), names[0], nil
}

// CreateDirectory creates a new, empty directory at p.
func (v *FileSystemView) CreateDirectory(p pathsvc.Path) error {
	v.Store.TreeLock.Lock()
	defer v.Store.TreeLock.Unlock()

	parentPath, leaf, err := parentAndLeaf(p)
	if err != nil {
		return err
	}
	parentEntry, err := v.lookupLocked(parentPath, tree.Options{})
	if err != nil {
		return err
	}
	if !parentEntry.Exists() {
		return zerr.New("mkdir", p.String(), zerr.KindNoSuchFile)
	}
	if parentEntry.File.Kind() != core.KindDirectory {
		return zerr.New("mkdir", p.String(), zerr.KindNotDirectory)
	}
	if existing := parentEntry.File.Get(leaf); existing != nil && existing.File != nil {
		return zerr.New("mkdir", p.String(), zerr.KindFileAlreadyExists)
	}

	dir := v.Store.NewDirectory()
	childEntry := parentEntry.File.Link(leaf, dir)
	dir.SetEntryInParent(childEntry)
	dir.Link(name.SELF, dir)
	dir.Link(name.PARENT, parentEntry.File)
	return nil
}

// CreateSymbolicLink creates a symbolic link at p pointing at target.
func (v *FileSystemView) CreateSymbolicLink(p pathsvc.Path, target pathsvc.Path) error {
	if !v.hasFeature(FeatureSymbolicLinks) {
		return zerr.New("symlink", p.String(), zerr.KindUnsupportedOperation)
	}
	v.Store.TreeLock.Lock()
	defer v.Store.TreeLock.Unlock()

	parentPath, leaf, err := parentAndLeaf(p)
	if err != nil {
		return err
	}
	parentEntry, err := v.lookupLocked(parentPath, tree.Options{})
	if err != nil {
		return err
	}
	if !parentEntry.Exists() || parentEntry.File.Kind() != core.KindDirectory {
		return zerr.New("symlink", p.String(), zerr.KindNoSuchFile)
	}
	if existing := parentEntry.File.Get(leaf); existing != nil && existing.File != nil {
		return zerr.New("symlink", p.String(), zerr.KindFileAlreadyExists)
	}

	link := v.Store.NewSymbolicLink(target)
	parentEntry.File.Link(leaf, link)
	return nil
}

// Link creates a hard link at p pointing to the regular file existing.
func (v *FileSystemView) Link(linkPath pathsvc.Path, existingPath pathsvc.Path) error {
	if !v.hasFeature(FeatureLinks) {
		return zerr.New("link", linkPath.String(), zerr.KindUnsupportedOperation)
	}
	v.Store.TreeLock.Lock()
	defer v.Store.TreeLock.Unlock()

	existingEntry, err := v.lookupLocked(existingPath, tree.Options{NoFollowLinks: true})
	if err != nil {
		return err
	}
	if !existingEntry.Exists() {
		return zerr.New("link", existingPath.String(), zerr.KindNoSuchFile)
	}
	if existingEntry.File.Kind() != core.KindRegularFile {
		return zerr.New("link", existingPath.String(), zerr.KindUnsupportedOperation)
	}

	parentPath, leaf, err := parentAndLeaf(linkPath)
	if err != nil {
		return err
	}
	parentEntry, err := v.lookupLocked(parentPath, tree.Options{})
	if err != nil {
		return err
	}
	if !parentEntry.Exists() || parentEntry.File.Kind() != core.KindDirectory {
		return zerr.New("link", linkPath.String(), zerr.KindNoSuchFile)
	}
	if ex := parentEntry.File.Get(leaf); ex != nil && ex.File != nil {
		return zerr.New("link", linkPath.String(), zerr.KindFileAlreadyExists)
	}

	parentEntry.File.Link(leaf, existingEntry.File)
	return nil
}

// ReadSymbolicLink returns the target path stored in the symbolic link at p.
func (v *FileSystemView) ReadSymbolicLink(p pathsvc.Path) (pathsvc.Path, error) {
	entry, err := v.lookup(p, tree.Options{NoFollowLinks: true})
	if err != nil {
		return pathsvc.Path{}, err
	}
	if !entry.Exists() {
		return pathsvc.Path{}, zerr.New("readlink", p.String(), zerr.KindNoSuchFile)
	}
	if entry.File.Kind() != core.KindSymbolicLink {
		return pathsvc.Path{}, zerr.New("readlink", p.String(), zerr.KindNotLink)
	}
	return entry.File.Target(), nil
}

// CheckAccess merely confirms that p resolves.
func (v *FileSystemView) CheckAccess(p pathsvc.Path) error {
	entry, err := v.lookup(p, tree.Options{})
	if err != nil {
		return err
	}
	if !entry.Exists() {
		return zerr.New("access", p.String(), zerr.KindNoSuchFile)
	}
	return nil
}

// ToRealPath returns a canonicalised absolute path to the resolved file.
func (v *FileSystemView) ToRealPath(p pathsvc.Path) (pathsvc.Path, error) {
	entry, err := v.lookup(p, tree.Options{})
	if err != nil {
		return pathsvc.Path{}, err
	}
	if !entry.Exists() {
		return pathsvc.Path{}, zerr.New("realpath", p.String(), zerr.KindNoSuchFile)
	}
	abs := v.workingDirPath.Resolve(p).Normalize()
	return abs, nil
}

// DeleteFile removes the file at p, enforcing the deletion rules for mode.
func (v *FileSystemView) DeleteFile(p pathsvc.Path, mode DeleteMode) error {
	v.Store.TreeLock.Lock()
	defer v.Store.TreeLock.Unlock()

	parentPath, leaf, err := parentAndLeaf(p)
	if err != nil {
		return err
	}
	parentEntry, err := v.lookupLocked(parentPath, tree.Options{})
	if err != nil {
		return err
	}
	if !parentEntry.Exists() || parentEntry.File.Kind() != core.KindDirectory {
		return zerr.New("rm", p.String(), zerr.KindNoSuchFile)
	}
	entry := parentEntry.File.Get(leaf)
	if entry == nil || entry.File == nil {
		return zerr.New("rm", p.String(), zerr.KindNoSuchFile)
	}
	target := entry.File

	if target.Kind() == core.KindDirectory {
		if mode == DeleteNonDirectoryOnly {
			return zerr.New("rm", p.String(), zerr.KindIsDirectory)
		}
		if target.EntryInParent() != nil && target.EntryInParent().File == target && target.EntryInParent().Directory == target {
			return zerr.New("rm", p.String(), zerr.KindUnsupportedOperation) // root
		}
		if !target.IsEmptyDirectory() {
			return zerr.New("rm", p.String(), zerr.KindDirectoryNotEmpty)
		}
	} else if mode == DeleteDirectoryOnly {
		return zerr.New("rm", p.String(), zerr.KindNotDirectory)
	}

	parentEntry.File.Unlink(leaf)
	if target.Kind() == core.KindDirectory {
		target.Unlink(name.SELF)
		target.Unlink(name.PARENT)
	}
	target.ReleaseIfUnreferenced()
	return nil
}

// GetOrCreateRegularFile resolves p under the configured open-options
// rules, returning the backing RegularFile for further I/O via the
// channel package.
func (v *FileSystemView) GetOrCreateRegularFile(p pathsvc.Path, opts OpenOptions) (*core.File, error) {
	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	v.Store.TreeLock.Lock()
	defer v.Store.TreeLock.Unlock()

	entry, err := v.lookupLocked(p, tree.Options{})
	if err != nil {
		if opts.Create || opts.CreateNew {
			return v.createRegularFileLocked(p, opts)
		}
		return nil, err
	}
	if entry.Exists() {
		if opts.CreateNew {
			return nil, zerr.New("open", p.String(), zerr.KindFileAlreadyExists)
		}
		if entry.File.Kind() == core.KindDirectory && (opts.Write || opts.Append) {
			return nil, zerr.New("open", p.String(), zerr.KindIsDirectory)
		}
		if opts.TruncateExisting && opts.Write && entry.File.Kind() == core.KindRegularFile {
			entry.File.ContentLock.Lock()
			entry.File.Truncate(0)
			entry.File.ContentLock.Unlock()
		}
		return entry.File, nil
	}
	if !opts.Create && !opts.CreateNew {
		return nil, zerr.New("open", p.String(), zerr.KindNoSuchFile)
	}
	return v.createRegularFileLocked(p, opts)
}

func (v *FileSystemView) createRegularFileLocked(p pathsvc.Path, opts OpenOptions) (*core.File, error) {
	parentPath, leaf, err := parentAndLeaf(p)
	if err != nil {
		return nil, err
	}
	parentEntry, err := v.lookupLocked(parentPath, tree.Options{})
	if err != nil {
		return nil, err
	}
	if !parentEntry.Exists() || parentEntry.File.Kind() != core.KindDirectory {
		return nil, zerr.New("open", p.String(), zerr.KindNoSuchFile)
	}
	if existing := parentEntry.File.Get(leaf); existing != nil && existing.File != nil {
		return nil, zerr.New("open", p.String(), zerr.KindFileAlreadyExists)
	}
	file := v.Store.NewRegularFile()
	parentEntry.File.Link(leaf, file)
	return file, nil
}

// touchModified bumps a file's lastModifiedTime to the store's clock. It has
// the shape of the onWrite hook of channel.New and channel.NewOutputStream;
// nothing in this package passes it to them.
func (v *FileSystemView) touchModified(f *core.File) {
	f.SetLastModifiedTime(v.Store.Now())
}
