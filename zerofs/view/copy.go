package view

import (
	perrors "github.com/pkg/errors"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/tree"
)

// Copy implements copy/move. When move is true and dstView is
// the same FileSystemView (same file store), the operation is a pure
// namespace relink performed atomically under the tree write lock. Any
// other combination (cross-view, or move==false) performs a content copy
// via copyAcrossOrDuplicate, rejecting ATOMIC_MOVE in that case.
func (v *FileSystemView) Copy(src pathsvc.Path, dstView *FileSystemView, dst pathsvc.Path, opts CopyOptions, move bool) error {
	sameStore := dstView.Store == v.Store
	if opts.AtomicMove && (!move || !sameStore) {
		return zerr.New("move", dst.String(), zerr.KindUnsupportedOperation)
	}

	if move && sameStore {
		return v.moveWithinStore(src, dst, opts)
	}
	return v.copyAcrossOrDuplicate(src, dstView, dst, opts, move)
}

// moveWithinStore relinks src to dst under a single tree-write-lock
// critical section.
func (v *FileSystemView) moveWithinStore(src, dst pathsvc.Path, opts CopyOptions) error {
	v.Store.TreeLock.Lock()
	defer v.Store.TreeLock.Unlock()

	srcParentPath, srcLeaf, err := parentAndLeaf(src)
	if err != nil {
		return err
	}
	srcParentEntry, err := v.lookupLocked(srcParentPath, tree.Options{})
	if err != nil {
		return err
	}
	srcEntry := srcParentEntry.File.Get(srcLeaf)
	if srcEntry == nil || srcEntry.File == nil {
		return zerr.New("move", src.String(), zerr.KindNoSuchFile)
	}
	source := srcEntry.File

	dstParentPath, dstLeaf, err := parentAndLeaf(dst)
	if err != nil {
		return err
	}
	dstParentEntry, err := v.lookupLocked(dstParentPath, tree.Options{})
	if err != nil {
		return err
	}
	if !dstParentEntry.Exists() || dstParentEntry.File.Kind() != core.KindDirectory {
		return zerr.New("move", dst.String(), zerr.KindNoSuchFile)
	}

	if source.Kind() == core.KindDirectory {
		absSrc := v.workingDirPath.Resolve(src).Normalize()
		absDst := v.workingDirPath.Resolve(dst).Normalize()
		if absDst.StartsWith(absSrc) {
			return perrors.Wrap(zerr.New("move", dst.String(), zerr.KindIO), "cannot move a directory into its own descendant")
		}
	}

	existing := dstParentEntry.File.Get(dstLeaf)
	if existing != nil && existing.File != nil {
		if !opts.ReplaceExisting {
			return zerr.New("move", dst.String(), zerr.KindFileAlreadyExists)
		}
		if err := checkReplaceable(existing.File); err != nil {
			return err
		}
		dstParentEntry.File.Unlink(dstLeaf)
		if existing.File.Kind() == core.KindDirectory {
			existing.File.Unlink(name.SELF)
			existing.File.Unlink(name.PARENT)
		}
		existing.File.ReleaseIfUnreferenced()
	}

	srcParentEntry.File.Unlink(srcLeaf)
	dstParentEntry.File.Link(dstLeaf, source)
	if source.Kind() == core.KindDirectory {
		source.Unlink(name.PARENT)
		source.Link(name.PARENT, dstParentEntry.File)
		source.SetEntryInParent(dstParentEntry.File.Get(dstLeaf))
	}
	return nil
}

// checkReplaceable enforces the directory-emptiness rule REPLACE_EXISTING
// is subject to.
func checkReplaceable(existing *core.File) error {
	if existing.Kind() == core.KindDirectory && !existing.IsEmptyDirectory() {
		return zerr.New("move", "", zerr.KindDirectoryNotEmpty)
	}
	return nil
}

// copyAcrossOrDuplicate implements non-relink copy: a brand-new file of the
// same variant (copyWithoutContent), with content and attributes copied
// according to opts, followed by an unlink of the source if move is true.
func (v *FileSystemView) copyAcrossOrDuplicate(src pathsvc.Path, dstView *FileSystemView, dst pathsvc.Path, opts CopyOptions, move bool) error {
	srcEntry, err := v.lookup(src, tree.Options{NoFollowLinks: true})
	if err != nil {
		return err
	}
	if !srcEntry.Exists() {
		return zerr.New("copy", src.String(), zerr.KindNoSuchFile)
	}
	source := srcEntry.File
	if move && source.Kind() == core.KindDirectory && !source.IsEmptyDirectory() {
		return perrors.Wrap(zerr.New("move", src.String(), zerr.KindIO), "cross-file-system move of a non-empty directory is not supported")
	}

	dstView.Store.TreeLock.Lock()
	defer dstView.Store.TreeLock.Unlock()

	dstParentPath, dstLeaf, err := parentAndLeaf(dst)
	if err != nil {
		return err
	}
	dstParentEntry, err := dstView.lookupLocked(dstParentPath, tree.Options{})
	if err != nil {
		return err
	}
	if !dstParentEntry.Exists() || dstParentEntry.File.Kind() != core.KindDirectory {
		return zerr.New("copy", dst.String(), zerr.KindNoSuchFile)
	}

	if existing := dstParentEntry.File.Get(dstLeaf); existing != nil && existing.File != nil {
		if !opts.ReplaceExisting {
			return zerr.New("copy", dst.String(), zerr.KindFileAlreadyExists)
		}
		if err := checkReplaceable(existing.File); err != nil {
			return err
		}
		dstParentEntry.File.Unlink(dstLeaf)
		if existing.File.Kind() == core.KindDirectory {
			existing.File.Unlink(name.SELF)
			existing.File.Unlink(name.PARENT)
		}
		existing.File.ReleaseIfUnreferenced()
	}

	attrMode := resolveAttrCopyMode(opts, move)

	var created *core.File
	switch source.Kind() {
	case core.KindDirectory:
		created = dstView.Store.NewDirectory()
	case core.KindSymbolicLink:
		created = dstView.Store.NewSymbolicLink(source.Target())
	case core.KindRegularFile:
		created = dstView.Store.NewRegularFile()
		if err := copyRegularFileContent(source, created); err != nil {
			return err
		}
	}

	switch attrMode {
	case attrCopyBasic:
		dstView.Store.Attributes().CopyAttributes(source, created, true)
	case attrCopyAll:
		dstView.Store.Attributes().CopyAttributes(source, created, false)
	}

	dstParentEntry.File.Link(dstLeaf, created)
	if created.Kind() == core.KindDirectory {
		created.Link(name.SELF, created)
		created.Link(name.PARENT, dstParentEntry.File)
		created.SetEntryInParent(dstParentEntry.File.Get(dstLeaf))
	}

	if move {
		v.Store.TreeLock.Lock()
		srcParentPath, srcLeaf, err := parentAndLeaf(src)
		if err == nil {
			if srcParentEntry, err := v.lookupLocked(srcParentPath, tree.Options{}); err == nil && srcParentEntry.Exists() {
				srcParentEntry.File.Unlink(srcLeaf)
				source.ReleaseIfUnreferenced()
			}
		}
		v.Store.TreeLock.Unlock()
	}

	return nil
}

type attrCopyMode int

const (
	attrCopyNone attrCopyMode = iota
	attrCopyBasic
	attrCopyAll
)

// resolveAttrCopyMode applies the default: BASIC for copy, NONE for
// move, unless the caller set opts.Attributes explicitly (which can
// request ALL for either).
func resolveAttrCopyMode(opts CopyOptions, move bool) attrCopyMode {
	if opts.ExplicitAttributes {
		switch opts.Attributes {
		case CopyAttributesAll:
			return attrCopyAll
		case CopyAttributesBasic:
			return attrCopyBasic
		default:
			return attrCopyNone
		}
	}
	if move {
		return attrCopyNone
	}
	return attrCopyBasic
}

// copyRegularFileContent copies src's bytes into dst block-by-block,
// holding both files' content locks for the duration.
func copyRegularFileContent(src, dst *core.File) error {
	src.ContentLock.RLock()
	defer src.ContentLock.RUnlock()
	dst.ContentLock.Lock()
	defer dst.ContentLock.Unlock()

	size := src.Size()
	if size == 0 {
		return nil
	}
	buf := make([]byte, size)
	n, err := src.Read(0, buf)
	if err != nil {
		return err
	}
	if n < 0 {
		n = 0
	}
	if _, err := dst.Write(0, buf[:n]); err != nil {
		return err
	}
	return nil
}
