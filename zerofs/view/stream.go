package view

import (
	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathmatch"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/tree"
)

// DirectoryStream is an ordered, filtered snapshot of a directory's current
// entries.
type DirectoryStream struct {
	entries []core.DirEntry
}

// Entries returns the stream's filtered, ordered entries. "." and ".."
// pseudo-entries are never included.
func (s *DirectoryStream) Entries() []core.DirEntry { return s.entries }

// NewDirectoryStream takes a snapshot
// of p's entries, excluding "."/"..", passed through filter.
func (v *FileSystemView) NewDirectoryStream(p pathsvc.Path, filter pathmatch.Matcher) (*DirectoryStream, error) {
	if filter == nil {
		filter = pathmatch.AcceptAll
	}
	v.Store.TreeLock.RLock()
	defer v.Store.TreeLock.RUnlock()

	entry, err := v.Store.Tree().LookUp(v.workingDir, p, tree.Options{})
	if err != nil {
		return nil, err
	}
	if !entry.Exists() {
		return nil, zerr.New("opendir", p.String(), zerr.KindNoSuchFile)
	}
	if entry.File.Kind() != core.KindDirectory {
		return nil, zerr.New("opendir", p.String(), zerr.KindNotDirectory)
	}

	var out []core.DirEntry
	for _, e := range entry.File.Snapshot() {
		if e.Name.IsSelf() || e.Name.IsParent() {
			continue
		}
		if filter.Matches(e.Name.Display()) {
			out = append(out, e)
		}
	}
	return &DirectoryStream{entries: out}, nil
}

// SecureDirectoryStream is a directory stream whose relative operations
// resolve against the directory it was opened on rather than the file
// system's working directory, surviving subsequent renames of its root.
type SecureDirectoryStream struct {
	view *FileSystemView
	dir  *core.File
}

// NewSecureDirectoryStream opens a SecureDirectoryStream on p, requiring the
// SECURE_DIRECTORY_STREAM feature.
func (v *FileSystemView) NewSecureDirectoryStream(p pathsvc.Path) (*SecureDirectoryStream, error) {
	if !v.hasFeature(FeatureSecureDirectoryStream) {
		return nil, zerr.New("opendir", p.String(), zerr.KindUnsupportedOperation)
	}
	entry, err := v.lookup(p, tree.Options{})
	if err != nil {
		return nil, err
	}
	if !entry.Exists() || entry.File.Kind() != core.KindDirectory {
		return nil, zerr.New("opendir", p.String(), zerr.KindNotDirectory)
	}
	return &SecureDirectoryStream{view: v, dir: entry.File}, nil
}

// lookupRelative resolves a single relative name component against the
// stream's open directory, never against the file system's (possibly since
// moved) working directory.
func (s *SecureDirectoryStream) lookupRelative(n string, opts tree.Options) (*core.DirectoryEntry, error) {
	s.view.Store.TreeLock.RLock()
	defer s.view.Store.TreeLock.RUnlock()

	nm := s.view.Store.PathService().Name(n)
	if nm.IsSelf() {
		return s.dir.EntryInParent(), nil
	}
	if nm.IsParent() {
		parentEntry := s.dir.Get(name.PARENT)
		if parentEntry == nil || parentEntry.File == nil {
			return nil, zerr.New("lookup", n, zerr.KindNoSuchFile)
		}
		return parentEntry.File.EntryInParent(), nil
	}
	entry := s.dir.Get(nm)
	if entry == nil || entry.File == nil {
		return &core.DirectoryEntry{Directory: s.dir, Name: nm, File: nil}, nil
	}
	if entry.File.Kind() == core.KindSymbolicLink && !opts.NoFollowLinks {
		target := entry.File.Target()
		resolved, err := s.view.Store.Tree().LookUp(s.dir, target, tree.Options{})
		if err != nil {
			return nil, err
		}
		return resolved, nil
	}
	return entry, nil
}

// GetFileAt resolves a single name relative to the stream's directory,
// following symlinks unless nofollow is set.
func (s *SecureDirectoryStream) GetFileAt(n string, nofollow bool) (*core.DirectoryEntry, error) {
	return s.lookupRelative(n, tree.Options{NoFollowLinks: nofollow})
}

// NewDirectoryStreamAt opens a child SecureDirectoryStream relative to this
// one, without ever consulting the ambient working directory.
func (s *SecureDirectoryStream) NewDirectoryStreamAt(n string) (*SecureDirectoryStream, error) {
	if !s.view.hasFeature(FeatureSecureDirectoryStream) {
		return nil, zerr.New("opendir", n, zerr.KindUnsupportedOperation)
	}
	entry, err := s.lookupRelative(n, tree.Options{})
	if err != nil {
		return nil, err
	}
	if !entry.Exists() || entry.File.Kind() != core.KindDirectory {
		return nil, zerr.New("opendir", n, zerr.KindNotDirectory)
	}
	return &SecureDirectoryStream{view: s.view, dir: entry.File}, nil
}

// DeleteFileAt unlinks a single name relative to this stream's directory.
func (s *SecureDirectoryStream) DeleteFileAt(n string) error {
	s.view.Store.TreeLock.Lock()
	defer s.view.Store.TreeLock.Unlock()

	nm := s.view.Store.PathService().Name(n)
	entry := s.dir.Get(nm)
	if entry == nil || entry.File == nil {
		return zerr.New("rm", n, zerr.KindNoSuchFile)
	}
	if entry.File.Kind() == core.KindDirectory && !entry.File.IsEmptyDirectory() {
		return zerr.New("rm", n, zerr.KindDirectoryNotEmpty)
	}
	s.dir.Unlink(nm)
	entry.File.ReleaseIfUnreferenced()
	return nil
}

// Close releases the stream's reference to its directory. SecureDirectoryStream
// holds no OS resources (the backing store is memory-resident), so Close is
// always a no-op that succeeds, idempotently.
func (s *SecureDirectoryStream) Close() error { return nil }
