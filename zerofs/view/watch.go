package view

import (
	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/tree"
	"github.com/zerofs-dev/zerofs/watch"
)

// Register resolves p to a directory and registers it with svc for
// polling. p must belong to this view's file
// system and resolve to a directory.
func (v *FileSystemView) Register(svc *watch.Service, p pathsvc.Path, kinds ...watch.EventKind) (*watch.Key, error) {
	entry, err := v.lookup(p, tree.Options{})
	if err != nil {
		return nil, err
	}
	if !entry.Exists() {
		return nil, zerr.New("register", p.String(), zerr.KindNoSuchFile)
	}
	if entry.File.Kind() != core.KindDirectory {
		return nil, zerr.New("register", p.String(), zerr.KindNotDirectory)
	}
	return svc.Register(p, entry.File, kinds...)
}
