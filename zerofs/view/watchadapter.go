package view

import (
	"time"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
)

// WatchSnapshotter adapts a FileSystemView's store into watch.Snapshotter,
// giving the polling watch service a Name->lastModifiedTime view of a
// directory without depending on the view package directly.
type WatchSnapshotter struct {
	view *FileSystemView
}

// NewWatchSnapshotter builds a WatchSnapshotter bound to v's store.
func NewWatchSnapshotter(v *FileSystemView) *WatchSnapshotter {
	return &WatchSnapshotter{view: v}
}

// Snapshot implements watch.Snapshotter.
func (w *WatchSnapshotter) Snapshot(dir *core.File) (map[string]time.Time, error) {
	w.view.Store.TreeLock.RLock()
	defer w.view.Store.TreeLock.RUnlock()

	if dir.Kind() != core.KindDirectory {
		return nil, zerr.New("watch", "", zerr.KindNotDirectory)
	}
	out := make(map[string]time.Time)
	for _, e := range dir.Snapshot() {
		if e.Name.IsSelf() || e.Name.IsParent() {
			continue
		}
		if e.File == nil {
			continue
		}
		_, _, modified := e.File.Times()
		out[e.Name.Display()] = modified
	}
	return out, nil
}
