package view

import (
	"testing"
	"time"

	"github.com/zerofs-dev/zerofs/attr"
	"github.com/zerofs-dev/zerofs/disk"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/pathtype"
	"github.com/zerofs-dev/zerofs/store"
)

func newTestView(t *testing.T, features ...Feature) *FileSystemView {
	t.Helper()
	svc := pathsvc.NewService(pathtype.UnixType, nil, nil, false)
	d := disk.New(4096, 10000, -1)
	attrs := attr.NewService(attr.Posix{})
	s := store.New(svc, d, attrs, func() time.Time { return time.Unix(1000, 0) })

	root := s.AddRoot(name.New("/", nil, nil))
	_ = root

	rootPath, err := svc.ParsePath("/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return New(s, root, rootPath, features...)
}

func mustPath(t *testing.T, v *FileSystemView, raw string) pathsvc.Path {
	t.Helper()
	p, err := v.Store.PathService().ParsePath(raw)
	if err != nil {
		t.Fatalf("unexpected parse error for %q: %v", raw, err)
	}
	return p
}
