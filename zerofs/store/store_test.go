package store

import (
	"testing"
	"time"

	"github.com/zerofs-dev/zerofs/attr"
	"github.com/zerofs-dev/zerofs/core"
	"github.com/zerofs-dev/zerofs/disk"
	"github.com/zerofs-dev/zerofs/name"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/pathtype"
)

func newTestStore(t *testing.T, now TimeSource) *FileStore {
	t.Helper()
	svc := pathsvc.NewService(pathtype.UnixType, nil, nil, false)
	d := disk.New(4096, 1000, -1)
	attrs := attr.NewService()
	return New(svc, d, attrs, now)
}

func TestNewStoreDefaultsNowToTimeNow(t *testing.T) {
	s := newTestStore(t, nil)
	if s.Now().IsZero() {
		t.Fatal("expected Now() to default to time.Now and not be zero")
	}
}

func TestNewStoreUsesProvidedTimeSource(t *testing.T) {
	fixed := time.Unix(12345, 0)
	s := newTestStore(t, func() time.Time { return fixed })
	if !s.Now().Equal(fixed) {
		t.Fatalf("expected Now() to return fixed time, got %v", s.Now())
	}
}

func TestInstanceIDIsStable(t *testing.T) {
	s := newTestStore(t, nil)
	if s.InstanceID() != s.InstanceID() {
		t.Fatal("expected InstanceID to be stable across calls")
	}
}

func TestAllocateIDIsMonotonicAndUnique(t *testing.T) {
	s := newTestStore(t, nil)
	d1 := s.NewDirectory()
	d2 := s.NewDirectory()
	if d1.ID() == d2.ID() {
		t.Fatal("expected distinct ids for distinct files")
	}
	if d2.ID() <= d1.ID() {
		t.Fatalf("expected monotonically increasing ids, got %d then %d", d1.ID(), d2.ID())
	}
}

func TestNewRegularFileUsesStoreDisk(t *testing.T) {
	s := newTestStore(t, nil)
	f := s.NewRegularFile()
	if f.Kind() != core.KindRegularFile {
		t.Fatalf("expected KindRegularFile, got %v", f.Kind())
	}
	if _, err := f.Write(0, []byte("hi")); err != nil {
		t.Fatalf("unexpected error writing through store-backed disk: %v", err)
	}
	if s.Disk().AllocatedBlockCount() == 0 {
		t.Fatal("expected write to allocate from the store's disk")
	}
}

func TestNewSymbolicLinkStoresTarget(t *testing.T) {
	s := newTestStore(t, nil)
	target, err := s.PathService().ParsePath("/a/b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	link := s.NewSymbolicLink(target)
	if !link.Target().Equal(target) {
		t.Fatal("expected symlink target to round-trip")
	}
}

func TestAddRootCreatesSelfReferencingRoot(t *testing.T) {
	s := newTestStore(t, nil)
	rootName := name.New("/", nil, nil)
	root := s.AddRoot(rootName)

	got, ok := s.Tree().Root(rootName)
	if !ok || got != root {
		t.Fatal("expected AddRoot to register the root in the tree")
	}

	selfEntry := root.Get(name.SELF)
	if selfEntry == nil || selfEntry.File != root {
		t.Fatal("expected root's \".\" entry to point to itself")
	}

	parentEntry := root.EntryInParent()
	if parentEntry == nil || parentEntry.File != root || parentEntry.Name != rootName {
		t.Fatal("expected root's parent-facing entry to name it by its root name")
	}
}

func TestAddRootIsIdempotent(t *testing.T) {
	s := newTestStore(t, nil)
	rootName := name.New("/", nil, nil)
	first := s.AddRoot(rootName)
	second := s.AddRoot(rootName)
	if first != second {
		t.Fatal("expected repeated AddRoot calls for the same name to return the existing root")
	}
}

func TestNewDirectoryAppliesDefaultAttributes(t *testing.T) {
	svc := pathsvc.NewService(pathtype.UnixType, nil, nil, false)
	d := disk.New(4096, 1000, -1)
	attrs := attr.NewService(attr.Posix{})
	attrs.SetDefault("posix", "permissions", attr.DefaultDirMode)
	s := New(svc, d, attrs, nil)

	dir := s.NewDirectory()
	v, ok := dir.Attribute("posix", "permissions")
	if !ok || v != attr.DefaultDirMode {
		t.Fatalf("expected default permissions to be applied, got %v (ok=%v)", v, ok)
	}
}
