package core

import (
	"testing"
	"time"

	"github.com/zerofs-dev/zerofs/name"
)

func TestLinkAndGet(t *testing.T) {
	now := time.Unix(0, 0)
	dir := NewDirectory(1, now)
	child := NewDirectory(2, now)

	n := name.New("child", nil, nil)
	entry := dir.Link(n, child)
	if entry.File != child || entry.Name != n {
		t.Fatal("unexpected entry fields")
	}
	if child.Links() != 1 {
		t.Fatalf("expected child link count 1, got %d", child.Links())
	}
	got := dir.Get(n)
	if got == nil || got.File != child {
		t.Fatal("expected Get to return the linked entry")
	}
}

func TestGetMissingReturnsNil(t *testing.T) {
	dir := NewDirectory(1, time.Unix(0, 0))
	if dir.Get(name.New("missing", nil, nil)) != nil {
		t.Fatal("expected nil for missing entry")
	}
}

func TestUnlinkRemovesEntryAndDecrementsLinks(t *testing.T) {
	now := time.Unix(0, 0)
	dir := NewDirectory(1, now)
	child := NewDirectory(2, now)
	n := name.New("child", nil, nil)
	dir.Link(n, child)

	unlinked := dir.Unlink(n)
	if unlinked != child {
		t.Fatal("expected Unlink to return the unlinked file")
	}
	if child.Links() != 0 {
		t.Fatalf("expected link count 0 after unlink, got %d", child.Links())
	}
	if dir.Get(n) != nil {
		t.Fatal("expected entry to be gone after unlink")
	}
}

func TestUnlinkMissingReturnsNil(t *testing.T) {
	dir := NewDirectory(1, time.Unix(0, 0))
	if dir.Unlink(name.New("missing", nil, nil)) != nil {
		t.Fatal("expected nil unlinking a non-existent entry")
	}
}

func TestSnapshotIsSortedByCanonicalName(t *testing.T) {
	now := time.Unix(0, 0)
	dir := NewDirectory(1, now)
	dir.Link(name.New("charlie", nil, nil), NewDirectory(2, now))
	dir.Link(name.New("alpha", nil, nil), NewDirectory(3, now))
	dir.Link(name.New("bravo", nil, nil), NewDirectory(4, now))

	snap := dir.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(snap))
	}
	for i := 1; i < len(snap); i++ {
		if snap[i-1].Name.Canonical() > snap[i].Name.Canonical() {
			t.Fatal("expected snapshot entries sorted by canonical name")
		}
	}
}

func TestIsEmptyDirectoryIgnoresDotEntries(t *testing.T) {
	now := time.Unix(0, 0)
	dir := NewDirectory(1, now)
	dir.Link(name.SELF, dir)
	dir.Link(name.PARENT, dir)
	if !dir.IsEmptyDirectory() {
		t.Fatal("expected directory with only . and .. to be considered empty")
	}
	dir.Link(name.New("file.txt", nil, nil), NewDirectory(2, now))
	if dir.IsEmptyDirectory() {
		t.Fatal("expected directory with a real entry not to be empty")
	}
}

func TestEntryInParent(t *testing.T) {
	now := time.Unix(0, 0)
	parent := NewDirectory(1, now)
	child := NewDirectory(2, now)
	entry := parent.Link(name.New("child", nil, nil), child)
	child.SetEntryInParent(entry)
	if child.EntryInParent() != entry {
		t.Fatal("expected EntryInParent to return the installed entry")
	}
}
