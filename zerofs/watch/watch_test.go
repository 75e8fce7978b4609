package watch

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/pathsvc"
	"github.com/zerofs-dev/zerofs/pathtype"
)

// fakeSnapshotter returns a caller-supplied sequence of snapshots, one per
// call, repeating the last entry once exhausted.
type fakeSnapshotter struct {
	mu    sync.Mutex
	snaps []map[string]time.Time
	calls int
	err   error
}

func (f *fakeSnapshotter) Snapshot(dir *core.File) (map[string]time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	idx := f.calls
	if idx >= len(f.snaps) {
		idx = len(f.snaps) - 1
	}
	f.calls++
	return f.snaps[idx], nil
}

func testPath(t *testing.T) pathsvc.Path {
	t.Helper()
	svc := pathsvc.NewService(pathtype.UnixType, nil, nil, false)
	p, err := svc.ParsePath("/watched")
	if err != nil {
		t.Fatalf("ParsePath: %v", err)
	}
	return p
}

func testDir() *core.File {
	return core.NewDirectory(1, time.Now())
}

func TestDiffAndPostCreateDeleteModify(t *testing.T) {
	old := map[string]time.Time{
		"a": time.Unix(1, 0),
		"b": time.Unix(1, 0),
	}
	updated := map[string]time.Time{
		"a": time.Unix(2, 0), // modified
		"c": time.Unix(1, 0), // created
		// "b" deleted
	}
	k := &Key{kinds: map[EventKind]bool{EntryCreate: true, EntryDelete: true, EntryModify: true}}
	changed := diffAndPost(k, old, updated)
	if !changed {
		t.Fatal("expected a change to be posted")
	}
	events := k.PollEvents()
	kinds := map[EventKind]int{}
	for _, e := range events {
		kinds[e.Kind]++
	}
	if kinds[EntryCreate] != 1 || kinds[EntryDelete] != 1 || kinds[EntryModify] != 1 {
		t.Fatalf("unexpected event mix: %+v", events)
	}
}

func TestDiffAndPostRespectsKindSubset(t *testing.T) {
	old := map[string]time.Time{"a": time.Unix(1, 0)}
	updated := map[string]time.Time{}
	k := &Key{kinds: map[EventKind]bool{EntryCreate: true}} // delete not subscribed
	changed := diffAndPost(k, old, updated)
	if changed {
		t.Fatal("expected no change posted for an unsubscribed kind")
	}
}

func TestServiceRegisterAndPoll(t *testing.T) {
	snaps := &fakeSnapshotter{snaps: []map[string]time.Time{
		{"a": time.Unix(1, 0)},
		{"a": time.Unix(1, 0), "b": time.Unix(2, 0)},
	}}
	svc := New(snaps, 10*time.Millisecond)
	defer svc.Close()

	key, err := svc.Register(testPath(t), testDir(), EntryCreate, EntryDelete, EntryModify)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	signalled, err := svc.Poll(2 * time.Second)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if signalled != key {
		t.Fatal("expected the registered key to be signalled")
	}
	events := signalled.PollEvents()
	if len(events) != 1 || events[0].Kind != EntryCreate || events[0].Name != "b" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestServicePollTimesOut(t *testing.T) {
	snaps := &fakeSnapshotter{snaps: []map[string]time.Time{{}}}
	svc := New(snaps, time.Hour)
	defer svc.Close()

	key, err := svc.Poll(50 * time.Millisecond)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if key != nil {
		t.Fatal("expected a nil key on timeout")
	}
}

func TestCloseUnblocksTake(t *testing.T) {
	snaps := &fakeSnapshotter{snaps: []map[string]time.Time{{}}}
	svc := New(snaps, time.Hour)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Take()
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	if err := svc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, zerr.KindClosedWatchService) {
			t.Fatalf("expected KindClosedWatchService, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Take did not unblock after Close")
	}
}

func TestRegisterAfterCloseFails(t *testing.T) {
	snaps := &fakeSnapshotter{snaps: []map[string]time.Time{{}}}
	svc := New(snaps, time.Hour)
	svc.Close()

	_, err := svc.Register(testPath(t), testDir(), EntryCreate)
	if !errors.Is(err, zerr.KindClosedWatchService) {
		t.Fatalf("expected KindClosedWatchService, got %v", err)
	}
}

func TestCancelledKeyIsDroppedOnPoll(t *testing.T) {
	snaps := &fakeSnapshotter{snaps: []map[string]time.Time{
		{}, {"a": time.Unix(1, 0)},
	}}
	svc := New(snaps, 10*time.Millisecond)
	defer svc.Close()

	key, err := svc.Register(testPath(t), testDir(), EntryCreate)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	key.Cancel()

	_, err = svc.Poll(100 * time.Millisecond)
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if key.IsValid() {
		t.Fatal("expected key to remain cancelled")
	}
	svc.mu.Lock()
	_, stillRegistered := svc.keys[key.ID()]
	svc.mu.Unlock()
	if stillRegistered {
		t.Fatal("expected the cancelled key to be dropped from the service after a poll")
	}
}
