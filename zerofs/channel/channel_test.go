package channel

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/zerofs-dev/zerofs/core"
	"github.com/zerofs-dev/zerofs/disk"
	zerr "github.com/zerofs-dev/zerofs/errors"
	"github.com/zerofs-dev/zerofs/name"
)

// newTestFile returns a regular file linked into a fresh directory, so that
// closing the last handle on it does not release its blocks.
func newTestFile() *core.File {
	d := disk.New(16, 64, -1)
	f := core.NewRegularFile(1, time.Now(), d)
	core.NewDirectory(2, time.Now()).Link(name.New("f", nil, nil), f)
	return f
}

func TestWriteReadRoundTrip(t *testing.T) {
	f := newTestFile()
	w := New(f, false, nil, nil)
	if _, err := w.Write([]byte("hello world")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	r := New(f, false, nil, nil)
	buf := make([]byte, 11)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 11 || string(buf) != "hello world" {
		t.Fatalf("got %q (%d bytes)", buf[:n], n)
	}
}

func TestSeekAndPartialRead(t *testing.T) {
	f := newTestFile()
	w := New(f, false, nil, nil)
	w.Write([]byte("0123456789"))
	w.Close()

	r := New(f, false, nil, nil)
	if err := r.Seek(5); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	buf := make([]byte, 3)
	n, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if n != 3 || string(buf) != "567" {
		t.Fatalf("got %q", buf[:n])
	}
}

func TestAppendModeTargetsCurrentSize(t *testing.T) {
	f := newTestFile()
	w := New(f, false, nil, nil)
	w.Write([]byte("abc"))
	w.Close()

	a1 := New(f, true, nil, nil)
	a2 := New(f, true, nil, nil)
	a1.Write([]byte("DEF"))
	a2.Write([]byte("GHI"))

	r := New(f, false, nil, nil)
	buf := make([]byte, 9)
	r.Read(buf)
	if string(buf) != "abcDEFGHI" {
		t.Fatalf("got %q", buf)
	}
}

func TestReadPastEndReturnsEOF(t *testing.T) {
	f := newTestFile()
	w := New(f, false, nil, nil)
	w.Write([]byte("x"))
	w.Seek(5)
	buf := make([]byte, 4)
	_, err := w.Read(buf)
	if !errors.Is(err, io.EOF) {
		t.Fatalf("expected io.EOF, got %v", err)
	}
}

func TestClosedChannelRejectsOperations(t *testing.T) {
	f := newTestFile()
	c := New(f, false, nil, nil)
	c.Close()
	if _, err := c.Write([]byte("x")); !errors.Is(err, zerr.KindClosedChannel) {
		t.Fatalf("expected KindClosedChannel, got %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("double close should be a no-op: %v", err)
	}
}

func TestTruncateClampsPosition(t *testing.T) {
	f := newTestFile()
	w := New(f, false, nil, nil)
	w.Write([]byte("0123456789"))
	w.Seek(8)
	if err := w.Truncate(4); err != nil {
		t.Fatalf("Truncate: %v", err)
	}
	pos, _ := w.Position()
	if pos != 4 {
		t.Fatalf("expected position clamped to 4, got %d", pos)
	}
	size, _ := w.Size()
	if size != 4 {
		t.Fatalf("expected size 4, got %d", size)
	}
}

func TestOnReadOnWriteCallbacks(t *testing.T) {
	f := newTestFile()
	var wrote, read bool
	w := New(f, false, func(*core.File) { read = true }, func(*core.File) { wrote = true })
	w.Write([]byte("hi"))
	w.Seek(0)
	w.Read(make([]byte, 2))
	if !wrote || !read {
		t.Fatal("expected both callbacks to fire")
	}
}

func TestAsyncReadWrite(t *testing.T) {
	f := newTestFile()
	ch := New(f, false, nil, nil)
	async := NewAsyncChannel(ch)
	defer async.Close()

	wf, err := async.WriteAt(0, []byte("async-data"))
	if err != nil {
		t.Fatalf("WriteAt submit: %v", err)
	}
	res := <-wf.Done()
	if res.Err != nil {
		t.Fatalf("WriteAt: %v", res.Err)
	}

	buf := make([]byte, 10)
	rf, err := async.ReadAt(0, buf)
	if err != nil {
		t.Fatalf("ReadAt submit: %v", err)
	}
	res = <-rf.Done()
	if res.Err != nil {
		t.Fatalf("ReadAt: %v", res.Err)
	}
	if !bytes.Equal(buf, []byte("async-data")) {
		t.Fatalf("got %q", buf)
	}
}

func TestAsyncReadAtRejectsNegativePosition(t *testing.T) {
	f := newTestFile()
	ch := New(f, false, nil, nil)
	async := NewAsyncChannel(ch)
	defer async.Close()

	_, err := async.ReadAt(-1, make([]byte, 1))
	if err == nil {
		t.Fatal("expected an error for a negative position")
	}
}

func TestOpenChannelSurvivesLastLinkRemoval(t *testing.T) {
	f := core.NewRegularFile(1, time.Now(), disk.New(16, 64, -1))
	now := time.Now()
	dir := core.NewDirectory(2, now)
	n := name.New("a", nil, nil)
	dir.Link(n, f)

	w := New(f, false, nil, nil)
	if _, err := w.Write([]byte("still here")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	w.Close()

	r := New(f, false, nil, nil)

	dir.Unlink(n)
	if f.Links() != 0 {
		t.Fatalf("expected 0 links after unlink, got %d", f.Links())
	}

	buf := make([]byte, 10)
	rn, err := r.Read(buf)
	if err != nil {
		t.Fatalf("Read after unlink: %v", err)
	}
	if rn != 10 || string(buf) != "still here" {
		t.Fatalf("expected prior bytes to survive deletion while handle is open, got %q (%d bytes)", buf[:rn], rn)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r2 := New(f, false, nil, nil)
	defer r2.Close()
	size, err := r2.Size()
	if err != nil {
		t.Fatalf("Size: %v", err)
	}
	if size != 0 {
		t.Fatalf("expected blocks released once last handle closed, got size %d", size)
	}
}
