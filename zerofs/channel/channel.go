// Package channel implements FileChannel and the byte streams layered over
// a RegularFile: position is per-handle, not per-file;
// read/write acquire the file's content lock for the call's duration;
// append mode always writes at the file's current size; and an
// executor-backed async adapter that preserves per-file atomicity because
// every submitted task still acquires the content lock.
package channel

import (
	"io"
	"sync"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
)

// Lock is an advisory, per-channel placeholder: locks are surfaced but
// never enforce mutual exclusion across channels; only open/closed state
// is tracked.
type Lock struct {
	mu     sync.Mutex
	closed bool
}

// Release marks the lock closed. Releasing an already-released lock is a
// no-op.
func (l *Lock) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	return nil
}

// IsValid reports whether the lock has not yet been released.
func (l *Lock) IsValid() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return !l.closed
}

// FileChannel wraps a RegularFile with a per-handle position. It is not safe for concurrent use by multiple goroutines without
// external synchronization of the position field, matching java.nio's
// SeekableByteChannel contract (single-threaded per handle).
type FileChannel struct {
	mu       sync.Mutex
	file     *core.File
	position int64
	append   bool
	closed   bool
	onWrite  func(*core.File) // bumps lastModifiedTime; supplied by the caller of New, may be nil
	onRead   func(*core.File) // bumps lastAccessTime
}

// New constructs a FileChannel positioned at 0, also when appendMode is set
// (append mode ignores the stored position and always targets size() at
// write time, leaving the position just past the appended bytes). The file
// is held open (its blocks
// survive even if links drops to zero) until Close.
func New(file *core.File, appendMode bool, onRead, onWrite func(*core.File)) *FileChannel {
	file.AcquireHandle()
	return &FileChannel{file: file, append: appendMode, onRead: onRead, onWrite: onWrite}
}

func (c *FileChannel) checkOpen() error {
	if c.closed {
		return zerr.New("channel", "", zerr.KindClosedChannel)
	}
	return nil
}

// Position returns the channel's current position.
func (c *FileChannel) Position() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	return c.position, nil
}

// Seek sets the channel's position, which may exceed the file's current
// size (a subsequent write there creates a sparse hole).
func (c *FileChannel) Seek(pos int64) error {
	if pos < 0 {
		return zerr.New("seek", "", zerr.KindIllegalArgument)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return err
	}
	c.position = pos
	return nil
}

// Read copies bytes from the file at the channel's position into buf,
// advancing the position by the number read, and acquires the file's
// content read lock for the duration.
func (c *FileChannel) Read(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return 0, err
	}

	c.file.ContentLock.RLock()
	n, err := c.file.Read(c.position, buf)
	c.file.ContentLock.RUnlock()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, io.EOF
	}
	c.position += int64(n)
	if c.onRead != nil {
		c.onRead(c.file)
	}
	return n, nil
}

// Write copies buf into the file. In append mode the write always targets
// the file's current size at the moment of the call, atomic with respect
// to other writers because the content write lock is held across the
// size-read-then-write.
func (c *FileChannel) Write(buf []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return 0, err
	}

	c.file.ContentLock.Lock()
	pos := c.position
	if c.append {
		pos = c.file.Size()
	}
	n, err := c.file.Write(pos, buf)
	c.file.ContentLock.Unlock()
	if err != nil {
		return 0, err
	}
	c.position = pos + int64(n)
	if c.onWrite != nil {
		c.onWrite(c.file)
	}
	return n, nil
}

// Truncate delegates to the file, holding its content write lock.
func (c *FileChannel) Truncate(size int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return err
	}
	c.file.ContentLock.Lock()
	c.file.Truncate(size)
	c.file.ContentLock.Unlock()
	if c.position > size {
		c.position = size
	}
	return nil
}

// Size returns the file's current byte size.
func (c *FileChannel) Size() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkOpen(); err != nil {
		return 0, err
	}
	c.file.ContentLock.RLock()
	defer c.file.ContentLock.RUnlock()
	return c.file.Size(), nil
}

// Force is a no-op: the file system is entirely memory-backed, so there is
// nothing to flush to stable storage.
func (c *FileChannel) Force(metadata bool) error {
	return c.checkOpen()
}

// Lock acquires an advisory, unenforced lock placeholder.
func (c *FileChannel) Lock() (*Lock, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return &Lock{}, nil
}

// Close marks the channel closed and releases its hold on the file, freeing
// its blocks if links has already dropped to zero. Closing an already-closed
// channel is a no-op.
func (c *FileChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.file.ReleaseHandle()
	c.file.ReleaseIfUnreferenced()
	return nil
}
