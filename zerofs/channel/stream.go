package channel

import (
	"io"
	"time"

	"github.com/zerofs-dev/zerofs/core"
	zerr "github.com/zerofs-dev/zerofs/errors"
)

// InputStream is a sequential reader over a RegularFile, maintaining a
// per-handle position and an eof flag; it updates lastAccessTime on every
// successful read (through onRead when one is given, otherwise to time.Now).
type InputStream struct {
	file     *core.File
	position int64
	eof      bool
	closed   bool
	onRead   func(*core.File)
}

// NewInputStream constructs an InputStream starting at position 0. The
// file is held open until Close, even if links drops to zero meanwhile.
func NewInputStream(file *core.File, onRead func(*core.File)) *InputStream {
	file.AcquireHandle()
	return &InputStream{file: file, onRead: onRead}
}

// Read implements io.Reader. Once eof has been observed, every subsequent
// call returns io.EOF without touching the file.
func (s *InputStream) Read(buf []byte) (int, error) {
	if s.closed {
		return 0, zerr.New("read", "", zerr.KindClosedChannel)
	}
	if s.eof {
		return 0, io.EOF
	}
	s.file.ContentLock.RLock()
	n, err := s.file.Read(s.position, buf)
	s.file.ContentLock.RUnlock()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		s.eof = true
		return 0, io.EOF
	}
	s.position += int64(n)
	if s.onRead != nil {
		s.onRead(s.file)
	} else {
		s.file.SetLastAccessTime(time.Now())
	}
	return n, nil
}

// Close marks the stream closed and releases its hold on the file,
// freeing its blocks if links has already dropped to zero. Idempotent.
func (s *InputStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.file.ReleaseHandle()
	s.file.ReleaseIfUnreferenced()
	return nil
}

// OutputStream is a sequential writer over a RegularFile, maintaining a
// per-handle position; it updates lastModifiedTime on every successful
// write (through onWrite when one is given, otherwise to time.Now). If append is set, every write targets the file's
// current size rather than the stream's position.
type OutputStream struct {
	file     *core.File
	position int64
	append   bool
	closed   bool
	onWrite  func(*core.File)
}

// NewOutputStream constructs an OutputStream. If truncate is set, the file
// is truncated to zero length up front. The file is held open until Close,
// even if links drops to zero meanwhile.
func NewOutputStream(file *core.File, appendMode, truncate bool, onWrite func(*core.File)) *OutputStream {
	file.AcquireHandle()
	if truncate {
		file.ContentLock.Lock()
		file.Truncate(0)
		file.ContentLock.Unlock()
	}
	return &OutputStream{file: file, append: appendMode, onWrite: onWrite}
}

// Write implements io.Writer.
func (s *OutputStream) Write(buf []byte) (int, error) {
	if s.closed {
		return 0, zerr.New("write", "", zerr.KindClosedChannel)
	}
	s.file.ContentLock.Lock()
	pos := s.position
	if s.append {
		pos = s.file.Size()
	}
	n, err := s.file.Write(pos, buf)
	s.file.ContentLock.Unlock()
	if err != nil {
		return n, err
	}
	s.position = pos + int64(n)
	if s.onWrite != nil {
		s.onWrite(s.file)
	} else {
		s.file.SetLastModifiedTime(time.Now())
	}
	return n, nil
}

// Close marks the stream closed and releases its hold on the file,
// freeing its blocks if links has already dropped to zero. Idempotent.
func (s *OutputStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.file.ReleaseHandle()
	s.file.ReleaseIfUnreferenced()
	return nil
}
