package core

import (
	"time"

	"github.com/zerofs-dev/zerofs/disk"
)

// NewRegularFile constructs an empty RegularFile File backed by the given
// HeapDisk.
func NewRegularFile(id int64, now time.Time, d *disk.HeapDisk) *File {
	return &File{
		id:               id,
		kind:             KindRegularFile,
		creationTime:     now,
		lastAccessTime:   now,
		lastModifiedTime: now,
		disk:             d,
	}
}

// Size returns the file's exact byte size. The caller must hold at least
// the content read lock.
func (f *File) Size() int64 { return f.size }

// BlockCount returns ceil(size / blockSize).
func (f *File) BlockCount() int {
	bs := f.disk.BlockSize()
	if f.size == 0 {
		return 0
	}
	return int((f.size + int64(bs) - 1) / int64(bs))
}

// Read copies up to len(buf) bytes starting at pos into buf, returning the
// number of bytes copied, or -1 if pos is at or past the end of the file.
// The caller must hold the content read lock.
func (f *File) Read(pos int64, buf []byte) (int, error) {
	if pos >= f.size {
		return -1, nil
	}
	bs := int64(f.disk.BlockSize())
	remaining := f.size - pos
	n := int64(len(buf))
	if n > remaining {
		n = remaining
	}
	var copied int64
	for copied < n {
		blockIndex := (pos + copied) / bs
		blockOffset := (pos + copied) % bs
		toCopy := bs - blockOffset
		if toCopy > n-copied {
			toCopy = n - copied
		}
		if int(blockIndex) < len(f.blocks) {
			copy(buf[copied:copied+toCopy], f.blocks[blockIndex].Bytes()[blockOffset:blockOffset+toCopy])
		} else {
			for i := int64(0); i < toCopy; i++ {
				buf[copied+i] = 0
			}
		}
		copied += toCopy
	}
	return int(copied), nil
}

// Write copies len(buf) bytes into the file starting at pos, growing the
// file (and allocating new blocks from the HeapDisk) as needed, and
// returns the number of bytes written. The caller
// must hold the content write lock.
func (f *File) Write(pos int64, buf []byte) (int, error) {
	bs := int64(f.disk.BlockSize())
	end := pos + int64(len(buf))

	neededBlocks := int((end + bs - 1) / bs)
	if neededBlocks > len(f.blocks) {
		if err := f.disk.Allocate(&f.blocks, neededBlocks-len(f.blocks)); err != nil {
			return 0, err
		}
	}

	var written int64
	for written < int64(len(buf)) {
		abs := pos + written
		blockIndex := abs / bs
		blockOffset := abs % bs
		toCopy := bs - blockOffset
		if toCopy > int64(len(buf))-written {
			toCopy = int64(len(buf)) - written
		}
		copy(f.blocks[blockIndex].Bytes()[blockOffset:blockOffset+toCopy], buf[written:written+toCopy])
		written += toCopy
	}

	if end > f.size {
		f.size = end
	}
	return int(written), nil
}

// Truncate sets the file's size to newSize, freeing blocks beyond it (and
// zeroing the tail of the new final block) if shrinking, or leaving a
// sparse hole if growing. The caller must hold the
// content write lock.
func (f *File) Truncate(newSize int64) {
	bs := int64(f.disk.BlockSize())
	if newSize < f.size {
		keepBlocks := int((newSize + bs - 1) / bs)
		if keepBlocks < len(f.blocks) {
			f.disk.Free(&f.blocks, len(f.blocks)-keepBlocks)
		}
		if keepBlocks > 0 && keepBlocks <= len(f.blocks) {
			offsetInLast := newSize - int64(keepBlocks-1)*bs
			disk.ZeroTail(f.blocks[keepBlocks-1], int(offsetInLast))
		}
	}
	f.size = newSize
}

// TransferTo moves count blocks by reference from f's tail to dst's tail,
// and adjusts both files' sizes accordingly.
// Both files' content write locks must be held by the caller.
func (f *File) TransferTo(dst *File, count int) {
	bs := int64(f.disk.BlockSize())
	f.disk.TransferTo(&f.blocks, &dst.blocks, count)
	moved := int64(count) * bs
	dst.size += moved
	f.size -= moved
	if f.size < 0 {
		f.size = 0
	}
}

// releaseAllBlocks frees every block the file holds, used when the file
// becomes unreferenced.
func (f *File) releaseAllBlocks() {
	f.disk.Free(&f.blocks, len(f.blocks))
	f.size = 0
}

// ReleaseIfUnreferenced frees the file's blocks once it has no remaining
// directory links and no open channel or stream handle. It is safe to
// call multiple times, and safe to call while handles remain open (the
// file's bytes stay readable/writable through them until the last one
// closes).
func (f *File) ReleaseIfUnreferenced() {
	if f.kind == KindRegularFile && f.Links() == 0 && !f.hasOpenHandles() {
		f.releaseAllBlocks()
	}
}
