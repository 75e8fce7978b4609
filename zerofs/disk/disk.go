// Package disk implements the shared block pool ("heap disk") regular
// files allocate their content from: a fixed-size
// byte-block pool with allocation, a bounded free-block cache, and
// reference-only transfers between files.
package disk

import (
	"sync"

	"github.com/pkg/errors"
)

// Block is a single fixed-size byte buffer, the unit of allocation within a
// regular file.
type Block struct {
	data []byte
}

// Bytes returns the block's backing buffer. Callers holding the owning
// file's content lock may read or write it directly.
func (b *Block) Bytes() []byte { return b.data }

func newBlock(size int) *Block {
	return &Block{data: make([]byte, size)}
}

func (b *Block) zero() {
	for i := range b.data {
		b.data[i] = 0
	}
}

// HeapDisk is a file-system-wide pool of fixed-size blocks. allocate, free,
// and transferTo are serialized through a single mutex.
type HeapDisk struct {
	blockSize           int
	maxBlockCount       int
	maxCachedBlockCount int

	mu                  sync.Mutex
	allocatedBlockCount int
	cache               []*Block
}

// New constructs a HeapDisk. If maxCachedBlockCount is negative, it is
// treated as equal to maxBlockCount.
func New(blockSize, maxBlockCount, maxCachedBlockCount int) *HeapDisk {
	if maxCachedBlockCount < 0 {
		maxCachedBlockCount = maxBlockCount
	}
	return &HeapDisk{
		blockSize:           blockSize,
		maxBlockCount:       maxBlockCount,
		maxCachedBlockCount: maxCachedBlockCount,
	}
}

// BlockSize returns the fixed block size for this disk.
func (d *HeapDisk) BlockSize() int { return d.blockSize }

// AllocatedBlockCount returns the number of blocks currently allocated to
// live files.
func (d *HeapDisk) AllocatedBlockCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.allocatedBlockCount
}

// CachedBlockCount returns the number of blocks currently sitting in the
// free-block cache.
func (d *HeapDisk) CachedBlockCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cache)
}

// Allocate appends n freshly-or-cache-sourced blocks to *blocks, satisfying
// as many as possible from the free cache before allocating fresh
// zero-initialized blocks.
func (d *HeapDisk) Allocate(blocks *[]*Block, n int) error {
	if n <= 0 {
		return nil
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	newAllocated := d.allocatedBlockCount + n
	if newAllocated > d.maxBlockCount {
		return errors.New("out of disk space")
	}

	fromCache := n
	if fromCache > len(d.cache) {
		fromCache = len(d.cache)
	}
	if fromCache > 0 {
		taken := d.cache[len(d.cache)-fromCache:]
		d.cache = d.cache[:len(d.cache)-fromCache]
		*blocks = append(*blocks, taken...)
	}

	fresh := n - fromCache
	for i := 0; i < fresh; i++ {
		*blocks = append(*blocks, newBlock(d.blockSize))
	}

	d.allocatedBlockCount = newAllocated
	return nil
}

// Free removes the last n blocks from *blocks, moving up to
// (maxCachedBlockCount - len(cache)) of them into the free cache by
// reference and dropping the rest.
func (d *HeapDisk) Free(blocks *[]*Block, n int) {
	if n <= 0 {
		return
	}
	if n > len(*blocks) {
		n = len(*blocks)
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	freed := (*blocks)[len(*blocks)-n:]
	*blocks = (*blocks)[:len(*blocks)-n]

	room := d.maxCachedBlockCount - len(d.cache)
	if room > 0 {
		toCache := room
		if toCache > len(freed) {
			toCache = len(freed)
		}
		d.cache = append(d.cache, freed[:toCache]...)
	}
	d.allocatedBlockCount -= n
}

// TransferTo moves the last count block references from *src to the tail
// of *dst without copying bytes.
func (d *HeapDisk) TransferTo(src, dst *[]*Block, count int) {
	if count <= 0 {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if count > len(*src) {
		count = len(*src)
	}
	moved := (*src)[len(*src)-count:]
	*src = (*src)[:len(*src)-count]
	*dst = append(*dst, moved...)
}

// ZeroTail zeros the bytes of the last block in blocks from offset to the
// end of the block, used when truncating mid-block.
func ZeroTail(block *Block, offset int) {
	for i := offset; i < len(block.data); i++ {
		block.data[i] = 0
	}
}
