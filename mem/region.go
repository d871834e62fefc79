package mem

import (
	"unsafe"

	"github.com/cznic/mathutil"
)

// DefaultPageSize is the size, in bytes, of each memory block a Region
// reserves from the platform when it needs more space. Overrideable per
// Region via NewRegionSize.
const DefaultPageSize = 4096

// block is one page-backed chunk of a Region's chain. buf is a separate
// allocation from the header; Go slices already carry their own length, so
// there is no need for a parallel `size` field - cap(buf) (equivalently
// len(buf), since buf is never re-sliced to a shorter capacity) serves that
// role.
type block struct {
	prev *block
	used uintptr
	buf  []byte
}

func newBlock(size int, prev *block) (*block, error) {
	buf, err := reservePage(size)
	if err != nil {
		return nil, err
	}
	return &block{prev: prev, buf: buf}, nil
}

// rawAlloc carves size bytes, aligned to align, out of the block's
// remaining capacity. Reports false if the block cannot accommodate the
// request.
func (b *block) rawAlloc(size, align uintptr) ([]byte, bool) {
	if len(b.buf) == 0 {
		return nil, false
	}
	base := uintptr(unsafe.Pointer(&b.buf[0]))
	start := base + b.used
	if align > 0 {
		if rem := start % align; rem != 0 {
			start += align - rem
		}
	}
	end := start + size
	if end > base+uintptr(len(b.buf)) {
		return nil, false
	}
	b.used = end - base
	off := start - base
	return b.buf[off : off+size : off+size], true
}

// isLastAlloc reports whether old is the most recent allocation handed out
// by b, i.e. its end lines up with b's current used cursor. Only such an
// allocation may be extended or shrunk in place.
func (b *block) isLastAlloc(old []byte) bool {
	if len(old) == 0 || len(b.buf) == 0 {
		return false
	}
	base := uintptr(unsafe.Pointer(&b.buf[0]))
	oldAddr := uintptr(unsafe.Pointer(&old[0]))
	return oldAddr+uintptr(len(old)) == base+b.used
}

// Region is a chained, page-backed bump allocator: allocations are handed
// out by advancing a cursor through the current block (begin), and a fresh
// block is reserved from the platform only when nothing in the chain has
// room.
//
// A Region is not safe for concurrent use.
type Region struct {
	begin, end *block
	pageSize   int
}

// NewRegion creates a Region with one block of DefaultPageSize bytes.
func NewRegion() (*Region, error) {
	return NewRegionSize(DefaultPageSize)
}

// NewRegionSize creates a Region whose blocks are pageSize bytes by
// default (larger individual allocations still get their own
// appropriately-sized block).
func NewRegionSize(pageSize int) (*Region, error) {
	blk, err := newBlock(pageSize, nil)
	if err != nil {
		return nil, err
	}
	return &Region{begin: blk, end: blk, pageSize: pageSize}, nil
}

// Allocator returns an Allocator view of r, so r can be passed anywhere an
// Allocator is expected (strs.Builder, intern.Table, the decl package's
// type table).
func (r *Region) Allocator() Allocator { return (*regionAllocator)(r) }

type regionAllocator Region

func (a *regionAllocator) region() *Region { return (*Region)(a) }

func (a *regionAllocator) Alloc(size, align uintptr) ([]byte, error) {
	return a.region().Alloc(size, align)
}

func (a *regionAllocator) Resize(old []byte, newSize, align uintptr) ([]byte, error) {
	return a.region().Resize(old, newSize, align)
}

func (a *regionAllocator) Free(b []byte) error {
	return &AllocError{Op: "Free", Size: uintptr(len(b)), Err: ErrNotImplemented}
}

func (a *regionAllocator) FreeAll() error {
	a.region().FreeAll()
	return nil
}

// Alloc carves size bytes, aligned to align, out of the first block in the
// chain (walking from begin toward end) that has room, reserving a new
// block only if none do.
func (r *Region) Alloc(size, align uintptr) ([]byte, error) {
	for b := r.begin; b != nil; b = b.prev {
		if b.used+size > uintptr(len(b.buf)) {
			continue
		}
		if data, ok := b.rawAlloc(size, align); ok {
			return data, nil
		}
	}
	return r.chainNewBlockAndAlloc(size, align)
}

func (r *Region) chainNewBlockAndAlloc(size, align uintptr) ([]byte, error) {
	want := int(size + align)
	blockSize := mathutil.Max(want, r.pageSize)
	blk, err := newBlock(blockSize, r.begin)
	if err != nil {
		return nil, &AllocError{Op: "Alloc", Size: size, Align: align, Err: ErrOutOfMemory}
	}
	r.begin = blk
	data, ok := blk.rawAlloc(size, align)
	if !ok {
		// Can't happen: blockSize was sized to fit size+align slack.
		return nil, &AllocError{Op: "Alloc", Size: size, Align: align, Err: ErrOutOfMemory}
	}
	return data, nil
}

// Resize grows or shrinks old in place when old is the most recent
// allocation from its owning block; otherwise it allocates fresh space and
// copies the old bytes over. This is the reason a Region amortizes to zero
// copies for a builder that is always the most recent allocation - keep it
// that way.
func (r *Region) Resize(old []byte, newSize, align uintptr) ([]byte, error) {
	oldSize := uintptr(len(old))
	for b := r.begin; b != nil; b = b.prev {
		if !b.isLastAlloc(old) {
			continue
		}

		if oldSize >= newSize {
			b.used -= oldSize - newSize
			return old[:newSize:newSize], nil
		}

		added := newSize - oldSize
		if b.used+added <= uintptr(len(b.buf)) {
			base := uintptr(unsafe.Pointer(&b.buf[0]))
			off := uintptr(unsafe.Pointer(&old[0])) - base
			b.used += added
			return b.buf[off : off+newSize : off+newSize], nil
		}

		// Can't extend in place: release the tail from this block and
		// fall through to a fresh allocation elsewhere in the chain.
		b.used -= oldSize
		break
	}

	newBuf, err := r.Alloc(newSize, align)
	if err != nil {
		return nil, err
	}
	if old != nil {
		copy(newBuf, old)
	}
	return newBuf, nil
}

// FreeAll releases every block except end, the oldest (and permanent)
// block, and resets end's usage to zero. Callers must not retain pointers
// into any Region allocation across a FreeAll.
func (r *Region) FreeAll() {
	for b := r.begin; b != r.end; {
		prev := b.prev
		releasePage(b.buf)
		b = prev
	}
	r.end.used = 0
	r.begin = r.end
}

// Destroy releases every block in the chain, including end. r must not be
// used afterward.
func (r *Region) Destroy() {
	for b := r.begin; b != nil; {
		prev := b.prev
		releasePage(b.buf)
		b = prev
	}
	r.begin = nil
	r.end = nil
}

// Usage reports the number of bytes actively handed out (used) and the
// total capacity (total) across every block owned by r. Neither figure
// counts any Go-side bookkeeping, only buffer bytes.
func (r *Region) Usage() (used, total uintptr) {
	for b := r.begin; b != nil; b = b.prev {
		used += b.used
		total += uintptr(len(b.buf))
	}
	return used, total
}

// Begin and End expose the current and permanent block addresses for
// diagnostics.
func (r *Region) Begin() uintptr { return uintptr(unsafe.Pointer(r.begin)) }
func (r *Region) End() uintptr   { return uintptr(unsafe.Pointer(r.end)) }
