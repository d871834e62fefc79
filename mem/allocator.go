// Package mem provides a pluggable low-level allocator abstraction: a
// single interface with a handful of operations, backed by swappable
// implementations, plus a region (arena) allocator for bulk, short-lived
// allocations.
package mem

import (
	"errors"
	"fmt"
	"unsafe"
)

// Sentinel errors. Compare against these with errors.Is; concrete failures
// are wrapped in an *AllocError that carries the offending operation's
// arguments for diagnostics.
var (
	// ErrOutOfMemory indicates a genuine allocation failure.
	ErrOutOfMemory = errors.New("mem: out of memory")

	// ErrNotImplemented indicates the backend does not support the
	// requested mode. The null allocator returns this for Alloc/Resize;
	// every backend may return it for FreeAll.
	ErrNotImplemented = errors.New("mem: mode not implemented")
)

// AllocError reports a failed allocator operation along with the arguments
// that produced it. Every fallible path in this package returns one of
// these rather than a bare sentinel, carrying the offending call's context
// the way a well-behaved error value should.
type AllocError struct {
	Op    string
	Size  uintptr
	Align uintptr
	Err   error
}

func (e *AllocError) Error() string {
	if e.Align == 0 {
		return fmt.Sprintf("mem: %s: size=%d: %v", e.Op, e.Size, e.Err)
	}
	return fmt.Sprintf("mem: %s: size=%d align=%d: %v", e.Op, e.Size, e.Align, e.Err)
}

func (e *AllocError) Unwrap() error { return e.Err }

// Allocator is the single capability every backend implements. Size and
// align are in bytes; align must be a power of two. Resize may return a new
// slice; callers must stop using old once Resize returns successfully.
// Free returns nil on the heap, panic and null backends, which have nothing
// to release explicitly; the region backend reports ErrNotImplemented for
// it. FreeAll reports ErrNotImplemented on every backend except the
// region's.
type Allocator interface {
	Alloc(size, align uintptr) ([]byte, error)
	Resize(old []byte, newSize, align uintptr) ([]byte, error)
	Free(b []byte) error
	FreeAll() error
}

// heapAllocator wraps Go's built-in allocator via make([]byte, n). Go's
// runtime does not surface allocation failure as a value except through a
// panic (for absurd sizes) or a fatal, unrecoverable throw (true system
// OOM) - the latter can't be converted to an error in any Go program, heap
// allocator or otherwise. heapAllocator recovers the former case and
// reports it as ErrOutOfMemory so the interface contract still holds for
// the failure modes Go lets us observe.
type heapAllocator struct{}

// Heap is a simple wrapper around Go's allocator.
var Heap Allocator = heapAllocator{}

func heapAlloc(op string, size, align uintptr) (b []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, err = nil, &AllocError{Op: op, Size: size, Align: align, Err: ErrOutOfMemory}
		}
	}()
	return make([]byte, size), nil
}

func (heapAllocator) Alloc(size, align uintptr) ([]byte, error) {
	return heapAlloc("Alloc", size, align)
}

func (heapAllocator) Resize(old []byte, newSize, align uintptr) ([]byte, error) {
	b, err := heapAlloc("Resize", newSize, align)
	if err != nil {
		return nil, err
	}
	copy(b, old)
	return b, nil
}

func (heapAllocator) Free(b []byte) error { return nil }

func (heapAllocator) FreeAll() error {
	return &AllocError{Op: "FreeAll", Err: ErrNotImplemented}
}

// panicAllocator wraps Heap and panics on any allocation failure. Useful
// for collections like the type table that would rather crash loudly than
// thread OOM handling through every call site.
type panicAllocator struct{}

// Panic panics when an allocation request cannot be fulfilled.
var Panic Allocator = panicAllocator{}

func (panicAllocator) Alloc(size, align uintptr) ([]byte, error) {
	b, err := Heap.Alloc(size, align)
	if err != nil {
		panic(err)
	}
	return b, nil
}

func (panicAllocator) Resize(old []byte, newSize, align uintptr) ([]byte, error) {
	b, err := Heap.Resize(old, newSize, align)
	if err != nil {
		panic(err)
	}
	return b, nil
}

func (panicAllocator) Free(b []byte) error { return Heap.Free(b) }
func (panicAllocator) FreeAll() error      { return Heap.FreeAll() }

// nullAllocator returns ErrNotImplemented for every allocating mode. It's
// useful for types that need an Allocator but are backed by fixed-size
// storage, e.g. a stack-buffer-backed strs.Builder.
type nullAllocator struct{}

// Null rejects every allocating call; it exists for fixed-size,
// non-growing storage that still needs to satisfy the Allocator interface.
var Null Allocator = nullAllocator{}

func (nullAllocator) Alloc(size, align uintptr) ([]byte, error) {
	return nil, &AllocError{Op: "Alloc", Size: size, Align: align, Err: ErrNotImplemented}
}

func (nullAllocator) Resize(old []byte, newSize, align uintptr) ([]byte, error) {
	return nil, &AllocError{Op: "Resize", Size: newSize, Align: align, Err: ErrNotImplemented}
}

func (nullAllocator) Free(b []byte) error { return nil }

func (nullAllocator) FreeAll() error {
	return &AllocError{Op: "FreeAll", Err: ErrNotImplemented}
}

// New allocates and zero-values a single T from a.
func New[T any](a Allocator) (*T, error) {
	var zero T
	b, err := a.Alloc(unsafe.Sizeof(zero), unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	return (*T)(unsafe.Pointer(&b[0])), nil
}

// MakeSlice allocates count zero-valued T.
func MakeSlice[T any](a Allocator, count int) ([]T, error) {
	if count == 0 {
		return nil, nil
	}
	var zero T
	size := unsafe.Sizeof(zero) * uintptr(count)
	b, err := a.Alloc(size, unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	ptr := (*T)(unsafe.Pointer(&b[0]))
	return unsafe.Slice(ptr, count), nil
}

// Resize grows or shrinks old to count elements of T, preserving whatever
// overlapping prefix fits in the new length. old may be nil.
func Resize[T any](a Allocator, old []T, count int) ([]T, error) {
	var zero T
	elemSize := unsafe.Sizeof(zero)

	var oldBytes []byte
	if len(old) != 0 {
		oldBytes = unsafe.Slice((*byte)(unsafe.Pointer(&old[0])), elemSize*uintptr(len(old)))
	}

	b, err := a.Resize(oldBytes, elemSize*uintptr(count), unsafe.Alignof(zero))
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	ptr := (*T)(unsafe.Pointer(&b[0]))
	return unsafe.Slice(ptr, count), nil
}
