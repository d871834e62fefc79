// Package strs provides an immutable string view and a growable builder on
// top of a mem.Allocator.
package strs

import (
	"github.com/cznic/mathutil"

	"github.com/crimeraaa/dsa-sub000/mem"
)

// View is an immutable, borrowed slice of bytes. Go slices are already a
// (pointer, length) pair, so there is no need for a dedicated wrapper
// type; View exists purely so call sites read the same way other
// pointer-and-length APIs in this module do.
type View = []byte

// FromString returns a copy of text's bytes as a View. The returned View
// does not alias text's storage.
func FromString(text string) View { return []byte(text) }

// Builder owns a growable byte buffer, always NUL-terminated past its
// logical length when its capacity is nonzero (len(buf) == n, and byte n
// of its capacity is 0), so the buffer can double as a C string via
// CString.
type Builder struct {
	allocator mem.Allocator
	buf       []byte
	n         int
}

// NewBuilder creates an empty Builder backed by allocator.
func NewBuilder(allocator mem.Allocator) *Builder {
	return &Builder{allocator: allocator}
}

// NewFixedBuilder creates a Builder backed by a caller-supplied, fixed-size
// buffer and the null allocator, useful for stack-scratch formatting that
// must not grow.
func NewFixedBuilder(buf []byte) *Builder {
	if cap(buf) > 0 {
		buf[:1][0] = 0
	}
	return &Builder{allocator: mem.Null, buf: buf[:0]}
}

// Len reports the builder's current logical length.
func (b *Builder) Len() int { return b.n }

// Reset truncates the builder back to empty without releasing its buffer.
func (b *Builder) Reset() {
	b.n = 0
	if cap(b.buf) > 0 {
		b.buf = b.buf[:1]
		b.buf[0] = 0
	}
	b.buf = b.buf[:0]
}

func (b *Builder) ensure(extra int) error {
	need := b.n + extra + 1 // +1 for the NUL terminator
	if need < cap(b.buf) {
		return nil
	}
	newCap := mathutil.Max(8, cap(b.buf)*2)
	for newCap <= need {
		newCap *= 2
	}
	grown, err := b.allocator.Resize(b.buf[:cap(b.buf)], uintptr(newCap), 1)
	if err != nil {
		return err
	}
	b.buf = grown[:b.n]
	return nil
}

// AppendByte appends a single byte.
func (b *Builder) AppendByte(c byte) error {
	return b.AppendBytes([]byte{c})
}

// AppendBytes appends text, growing the buffer first if needed. On error
// the builder is left unchanged.
func (b *Builder) AppendBytes(text []byte) error {
	if err := b.ensure(len(text)); err != nil {
		return err
	}
	b.buf = b.buf[:b.n+len(text)+1]
	copy(b.buf[b.n:], text)
	b.n += len(text)
	b.buf[b.n] = 0
	b.buf = b.buf[:b.n]
	return nil
}

// AppendString appends text.
func (b *Builder) AppendString(text string) error {
	return b.AppendBytes([]byte(text))
}

// AppendCString appends text, stopping at (and not including) its first
// NUL byte.
func (b *Builder) AppendCString(text []byte) error {
	return b.AppendBytes(trimCString(text))
}

// PrependByte prepends a single byte.
func (b *Builder) PrependByte(c byte) error {
	return b.PrependBytes([]byte{c})
}

// PrependBytes inserts text before the builder's existing content: the
// existing bytes are shifted right by len(text), then text is copied into
// the freed-up space at offset 0. On error the builder is left unchanged.
func (b *Builder) PrependBytes(text []byte) error {
	if err := b.ensure(len(text)); err != nil {
		return err
	}
	b.buf = b.buf[:b.n+len(text)+1]
	copy(b.buf[len(text):], b.buf[:b.n])
	copy(b.buf[:len(text)], text)
	b.n += len(text)
	b.buf[b.n] = 0
	b.buf = b.buf[:b.n]
	return nil
}

// PrependString prepends text.
func (b *Builder) PrependString(text string) error {
	return b.PrependBytes([]byte(text))
}

// PrependCString prepends text, stopping at (and not including) its first
// NUL byte.
func (b *Builder) PrependCString(text []byte) error {
	return b.PrependBytes(trimCString(text))
}

// View returns the builder's current contents as a borrowed View. The
// returned slice is invalidated by any further mutation of b.
func (b *Builder) View() View { return b.buf[:b.n] }

// CString returns the builder's contents as a NUL-terminated byte slice
// suitable for interop with NUL-terminated APIs. The trailing NUL is part
// of the returned slice but not counted by Len.
func (b *Builder) CString() []byte { return b.buf[:b.n+1] }

func trimCString(text []byte) []byte {
	for i, c := range text {
		if c == 0 {
			return text[:i]
		}
	}
	return text
}
