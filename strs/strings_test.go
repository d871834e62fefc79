package strs

import (
	"bytes"
	"errors"
	"testing"

	"github.com/crimeraaa/dsa-sub000/mem"
)

func TestBuilderAppendGrowsGeometrically(t *testing.T) {
	b := NewBuilder(mem.Heap)
	for i := 0; i < 20; i++ {
		if err := b.AppendByte('x'); err != nil {
			t.Fatalf("AppendByte: %v", err)
		}
	}
	if b.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", b.Len())
	}
	if !bytes.Equal(b.View(), bytes.Repeat([]byte{'x'}, 20)) {
		t.Fatalf("View() = %q", b.View())
	}
	// 8 bytes at first, doubled to 16 at the 7th byte and to 32 at the 15th.
	if cap(b.buf) != 32 {
		t.Fatalf("cap = %d, want 32", cap(b.buf))
	}
}

func TestBuilderCStringIsNulTerminated(t *testing.T) {
	b := NewBuilder(mem.Heap)
	if err := b.AppendString("hi"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}
	cs := b.CString()
	if len(cs) != 3 || cs[2] != 0 {
		t.Fatalf("CString() = %v, want [h i 0]", cs)
	}
}

func TestBuilderPrependOrdersBytesCorrectly(t *testing.T) {
	b := NewBuilder(mem.Heap)
	if err := b.AppendString("world"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}
	if err := b.PrependString("hello "); err != nil {
		t.Fatalf("PrependString: %v", err)
	}
	if string(b.View()) != "hello world" {
		t.Fatalf("View() = %q, want %q", b.View(), "hello world")
	}
}

func TestBuilderAppendCStringStopsAtNul(t *testing.T) {
	b := NewBuilder(mem.Heap)
	if err := b.AppendCString([]byte("abc\x00def")); err != nil {
		t.Fatalf("AppendCString: %v", err)
	}
	if string(b.View()) != "abc" {
		t.Fatalf("View() = %q, want %q", b.View(), "abc")
	}
}

func TestBuilderResetKeepsCapacity(t *testing.T) {
	b := NewBuilder(mem.Heap)
	if err := b.AppendString("hello"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}
	capBefore := cap(b.buf)
	b.Reset()
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", b.Len())
	}
	if cap(b.buf) != capBefore {
		t.Fatalf("cap after Reset = %d, want %d", cap(b.buf), capBefore)
	}
	if err := b.AppendString("hi"); err != nil {
		t.Fatalf("AppendString after Reset: %v", err)
	}
	if string(b.View()) != "hi" {
		t.Fatalf("View() = %q, want %q", b.View(), "hi")
	}
}

func TestFixedBuilderRejectsGrowthPastCapacity(t *testing.T) {
	buf := make([]byte, 4)
	b := NewFixedBuilder(buf)
	if err := b.AppendString("ab"); err != nil {
		t.Fatalf("AppendString: %v", err)
	}
	err := b.AppendString("too long for this buffer")
	if !errors.Is(err, mem.ErrNotImplemented) {
		t.Fatalf("AppendString: got %v, want ErrNotImplemented", err)
	}
}

func TestFromStringReturnsTextBytes(t *testing.T) {
	v := FromString("abc")
	if string(v) != "abc" {
		t.Fatalf("FromString = %q, want %q", v, "abc")
	}
}
