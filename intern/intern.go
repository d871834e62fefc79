// Package intern provides a Robin-Hood open-addressed string interner: each
// distinct byte sequence is stored exactly once, and repeated lookups of
// the same bytes return the same backing storage.
package intern

import (
	"github.com/crimeraaa/dsa-sub000/mem"
)

const (
	fnvOffset uint32 = 0x811C9DC5
	fnvPrime  uint32 = 0x01000193
)

func hash(data []byte) uint32 {
	h := fnvOffset
	for _, c := range data {
		h ^= uint32(c)
		h *= fnvPrime
	}
	return h
}

// Record is one interned string: its length, precomputed hash, and a
// NUL-terminated backing buffer. Records are never mutated or moved once
// created, so pointers to one remain valid for the lifetime of the Table
// that owns it.
type Record struct {
	hash uint32
	data []byte // len(data) == Len()+1; data[Len()] == 0
}

// Len reports the interned string's length, excluding the NUL terminator.
func (r *Record) Len() int { return len(r.data) - 1 }

// Hash reports the string's precomputed FNV-1a hash.
func (r *Record) Hash() uint32 { return r.hash }

// Bytes returns the interned bytes, excluding the NUL terminator. Callers
// must not mutate the returned slice.
func (r *Record) Bytes() []byte { return r.data[:len(r.data)-1] }

// CString returns the interned bytes including the trailing NUL.
func (r *Record) CString() []byte { return r.data }

type entry struct {
	value *Record
	probe int
}

// loadFactorNum and loadFactorDen express the 3/4 load factor that
// triggers a resize: growing earlier than a full table keeps probe
// sequences short.
const (
	loadFactorNum = 3
	loadFactorDen = 4
)

// Table is a Robin-Hood open-addressed string interner. The zero Table is
// not usable; construct one with New.
type Table struct {
	allocator mem.Allocator
	entries   []entry
	count     int
	maxProbe  int
}

// New creates an empty Table backed by allocator. The table grows lazily
// on first insert.
func New(allocator mem.Allocator) *Table {
	return &Table{allocator: allocator}
}

// Len reports the number of distinct strings currently interned.
func (t *Table) Len() int { return t.count }

// Get interns text if it isn't already known and returns a view of the
// canonical backing bytes.
func (t *Table) Get(text []byte) ([]byte, error) {
	r, err := t.GetInterned(text)
	if err != nil {
		return nil, err
	}
	return r.Bytes(), nil
}

// GetCString is like Get but returns the NUL-terminated form.
func (t *Table) GetCString(text []byte) ([]byte, error) {
	r, err := t.GetInterned(text)
	if err != nil {
		return nil, err
	}
	return r.CString(), nil
}

// GetInterned interns text if necessary and returns its Record. Two calls
// with byte-equal text return the same *Record, so pointer comparison is a
// valid equality test for interned identity.
func (t *Table) GetInterned(text []byte) (*Record, error) {
	h := hash(text)
	if e := t.find(text, h); e != nil {
		return e.value, nil
	}
	return t.insert(text, h)
}

// find walks the probe sequence for (text, h) in the current table and
// returns the matching entry, or nil if text is not yet interned.
func (t *Table) find(text []byte, h uint32) *entry {
	if len(t.entries) == 0 {
		return nil
	}
	cap := uint32(len(t.entries))
	for i := h % cap; ; i = (i + 1) % cap {
		e := &t.entries[i]
		if e.value == nil {
			return nil
		}
		if e.value.hash == h && e.value.Len() == len(text) && string(e.value.Bytes()) == string(text) {
			return e
		}
		// Robin-Hood invariant: once we pass a slot whose probe distance is
		// less than how far we've already travelled, text can't be present.
		if e.probe < probeDistance(i, h, cap) {
			return nil
		}
	}
}

func probeDistance(slot, h, cap uint32) int {
	ideal := h % cap
	if slot >= ideal {
		return int(slot - ideal)
	}
	return int(cap - ideal + slot)
}

func (t *Table) insert(text []byte, h uint32) (*Record, error) {
	if t.count >= (len(t.entries)*loadFactorNum)/loadFactorDen {
		newCap := 8
		if len(t.entries) != 0 {
			newCap = len(t.entries) * 2
		}
		if err := t.resize(newCap); err != nil {
			return nil, err
		}
	}

	value, err := t.newRecord(text, h)
	if err != nil {
		return nil, err
	}

	cap := uint32(len(t.entries))
	cur := entry{value: value, probe: 0}
	for i := h % cap; ; i = (i + 1) % cap {
		slot := &t.entries[i]
		if slot.value == nil {
			*slot = cur
			t.count++
			t.updateMaxProbe(cur.probe)
			return value, nil
		}
		if slot.probe < cur.probe {
			*slot, cur = cur, *slot
		}
		cur.probe++
		t.updateMaxProbe(cur.probe)
	}
}

func (t *Table) updateMaxProbe(probe int) {
	if probe > t.maxProbe {
		t.maxProbe = probe
	}
}

func (t *Table) newRecord(text []byte, h uint32) (*Record, error) {
	data, err := mem.MakeSlice[byte](t.allocator, len(text)+1)
	if err != nil {
		return nil, err
	}
	copy(data, text)
	data[len(text)] = 0
	return &Record{hash: h, data: data}, nil
}

// resize reinserts every live record into a fresh table of newCap slots,
// recomputing probe distances (they necessarily change under a new
// modulus). newCap must be a power of two. This uses MakeSlice rather than
// Resize: a rehash needs every slot zeroed, not the old slots' bytes copied
// verbatim into the same indices, since those indices are about to mean
// something different under the new modulus.
func (t *Table) resize(newCap int) error {
	fresh, err := mem.MakeSlice[entry](t.allocator, newCap)
	if err != nil {
		return err
	}

	old := t.entries
	t.entries = fresh
	t.maxProbe = 0

	for _, e := range old {
		if e.value == nil {
			continue
		}
		cap := uint32(len(t.entries))
		cur := entry{value: e.value, probe: 0}
		for i := e.value.hash % cap; ; i = (i + 1) % cap {
			slot := &t.entries[i]
			if slot.value == nil {
				*slot = cur
				t.updateMaxProbe(cur.probe)
				break
			}
			if slot.probe < cur.probe {
				*slot, cur = cur, *slot
			}
			cur.probe++
			t.updateMaxProbe(cur.probe)
		}
	}
	return nil
}

// MaxProbe reports the longest probe distance any live entry has travelled
// from its ideal slot, a useful diagnostic for table health.
func (t *Table) MaxProbe() int { return t.maxProbe }

// Cap reports the table's current slot count.
func (t *Table) Cap() int { return len(t.entries) }
