package decl

import (
	"github.com/cznic/mathutil"

	"github.com/crimeraaa/dsa-sub000/mem"
)

// Entry pairs a CType with the qualifiers that augment it. Owned records
// whether Type was dynamically built for this entry specifically (and so
// must be freed by Destroy) versus pointing at a shared basicTypes slot.
// The current table never sets Owned true - only basic, unqualified and
// qualified entries pointing at the static basic-type array are ever
// added - but the field is part of the data model for when pointer/struct/
// enum/union entries start owning dynamically-built CTypes.
type Entry struct {
	Type       *CType
	Qualifiers QualifierFlag
	Owned      bool
}

func entryEqual(a, b *Entry) bool {
	if a.Qualifiers != b.Qualifiers {
		return false
	}
	if a.Type.Kind != b.Type.Kind {
		return false
	}
	switch a.Type.Kind {
	case KindBasic:
		return a.Type.BasicKind == b.Type.BasicKind && a.Type.Flags == b.Type.Flags
	case KindPointer:
		return a.Type.Pointee == b.Type.Pointee
	default:
		return false
	}
}

// Table is a dynamic, deduplicating sequence of Entry values, keyed by
// structural equality. NewTable seeds one unqualified entry per basic kind.
type Table struct {
	allocator mem.Allocator
	entries   []*Entry
}

// NewTable creates a Table seeded with every basic kind, unqualified.
func NewTable(allocator mem.Allocator) (*Table, error) {
	t := &Table{allocator: allocator}
	for k := BasicBool; k < basicKindCount; k++ {
		bt := BasicType(k)
		if _, err := t.AddBasicQual(bt.BasicKind, 0); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Len reports the number of distinct entries in the table.
func (t *Table) Len() int { return len(t.entries) }

// GetBasicQual returns the first entry matching (kind, qualifiers), or nil
// if none exists yet.
func (t *Table) GetBasicQual(kind BasicKind, qualifiers QualifierFlag) *Entry {
	for _, e := range t.entries {
		if e.Type.Kind == KindBasic && e.Type.BasicKind == kind && e.Qualifiers == qualifiers {
			return e
		}
	}
	return nil
}

// AddBasicQual returns the existing entry for (kind, qualifiers) if
// present, otherwise appends and returns a new one pointing at the
// canonical basicTypes[kind] entry.
func (t *Table) AddBasicQual(kind BasicKind, qualifiers QualifierFlag) (*Entry, error) {
	if e := t.GetBasicQual(kind, qualifiers); e != nil {
		return e, nil
	}

	bt := BasicType(kind)
	entry := &Entry{Type: &bt, Qualifiers: qualifiers, Owned: false}
	if err := t.append(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (t *Table) append(entry *Entry) error {
	if len(t.entries) == cap(t.entries) {
		newCap := mathutil.Max(8, cap(t.entries)*2)
		grown, err := mem.Resize[*Entry](t.allocator, t.entries, newCap)
		if err != nil {
			return err
		}
		t.entries = grown[:len(t.entries)]
	}
	t.entries = append(t.entries, entry)
	return nil
}

// GetByInfo returns the first entry structurally equal to query, or nil.
func (t *Table) GetByInfo(query *Entry) *Entry {
	for _, e := range t.entries {
		if entryEqual(e, query) {
			return e
		}
	}
	return nil
}

// Destroy drops every entry and the entry slice. Entries pointing at a
// shared basicTypes slot are skipped. For an Owned entry it calls the
// allocator's Free with a nil slice, so the owned CType's memory is not
// handed back to the allocator; the entry slice is not passed to Free
// either. No entry is Owned yet, since only basic entries exist.
func (t *Table) Destroy() error {
	for _, e := range t.entries {
		if !e.Owned {
			continue
		}
		if err := t.allocator.Free(nil); err != nil {
			return err
		}
	}
	t.entries = nil
	return nil
}
