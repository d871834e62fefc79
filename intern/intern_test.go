package intern

import (
	"fmt"
	"sort"
	"testing"

	"github.com/cznic/sortutil"

	"github.com/crimeraaa/dsa-sub000/mem"
)

func TestGetInternedReturnsSamePointerForEqualBytes(t *testing.T) {
	tbl := New(mem.Heap)

	a, err := tbl.GetInterned([]byte("hello"))
	if err != nil {
		t.Fatalf("GetInterned: %v", err)
	}
	b, err := tbl.GetInterned([]byte("hello"))
	if err != nil {
		t.Fatalf("GetInterned: %v", err)
	}
	if a != b {
		t.Fatal("expected identical pointers for equal interned strings")
	}
	if tbl.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", tbl.Len())
	}
}

func TestGetInternedDistinguishesDifferentBytes(t *testing.T) {
	tbl := New(mem.Heap)

	a, err := tbl.GetInterned([]byte("foo"))
	if err != nil {
		t.Fatalf("GetInterned: %v", err)
	}
	b, err := tbl.GetInterned([]byte("bar"))
	if err != nil {
		t.Fatalf("GetInterned: %v", err)
	}
	if a == b {
		t.Fatal("expected distinct pointers for distinct strings")
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
}

func TestGetReturnsEqualBytesForRepeatCalls(t *testing.T) {
	tbl := New(mem.Heap)

	a, err := tbl.Get([]byte("repeat"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	b, err := tbl.Get([]byte("repeat"))
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(a) != string(b) {
		t.Fatalf("a = %q, b = %q, want equal", a, b)
	}
}

func TestGetCStringIsNulTerminated(t *testing.T) {
	tbl := New(mem.Heap)
	cs, err := tbl.GetCString([]byte("x"))
	if err != nil {
		t.Fatalf("GetCString: %v", err)
	}
	if len(cs) != 2 || cs[0] != 'x' || cs[1] != 0 {
		t.Fatalf("GetCString = %v, want [x 0]", cs)
	}
}

func TestTableGrowsAcrossResizeBoundary(t *testing.T) {
	tbl := New(mem.Heap)

	const n = 40
	records := make([]*Record, 0, n)
	for i := 0; i < n; i++ {
		r, err := tbl.GetInterned([]byte(fmt.Sprintf("key-%d", i)))
		if err != nil {
			t.Fatalf("GetInterned(%d): %v", i, err)
		}
		records = append(records, r)
	}
	if tbl.Len() != n {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), n)
	}
	if tbl.Cap() < n {
		t.Fatalf("Cap() = %d, want >= %d", tbl.Cap(), n)
	}

	// Every record must still resolve to itself after however many resizes
	// occurred along the way.
	for i, want := range records {
		got, err := tbl.GetInterned([]byte(fmt.Sprintf("key-%d", i)))
		if err != nil {
			t.Fatalf("GetInterned(%d) post-resize: %v", i, err)
		}
		if got != want {
			t.Fatalf("record %d identity changed across resize", i)
		}
	}

	// Recover each record's final slot index and sort them for a
	// deterministic, order-independent check: every record must land in a
	// distinct slot, and every slot index must be in range.
	slots := make(sortutil.Int64Slice, 0, n)
	for _, want := range records {
		found := false
		for i := range tbl.entries {
			if tbl.entries[i].value == want {
				slots = append(slots, int64(i))
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("record %v has no backing slot after resize", want)
		}
	}
	sort.Sort(slots)
	for i, slot := range slots {
		if slot < 0 || int(slot) >= tbl.Cap() {
			t.Fatalf("slot[%d] = %d out of range [0, %d)", i, slot, tbl.Cap())
		}
		if i > 0 && slot == slots[i-1] {
			t.Fatalf("duplicate slot %d recovered for two distinct records", slot)
		}
	}
}

func TestEmptyTableCapStartsAtZero(t *testing.T) {
	tbl := New(mem.Heap)
	if tbl.Cap() != 0 {
		t.Fatalf("Cap() = %d, want 0", tbl.Cap())
	}
	if _, err := tbl.GetInterned([]byte("first")); err != nil {
		t.Fatalf("GetInterned: %v", err)
	}
	if tbl.Cap() != 8 {
		t.Fatalf("Cap() after first insert = %d, want 8", tbl.Cap())
	}
}

func TestRecordBytesExcludesNulAndCStringIncludesIt(t *testing.T) {
	tbl := New(mem.Heap)
	r, err := tbl.GetInterned([]byte("abc"))
	if err != nil {
		t.Fatalf("GetInterned: %v", err)
	}
	if r.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", r.Len())
	}
	if len(r.Bytes()) != 3 {
		t.Fatalf("len(Bytes()) = %d, want 3", len(r.Bytes()))
	}
	if len(r.CString()) != 4 {
		t.Fatalf("len(CString()) = %d, want 4", len(r.CString()))
	}
}
