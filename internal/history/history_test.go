package history_test

import (
	"testing"

	"github.com/xtding233/parabola/internal/history"
	"github.com/xtding233/parabola/internal/quad"
)

func tr(n float64) quad.Triple { return quad.Triple{A: n, B: -n, C: n / 2} }

func TestUndoRedoRoundTrip(t *testing.T) {
	s := history.New(0)
	s.Record(tr(1))
	s.Record(tr(2))

	got, ok := s.Undo()
	if !ok || got != tr(1) {
		t.Fatalf("undo: got %v ok=%v", got, ok)
	}
	got, ok = s.Redo()
	if !ok || got != tr(2) {
		t.Fatalf("redo: got %v ok=%v", got, ok)
	}
	if cur, _ := s.Current(); cur != tr(2) {
		t.Fatalf("current=%v want %v", cur, tr(2))
	}
}

func TestBoundariesAreNoOps(t *testing.T) {
	s := history.New(0)
	if _, ok := s.Undo(); ok {
		t.Fatalf("undo on empty store must be a no-op")
	}
	if _, ok := s.Redo(); ok {
		t.Fatalf("redo on empty store must be a no-op")
	}

	s.Record(tr(1))
	s.Record(tr(2))
	got, ok := s.Redo()
	if ok || got != tr(2) || s.Cursor() != 1 {
		t.Fatalf("redo at tail: got %v ok=%v cursor=%d", got, ok, s.Cursor())
	}
	s.Undo()
	got, ok = s.Undo()
	if ok || got != tr(1) || s.Cursor() != 0 {
		t.Fatalf("undo at head: got %v ok=%v cursor=%d", got, ok, s.Cursor())
	}
	if s.CanUndo() || !s.CanRedo() {
		t.Fatalf("CanUndo=%v CanRedo=%v at head", s.CanUndo(), s.CanRedo())
	}
}

func TestEviction(t *testing.T) {
	s := history.New(0)
	evictions := 0
	for i := 1; i <= 60; i++ {
		if s.Record(tr(float64(i))) {
			evictions++
		}
	}
	if s.Len() != history.DefaultCapacity {
		t.Fatalf("len=%d want %d", s.Len(), history.DefaultCapacity)
	}
	if evictions != 10 {
		t.Fatalf("evictions=%d want 10", evictions)
	}
	if cur, _ := s.Current(); cur != tr(60) {
		t.Fatalf("cursor addresses %v want %v", cur, tr(60))
	}
	if s.Cursor() != 49 {
		t.Fatalf("cursor=%d want 49", s.Cursor())
	}
	if first := s.Entries()[0]; first != tr(11) {
		t.Fatalf("oldest=%v want %v", first, tr(11))
	}
}

func TestEvictionAfterUndoKeepsCursorOnNewEntry(t *testing.T) {
	s := history.New(3)
	s.Record(tr(1))
	s.Record(tr(2))
	s.Record(tr(3))
	s.Undo()
	s.Record(tr(4)) // prunes 3, no eviction
	if s.Len() != 3 {
		t.Fatalf("len=%d", s.Len())
	}
	s.Record(tr(5)) // evicts 1
	if cur, _ := s.Current(); cur != tr(5) {
		t.Fatalf("current=%v", cur)
	}
	want := []quad.Triple{tr(2), tr(4), tr(5)}
	got := s.Entries()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("entries=%v want %v", got, want)
		}
	}
}

func TestRedoBranchPruned(t *testing.T) {
	s := history.New(0)
	s.Record(tr(1))
	s.Record(tr(2))
	s.Undo()
	s.Record(tr(3))

	got := s.Entries()
	if len(got) != 2 || got[0] != tr(1) || got[1] != tr(3) {
		t.Fatalf("entries=%v want [T1 T3]", got)
	}
	if _, ok := s.Redo(); ok {
		t.Fatalf("redo after pruning must be a no-op")
	}
}

func TestEntriesIsACopy(t *testing.T) {
	s := history.New(0)
	s.Record(tr(1))
	e := s.Entries()
	e[0] = tr(9)
	if cur, _ := s.Current(); cur != tr(1) {
		t.Fatalf("store mutated through Entries: %v", cur)
	}
}
