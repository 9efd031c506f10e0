package history

import "github.com/xtding233/parabola/internal/quad"

// DefaultCapacity is how many triples the undo log keeps before evicting the oldest.
const DefaultCapacity = 50

// Store is a bounded, linear undo/redo log of parameter triples.
// - Record prunes the redo branch (everything after the cursor) before appending.
// - When the log grows past Capacity the oldest entry goes and the cursor shifts
// down by one, so it keeps pointing at the entry just recorded.
// - Undo/Redo at either end are no-ops and report false.
// Not safe for concurrent use; the visualizer handles one event at a time.
type Store struct {
	entries  []quad.Triple
	cursor   int
	capacity int
}

// New creates an empty store. capacity <= 0 means DefaultCapacity.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity, cursor: -1}
}

// Record appends t as the newest state and reports whether an old entry was evicted.
func (s *Store) Record(t quad.Triple) bool {
	if len(s.entries) > 0 && s.cursor < len(s.entries)-1 {
		s.entries = s.entries[:s.cursor+1]
	}
	s.entries = append(s.entries, t)
	s.cursor = len(s.entries) - 1
	if len(s.entries) > s.capacity {
		// copy down instead of reslicing so the backing array does not creep forward
		n := copy(s.entries, s.entries[1:])
		s.entries = s.entries[:n]
		s.cursor--
		return true
	}
	return false
}

// Undo moves the cursor back one entry and returns it.
// At the first entry (or when empty) it returns the current triple and false.
func (s *Store) Undo() (quad.Triple, bool) {
	if s.cursor <= 0 {
		cur, _ := s.Current()
		return cur, false
	}
	s.cursor--
	return s.entries[s.cursor], true
}

// Redo moves the cursor forward one entry and returns it.
// At the last entry (or when empty) it returns the current triple and false.
func (s *Store) Redo() (quad.Triple, bool) {
	if len(s.entries) == 0 || s.cursor >= len(s.entries)-1 {
		cur, _ := s.Current()
		return cur, false
	}
	s.cursor++
	return s.entries[s.cursor], true
}

func (s *Store) Current() (quad.Triple, bool) {
	if len(s.entries) == 0 {
		return quad.Triple{}, false
	}
	return s.entries[s.cursor], true
}

func (s *Store) CanUndo() bool { return s.cursor > 0 }
func (s *Store) CanRedo() bool { return len(s.entries) > 0 && s.cursor < len(s.entries)-1 }

func (s *Store) Len() int      { return len(s.entries) }
func (s *Store) Cursor() int   { return s.cursor }
func (s *Store) Capacity() int { return s.capacity }

// Entries returns a copy of the log, oldest first.
func (s *Store) Entries() []quad.Triple {
	return append([]quad.Triple(nil), s.entries...)
}
