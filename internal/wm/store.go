package wm

// record is the per-window state kept by the store. Visibility (minimised)
// and the fullscreen override live in the ledger and overlay types so that
// their invariants cannot drift from the records.
type record struct {
	window   Window
	geometry Geometry // live geometry, what the layout renders
	saved    Geometry // last floating geometry, restored when a window starts floating
	mode     Mode
}

// store is the ordered window collection. Tiled records always come before
// floating ones; insert keeps that partition without re-sorting.
type store struct {
	records []record
}

func (s *store) len() int {
	return len(s.records)
}

func (s *store) at(i int) *record {
	return &s.records[i]
}

// index returns the position of w, or -1.
func (s *store) index(w Window) int {
	for i := range s.records {
		if s.records[i].window == w {
			return i
		}
	}
	return -1
}

func (s *store) contains(w Window) bool {
	return s.index(w) >= 0
}

// partition returns the position of the first floating record, or len when
// every record is tiled.
func (s *store) partition() int {
	for i := range s.records {
		if s.records[i].mode == Floating {
			return i
		}
	}
	return len(s.records)
}

// insert places r according to its mode and returns its position. Floating
// records go to the tail; tiled records go right before the first floating one.
func (s *store) insert(r record) int {
	if r.mode == Floating {
		s.records = append(s.records, r)
		return len(s.records) - 1
	}

	pos := s.partition()
	s.records = append(s.records, record{})
	copy(s.records[pos+1:], s.records[pos:])
	s.records[pos] = r
	return pos
}

// removeAt deletes the record at i and returns it.
func (s *store) removeAt(i int) record {
	r := s.records[i]
	s.records = append(s.records[:i], s.records[i+1:]...)
	return r
}

func (s *store) swap(i, j int) {
	s.records[i], s.records[j] = s.records[j], s.records[i]
}

func (s *store) windows() []Window {
	out := make([]Window, 0, len(s.records))
	for i := range s.records {
		out = append(out, s.records[i].window)
	}
	return out
}
