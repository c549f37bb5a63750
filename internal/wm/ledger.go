package wm

// ledger records minimised windows in the order they were hidden, oldest
// first. It is the only place minimisation is stored.
type ledger struct {
	order []Window
	set   map[Window]struct{}
}

func newLedger() ledger {
	return ledger{set: make(map[Window]struct{})}
}

func (l *ledger) contains(w Window) bool {
	_, ok := l.set[w]
	return ok
}

// add appends w unless it is already present.
func (l *ledger) add(w Window) {
	if l.contains(w) {
		return
	}
	l.order = append(l.order, w)
	l.set[w] = struct{}{}
}

// remove drops w and reports whether it was present.
func (l *ledger) remove(w Window) bool {
	if !l.contains(w) {
		return false
	}
	delete(l.set, w)
	for i, v := range l.order {
		if v == w {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
	return true
}

// last returns the most recently minimised window.
func (l *ledger) last() (Window, bool) {
	if len(l.order) == 0 {
		return 0, false
	}
	return l.order[len(l.order)-1], true
}

func (l *ledger) list() []Window {
	out := make([]Window, len(l.order))
	copy(out, l.order)
	return out
}
