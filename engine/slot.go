package engine

// Callback is one unit of per-iteration work.
type Callback func()

// Slot holds at most one Callback. Setting the slot from inside the running
// callback only affects the next RunIfPresent; the running callback is never
// re-entered.
type Slot struct {
	name string
	cb   Callback
	runs uint64
}

func NewSlot(name string) *Slot {
	return &Slot{name: name}
}

func (s *Slot) Name() string {
	return s.name
}

// Set replaces the held callback. A nil callback empties the slot.
func (s *Slot) Set(cb Callback) {
	s.cb = cb
}

func (s *Slot) Clear() {
	s.cb = nil
}

func (s *Slot) Present() bool {
	return s.cb != nil
}

// Runs counts completed invocations.
func (s *Slot) Runs() uint64 {
	return s.runs
}

// RunIfPresent invokes the held callback once and reports whether one ran.
func (s *Slot) RunIfPresent() bool {
	cb := s.cb
	if cb == nil {
		return false
	}
	cb()
	s.runs++
	return true
}
