package engine

// QuitFlag is set at most once and never cleared. Observers registered
// before the request run exactly once, in registration order, at the moment
// the flag flips.
type QuitFlag struct {
	requested bool
	observers []func()
}

func (q *QuitFlag) Requested() bool {
	if q == nil {
		return false
	}
	return q.requested
}

// OnQuit registers an observer. Observers added after the flag is set are
// never called.
func (q *QuitFlag) OnQuit(fn func()) {
	if q == nil || fn == nil || q.requested {
		return
	}
	q.observers = append(q.observers, fn)
}

// Request sets the flag. It reports whether this call was the one that set it.
func (q *QuitFlag) Request() bool {
	if q == nil || q.requested {
		return false
	}
	q.requested = true
	observers := q.observers
	q.observers = nil
	for _, fn := range observers {
		fn()
	}
	return true
}
