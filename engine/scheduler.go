package engine

// Scheduler is the state shared between the loop driver and the callbacks it
// runs. It replaces process-wide globals: the engine owns exactly one.
type Scheduler struct {
	// Primary holds what the current frame does.
	Primary Slot
	// Secondary holds an optional background state machine, polled after
	// Primary.
	Secondary Slot
	Quit      QuitFlag

	frame     FrameTime
	iteration uint64
}

// NewScheduler returns an empty scheduler. The engine creates its own; this
// is for driving callbacks outside an engine.
func NewScheduler() *Scheduler {
	return &Scheduler{
		Primary:   Slot{name: "primary"},
		Secondary: Slot{name: "secondary"},
	}
}

// Frame returns the timing of the current iteration.
func (s *Scheduler) Frame() FrameTime {
	return s.frame
}

// DeltaTime is the clamped number of seconds since the previous iteration.
func (s *Scheduler) DeltaTime() float64 {
	return s.frame.Delta
}

// Iteration is the 1-based index of the running iteration.
func (s *Scheduler) Iteration() uint64 {
	return s.iteration
}
