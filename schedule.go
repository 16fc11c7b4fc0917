package tinsel

// Task is a handle to a pending scheduled callback.
type Task struct {
	at        float64
	fn        func()
	cancelled bool
}

// Cancel prevents the task from firing. Safe to call after it has fired.
func (t *Task) Cancel() {
	t.cancelled = true
}

// scheduler runs fire-once callbacks on the scene's virtual clock. It is
// single-threaded: tasks fire inside Advance, in time order, on whichever
// Update call crosses their deadline. Tearing the scene down cancels every
// pending task, so no capture phase can advance after shutdown.
type scheduler struct {
	now   float64
	tasks []*Task
}

// Now returns the current virtual time in seconds.
func (s *scheduler) Now() float64 {
	return s.now
}

// After schedules fn to run d seconds from now and returns its handle.
func (s *scheduler) After(d float64, fn func()) *Task {
	t := &Task{at: s.now + d, fn: fn}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by dt and fires every due task in time
// order. Tasks scheduled by a firing callback are honored within the same
// Advance when they fall inside the window.
func (s *scheduler) Advance(dt float64) {
	s.now += dt
	for {
		var next *Task
		idx := -1
		for i, t := range s.tasks {
			if t.cancelled {
				continue
			}
			if t.at <= s.now && (next == nil || t.at < next.at) {
				next = t
				idx = i
			}
		}
		if next == nil {
			break
		}
		s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
		next.fn()
	}
	s.compact()
}

// compact drops cancelled tasks so long sessions don't accumulate them.
func (s *scheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}

// CancelAll cancels every pending task.
func (s *scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.cancelled = true
	}
	s.tasks = s.tasks[:0]
}

// Pending returns the number of live scheduled tasks. Used by tests and
// debug stats.
func (s *scheduler) Pending() int {
	return len(s.tasks)
}
