package timer

import (
	"slices"
	"time"
)

// Task is a callback scheduled on a Scheduler.
type Task struct {
	s    *Scheduler
	due  time.Duration
	seq  uint64
	fn   func()
	done bool
}

// Cancel prevents the task from firing. Safe on nil and on finished tasks.
func (t *Task) Cancel() {
	if t == nil || t.done {
		return
	}
	t.done = true
	t.s.remove(t)
}

// Pending reports whether the task has neither fired nor been cancelled.
func (t *Task) Pending() bool {
	return t != nil && !t.done
}

// Remaining returns the scheduler time left before the task fires, 0 once
// it is no longer pending.
func (t *Task) Remaining() time.Duration {
	if !t.Pending() {
		return 0
	}
	return max(t.due-t.s.elapsed, 0)
}

// Scheduler runs fire-and-forget callbacks after wall-clock delays. It has
// no goroutine of its own: the frame loop calls Update, so every callback
// runs on the same goroutine as the rest of the game state.
//
// Each game session owns one Scheduler. Stopping it on restart cancels
// whatever the old session left behind.
type Scheduler struct {
	clock   Clock
	last    time.Time
	elapsed time.Duration
	seq     uint64
	tasks   []*Task
	paused  bool
	stopped bool
}

func New(clock Clock) *Scheduler {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Scheduler{clock: clock, last: clock.Now()}
}

// Elapsed is the unpaused time observed by the last Update.
func (s *Scheduler) Elapsed() time.Duration {
	return s.elapsed
}

// After schedules fn to run d after the scheduler's current time.
func (s *Scheduler) After(d time.Duration, fn func()) *Task {
	s.seq++
	t := &Task{s: s, due: s.elapsed + max(d, 0), seq: s.seq, fn: fn}
	if s.stopped {
		t.done = true
		return t
	}
	i, _ := slices.BinarySearchFunc(s.tasks, t, compareTasks)
	s.tasks = slices.Insert(s.tasks, i, t)
	return t
}

func compareTasks(a, b *Task) int {
	if a.due != b.due {
		if a.due < b.due {
			return -1
		}
		return 1
	}
	switch {
	case a.seq < b.seq:
		return -1
	case a.seq > b.seq:
		return 1
	}
	return 0
}

func (s *Scheduler) remove(t *Task) {
	if i := slices.Index(s.tasks, t); i >= 0 {
		s.tasks = slices.Delete(s.tasks, i, i+1)
	}
}

// Update advances scheduler time to the clock and runs every due task in
// due order. Time spent paused is discarded.
func (s *Scheduler) Update() {
	now := s.clock.Now()
	delta := now.Sub(s.last)
	s.last = now
	if s.stopped || s.paused || delta <= 0 {
		return
	}
	s.elapsed += delta
	for len(s.tasks) > 0 && !s.stopped {
		t := s.tasks[0]
		if t.due > s.elapsed {
			break
		}
		s.tasks = s.tasks[1:]
		t.done = true
		t.fn()
	}
}

// Pause freezes scheduler time. Time up to the call still counts.
func (s *Scheduler) Pause() {
	if s.paused {
		return
	}
	now := s.clock.Now()
	if !s.stopped {
		s.elapsed += max(now.Sub(s.last), 0)
	}
	s.last = now
	s.paused = true
}

func (s *Scheduler) Resume() {
	if !s.paused {
		return
	}
	s.last = s.clock.Now()
	s.paused = false
}

func (s *Scheduler) Paused() bool {
	return s.paused
}

// Stop cancels every pending task. Tasks scheduled afterwards never fire.
func (s *Scheduler) Stop() {
	s.stopped = true
	for _, t := range s.tasks {
		t.done = true
	}
	s.tasks = nil
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}
