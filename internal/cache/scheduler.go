package cache

import (
	"sort"
	"sync"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	// Stop cancels the callback. It reports false if the callback already
	// fired or was stopped before.
	Stop() bool
}

// Scheduler runs one-shot callbacks after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler schedules callbacks on the runtime timer heap.
type RealScheduler struct{}

// AfterFunc implements Scheduler.
func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a Scheduler driven by virtual time. Nothing fires
// until Advance is called, which makes expiry deterministic in tests.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	seq   uint64
	tasks []*manualTask
}

type manualTask struct {
	s       *ManualScheduler
	due     time.Duration
	seq     uint64
	f       func()
	stopped bool
	fired   bool
}

// NewManualScheduler returns a scheduler whose clock starts at zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler. Negative delays are treated as zero.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	if d < 0 {
		d = 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTask{s: s, due: s.now + d, seq: s.seq, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

// Stop implements Timer.
func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	t.s.removeLocked(t)
	return true
}

// Now returns the elapsed virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of callbacks that have neither fired nor been stopped.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance moves the clock forward by d and runs every callback that became
// due, in deadline order. Callbacks run on the caller's goroutine with the
// scheduler unlocked, so they may schedule or stop other callbacks.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		t := s.nextDueLocked(target)
		if t == nil {
			s.now = target
			s.mu.Unlock()
			return
		}
		if t.due > s.now {
			s.now = t.due
		}
		t.fired = true
		s.removeLocked(t)
		s.mu.Unlock()

		t.f()
	}
}

func (s *ManualScheduler) nextDueLocked(target time.Duration) *manualTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		if s.tasks[i].due != s.tasks[j].due {
			return s.tasks[i].due < s.tasks[j].due
		}
		return s.tasks[i].seq < s.tasks[j].seq
	})
	if t := s.tasks[0]; t.due <= target {
		return t
	}
	return nil
}

func (s *ManualScheduler) removeLocked(t *manualTask) {
	for i, p := range s.tasks {
		if p == t {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return
		}
	}
}

var (
	_ Scheduler = RealScheduler{}
	_ Scheduler = (*ManualScheduler)(nil)
)
