package nakama

import (
	"sort"
	"sync"
	"time"

	"tienlen/internal/ports"
)

// tickScheduler defers room callbacks to the match loop, so AI turns and settle timers run on the
// match goroutine instead of a timer goroutine.
type tickScheduler struct {
	mu    sync.Mutex
	now   func() time.Time
	seq   uint64
	tasks map[uint64]tickTask
}

type tickTask struct {
	seq uint64
	due time.Time
	fn  func()
}

func newTickScheduler(now func() time.Time) *tickScheduler {
	if now == nil {
		now = time.Now
	}
	return &tickScheduler{now: now, tasks: make(map[uint64]tickTask)}
}

func (s *tickScheduler) After(d time.Duration, fn func()) ports.Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	id := s.seq
	s.tasks[id] = tickTask{seq: id, due: s.now().Add(d), fn: fn}
	return func() {
		s.mu.Lock()
		delete(s.tasks, id)
		s.mu.Unlock()
	}
}

// Fire runs every task that is due, oldest deadline first, and reports how many ran.
// Tasks scheduled while firing wait for the next call.
func (s *tickScheduler) Fire() int {
	now := s.now()
	s.mu.Lock()
	var due []tickTask
	for id, t := range s.tasks {
		if !t.due.After(now) {
			due = append(due, t)
			delete(s.tasks, id)
		}
	}
	s.mu.Unlock()

	sort.Slice(due, func(i, j int) bool {
		if due[i].due.Equal(due[j].due) {
			return due[i].seq < due[j].seq
		}
		return due[i].due.Before(due[j].due)
	})
	for _, t := range due {
		t.fn()
	}
	return len(due)
}

// Pending counts tasks that have not fired or been cancelled.
func (s *tickScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Stop drops every pending task.
func (s *tickScheduler) Stop() {
	s.mu.Lock()
	s.tasks = make(map[uint64]tickTask)
	s.mu.Unlock()
}

var _ ports.Scheduler = (*tickScheduler)(nil)
