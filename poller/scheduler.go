package poller

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"
)

// Scheduler runs independent periodic tasks, each on its own ticker.
// A tick that fires while the previous run of the same task is still in
// flight is skipped, so a task never overlaps itself. Stop cancels every
// task context and waits for in-flight runs to finish: once Stop returns,
// no task will touch shared state again, even if an upstream response was
// already on the wire.
type Scheduler struct {
	mu      sync.Mutex
	tasks   []*task
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

type task struct {
	name     string
	every    time.Duration
	fn       func(context.Context) error
	running  atomic.Bool
	runs     atomic.Uint64
	skips    atomic.Uint64
	failures atomic.Uint64
}

// TaskStats reports how a task has behaved so far.
type TaskStats struct {
	Runs     uint64
	Skips    uint64
	Failures uint64
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{ctx: ctx, cancel: cancel}
}

// Add registers a periodic task. Must be called before Start.
func (s *Scheduler) Add(name string, every time.Duration, fn func(context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, &task{name: name, every: every, fn: fn})
}

// Start runs every task once immediately, then on its interval.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true
	for _, t := range s.tasks {
		s.wg.Add(1)
		go s.loop(t)
	}
}

// Stop cancels all tasks and blocks until in-flight runs have finished.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// Stats returns the counters for a named task.
func (s *Scheduler) Stats(name string) TaskStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.name == name {
			return TaskStats{
				Runs:     t.runs.Load(),
				Skips:    t.skips.Load(),
				Failures: t.failures.Load(),
			}
		}
	}
	return TaskStats{}
}

func (s *Scheduler) loop(t *task) {
	defer s.wg.Done()

	s.fire(t)

	ticker := time.NewTicker(t.every)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.fire(t)
		}
	}
}

func (s *Scheduler) fire(t *task) {
	if !t.running.CompareAndSwap(false, true) {
		t.skips.Add(1)
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer t.running.Store(false)
		if err := t.fn(s.ctx); err != nil {
			if s.ctx.Err() == nil {
				log.Printf("poller: task %s failed: %v", t.name, err)
			}
			t.failures.Add(1)
			return
		}
		t.runs.Add(1)
	}()
}
