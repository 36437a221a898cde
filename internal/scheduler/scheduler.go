package scheduler

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
)

type Priority int

const (
	PriorityLow Priority = iota
	PriorityDefault
	PriorityHigh
)

func (p Priority) String() string {
	switch p {
	case PriorityLow:
		return "low"
	case PriorityHigh:
		return "high"
	default:
		return "default"
	}
}

// Result tells the scheduler whether a repeating task should keep running
type Result int

const (
	Continue Result = iota
	Stop
)

type Callback func(ctx context.Context) Result

type Handle uint64

type Scheduler interface {
	// ScheduleRepeating runs cb every interval until it returns Stop or the task is cancelled.
	ScheduleRepeating(interval time.Duration, priority Priority, cb Callback) Handle
	// Cancel removes the task, returns false if it was not (or no longer) scheduled.
	Cancel(handle Handle) bool
}

type task struct {
	handle   Handle
	interval time.Duration
	priority Priority
	cancel   context.CancelFunc
}

// TimerScheduler runs every task in its own goroutine. The timer of a task is
// only re-armed after its callback returned, so callbacks of one task never overlap.
type TimerScheduler struct {
	ctx    context.Context
	cancel context.CancelFunc

	nextHandle atomic.Uint64
	tasks      cmap.ConcurrentMap[string, *task]
	wg         sync.WaitGroup
}

func NewTimerScheduler(ctx context.Context) *TimerScheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &TimerScheduler{
		ctx:    ctx,
		cancel: cancel,
		tasks:  cmap.New[*task](),
	}
}

func (s *TimerScheduler) ScheduleRepeating(interval time.Duration, priority Priority, cb Callback) Handle {
	handle := Handle(s.nextHandle.Add(1))
	ctx, cancel := context.WithCancel(s.ctx)
	t := &task{
		handle:   handle,
		interval: interval,
		priority: priority,
		cancel:   cancel,
	}
	s.tasks.Set(key(handle), t)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.remove(handle)
		s.loop(ctx, t, cb)
	}()

	return handle
}

func (s *TimerScheduler) loop(ctx context.Context, t *task, cb Callback) {
	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if cb(ctx) == Stop {
				return
			}
			timer.Reset(t.interval)
		}
	}
}

func (s *TimerScheduler) Cancel(handle Handle) bool {
	t, exists := s.tasks.Pop(key(handle))
	if !exists {
		return false
	}
	t.cancel()
	return true
}

// Scheduled returns whether the task with the given handle is still active
func (s *TimerScheduler) Scheduled(handle Handle) bool {
	return s.tasks.Has(key(handle))
}

// Count returns the number of active tasks
func (s *TimerScheduler) Count() int {
	return s.tasks.Count()
}

// Close cancels all tasks and waits for running callbacks to return
func (s *TimerScheduler) Close() {
	s.cancel()
	s.wg.Wait()
}

func (s *TimerScheduler) remove(handle Handle) {
	if t, exists := s.tasks.Pop(key(handle)); exists {
		t.cancel()
	}
}

func key(handle Handle) string {
	return strconv.FormatUint(uint64(handle), 10)
}
