// Package callout implements the deadline/interval task scheduler, grounded
// on original_source/src/lib/test/callout_test.c's exercise of
// lagopus_callout_create_task/lagopus_callout_submit_task: tasks are
// submitted urgent (run as soon as possible), delayed (run after a given
// duration), or idle (run only once nothing urgent/delayed is pending), and
// may repeat on an interval.
package callout

import (
	"container/heap"
	"context"
	"io"
	"sync"
	"time"

	"github.com/joeycumines/go-longpoll"
	"github.com/joeycumines/go-microbatch"

	"github.com/lagopus-go/dsinterp/internal/result"
)

// Urgency classifies how a Task was submitted.
type Urgency int

const (
	// Urgent tasks run as soon as a worker is free.
	Urgent Urgency = iota
	// Delayed tasks run once their delay has elapsed.
	Delayed
	// Idle tasks run only once the scheduler has no Urgent or Delayed work
	// pending.
	Idle
)

func (u Urgency) String() string {
	switch u {
	case Urgent:
		return "Urgent"
	case Delayed:
		return "Delayed"
	case Idle:
		return "Idle"
	default:
		return "Unknown"
	}
}

// TaskFunc is the work a Task performs. It receives a context that is
// cancelled when the owning Scheduler is closed.
type TaskFunc func(ctx context.Context) error

// Task describes a unit of work to schedule. Interval, if positive, causes
// the task to be resubmitted at the same Urgency after each run. Free, if
// set, is invoked at most once, after the task's last run; a task cancelled
// while still pending is freed when its entry next reaches dispatch, not at
// Cancel time. Entries still pending when the Scheduler is closed are not
// freed.
type Task struct {
	Name     string
	Fn       TaskFunc
	Interval time.Duration
	Free     func()
}

// Handle refers to a single submitted (and possibly repeating) task.
type Handle struct {
	e *entry
}

// Cancel prevents any future run of the task. A run already dispatched to a
// worker is not interrupted. Safe to call more than once.
func (h *Handle) Cancel() {
	h.e.cancelled.Store(true)
}

// Done returns a channel closed once the task has fully retired: either
// cancelled before its next run, or (for one-shot tasks) after it has run.
// Repeating tasks only close Done once cancelled.
func (h *Handle) Done() <-chan struct{} {
	return h.e.done
}

// LastErr returns the error from the task's most recent run, if any.
func (h *Handle) LastErr() error {
	h.e.mu.Lock()
	defer h.e.mu.Unlock()
	return h.e.lastErr
}

// Scheduler dispatches submitted Tasks in delay order, draining ready tasks
// in small batches.
type Scheduler struct {
	mu      sync.Mutex
	pending entryHeap
	idleq   []*entry
	seq     uint64
	closed  bool

	wake    chan struct{}
	readyCh chan *entry

	ctx    context.Context
	cancel context.CancelFunc

	batcher *microbatch.Batcher[*entry]

	timerDone chan struct{}
	drainDone chan struct{}
}

// NewScheduler starts a Scheduler with the given number of drain workers
// (each pulling batches of ready tasks off the timer via longpoll.Channel,
// and the given batch processing concurrency for actually running tasks).
// workers defaults to 1, matching N_CALLOUT_WORKERS in the original test
// harness, if <= 0.
func NewScheduler(workers int) *Scheduler {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		wake:      make(chan struct{}, 1),
		readyCh:   make(chan *entry),
		ctx:       ctx,
		cancel:    cancel,
		timerDone: make(chan struct{}),
		drainDone: make(chan struct{}, workers),
	}

	s.batcher = microbatch.NewBatcher[*entry](&microbatch.BatcherConfig{
		MaxSize:        16,
		FlushInterval:  5 * time.Millisecond,
		MaxConcurrency: workers,
	}, s.runBatch)

	go s.runTimer()
	for i := 0; i < workers; i++ {
		go s.runDrain()
	}

	return s
}

// Submit schedules task according to delay: delay == 0 is Urgent, delay > 0
// is Delayed (runs after delay has elapsed), delay < 0 is Idle.
func (s *Scheduler) Submit(task *Task, delay time.Duration) (*Handle, error) {
	if task == nil || task.Fn == nil {
		return nil, result.New(result.InvalidArgs)
	}

	var urgency Urgency
	var due time.Time
	switch {
	case delay == 0:
		urgency = Urgent
		due = time.Now()
	case delay > 0:
		urgency = Delayed
		due = time.Now().Add(delay)
	default:
		urgency = Idle
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, result.New(result.NotOperational)
	}
	s.seq++
	e := newEntry(s.seq, task, urgency, due)
	if urgency == Idle {
		s.idleq = append(s.idleq, e)
	} else {
		heap.Push(&s.pending, e)
	}
	s.mu.Unlock()

	s.wakeTimer()
	return &Handle{e: e}, nil
}

func (s *Scheduler) wakeTimer() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Close stops accepting new work, cancels running tasks' context, and waits
// for the timer and drain goroutines (and any in-flight batch) to exit.
func (s *Scheduler) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.cancel()
	<-s.timerDone
	close(s.readyCh)
	for i := 0; i < cap(s.drainDone); i++ {
		<-s.drainDone
	}
	return s.batcher.Close()
}

func (s *Scheduler) runTimer() {
	defer close(s.timerDone)

	for {
		s.mu.Lock()
		if s.ctx.Err() != nil {
			s.mu.Unlock()
			return
		}

		now := time.Now()
		if len(s.pending) > 0 {
			top := s.pending[0]
			if !top.due.After(now) {
				heap.Pop(&s.pending)
				s.mu.Unlock()
				s.dispatch(top)
				continue
			}
			wait := top.due.Sub(now)
			s.mu.Unlock()
			select {
			case <-time.After(wait):
			case <-s.wake:
			case <-s.ctx.Done():
				return
			}
			continue
		}

		if len(s.idleq) > 0 {
			e := s.idleq[0]
			s.idleq = s.idleq[1:]
			s.mu.Unlock()
			s.dispatch(e)
			continue
		}

		s.mu.Unlock()
		select {
		case <-s.wake:
		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) dispatch(e *entry) {
	if e.cancelled.Load() {
		e.finish()
		return
	}
	select {
	case s.readyCh <- e:
	case <-s.ctx.Done():
		e.finish()
	}
}

func (s *Scheduler) runDrain() {
	defer func() { s.drainDone <- struct{}{} }()

	cfg := &longpoll.ChannelConfig{MaxSize: 16, MinSize: 1, PartialTimeout: 5 * time.Millisecond}
	for {
		err := longpoll.Channel(s.ctx, cfg, s.readyCh, func(e *entry) error {
			_, err := s.batcher.Submit(s.ctx, e)
			return err
		})
		if err != nil {
			if err == io.EOF || s.ctx.Err() != nil {
				return
			}
		}
	}
}

func (s *Scheduler) runBatch(ctx context.Context, jobs []*entry) error {
	for _, e := range jobs {
		s.runEntry(ctx, e)
	}
	return nil
}

func (s *Scheduler) runEntry(ctx context.Context, e *entry) {
	if e.cancelled.Load() {
		e.finish()
		return
	}

	err := e.task.Fn(ctx)
	e.mu.Lock()
	e.lastErr = err
	e.mu.Unlock()

	if e.task.Interval > 0 && !e.cancelled.Load() {
		e.due = time.Now().Add(e.task.Interval)
		s.mu.Lock()
		closed := s.closed
		if !closed {
			if e.urgency == Idle {
				s.idleq = append(s.idleq, e)
			} else {
				heap.Push(&s.pending, e)
			}
		}
		s.mu.Unlock()
		if closed {
			e.finish()
			return
		}
		s.wakeTimer()
		return
	}

	e.finish()
}
