package callout

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// entry is one scheduled (and possibly repeating) run of a Task.
type entry struct {
	seq     uint64
	task    *Task
	urgency Urgency
	due     time.Time

	cancelled atomic.Bool

	mu      sync.Mutex
	lastErr error

	done     chan struct{}
	doneOnce sync.Once
}

func newEntry(seq uint64, task *Task, urgency Urgency, due time.Time) *entry {
	return &entry{seq: seq, task: task, urgency: urgency, due: due, done: make(chan struct{})}
}

// finish invokes the task's Free hook exactly once and closes done.
func (e *entry) finish() {
	e.doneOnce.Do(func() {
		if e.task.Free != nil {
			e.task.Free()
		}
		close(e.done)
	})
}

// entryHeap orders Urgent/Delayed entries by due time, breaking ties by
// submission order. Idle entries are never pushed onto this heap; they are
// kept in the Scheduler's idleq FIFO instead.
type entryHeap []*entry

func (h entryHeap) Len() int { return len(h) }

func (h entryHeap) Less(i, j int) bool {
	if !h[i].due.Equal(h[j].due) {
		return h[i].due.Before(h[j].due)
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x any) {
	*h = append(*h, x.(*entry))
}

func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return e
}
