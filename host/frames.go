package host

import (
	"sync"
)

// frameTask represents a queued animation-frame callback.
type frameTask struct {
	id       int
	callback func()
}

// frameQueue holds the callbacks for the next rendering opportunity.
type frameQueue struct {
	tasks  []frameTask
	nextID int
	frame  int
	mu     sync.Mutex
}

// request adds a callback to the next frame.
func (q *frameQueue) request(callback func()) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.nextID++
	q.tasks = append(q.tasks, frameTask{id: q.nextID, callback: callback})
	return q.nextID
}

// cancel removes a pending callback.
func (q *frameQueue) cancel(id int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, t := range q.tasks {
		if t.id == id {
			q.tasks = append(q.tasks[:i:i], q.tasks[i+1:]...)
			return
		}
	}
}

// run executes the callbacks queued before it was called.
// Callbacks requested while running wait for the next frame.
func (q *frameQueue) run() int {
	q.mu.Lock()
	tasks := q.tasks
	q.tasks = nil
	q.frame++
	q.mu.Unlock()

	for _, t := range tasks {
		t.callback()
	}
	return len(tasks)
}

// pending returns the number of queued callbacks.
func (q *frameQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tasks)
}
