package action

// Queue is the FIFO of actions created locally that still have to travel in an outbound
// frame. Only one action leaves per frame, so anything queued behind it waits for the
// following frames.
type Queue struct {
	items []Action
}

// NewQueue returns an empty action queue.
func NewQueue() *Queue {
	return &Queue{items: make([]Action, 0, 8)}
}

// Push appends an action to the back of the queue. Empty actions are ignored.
func (q *Queue) Push(a Action) {
	if a.Empty() {
		return
	}
	q.items = append(q.items, a)
}

// Pop removes and returns the oldest action. ok is false if the queue is empty.
func (q *Queue) Pop() (a Action, ok bool) {
	if len(q.items) == 0 {
		return a, false
	}
	a = q.items[0]
	q.items[0] = Action{}
	q.items = q.items[1:]
	return a, true
}

// Peek returns the oldest action without removing it.
func (q *Queue) Peek() (a Action, ok bool) {
	if len(q.items) == 0 {
		return a, false
	}
	return q.items[0], true
}

// Len returns the amount of actions waiting.
func (q *Queue) Len() int {
	return len(q.items)
}

// Clear drops every pending action.
func (q *Queue) Clear() {
	q.items = q.items[:0]
}
