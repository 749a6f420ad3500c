package queue

import (
	"context"
	"sync"
)

var _ NotificationQueue = (*MemoryQueue)(nil)

// MemoryQueue is a channel backed queue used in tests.
type MemoryQueue struct {
	mu     sync.Mutex
	events chan *Event
	closed bool
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{
		events: make(chan *Event, size),
	}
}

func (q *MemoryQueue) Publish(ctx context.Context, event *Event) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case q.events <- event:
		return nil
	}
}

func (q *MemoryQueue) Subscribe(ctx context.Context) (<-chan *Event, error) {
	return q.events, nil
}

func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !q.closed {
		close(q.events)
		q.closed = true
	}
	return nil
}
