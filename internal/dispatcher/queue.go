// internal/dispatcher/queue.go
package dispatcher

import (
	"context"
	"sync"
)

// Overflow selects what a full queue does with a new request.
type Overflow uint8

const (
	// DropOldest evicts the oldest unprocessed request.
	DropOldest Overflow = iota
	// Backpressure blocks the producer until there is room.
	Backpressure
)

// queue is a bounded FIFO. It never reorders.
type queue struct {
	mu       sync.Mutex
	items    []Request
	size     int
	overflow Overflow

	ready chan struct{} // items available
	space chan struct{} // room freed
}

func newQueue(size int, overflow Overflow) *queue {
	if size <= 0 {
		size = 1
	}
	return &queue{
		items:    make([]Request, 0, size),
		size:     size,
		overflow: overflow,
		ready:    make(chan struct{}, 1),
		space:    make(chan struct{}, 1),
	}
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// push appends r. Under DropOldest it returns the evicted request, if any.
// Under Backpressure it blocks until room frees up or ctx is done.
func (q *queue) push(ctx context.Context, r Request) (*Request, error) {
	for {
		q.mu.Lock()
		if len(q.items) < q.size {
			q.items = append(q.items, r)
			q.mu.Unlock()
			signal(q.ready)
			return nil, nil
		}
		if q.overflow == DropOldest {
			evicted := q.items[0]
			copy(q.items, q.items[1:])
			q.items[len(q.items)-1] = r
			q.mu.Unlock()
			signal(q.ready)
			return &evicted, nil
		}
		q.mu.Unlock()

		select {
		case <-q.space:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

func (q *queue) pop() (Request, bool) {
	q.mu.Lock()
	if len(q.items) == 0 {
		q.mu.Unlock()
		return Request{}, false
	}
	r := q.items[0]
	copy(q.items, q.items[1:])
	q.items = q.items[:len(q.items)-1]
	q.mu.Unlock()

	signal(q.space)
	return r, true
}

func (q *queue) depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
