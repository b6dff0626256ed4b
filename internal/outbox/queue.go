// SPDX-License-Identifier: MIT

package outbox

import (
	"container/heap"
	"sync"
	"time"
)

// queue is a bounded time-ordered queue. Messages become eligible at
// their readyAt instant; among eligible messages the original enqueue
// order wins, so delivery stays FIFO per recipient across requeues.
type queue struct {
	mu    sync.Mutex
	items queueHeap
	max   int
	seq   uint64

	// wake is signalled on every push so the dispatcher re-evaluates its
	// sleep deadline.
	wake chan struct{}
}

type queueItem struct {
	msg     *Message
	readyAt time.Time
}

func newQueue(max int) *queue {
	return &queue{
		max:  max,
		wake: make(chan struct{}, 1),
	}
}

// push adds msg, eligible at readyAt. A zero readyAt means immediately.
// First-time messages get a sequence number; requeued messages keep
// theirs.
func (q *queue) push(msg *Message, readyAt time.Time) error {
	q.mu.Lock()
	if q.items.Len() >= q.max {
		q.mu.Unlock()
		return ErrQueueFull
	}
	if msg.seq == 0 {
		q.seq++
		msg.seq = q.seq
	}
	heap.Push(&q.items, queueItem{msg: msg, readyAt: readyAt})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return nil
}

// forcePush re-adds a previously popped message, ignoring the capacity
// bound. A throttled or retrying message must never be dropped.
func (q *queue) forcePush(msg *Message, readyAt time.Time) {
	q.mu.Lock()
	if msg.seq == 0 {
		q.seq++
		msg.seq = q.seq
	}
	heap.Push(&q.items, queueItem{msg: msg, readyAt: readyAt})
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// pop removes and returns the earliest eligible message. When nothing is
// eligible it returns nil and the wait until the next item becomes ready
// (0 when the queue is empty — wait for a wake instead).
func (q *queue) pop(now time.Time) (*Message, time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.items.Len() == 0 {
		return nil, 0
	}
	head := q.items[0]
	if head.readyAt.After(now) {
		return nil, head.readyAt.Sub(now)
	}
	item := heap.Pop(&q.items).(queueItem)
	return item.msg, 0
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Len()
}

// queueHeap orders by readyAt, breaking ties on enqueue sequence.
type queueHeap []queueItem

func (h queueHeap) Len() int { return len(h) }

func (h queueHeap) Less(i, j int) bool {
	if h[i].readyAt.Equal(h[j].readyAt) {
		return h[i].msg.seq < h[j].msg.seq
	}
	return h[i].readyAt.Before(h[j].readyAt)
}

func (h queueHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *queueHeap) Push(x any) { *h = append(*h, x.(queueItem)) }

func (h *queueHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
