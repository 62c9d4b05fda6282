package fixedcap

import "errors"

// ErrFull is returned when putting into a container that has no free slot left.
var ErrFull = errors.New("fixedcap: container is full")

// slot is the per-position storage of a CircularQueue. The occupied flag
// distinguishes a live value from an empty slot; a sentinel value of T would
// collide with legitimate data.
type slot[T any] struct {
	value    T
	occupied bool
}

// CircularQueue is a FIFO ring buffer over a fixed number of slots.
//
// putIdx and popIdx record the last filled and last popped position; the next
// put or pop happens one step after them, wrapping at the end of the slot
// array. Because both indices coincide when the queue is either empty or
// completely full, occupancy of the slots themselves is the source of truth.
type CircularQueue[T any] struct {
	slots  []slot[T]
	putIdx int
	popIdx int
}

type ringOptions[T any] struct {
	initialItems []T
}

// RingOption configures a CircularQueue during construction.
type RingOption[T any] func(*ringOptions[T])

// WithRingItems seeds the queue with values in FIFO order. Seeding more
// values than the queue's capacity is a construction error.
func WithRingItems[T any](values ...T) RingOption[T] {
	return func(opts *ringOptions[T]) {
		opts.initialItems = append(opts.initialItems[:0], values...)
	}
}

// NewCircularQueue creates an empty queue holding at most capacity elements.
// It panics if capacity is not positive.
func NewCircularQueue[T any](capacity int, options ...RingOption[T]) *CircularQueue[T] {
	if capacity <= 0 {
		panic("fixedcap: circular queue capacity must be positive")
	}

	q := &CircularQueue[T]{
		slots:  make([]slot[T], capacity),
		putIdx: capacity - 1,
		popIdx: capacity - 1,
	}

	var opts ringOptions[T]
	for _, opt := range options {
		opt(&opts)
	}
	for _, v := range opts.initialItems {
		if err := q.Put(v); err != nil {
			panic("fixedcap: circular queue seeded beyond capacity")
		}
	}

	return q
}

// next maps an index to the following one, wrapping at the last slot.
func (q *CircularQueue[T]) next(idx int) int {
	if idx == len(q.slots)-1 {
		return 0
	}
	return idx + 1
}

// Put stores item at the tail of the queue.
// It returns ErrFull and leaves the queue untouched when no slot is free.
func (q *CircularQueue[T]) Put(item T) error {
	if err := q.EnsureCapacity(); err != nil {
		return err
	}
	q.PutAssumeCapacity(item)
	return nil
}

// PutAssumeCapacity stores item at the tail of the queue without checking for
// a free slot. The caller must have established capacity beforehand, for
// example via EnsureCapacity; putting into a full queue overwrites the oldest
// element and corrupts the FIFO order.
func (q *CircularQueue[T]) PutAssumeCapacity(item T) {
	q.putIdx = q.next(q.putIdx)
	q.slots[q.putIdx] = slot[T]{value: item, occupied: true}
}

// EnsureCapacity reports whether the queue can accept another element.
// It returns ErrFull when it cannot and never mutates the queue.
func (q *CircularQueue[T]) EnsureCapacity() error {
	if q.slots[q.next(q.putIdx)].occupied {
		return ErrFull
	}
	return nil
}

// Pop removes and returns the oldest element.
// It returns false without mutating the queue when it is empty.
func (q *CircularQueue[T]) Pop() (zero T, _ bool) {
	if !q.slots[q.next(q.popIdx)].occupied {
		return zero, false
	}
	return q.MustPop(), true
}

// MustPop removes and returns the oldest element without checking for
// emptiness. The queue must be non-empty; popping an empty queue desynchronises
// the pop index from the stored data.
func (q *CircularQueue[T]) MustPop() T {
	q.popIdx = q.next(q.popIdx)
	popped := q.slots[q.popIdx]
	q.slots[q.popIdx] = slot[T]{}
	return popped.value
}

// Len returns the number of occupied slots. The count is derived from the two
// indices; when they coincide the occupancy at putIdx decides between a
// completely full and a completely empty queue.
func (q *CircularQueue[T]) Len() int {
	d := q.putIdx - q.popIdx
	if d < 0 {
		d += len(q.slots)
	}
	if d == 0 && q.slots[q.putIdx].occupied {
		return len(q.slots)
	}
	return d
}

// Cap returns the fixed capacity the queue was constructed with.
func (q *CircularQueue[T]) Cap() int {
	return len(q.slots)
}

// CopyItems returns a snapshot of the queued elements in FIFO order, starting
// with the oldest unpopped element. It returns nil when the queue is empty and
// never mutates the queue.
func (q *CircularQueue[T]) CopyItems() []T {
	count := q.Len()
	if count == 0 {
		return nil
	}

	items := make([]T, 0, count)
	idx := q.popIdx
	for i := 0; i < count; i++ {
		idx = q.next(idx)
		items = append(items, q.slots[idx].value)
	}
	return items
}
