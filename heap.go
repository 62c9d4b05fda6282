package fixedcap

import "errors"

// ErrNoItem is returned by Update when no stored element matches the given one.
var ErrNoItem = errors.New("fixedcap: no matching item")

// CompareFunc reports the pop ordering of two elements. A negative result
// means a pops strictly before b, a positive result means b pops strictly
// before a, and zero means equal priority. The function must implement a
// strict weak ordering over the stored elements; ctx is the opaque context
// value the queue was constructed with.
type CompareFunc[T, C any] func(ctx C, a, b T) int

// PriorityQueue is a binary heap over a fixed-size dense array. The element
// popping first per the compare function sits at index 0; the region beyond
// len is unused storage and never read.
//
// The context value is passed to every comparison, so ordering may depend on
// per-instance state such as an external priority table.
type PriorityQueue[T, C any] struct {
	items   []T
	len     int
	context C
	compare CompareFunc[T, C]
}

type heapOptions[T any] struct {
	initialItems []T
}

// HeapOption configures a PriorityQueue during construction.
type HeapOption[T any] func(*heapOptions[T])

// WithHeapItems seeds the queue with values. Seeding more values than the
// queue's capacity is a construction error.
func WithHeapItems[T any](values ...T) HeapOption[T] {
	return func(opts *heapOptions[T]) {
		opts.initialItems = append(opts.initialItems[:0], values...)
	}
}

// NewPriorityQueue creates an empty queue holding at most capacity elements,
// ordered by compare under ctx. It panics if capacity is not positive or
// compare is nil.
func NewPriorityQueue[T, C any](capacity int, ctx C, compare CompareFunc[T, C], options ...HeapOption[T]) *PriorityQueue[T, C] {
	if capacity <= 0 {
		panic("fixedcap: priority queue capacity must be positive")
	}
	if compare == nil {
		panic("fixedcap: priority queue compare function must not be nil")
	}

	pq := &PriorityQueue[T, C]{
		items:   make([]T, capacity),
		context: ctx,
		compare: compare,
	}

	var opts heapOptions[T]
	for _, opt := range options {
		opt(&opts)
	}
	for _, v := range opts.initialItems {
		if err := pq.Put(v); err != nil {
			panic("fixedcap: priority queue seeded beyond capacity")
		}
	}

	return pq
}

// Put inserts item and restores the heap ordering.
// It returns ErrFull and leaves the queue untouched when the queue is full.
func (pq *PriorityQueue[T, C]) Put(item T) error {
	if err := pq.EnsureCapacity(); err != nil {
		return err
	}
	pq.PutAssumeCapacity(item)
	return nil
}

// PutAssumeCapacity inserts item without checking for a free slot. The caller
// must have established capacity beforehand, for example via EnsureCapacity;
// inserting into a full queue writes past the live region.
func (pq *PriorityQueue[T, C]) PutAssumeCapacity(item T) {
	pq.items[pq.len] = item
	pq.len++
	pq.siftUp(pq.len - 1)
}

// EnsureCapacity reports whether the queue can accept another element.
// It returns ErrFull when it cannot and never mutates the queue.
func (pq *PriorityQueue[T, C]) EnsureCapacity() error {
	if pq.len == len(pq.items) {
		return ErrFull
	}
	return nil
}

// Peek returns the element that pops next without removing it.
// It returns false when the queue is empty.
func (pq *PriorityQueue[T, C]) Peek() (zero T, _ bool) {
	if pq.len == 0 {
		return zero, false
	}
	return pq.items[0], true
}

// Pop removes and returns the element that pops next.
// It returns false without mutating the queue when it is empty.
func (pq *PriorityQueue[T, C]) Pop() (zero T, _ bool) {
	if pq.len == 0 {
		return zero, false
	}
	return pq.MustPop(), true
}

// MustPop removes and returns the element that pops next without checking for
// emptiness. The queue must be non-empty.
func (pq *PriorityQueue[T, C]) MustPop() T {
	root := pq.items[0]
	pq.len--
	pq.items[0] = pq.items[pq.len]

	// zero-out the vacated slot so the GC can reclaim what it references
	var zero T
	pq.items[pq.len] = zero

	pq.siftDown(0)
	return root
}

// Update replaces the first element comparing equal to oldItem with newItem
// and repairs the heap ordering around it. It returns ErrNoItem when no
// stored element compares equal to oldItem.
//
// Matching uses comparator equality, not value identity: with duplicate
// priorities the element replaced is whichever comes first in array order.
// Callers that need identity-based updates must encode identity into the
// compare function.
func (pq *PriorityQueue[T, C]) Update(oldItem, newItem T) error {
	idx := -1
	for i := 0; i < pq.len; i++ {
		if pq.compare(pq.context, pq.items[i], oldItem) == 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNoItem
	}

	pq.items[idx] = newItem

	// A single changed priority can violate the ordering only toward the
	// root or toward the leaves, never both.
	switch order := pq.compare(pq.context, newItem, oldItem); {
	case order > 0:
		pq.siftDown(idx)
	case order < 0:
		pq.siftUp(idx)
	}
	return nil
}

// Len returns the number of live elements.
func (pq *PriorityQueue[T, C]) Len() int {
	return pq.len
}

// Cap returns the fixed capacity the queue was constructed with.
func (pq *PriorityQueue[T, C]) Cap() int {
	return len(pq.items)
}

func (pq *PriorityQueue[T, C]) siftUp(idx int) {
	for idx > 0 {
		parent := (idx - 1) / 2
		if pq.compare(pq.context, pq.items[idx], pq.items[parent]) >= 0 {
			return
		}
		pq.items[idx], pq.items[parent] = pq.items[parent], pq.items[idx]
		idx = parent
	}
}

func (pq *PriorityQueue[T, C]) siftDown(idx int) {
	// indices at or beyond the midpoint have no children
	half := pq.len >> 1
	for idx < half {
		child := 2*idx + 1
		if right := child + 1; right < pq.len && pq.compare(pq.context, pq.items[right], pq.items[child]) < 0 {
			child = right
		}
		if pq.compare(pq.context, pq.items[child], pq.items[idx]) >= 0 {
			return
		}
		pq.items[idx], pq.items[child] = pq.items[child], pq.items[idx]
		idx = child
	}
}
