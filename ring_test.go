package fixedcap

import (
	"errors"
	"testing"
)

func TestCircularQueueFIFOOrder(t *testing.T) {
	q := NewCircularQueue[int](5)

	for i := 1; i <= 5; i++ {
		if err := q.Put(i); err != nil {
			t.Fatalf("unexpected put error at %d: %v", i, err)
		}
	}

	for want := 1; want <= 5; want++ {
		if v, ok := q.Pop(); !ok || v != want {
			t.Fatalf("expected Pop to return %d,true got %v,%v", want, v, ok)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Fatalf("expected Pop to fail on drained queue")
	}
}

func TestCircularQueueCapacityInvariant(t *testing.T) {
	q := NewCircularQueue[int](3)

	for i := 0; i < 3; i++ {
		if err := q.Put(i); err != nil {
			t.Fatalf("unexpected put error at %d: %v", i, err)
		}
	}

	if err := q.Put(99); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull on put into full queue, got %v", err)
	}
	if err := q.EnsureCapacity(); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull from EnsureCapacity on full queue, got %v", err)
	}
	if got := q.Len(); got != 3 {
		t.Fatalf("expected failed put to leave length at 3, got %d", got)
	}

	for want := 0; want < 3; want++ {
		if v, ok := q.Pop(); !ok || v != want {
			t.Fatalf("expected failed put to leave contents intact, got %v,%v want %d", v, ok, want)
		}
	}
}

func TestCircularQueueWrapAround(t *testing.T) {
	q := NewCircularQueue[int](3)

	for _, v := range []int{1, 2, 3} {
		if err := q.Put(v); err != nil {
			t.Fatalf("unexpected put error for %d: %v", v, err)
		}
	}
	if err := q.Put(4); !errors.Is(err, ErrFull) {
		t.Fatalf("expected 4th put to fail with ErrFull, got %v", err)
	}

	if v, ok := q.Pop(); !ok || v != 1 {
		t.Fatalf("expected Pop to return 1,true got %v,%v", v, ok)
	}
	if err := q.Put(4); err != nil {
		t.Fatalf("expected put to succeed after pop, got %v", err)
	}

	for _, want := range []int{2, 3, 4} {
		if v, ok := q.Pop(); !ok || v != want {
			t.Fatalf("expected Pop to return %d,true got %v,%v", want, v, ok)
		}
	}
}

func TestCircularQueueLenDisambiguatesFullAndEmpty(t *testing.T) {
	q := NewCircularQueue[int](4)

	if got := q.Len(); got != 0 {
		t.Fatalf("expected empty queue length 0, got %d", got)
	}

	// fill completely: put and pop indices coincide while every slot is live
	for i := 0; i < 4; i++ {
		if err := q.Put(i); err != nil {
			t.Fatalf("unexpected put error at %d: %v", i, err)
		}
	}
	if got := q.Len(); got != 4 {
		t.Fatalf("expected full queue length 4, got %d", got)
	}

	// drain completely: the indices coincide again, this time over empty slots
	for i := 0; i < 4; i++ {
		if _, ok := q.Pop(); !ok {
			t.Fatalf("unexpected empty queue at pop %d", i)
		}
	}
	if got := q.Len(); got != 0 {
		t.Fatalf("expected drained queue length 0, got %d", got)
	}

	// interleave across the wrap point and re-check intermediate lengths
	puts, pops := 0, 0
	step := []struct {
		put bool
		val int
	}{
		{true, 10}, {true, 11}, {false, 10}, {true, 12}, {true, 13},
		{false, 11}, {false, 12}, {true, 14}, {false, 13}, {false, 14},
	}
	for i, s := range step {
		if s.put {
			if err := q.Put(s.val); err != nil {
				t.Fatalf("step %d: unexpected put error: %v", i, err)
			}
			puts++
		} else {
			if v, ok := q.Pop(); !ok || v != s.val {
				t.Fatalf("step %d: expected Pop to return %d,true got %v,%v", i, s.val, v, ok)
			}
			pops++
		}
		if got := q.Len(); got != puts-pops {
			t.Fatalf("step %d: expected length %d, got %d", i, puts-pops, got)
		}
	}
}

func TestCircularQueueEnsureCapacityThenPutAssumeCapacity(t *testing.T) {
	q := NewCircularQueue[string](2)

	if err := q.EnsureCapacity(); err != nil {
		t.Fatalf("unexpected EnsureCapacity error on empty queue: %v", err)
	}
	q.PutAssumeCapacity("a")
	q.PutAssumeCapacity("b")

	if err := q.EnsureCapacity(); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull from EnsureCapacity, got %v", err)
	}

	if v := q.MustPop(); v != "a" {
		t.Fatalf("expected MustPop to return a, got %q", v)
	}
	if v := q.MustPop(); v != "b" {
		t.Fatalf("expected MustPop to return b, got %q", v)
	}
}

func TestCircularQueueCopyItems(t *testing.T) {
	q := NewCircularQueue[int](4)

	if snapshot := q.CopyItems(); snapshot != nil {
		t.Fatalf("expected nil snapshot of empty queue, got %v", snapshot)
	}

	// push the occupied region across the wrap point
	for _, v := range []int{1, 2, 3} {
		if err := q.Put(v); err != nil {
			t.Fatalf("unexpected put error for %d: %v", v, err)
		}
	}
	q.Pop()
	q.Pop()
	for _, v := range []int{4, 5, 6} {
		if err := q.Put(v); err != nil {
			t.Fatalf("unexpected put error for %d: %v", v, err)
		}
	}

	expected := []int{3, 4, 5, 6}
	first := q.CopyItems()
	second := q.CopyItems()
	for _, snapshot := range [][]int{first, second} {
		if len(snapshot) != len(expected) {
			t.Fatalf("unexpected snapshot length: got %v want %v", snapshot, expected)
		}
		for i, v := range snapshot {
			if v != expected[i] {
				t.Fatalf("unexpected snapshot value at %d: got %d want %d", i, v, expected[i])
			}
		}
	}

	if got := q.Len(); got != 4 {
		t.Fatalf("expected snapshots to leave length at 4, got %d", got)
	}
	for _, want := range expected {
		if v, ok := q.Pop(); !ok || v != want {
			t.Fatalf("expected snapshots to leave contents intact, got %v,%v want %d", v, ok, want)
		}
	}
}

func TestCircularQueueCapacityOne(t *testing.T) {
	q := NewCircularQueue[int](1)

	if err := q.Put(7); err != nil {
		t.Fatalf("unexpected put error: %v", err)
	}
	if err := q.Put(8); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull on second put, got %v", err)
	}
	if v, ok := q.Pop(); !ok || v != 7 {
		t.Fatalf("expected Pop to return 7,true got %v,%v", v, ok)
	}
	if err := q.Put(8); err != nil {
		t.Fatalf("unexpected put error after pop: %v", err)
	}
	if v, ok := q.Pop(); !ok || v != 8 {
		t.Fatalf("expected Pop to return 8,true got %v,%v", v, ok)
	}
}

func TestCircularQueueSeededItems(t *testing.T) {
	q := NewCircularQueue(3, WithRingItems(1, 2))

	if got := q.Len(); got != 2 {
		t.Fatalf("expected seeded length 2, got %d", got)
	}
	if v, ok := q.Pop(); !ok || v != 1 {
		t.Fatalf("expected Pop to return 1,true got %v,%v", v, ok)
	}
}

func TestCircularQueueConstructionPanics(t *testing.T) {
	assertPanics(t, "zero capacity", func() { NewCircularQueue[int](0) })
	assertPanics(t, "seed beyond capacity", func() { NewCircularQueue(1, WithRingItems(1, 2)) })
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected %s to panic", name)
		}
	}()
	fn()
}
