// Package fixedcap provides fixed-capacity, array-backed generic containers:
// a circular FIFO queue and a binary-heap priority queue with in-place
// priority updates.
//
// Both containers allocate their storage once at construction and never grow.
// Neither container is safe for concurrent use; callers sharing an instance
// across goroutines must serialise access themselves.
package fixedcap
