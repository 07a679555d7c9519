// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

// Package ring provides a fixed-capacity single-producer/single-consumer
// queue suitable for bridging an interrupt handler and the main loop
// without dynamic allocation on the hot path.
package ring

import "sync/atomic"

// Ring is a bounded SPSC queue of capacity N. The zero value is not usable,
// construct with New. Exactly one goroutine (or ISR) may call the Produce*
// methods and exactly one may call the Consume* methods; head and tail are
// read and written with atomic loads/stores so that the two sides observe a
// consistent view of the queue across the producer/consumer boundary,
// mirroring the volatile index discipline a single-core target without a
// data cache would otherwise rely on.
type Ring[T any] struct {
	buf        []T
	cap        uint32
	head, tail uint32
}

// New allocates a Ring with the given fixed capacity.
func New[T any](capacity int) *Ring[T] {
	if capacity <= 0 {
		panic("ring: capacity must be positive")
	}

	return &Ring[T]{
		buf: make([]T, capacity),
		cap: uint32(capacity),
	}
}

func (r *Ring[T]) loadHead() uint32 { return atomic.LoadUint32(&r.head) }
func (r *Ring[T]) loadTail() uint32 { return atomic.LoadUint32(&r.tail) }

// Cap returns the fixed capacity N.
func (r *Ring[T]) Cap() int {
	return int(r.cap)
}

// Size returns the number of elements currently queued.
func (r *Ring[T]) Size() int {
	tail := r.loadTail()
	head := r.loadHead()

	if tail >= head {
		return int(tail - head)
	}

	return int(r.cap - head + tail)
}

// Empty reports whether the queue holds no elements.
func (r *Ring[T]) Empty() bool {
	return r.loadHead() == r.loadTail()
}

// Full reports whether the queue is at capacity.
func (r *Ring[T]) Full() bool {
	return r.Size() == int(r.cap)
}

// Produce pushes a single value. The caller must guarantee there is free
// space (i.e. !Full()); Produce does not check.
func (r *Ring[T]) Produce(v T) {
	tail := r.loadTail()
	r.buf[tail] = v

	next := tail + 1
	if next == r.cap {
		next = 0
	}

	atomic.StoreUint32(&r.tail, next)
}

// ProduceBulk attempts to insert all of src as a single atomic operation: if
// there is not enough free space for len(src) elements, nothing is inserted
// and false is returned.
func (r *Ring[T]) ProduceBulk(src []T) bool {
	n := len(src)
	if n == 0 {
		return true
	}

	if int(r.cap)-r.Size() < n {
		return false
	}

	tail := r.loadTail()
	head := r.loadHead()

	switch {
	case tail < head:
		// single contiguous run between tail and head
		copy(r.buf[tail:], src)
	case int(r.cap-tail) >= n:
		// fits before wrapping
		copy(r.buf[tail:], src)
	default:
		// spans the wrap point: head-segment then wrap-segment
		remaining := r.cap - tail
		copy(r.buf[tail:], src[:remaining])
		copy(r.buf[0:], src[remaining:])
	}

	newTail := (tail + uint32(n)) % r.cap
	atomic.StoreUint32(&r.tail, newTail)

	return true
}

// Consume pops a single value. The caller must guarantee the queue is
// non-empty; Consume does not check.
func (r *Ring[T]) Consume() T {
	head := r.loadHead()
	v := r.buf[head]

	next := head + 1
	if next == r.cap {
		next = 0
	}

	atomic.StoreUint32(&r.head, next)

	return v
}

// ConsumeBulk attempts to extract n elements as a single atomic operation:
// if fewer than n are queued, nothing is extracted and false is returned.
// On success handler is invoked with up to two contiguous windows, in
// original order, covering exactly n elements — one call if the extracted
// region does not straddle the wrap point, two calls (head-segment then
// wrap-segment) if it does.
func (r *Ring[T]) ConsumeBulk(n int, handler func(window []T)) bool {
	if n == 0 {
		return true
	}

	if r.Size() < n {
		return false
	}

	head := r.loadHead()
	tail := r.loadTail()

	switch {
	case head < tail:
		handler(r.buf[head : head+uint32(n)])
	case int(r.cap-head) >= n:
		handler(r.buf[head : head+uint32(n)])
	default:
		remaining := r.cap - head
		handler(r.buf[head:r.cap])
		handler(r.buf[0 : uint32(n)-remaining])
	}

	newHead := (head + uint32(n)) % r.cap
	atomic.StoreUint32(&r.head, newHead)

	return true
}
