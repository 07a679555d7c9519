// https://github.com/usbarmory/picoviewer
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package ring

import (
	"testing"
)

// TestConcurrentProduceConsume runs a real producer goroutine and a real
// consumer goroutine over a small-capacity ring, pushing and popping
// 1,000,000 monotonically increasing integers, and checks the popped
// sequence is both monotonic and complete. Each side spins on
// Full()/Empty() rather than locking, matching how an ISR producer and a
// main-loop consumer would actually interact with this queue.
func TestConcurrentProduceConsume(t *testing.T) {
	const n = 1000000

	r := New[int](64)
	done := make(chan struct{})

	go func() {
		for i := 0; i < n; i++ {
			for r.Full() {
			}
			r.Produce(i)
		}

		close(done)
	}()

	for i := 0; i < n; i++ {
		for r.Empty() {
		}

		if v := r.Consume(); v != i {
			t.Fatalf("got %d, want %d", v, i)
		}
	}

	<-done

	if !r.Empty() {
		t.Fatal("ring should be empty after draining n items")
	}
}

func TestProduceConsumeOrder(t *testing.T) {
	r := New[int](8)

	for i := 0; i < 8; i++ {
		r.Produce(i)
	}

	for i := 0; i < 8; i++ {
		if v := r.Consume(); v != i {
			t.Fatalf("got %d, want %d", v, i)
		}
	}

	if !r.Empty() {
		t.Fatal("ring should be empty")
	}
}

func TestProduceBulkAllOrNothing(t *testing.T) {
	r := New[byte](4)

	if ok := r.ProduceBulk([]byte{1, 2, 3, 4, 5}); ok {
		t.Fatal("bulk produce should have refused oversized insert")
	}

	if r.Size() != 0 {
		t.Fatalf("size changed on refused insert: %d", r.Size())
	}

	if ok := r.ProduceBulk([]byte{1, 2, 3}); !ok {
		t.Fatal("bulk produce should have succeeded")
	}

	if r.Size() != 3 {
		t.Fatalf("size = %d, want 3", r.Size())
	}
}

func TestConsumeBulkAllOrNothing(t *testing.T) {
	r := New[byte](8)
	r.ProduceBulk([]byte{1, 2, 3})

	var got []byte

	if ok := r.ConsumeBulk(5, func(w []byte) { got = append(got, w...) }); ok {
		t.Fatal("bulk consume should have refused underfilled queue")
	}

	if got != nil {
		t.Fatal("handler invoked on refused consume")
	}

	if ok := r.ConsumeBulk(3, func(w []byte) { got = append(got, w...) }); !ok {
		t.Fatal("bulk consume should have succeeded")
	}

	want := []byte{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestWrapAround(t *testing.T) {
	r := New[byte](4)

	// fill, drain 2, fill 2 more so tail wraps past capacity
	r.ProduceBulk([]byte{1, 2, 3, 4})

	var drained []byte
	r.ConsumeBulk(2, func(w []byte) { drained = append(drained, w...) })

	if ok := r.ProduceBulk([]byte{5, 6}); !ok {
		t.Fatal("expected room after drain")
	}

	var rest []byte
	r.ConsumeBulk(4, func(w []byte) { rest = append(rest, w...) })

	got := append(drained, rest...)
	want := []byte{1, 2, 3, 4, 5, 6}

	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSpanningWrapPointTwoWindows(t *testing.T) {
	r := New[byte](4)

	r.ProduceBulk([]byte{1, 2, 3, 4})
	r.ConsumeBulk(3, func(w []byte) {})
	r.ProduceBulk([]byte{5, 6, 7})

	var windows [][]byte
	r.ConsumeBulk(4, func(w []byte) {
		cp := make([]byte, len(w))
		copy(cp, w)
		windows = append(windows, cp)
	})

	if len(windows) != 2 {
		t.Fatalf("expected a split into 2 windows, got %d", len(windows))
	}

	var got []byte
	for _, w := range windows {
		got = append(got, w...)
	}

	want := []byte{4, 5, 6, 7}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestSizeAfterInterleaving(t *testing.T) {
	r := New[int](6)
	n := r.Cap()

	for i := 0; i < (3*n)/2; i++ {
		r.Produce(i)
		r.Consume()
	}

	if !r.Empty() {
		t.Fatalf("expected empty queue, size=%d", r.Size())
	}
}
