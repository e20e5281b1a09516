package mqtt

import (
	"fmt"
	"testing"
)

func msg(i int) bufferedMsg {
	return bufferedMsg{topic: "t", payload: []byte(fmt.Sprintf("m%d", i))}
}

func TestRingBufferPushDrain(t *testing.T) {
	r := newRingBuffer(4)

	for i := 0; i < 3; i++ {
		r.push(msg(i))
	}
	if r.len() != 3 {
		t.Fatalf("len = %d, want 3", r.len())
	}

	drained := r.drainAll()
	if len(drained) != 3 {
		t.Fatalf("drained = %d, want 3", len(drained))
	}
	for i, m := range drained {
		if string(m.payload) != fmt.Sprintf("m%d", i) {
			t.Errorf("message %d out of order: %s", i, m.payload)
		}
	}
	if r.len() != 0 {
		t.Error("buffer should be empty after drain")
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	r := newRingBuffer(3)
	for i := 0; i < 5; i++ {
		r.push(msg(i))
	}

	drained := r.drainAll()
	if len(drained) != 3 {
		t.Fatalf("drained = %d, want 3", len(drained))
	}
	// m0 and m1 were dropped; m2..m4 survive in order.
	for i, m := range drained {
		if string(m.payload) != fmt.Sprintf("m%d", i+2) {
			t.Errorf("message %d: got %s, want m%d", i, m.payload, i+2)
		}
	}
}

func TestRingBufferDrainEmpty(t *testing.T) {
	r := newRingBuffer(2)
	if drained := r.drainAll(); drained != nil {
		t.Errorf("empty drain should return nil, got %d messages", len(drained))
	}
}
