package worker

import (
	"sync/atomic"
	"testing"
)

func TestPoolRunsAllSubmittedJobs(t *testing.T) {
	p := NewPool(4)
	var n atomic.Int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()

	if got := n.Load(); got != 100 {
		t.Errorf("jobs run: got %d, want 100", got)
	}
}

func TestStopDrainsQueue(t *testing.T) {
	p := NewPool(1)
	var n atomic.Int64
	for i := 0; i < 10; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()
	if got := n.Load(); got != 10 {
		t.Errorf("queued jobs dropped: ran %d of 10", got)
	}
}
