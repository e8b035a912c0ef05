package handler

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingHandler struct {
	mu   sync.Mutex
	seen []int
}

func (h *recordingHandler) Handle(req int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.seen = append(h.seen, req)
	return nil
}

func (h *recordingHandler) snapshot() []int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]int(nil), h.seen...)
}

func TestNew_RequiresHandler(t *testing.T) {
	if _, err := New(Config[int]{}); err == nil {
		t.Error("New without a handler should fail")
	}
}

func TestLoop_ProcessesInSubmitOrder(t *testing.T) {
	h := &recordingHandler{}
	loop, err := New(Config[int]{Handler: h, QueueSize: 16})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx := context.Background()
	if err := loop.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for i := range 10 {
		if err := loop.Submit(ctx, i); err != nil {
			t.Fatalf("Submit(%d) failed: %v", i, err)
		}
	}

	if err := loop.DrainTimeout(1 * time.Second); err != nil {
		t.Fatalf("DrainTimeout failed: %v", err)
	}

	seen := h.snapshot()
	if len(seen) != 10 {
		t.Fatalf("processed = %d, want 10", len(seen))
	}
	for i, v := range seen {
		if v != i {
			t.Errorf("seen[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestLoop_SubmitBeforeStartFails(t *testing.T) {
	loop, err := New(Config[int]{Handler: &recordingHandler{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := loop.Submit(context.Background(), 1); err == nil {
		t.Error("Submit before Start should fail")
	}
}

func TestLoop_SubmitAfterStopFails(t *testing.T) {
	loop, err := New(Config[int]{Handler: &recordingHandler{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()
	if err := loop.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := loop.DrainTimeout(1 * time.Second); err != nil {
		t.Fatalf("DrainTimeout failed: %v", err)
	}
	if err := loop.Submit(ctx, 1); err == nil {
		t.Error("Submit after Stop should fail")
	}
}

func TestLoop_StartTwiceFails(t *testing.T) {
	loop, err := New(Config[int]{Handler: &recordingHandler{}})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	ctx := context.Background()
	if err := loop.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if err := loop.Start(ctx); err == nil {
		t.Error("second Start should fail")
	}
	loop.DrainTimeout(1 * time.Second)
}
