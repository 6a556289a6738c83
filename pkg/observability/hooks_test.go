package observability

import (
	"context"
	"sync"
	"testing"
	"time"
)

type recordingOptimizerHooks struct {
	mu     sync.Mutex
	events []string
}

func (r *recordingOptimizerHooks) record(ev string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

func (r *recordingOptimizerHooks) OnOptimizeStart(context.Context, int, int) { r.record("start") }
func (r *recordingOptimizerHooks) OnOptimizeComplete(context.Context, int, time.Duration, error) {
	r.record("complete")
}
func (r *recordingOptimizerHooks) OnPassStart(context.Context, string, int) { r.record("pass-start") }
func (r *recordingOptimizerHooks) OnPassComplete(context.Context, string, int, time.Duration) {
	r.record("pass-complete")
}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Should not panic.
	ctx := context.Background()
	Optimizer().OnOptimizeStart(ctx, 3, 2)
	Optimizer().OnPassStart(ctx, "redundancy-removal", 3)
	Optimizer().OnPassComplete(ctx, "redundancy-removal", 1, time.Millisecond)
	Optimizer().OnOptimizeComplete(ctx, 1, time.Millisecond, nil)
	Cache().OnCacheHit(ctx, "result")
	Cache().OnCacheMiss(ctx, "result")
	Cache().OnCacheSet(ctx, "result", 128)
}

func TestSetOptimizerHooks(t *testing.T) {
	defer Reset()

	rec := &recordingOptimizerHooks{}
	SetOptimizerHooks(rec)

	ctx := context.Background()
	Optimizer().OnOptimizeStart(ctx, 1, 0)
	Optimizer().OnPassStart(ctx, "execution-order", 1)
	Optimizer().OnPassComplete(ctx, "execution-order", 0, time.Millisecond)
	Optimizer().OnOptimizeComplete(ctx, 0, time.Millisecond, nil)

	want := []string{"start", "pass-start", "pass-complete", "complete"}
	if len(rec.events) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(rec.events), rec.events)
	}
	for i, ev := range want {
		if rec.events[i] != ev {
			t.Errorf("event %d: expected %q, got %q", i, ev, rec.events[i])
		}
	}
}

func TestSetNilHooksIgnored(t *testing.T) {
	defer Reset()

	SetOptimizerHooks(nil)
	SetCacheHooks(nil)

	if Optimizer() == nil {
		t.Error("expected non-nil optimizer hooks after SetOptimizerHooks(nil)")
	}
	if Cache() == nil {
		t.Error("expected non-nil cache hooks after SetCacheHooks(nil)")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	rec := &recordingOptimizerHooks{}
	SetOptimizerHooks(rec)
	Reset()

	Optimizer().OnOptimizeStart(context.Background(), 0, 0)
	if len(rec.events) != 0 {
		t.Errorf("expected no events after Reset, got %v", rec.events)
	}
}

func TestConcurrentAccess(t *testing.T) {
	defer Reset()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			SetOptimizerHooks(&recordingOptimizerHooks{})
		}()
		go func() {
			defer wg.Done()
			Optimizer().OnOptimizeStart(context.Background(), 1, 1)
		}()
	}
	wg.Wait()
}
