package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestRefresher_InvalidSchedule(t *testing.T) {
	r := NewRefresher(func(ctx context.Context) error { return nil })
	if err := r.Start("not a cron expression"); err == nil {
		t.Fatal("Start() error = nil, want parse error")
	}
}

func TestRefresher_RunsJob(t *testing.T) {
	var calls atomic.Int32
	r := NewRefresher(func(ctx context.Context) error {
		calls.Add(1)
		return nil
	})
	// Every-second schedule via the optional seconds field is not enabled;
	// drive the job directly instead of waiting a minute.
	r.run()
	r.run()
	if got := calls.Load(); got != 2 {
		t.Errorf("job calls = %d, want 2", got)
	}
}

func TestRefresher_JobGetsDeadline(t *testing.T) {
	done := make(chan struct{})
	r := NewRefresher(func(ctx context.Context) error {
		if _, ok := ctx.Deadline(); !ok {
			t.Error("job context has no deadline")
		}
		close(done)
		return nil
	})
	r.run()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job was not invoked")
	}
}

func TestRefresher_StartStop(t *testing.T) {
	r := NewRefresher(func(ctx context.Context) error { return nil })
	if err := r.Start("0 19 * * 1-5"); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	r.Stop()
}
