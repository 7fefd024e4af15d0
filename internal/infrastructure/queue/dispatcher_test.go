package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trucklog/joblog-api/internal/core/ports"
)

// recordingAuditService collects events in processing order.
type recordingAuditService struct {
	mu     sync.Mutex
	events []ports.JobEventInput
	done   chan struct{}
	want   int
}

func (s *recordingAuditService) Record(_ context.Context, event ports.JobEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_PerJobOrdering(t *testing.T) {
	const total = 20
	svc := &recordingAuditService{done: make(chan struct{}), want: total}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(4, svc, zerolog.Nop())
	d.Start(ctx)

	for i := 0; i < total; i++ {
		d.Enqueue(ports.JobEventInput{
			JobID:  "job-ordered",
			Status: fmt.Sprintf("step-%d", i),
		})
	}

	select {
	case <-svc.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for %d events", total)
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i, ev := range svc.events {
		if want := fmt.Sprintf("step-%d", i); ev.Status != want {
			t.Fatalf("event %d = %q, want %q: same-job events must keep their order", i, ev.Status, want)
		}
	}
}

func TestDispatcher_ShardIndexDeterministic(t *testing.T) {
	d := NewDispatcher(4, &recordingAuditService{done: make(chan struct{}), want: -1}, zerolog.Nop())

	for _, id := range []string{"job1", "job2", "a-very-long-identifier"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if got := d.shardIndex(id); got != first {
				t.Fatalf("shardIndex(%q) unstable: %d then %d", id, first, got)
			}
		}
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("shardIndex(%q) = %d, out of range", id, first)
		}
	}
}

func TestDispatcher_DefaultWorkerCount(t *testing.T) {
	d := NewDispatcher(0, &recordingAuditService{done: make(chan struct{}), want: -1}, zerolog.Nop())
	if len(d.workers) != defaultWorkers {
		t.Fatalf("workers = %d, want %d", len(d.workers), defaultWorkers)
	}
}
