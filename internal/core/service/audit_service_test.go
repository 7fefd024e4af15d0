package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// stubAuditRepo collects inserted events.
type stubAuditRepo struct {
	events    []*domain.JobEvent
	insertErr error
}

func (r *stubAuditRepo) InsertEvent(_ context.Context, event *domain.JobEvent) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.events = append(r.events, event)
	return nil
}

// stubDedup remembers marked keys in memory.
type stubDedup struct {
	seen     map[string]bool
	checkErr error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[string]bool)}
}

func (d *stubDedup) key(jobID, status string, ts time.Time) string {
	return fmt.Sprintf("%s:%s:%d", jobID, status, ts.Unix())
}

func (d *stubDedup) IsDuplicate(_ context.Context, jobID, status string, ts time.Time) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[d.key(jobID, status, ts)], nil
}

func (d *stubDedup) Mark(_ context.Context, jobID, status string, ts time.Time) error {
	d.seen[d.key(jobID, status, ts)] = true
	return nil
}

func auditInput() ports.JobEventInput {
	return ports.JobEventInput{
		JobID:     "job1",
		Username:  "driver1",
		Status:    "active",
		Timestamp: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		Source:    "save",
	}
}

func TestAuditService_RecordPersistsEvent(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Record(context.Background(), auditInput()); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("inserted events = %d, want 1", len(repo.events))
	}
	ev := repo.events[0]
	if ev.JobID != "job1" || ev.Status != domain.StatusActive || ev.Source != "save" {
		t.Errorf("unexpected event: %+v", ev)
	}
}

func TestAuditService_RecordSkipsDuplicate(t *testing.T) {
	repo := &stubAuditRepo{}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	in := auditInput()
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("first Record() error = %v", err)
	}
	if err := svc.Record(context.Background(), in); err != nil {
		t.Fatalf("replayed Record() error = %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("inserted events = %d after replay, want 1", len(repo.events))
	}
}

func TestAuditService_RecordSurvivesDedupOutage(t *testing.T) {
	repo := &stubAuditRepo{}
	dedup := newStubDedup()
	dedup.checkErr = errors.New("redis down")
	svc := NewAuditService(repo, dedup, zerolog.Nop())

	if err := svc.Record(context.Background(), auditInput()); err != nil {
		t.Fatalf("Record() with broken dedup error = %v", err)
	}
	if len(repo.events) != 1 {
		t.Fatalf("event must still be recorded when the dedup check fails")
	}
}

func TestAuditService_RecordInsertFailure(t *testing.T) {
	repo := &stubAuditRepo{insertErr: errors.New("mongo down")}
	svc := NewAuditService(repo, newStubDedup(), zerolog.Nop())

	if err := svc.Record(context.Background(), auditInput()); err == nil {
		t.Fatalf("Record() should surface the insert failure")
	}
}
