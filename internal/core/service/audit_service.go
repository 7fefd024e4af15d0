package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trucklog/joblog-api/internal/api/metrics"
	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// DedupChecker abstracts the idempotency store (Redis) used to skip replayed
// audit events.
type DedupChecker interface {
	IsDuplicate(ctx context.Context, jobID, status string, ts time.Time) (bool, error)
	Mark(ctx context.Context, jobID, status string, ts time.Time) error
}

type auditService struct {
	repo  ports.AuditRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewAuditService returns an AuditService that persists job lifecycle events
// to the audit collection, skipping duplicates.
func NewAuditService(repo ports.AuditRepository, dedup DedupChecker, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, dedup: dedup, log: log}
}

// Record deduplicates and persists a single lifecycle event.
func (s *auditService) Record(ctx context.Context, in ports.JobEventInput) error {
	isDup, err := s.dedup.IsDuplicate(ctx, in.JobID, in.Status, in.Timestamp)
	if err != nil {
		s.log.Warn().Err(err).Str("job_id", in.JobID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		metrics.AuditDedupTotal.WithLabelValues("hit").Inc()
		s.log.Debug().Str("job_id", in.JobID).Str("status", in.Status).Msg("duplicate audit event skipped")
		return nil
	}
	metrics.AuditDedupTotal.WithLabelValues("miss").Inc()

	if markErr := s.dedup.Mark(ctx, in.JobID, in.Status, in.Timestamp); markErr != nil {
		s.log.Warn().Err(markErr).Str("job_id", in.JobID).Msg("failed to set dedup key")
	}

	event := &domain.JobEvent{
		JobID:     in.JobID,
		Username:  in.Username,
		Status:    domain.JobStatus(in.Status),
		Timestamp: in.Timestamp,
		Source:    in.Source,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("record audit event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(in.Status, in.Source).Inc()
	return nil
}
