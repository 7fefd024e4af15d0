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

// AuditDispatcher is the interface the service uses to hand lifecycle events
// to the audit pipeline without blocking the request.
type AuditDispatcher interface {
	Enqueue(event ports.JobEventInput)
}

// JobService implements the job registry: save, list, partial update, status
// transitions, and the incomplete-job cleanup sweep.
type JobService struct {
	repo  ports.JobRepository
	audit AuditDispatcher
	log   zerolog.Logger
}

func NewJobService(repo ports.JobRepository, audit AuditDispatcher, log zerolog.Logger) *JobService {
	return &JobService{repo: repo, audit: audit, log: log}
}

// Save validates the submission and persists it with status forced to
// "active" and a server-assigned creation timestamp. Validation failures
// return the itemized list of offending fields.
func (s *JobService) Save(ctx context.Context, in ports.SaveJobInput) (*ports.SaveJobResult, error) {
	var missing []string
	if in.UserID == "" {
		missing = append(missing, "user_id")
	}
	if in.Username == "" {
		missing = append(missing, "username")
	}
	if !domain.ValidActivity(in.Activity) {
		missing = append(missing, "activity")
	}
	if !domain.ValidTruckType(in.TruckType) {
		missing = append(missing, "truck_type")
	}
	if in.WeightKg <= 0 {
		missing = append(missing, "weight_kg")
	}
	if !domain.ValidPhoto(in.Photo) {
		missing = append(missing, "photo")
	}
	if len(missing) > 0 {
		return nil, &domain.ValidationError{Fields: missing}
	}

	now := time.Now().UTC()
	job := &domain.Job{
		UserID:    in.UserID,
		Username:  in.Username,
		Activity:  in.Activity,
		TruckType: in.TruckType,
		WeightKg:  in.WeightKg,
		Photo:     in.Photo,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	id, err := s.repo.Create(ctx, job)
	if err != nil {
		s.log.Error().Err(err).Str("username", in.Username).Msg("failed to save job")
		return nil, err
	}

	metrics.JobsCreatedTotal.WithLabelValues(in.Activity, in.TruckType).Inc()
	s.audit.Enqueue(ports.JobEventInput{
		JobID:     id,
		Username:  in.Username,
		Status:    string(domain.StatusActive),
		Timestamp: now,
		Source:    "save",
	})

	s.log.Info().Str("job_id", id).Str("username", in.Username).Str("activity", in.Activity).Msg("job saved")

	return &ports.SaveJobResult{ID: id, Status: string(domain.StatusActive), CreatedAt: now}, nil
}

// GetForUser returns all jobs belonging to userID in the store's natural order.
func (s *JobService) GetForUser(ctx context.Context, userID string) ([]*domain.Job, error) {
	return s.repo.FindByUserID(ctx, userID)
}

// UpdateStatus applies a lifecycle transition. Transitions outside the state
// machine are rejected. "finished" and "deleted" stamp end_datetime.
func (s *JobService) UpdateStatus(ctx context.Context, id string, status string, actor ports.Actor) (*domain.Job, error) {
	next := domain.JobStatus(status)
	if !domain.ValidStatus(next) {
		return nil, &domain.ValidationError{Fields: []string{"status"}}
	}

	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(job.UserID) {
		return nil, domain.ErrForbidden
	}
	if !job.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("update status: %w (from %s to %s)", domain.ErrInvalidTransition, job.Status, next)
	}

	now := time.Now().UTC()
	var endAt *time.Time
	if next.IsTerminal() {
		endAt = &now
	}

	if err := s.repo.SetStatus(ctx, id, next, endAt, now); err != nil {
		return nil, err
	}

	metrics.JobStatusTransitionsTotal.WithLabelValues(string(next)).Inc()
	s.audit.Enqueue(ports.JobEventInput{
		JobID:     id,
		Username:  job.Username,
		Status:    string(next),
		Timestamp: now,
		Source:    "status_update",
	})

	job.Status = next
	job.UpdatedAt = now
	job.EndDateTime = endAt
	return job, nil
}

// Update applies a partial edit. Deleted jobs are immutable. Provided fields
// must still pass the submission rules.
func (s *JobService) Update(ctx context.Context, id string, in ports.UpdateJobInput, actor ports.Actor) (*domain.Job, error) {
	job, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.Owns(job.UserID) {
		return nil, domain.ErrForbidden
	}
	if job.Status == domain.StatusDeleted {
		return nil, domain.ErrJobImmutable
	}

	var bad []string
	if in.Activity != "" && !domain.ValidActivity(in.Activity) {
		bad = append(bad, "activity")
	}
	if in.TruckType != "" && !domain.ValidTruckType(in.TruckType) {
		bad = append(bad, "truck_type")
	}
	if in.WeightKg != nil && *in.WeightKg <= 0 {
		bad = append(bad, "weight_kg")
	}
	if in.Photo != "" && !domain.ValidPhoto(in.Photo) {
		bad = append(bad, "photo")
	}
	if len(bad) > 0 {
		return nil, &domain.ValidationError{Fields: bad}
	}

	now := time.Now().UTC()
	if err := s.repo.Update(ctx, id, ports.JobUpdate{
		Activity:  in.Activity,
		TruckType: in.TruckType,
		Photo:     in.Photo,
		WeightKg:  in.WeightKg,
		UpdatedAt: now,
	}); err != nil {
		return nil, err
	}

	s.log.Info().Str("job_id", id).Msg("job updated")
	return s.repo.FindByID(ctx, id)
}

// CleanupIncomplete purges job records whose photo is exactly the empty
// string: submissions interrupted before the photo step committed. Best
// effort; a job mid-save could in principle race with the sweep.
func (s *JobService) CleanupIncomplete(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteIncomplete(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.JobsCleanedTotal.Add(float64(n))
		s.log.Info().Int64("deleted", n).Msg("incomplete jobs purged")
	}
	return n, nil
}
