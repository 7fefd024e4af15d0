package ports

import (
	"context"
	"time"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// Actor identifies the authenticated caller for ownership checks.
type Actor struct {
	UserID   string
	Username string
	Role     string
}

// Owns reports whether the actor may touch records belonging to userID.
// Admins and managers may touch any record.
func (a Actor) Owns(userID string) bool {
	if a.Role == domain.RoleAdmin || a.Role == domain.RoleManager {
		return true
	}
	return a.UserID == userID
}

// SaveJobInput carries all data needed to persist a new job submission.
type SaveJobInput struct {
	UserID    string
	Username  string
	Activity  string
	TruckType string
	WeightKg  float64
	Photo     string
}

// SaveJobResult is returned after a successful save.
type SaveJobResult struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// UpdateJobInput carries the optional fields of a partial job edit.
type UpdateJobInput struct {
	Activity  string
	TruckType string
	Photo     string
	WeightKg  *float64
}

// JobService defines use-case operations over job records.
type JobService interface {
	Save(ctx context.Context, input SaveJobInput) (*SaveJobResult, error)
	GetForUser(ctx context.Context, userID string) ([]*domain.Job, error)
	UpdateStatus(ctx context.Context, id string, status string, actor Actor) (*domain.Job, error)
	Update(ctx context.Context, id string, input UpdateJobInput, actor Actor) (*domain.Job, error)
	CleanupIncomplete(ctx context.Context) (int64, error)
}
