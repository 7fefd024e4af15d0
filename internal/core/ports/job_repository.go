package ports

import (
	"context"
	"time"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// JobUpdate carries the optional fields of a partial job update. Nil/empty
// fields are left untouched.
type JobUpdate struct {
	Activity  string
	TruckType string
	Photo     string
	WeightKg  *float64
	UpdatedAt time.Time
}

// JobRepository defines persistence operations for job records.
type JobRepository interface {
	// Create inserts the job and returns the store-assigned identifier.
	Create(ctx context.Context, job *domain.Job) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Job, error)
	// FindByUserID returns all jobs whose user_id matches exactly, in the
	// store's natural order.
	FindByUserID(ctx context.Context, userID string) ([]*domain.Job, error)
	FindAll(ctx context.Context) ([]*domain.Job, error)
	// SetStatus updates the status and updated_at, and stamps end_datetime
	// when endAt is non-nil.
	SetStatus(ctx context.Context, id string, status domain.JobStatus, endAt *time.Time, updatedAt time.Time) error
	Update(ctx context.Context, id string, fields JobUpdate) error
	// DeleteIncomplete removes every job whose photo field is exactly the
	// empty string and returns the number deleted.
	DeleteIncomplete(ctx context.Context) (int64, error)
}
