package ports

import (
	"context"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// AuditRepository persists job lifecycle events to the audit collection.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.JobEvent) error
}
