package ports

import (
	"context"
	"time"
)

// JobEventInput is the DTO handed from producers to the audit pipeline.
type JobEventInput struct {
	JobID     string
	Username  string
	Status    string
	Timestamp time.Time
	Source    string
}

// AuditService records job lifecycle events.
type AuditService interface {
	Record(ctx context.Context, event JobEventInput) error
}
