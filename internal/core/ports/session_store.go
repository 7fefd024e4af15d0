package ports

import (
	"context"
	"time"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// SessionStore is the key-value boundary for session records. Implementations
// must make Delete idempotent and Get return domain.ErrSessionNotFound for
// unknown or cleared sessions.
type SessionStore interface {
	Put(ctx context.Context, id string, session domain.Session, ttl time.Duration) error
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}

// SessionService manages login sessions with a fixed expiry window.
type SessionService interface {
	Establish(ctx context.Context, user *domain.User) (string, error)
	// Check reports whether the session is still valid. An expired session is
	// cleared as part of the check; this is the one entry point allowed to
	// perform that write.
	Check(ctx context.Context, id string) (bool, *domain.Session, error)
	Clear(ctx context.Context, id string) error
}
