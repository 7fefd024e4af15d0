package ports

import (
	"context"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// UserUpdate carries the fields applied on a user update. All fields overwrite
// unconditionally except PasswordHash, which is kept when empty.
type UserUpdate struct {
	Username     string
	Email        string
	FullName     string
	Phone        string
	Role         string
	PasswordHash string // empty = preserve existing hash
}

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, fields UserUpdate) error
	Delete(ctx context.Context, id string) error
}
