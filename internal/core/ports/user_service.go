package ports

import (
	"context"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// CreateUserInput carries the data for a new user account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string // defaults to "user" when empty
	FullName string
	Phone    string
}

// UpdateUserInput carries the fields applied on edit. Password is optional:
// when blank the stored credential is preserved.
type UpdateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
	FullName string
	Phone    string
}

// UserService defines admin-facing user registry operations.
type UserService interface {
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, id string, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
