package ports

import (
	"context"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// LoginResult is returned on successful credential validation. SessionID may
// be empty when session establishment failed; the token is still usable.
type LoginResult struct {
	Token     string
	SessionID string
	User      *domain.User
}

// AuthService validates credentials and issues tokens.
type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	// Bootstrap creates the default administrator when no user with the
	// bootstrap username exists. Reports whether a user was created.
	Bootstrap(ctx context.Context) (bool, error)
}
