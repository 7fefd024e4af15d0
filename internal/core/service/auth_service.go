package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/trucklog/joblog-api/internal/api/metrics"
	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// AuthService implements credential validation, token issuance, and the
// first-run admin bootstrap.
type AuthService struct {
	repo          ports.UserRepository
	sessions      ports.SessionService
	jwtSecret     string
	tokenTTL      time.Duration
	adminPassword string
	log           zerolog.Logger
}

func NewAuthService(
	repo ports.UserRepository,
	sessions ports.SessionService,
	jwtSecret string,
	tokenTTL time.Duration,
	adminPassword string,
	log zerolog.Logger,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		repo:          repo,
		sessions:      sessions,
		jwtSecret:     jwtSecret,
		tokenTTL:      tokenTTL,
		adminPassword: adminPassword,
		log:           log,
	}
}

// Login validates the credentials and, on success, issues a JWT and
// establishes a session. Unknown usernames and wrong passwords both map to
// ErrInvalidCredentials so the response never reveals which part failed.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	// Session establishment is best effort: a failed write is logged and the
	// login still succeeds on the strength of the token.
	sessionID, err := s.sessions.Establish(ctx, user)
	if err != nil {
		s.log.Warn().Err(err).Str("username", user.Username).Msg("failed to establish session")
		sessionID = ""
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()
	s.log.Info().Str("username", user.Username).Str("role", user.Role).Msg("user logged in")

	return &ports.LoginResult{Token: token, SessionID: sessionID, User: user}, nil
}

// Bootstrap creates the default admin account when it does not exist yet.
// Safe to run on every startup.
func (s *AuthService) Bootstrap(ctx context.Context) (bool, error) {
	_, err := s.repo.FindByUsername(ctx, domain.BootstrapUsername)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return false, err
	}

	admin := &domain.User{
		Username:     domain.BootstrapUsername,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if _, err := s.repo.Create(ctx, admin); err != nil {
		// Lost a race against a concurrent bootstrap; the account exists.
		if errors.Is(err, domain.ErrUserExists) {
			return false, nil
		}
		return false, err
	}

	s.log.Info().Str("username", domain.BootstrapUsername).Msg("bootstrap admin created")
	return true, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"user_id":  user.ID,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
