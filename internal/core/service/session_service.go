package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// SessionService manages login sessions over a key-value store. Expiry is
// computed from the recorded login time, not from the store's own TTL; the
// store TTL is only a safety net against leaked records.
type SessionService struct {
	store ports.SessionStore
	ttl   time.Duration
	now   func() time.Time
	log   zerolog.Logger
}

func NewSessionService(store ports.SessionStore, ttl time.Duration, log zerolog.Logger) *SessionService {
	if ttl <= 0 {
		ttl = domain.DefaultSessionTTL
	}
	return &SessionService{store: store, ttl: ttl, now: time.Now, log: log}
}

// Establish writes the session record (auth flag, username, user id, role,
// login timestamp) as a single batch and returns the new session id.
func (s *SessionService) Establish(ctx context.Context, user *domain.User) (string, error) {
	id := newSessionID()
	session := domain.Session{
		Authenticated: true,
		Username:      user.Username,
		UserID:        user.ID,
		Role:          user.Role,
		LoginTime:     s.now().UTC(),
	}
	if err := s.store.Put(ctx, id, session, s.ttl); err != nil {
		return "", err
	}
	return id, nil
}

// Check reports whether the session is still within its validity window.
// An expired session is cleared here — the explicit write the pure
// IsExpired predicate deliberately does not perform.
func (s *SessionService) Check(ctx context.Context, id string) (bool, *domain.Session, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}

	if session.IsExpired(s.now(), s.ttl) {
		if err := s.store.Delete(ctx, id); err != nil {
			s.log.Warn().Err(err).Str("session_id", id).Msg("failed to clear expired session")
		}
		return false, nil, nil
	}

	return true, session, nil
}

// Clear removes the session record. Idempotent.
func (s *SessionService) Clear(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// newSessionID returns a random 32-character hex identifier.
func newSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// fallback: use current nanoseconds
		return fmt.Sprintf("%032x", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}
