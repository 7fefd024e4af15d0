package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

// SessionStore keeps each session as a Redis hash with the five session
// fields written in one batch. Key format: session:<id>
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

const (
	fieldAuthenticated = "authenticated"
	fieldUsername      = "username"
	fieldUserID        = "user_id"
	fieldRole          = "role"
	fieldLoginTime     = "login_time"
)

// Put writes the session fields as a single hash and applies ttl as a safety
// net; validity is decided by the login timestamp, not the key expiry.
func (s *SessionStore) Put(ctx context.Context, id string, session domain.Session, ttl time.Duration) error {
	key := s.key(id)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key,
		fieldAuthenticated, "1",
		fieldUsername, session.Username,
		fieldUserID, session.UserID,
		fieldRole, session.Role,
		fieldLoginTime, session.LoginTime.UTC().Format(time.RFC3339Nano),
	)
	if ttl > 0 {
		pipe.Expire(ctx, key, ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	fields, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("session get: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrSessionNotFound
	}

	loginTime, err := time.Parse(time.RFC3339Nano, fields[fieldLoginTime])
	if err != nil {
		return nil, fmt.Errorf("session get: bad login_time: %w", err)
	}

	return &domain.Session{
		Authenticated: fields[fieldAuthenticated] == "1",
		Username:      fields[fieldUsername],
		UserID:        fields[fieldUserID],
		Role:          fields[fieldRole],
		LoginTime:     loginTime,
	}, nil
}

// Delete removes the session hash. Deleting an absent key is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
