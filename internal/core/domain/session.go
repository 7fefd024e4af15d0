package domain

import (
	"errors"
	"time"
)

// DefaultSessionTTL is the fixed validity window of a login session.
const DefaultSessionTTL = 24 * time.Hour

var ErrSessionNotFound = errors.New("session not found")

// Session is the server-side record of a successful login. It is a cache of
// "the last successful login", not the authority on who may call the API —
// that is the JWT presented on each request.
type Session struct {
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username"`
	UserID        string    `json:"user_id"`
	Role          string    `json:"role"`
	LoginTime     time.Time `json:"login_time"`
}

// IsExpired reports whether the session has aged past ttl at the given
// instant. Pure predicate: expiring a session is a separate, explicit write.
func (s Session) IsExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return now.Sub(s.LoginTime) >= ttl
}
