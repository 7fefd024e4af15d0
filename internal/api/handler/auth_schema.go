package handler

import "github.com/trucklog/joblog-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string       `json:"token"`
	SessionID string       `json:"session_id,omitempty"`
	User      *domain.User `json:"user"`
}

type sessionResponse struct {
	Valid   bool            `json:"valid"`
	Session *domain.Session `json:"session,omitempty"`
}
