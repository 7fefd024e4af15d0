package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// stubJobService scripts each operation with a function field.
type stubJobService struct {
	saveFn    func(in ports.SaveJobInput) (*ports.SaveJobResult, error)
	getFn     func(userID string) ([]*domain.Job, error)
	cleanupFn func() (int64, error)

	cleanupCalls int
	gotSave      ports.SaveJobInput
	gotUserID    string
}

func (s *stubJobService) Save(_ context.Context, in ports.SaveJobInput) (*ports.SaveJobResult, error) {
	s.gotSave = in
	if s.saveFn != nil {
		return s.saveFn(in)
	}
	return &ports.SaveJobResult{ID: "job1", Status: "active", CreatedAt: time.Now().UTC()}, nil
}

func (s *stubJobService) GetForUser(_ context.Context, userID string) ([]*domain.Job, error) {
	s.gotUserID = userID
	if s.getFn != nil {
		return s.getFn(userID)
	}
	return nil, nil
}

func (s *stubJobService) UpdateStatus(_ context.Context, id string, status string, _ ports.Actor) (*domain.Job, error) {
	return &domain.Job{ID: id, Status: domain.JobStatus(status)}, nil
}

func (s *stubJobService) Update(_ context.Context, id string, _ ports.UpdateJobInput, _ ports.Actor) (*domain.Job, error) {
	return &domain.Job{ID: id}, nil
}

func (s *stubJobService) CleanupIncomplete(context.Context) (int64, error) {
	s.cleanupCalls++
	if s.cleanupFn != nil {
		return s.cleanupFn()
	}
	return 0, nil
}

func asAuthenticated(c echo.Context, userID, username, role string) {
	c.Set("user_id", userID)
	c.Set("username", username)
	c.Set("role", role)
}

func TestJobHandler_Create_UsesTokenIdentity(t *testing.T) {
	svc := &stubJobService{}
	h := NewJobHandler(svc, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/jobs",
		`{"activity": "delivery", "truck_type": "flatbed", "weight_kg": 1200, "photo": "data:image/jpeg;base64,x"}`)
	asAuthenticated(c, "u1", "driver1", domain.RoleUser)

	if err := h.Create(c); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}
	if svc.gotSave.UserID != "u1" || svc.gotSave.Username != "driver1" {
		t.Errorf("owner identity = (%q, %q), want the token's identity", svc.gotSave.UserID, svc.gotSave.Username)
	}

	var resp createJobResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "job1" || resp.Status != "active" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestJobHandler_Create_RejectsUnknownActivity(t *testing.T) {
	h := NewJobHandler(&stubJobService{}, zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/v1/jobs",
		`{"activity": "flying", "truck_type": "flatbed", "weight_kg": 1200, "photo": "x"}`)
	asAuthenticated(c, "u1", "driver1", domain.RoleUser)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Create() error = %v, want 422 HTTPError", err)
	}
}

func TestJobHandler_Create_Unauthenticated(t *testing.T) {
	h := NewJobHandler(&stubJobService{}, zerolog.Nop())

	c, _ := newTestContext(t, http.MethodPost, "/v1/jobs", `{}`)

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("Create() without claims error = %v, want 401 HTTPError", err)
	}
}

func TestJobHandler_List_TriggersCleanup(t *testing.T) {
	svc := &stubJobService{
		getFn: func(userID string) ([]*domain.Job, error) {
			return []*domain.Job{{ID: "job1", UserID: userID, Username: "driver1", Status: domain.StatusActive}}, nil
		},
	}
	h := NewJobHandler(svc, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet, "/v1/jobs", "")
	asAuthenticated(c, "u1", "driver1", domain.RoleUser)

	if err := h.List(c); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if svc.cleanupCalls != 1 {
		t.Errorf("cleanup sweeps = %d, want 1", svc.cleanupCalls)
	}
	if svc.gotUserID != "u1" {
		t.Errorf("listed user = %q, want the caller's own id", svc.gotUserID)
	}

	var resp listJobsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != "job1" {
		t.Errorf("unexpected list: %+v", resp)
	}
}

func TestJobHandler_List_CleanupFailureDoesNotBlock(t *testing.T) {
	svc := &stubJobService{
		cleanupFn: func() (int64, error) { return 0, errors.New("store down") },
	}
	h := NewJobHandler(svc, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodGet, "/v1/jobs", "")
	asAuthenticated(c, "u1", "driver1", domain.RoleUser)

	if err := h.List(c); err != nil {
		t.Fatalf("List() error = %v, want success despite sweep failure", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestJobHandler_List_UserIDOverride(t *testing.T) {
	// A regular user may not inspect another account.
	svc := &stubJobService{}
	h := NewJobHandler(svc, zerolog.Nop())

	c, _ := newTestContext(t, http.MethodGet, "/v1/jobs?user_id=u2", "")
	asAuthenticated(c, "u1", "driver1", domain.RoleUser)

	if err := h.List(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("List() error = %v, want ErrForbidden", err)
	}

	// A manager may.
	c2, _ := newTestContext(t, http.MethodGet, "/v1/jobs?user_id=u2", "")
	asAuthenticated(c2, "u9", "boss", domain.RoleManager)

	if err := h.List(c2); err != nil {
		t.Fatalf("manager List() error = %v", err)
	}
	if svc.gotUserID != "u2" {
		t.Errorf("listed user = %q, want the requested u2", svc.gotUserID)
	}
}

func TestJobHandler_UpdateStatus(t *testing.T) {
	h := NewJobHandler(&stubJobService{}, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPatch, "/v1/jobs/job1/status", `{"status": "finished"}`)
	c.SetParamNames("id")
	c.SetParamValues("job1")
	asAuthenticated(c, "u1", "driver1", domain.RoleUser)

	if err := h.UpdateStatus(c); err != nil {
		t.Fatalf("UpdateStatus() error = %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	// Unknown lifecycle value is rejected before reaching the service.
	c2, _ := newTestContext(t, http.MethodPatch, "/v1/jobs/job1/status", `{"status": "paused"}`)
	c2.SetParamNames("id")
	c2.SetParamValues("job1")
	asAuthenticated(c2, "u1", "driver1", domain.RoleUser)

	err := h.UpdateStatus(c2)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("UpdateStatus() error = %v, want 422 HTTPError", err)
	}
}

func TestJobHandler_Cleanup(t *testing.T) {
	svc := &stubJobService{
		cleanupFn: func() (int64, error) { return 3, nil },
	}
	h := NewJobHandler(svc, zerolog.Nop())

	c, rec := newTestContext(t, http.MethodPost, "/v1/jobs/cleanup", "")

	if err := h.Cleanup(c); err != nil {
		t.Fatalf("Cleanup() error = %v", err)
	}
	var resp cleanupResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Deleted != 3 {
		t.Errorf("deleted = %d, want 3", resp.Deleted)
	}
}
