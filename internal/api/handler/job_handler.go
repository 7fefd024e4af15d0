package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// JobHandler handles job registry endpoints.
type JobHandler struct {
	service ports.JobService
	log     zerolog.Logger
}

func NewJobHandler(service ports.JobService, log zerolog.Logger) *JobHandler {
	return &JobHandler{service: service, log: log}
}

// Create handles POST /v1/jobs. The owner identity comes from the token, not
// the payload.
//
// @Summary      Submit a job record
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createJobRequest  true  "Job submission"
// @Success      201   {object}  createJobResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs [post]
func (h *JobHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	result, err := h.service.Save(c.Request().Context(), ports.SaveJobInput{
		UserID:    actor.UserID,
		Username:  actor.Username,
		Activity:  req.Activity,
		TruckType: req.TruckType,
		WeightKg:  req.WeightKg,
		Photo:     req.Photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, createJobResponse{
		ID:        result.ID,
		Status:    result.Status,
		CreatedAt: result.CreatedAt.UTC(),
	})
}

// List handles GET /v1/jobs. Regular users see their own jobs; admins and
// managers may pass ?user_id= to inspect another account. Loading the list
// also triggers the best-effort cleanup sweep for interrupted submissions.
//
// @Summary      List job records
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query     string  false  "Owner to inspect (admin/manager only)"
// @Success      200      {object}  listJobsResponse
// @Failure      403      {object}  errorResponse
// @Router       /v1/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	userID := actor.UserID
	if requested := c.QueryParam("user_id"); requested != "" && requested != actor.UserID {
		if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleManager {
			return domain.ErrForbidden
		}
		userID = requested
	}

	// Opportunistic garbage collection; a failed sweep never blocks the list.
	if _, err := h.service.CleanupIncomplete(c.Request().Context()); err != nil {
		h.log.Warn().Err(err).Msg("cleanup sweep failed")
	}

	jobs, err := h.service.GetForUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListJobsResponse(jobs))
}

// UpdateStatus handles PATCH /v1/jobs/:id/status.
//
// @Summary      Apply a lifecycle transition
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Job id"
// @Param        body  body      updateJobStatusRequest  true  "New status"
// @Success      200   {object}  jobResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id}/status [patch]
func (h *JobHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateJobStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	job, err := h.service.UpdateStatus(c.Request().Context(), c.Param("id"), req.Status, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Update handles PUT /v1/jobs/:id — a partial edit of the job's fields.
//
// @Summary      Edit a job record
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Job id"
// @Param        body  body      updateJobRequest  true  "Fields to change"
// @Success      200   {object}  jobResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/jobs/{id} [put]
func (h *JobHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateJobRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	job, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateJobInput{
		Activity:  req.Activity,
		TruckType: req.TruckType,
		Photo:     req.Photo,
		WeightKg:  req.WeightKg,
	}, actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toJobResponse(job))
}

// Cleanup handles POST /v1/jobs/cleanup — an explicit sweep of incomplete
// jobs, returning the number removed.
//
// @Summary      Purge incomplete jobs
// @Tags         jobs
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  cleanupResponse
// @Router       /v1/jobs/cleanup [post]
func (h *JobHandler) Cleanup(c echo.Context) error {
	n, err := h.service.CleanupIncomplete(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cleanupResponse{Deleted: n})
}
