package handler

import (
	"time"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

type createJobRequest struct {
	Activity  string  `json:"activity"   validate:"required,oneof=delivery pickup haulage disposal"`
	TruckType string  `json:"truck_type" validate:"required,oneof=flatbed dump tanker refrigerated container"`
	WeightKg  float64 `json:"weight_kg"  validate:"required,gt=0"`
	Photo     string  `json:"photo"      validate:"required"`
}

type createJobResponse struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

type updateJobStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=started active finished deleted"`
}

type updateJobRequest struct {
	Activity  string   `json:"activity,omitempty"   validate:"omitempty,oneof=delivery pickup haulage disposal"`
	TruckType string   `json:"truck_type,omitempty" validate:"omitempty,oneof=flatbed dump tanker refrigerated container"`
	WeightKg  *float64 `json:"weight_kg,omitempty"  validate:"omitempty,gt=0"`
	Photo     string   `json:"photo,omitempty"`
}

// jobResponse is the transport view of a job record. Intentionally separate
// from the domain type so the JSON contract is not coupled to internal
// changes.
type jobResponse struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	Activity    string     `json:"activity"`
	TruckType   string     `json:"truck_type"`
	WeightKg    float64    `json:"weight_kg"`
	Photo       string     `json:"photo"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	EndDateTime *time.Time `json:"end_datetime,omitempty"`
}

type listJobsResponse struct {
	Data []jobResponse `json:"data"`
}

type cleanupResponse struct {
	Deleted int64 `json:"deleted"`
}

func toJobResponse(j *domain.Job) jobResponse {
	return jobResponse{
		ID:          j.ID,
		UserID:      j.UserID,
		Username:    j.Username,
		Activity:    j.Activity,
		TruckType:   j.TruckType,
		WeightKg:    j.WeightKg,
		Photo:       j.Photo,
		Status:      string(j.Status),
		CreatedAt:   j.CreatedAt.UTC(),
		UpdatedAt:   j.UpdatedAt.UTC(),
		EndDateTime: j.EndDateTime,
	}
}

func toListJobsResponse(jobs []*domain.Job) listJobsResponse {
	items := make([]jobResponse, len(jobs))
	for i, j := range jobs {
		items[i] = toJobResponse(j)
	}
	return listJobsResponse{Data: items}
}
