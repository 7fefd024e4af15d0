package domain

import (
	"errors"
	"strings"
	"time"
)

// JobStatus represents the lifecycle state of a job record.
type JobStatus string

const (
	StatusStarted  JobStatus = "started"
	StatusActive   JobStatus = "active"
	StatusFinished JobStatus = "finished"
	StatusDeleted  JobStatus = "deleted"
)

// validTransitions defines the allowed state machine transitions.
// "finished" and "deleted" are terminal.
var validTransitions = map[JobStatus][]JobStatus{
	StatusStarted: {StatusActive},
	StatusActive:  {StatusFinished, StatusDeleted},
}

var ErrJobNotFound = errors.New("job not found")
var ErrInvalidTransition = errors.New("invalid status transition")

// ErrJobImmutable is returned when a caller attempts to modify a job that has
// already been deleted.
var ErrJobImmutable = errors.New("job can no longer be modified")

// CanTransitionTo reports whether a transition from current status to next is valid.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ValidStatus reports whether status names a known lifecycle state.
func ValidStatus(status JobStatus) bool {
	switch status {
	case StatusStarted, StatusActive, StatusFinished, StatusDeleted:
		return true
	}
	return false
}

// IsTerminal reports whether the status closes the job lifecycle.
func (s JobStatus) IsTerminal() bool {
	return s == StatusFinished || s == StatusDeleted
}

// Activities is the fixed catalogue of job activity labels.
var Activities = []string{"delivery", "pickup", "haulage", "disposal"}

// TruckTypes is the fixed catalogue of truck types.
var TruckTypes = []string{"flatbed", "dump", "tanker", "refrigerated", "container"}

// ValidActivity reports whether activity is in the catalogue.
func ValidActivity(activity string) bool {
	for _, a := range Activities {
		if a == activity {
			return true
		}
	}
	return false
}

// ValidTruckType reports whether truckType is in the catalogue.
func ValidTruckType(truckType string) bool {
	for _, t := range TruckTypes {
		if t == truckType {
			return true
		}
	}
	return false
}

// photoPrefixes are the accepted photo URI schemes. "http" covers both http
// and https URLs.
var photoPrefixes = []string{"data:image/", "file://", "http", "blob:"}

// ValidPhoto reports whether photo is a non-empty string carrying one of the
// accepted URI schemes. A job is only complete once its photo passes this check.
func ValidPhoto(photo string) bool {
	for _, p := range photoPrefixes {
		if strings.HasPrefix(photo, p) {
			return true
		}
	}
	return false
}

// Job is a single truck-logging submission tracked through its lifecycle.
type Job struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Username    string     `json:"username"`
	Activity    string     `json:"activity"`
	TruckType   string     `json:"truck_type"`
	WeightKg    float64    `json:"weight_kg"`
	Photo       string     `json:"photo"`
	Status      JobStatus  `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	EndDateTime *time.Time `json:"end_datetime,omitempty"`
}
