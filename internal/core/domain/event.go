package domain

import "time"

// JobEvent records one lifecycle change of a job for the audit trail.
type JobEvent struct {
	JobID     string
	Username  string
	Status    JobStatus
	Timestamp time.Time
	Source    string
}
