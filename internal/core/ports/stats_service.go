package ports

import "context"

// UserJobCount pairs a username with its job count, used for ranking.
type UserJobCount struct {
	Username string `json:"username"`
	Jobs     int    `json:"jobs"`
}

// Stats is the aggregated view computed over the full job and user sets.
type Stats struct {
	TotalJobs   int                 `json:"total_jobs"`
	TotalUsers  int                 `json:"total_users"`
	ByStatus    map[string]int      `json:"by_status"`
	ByUser      map[string]int      `json:"by_user"`
	ByActivity  map[string]int      `json:"by_activity"`
	ByTruckType map[string]int      `json:"by_truck_type"`
	TopUsers    []UserJobCount      `json:"top_users"`
}

// StatsService recomputes aggregate statistics on each call.
type StatsService interface {
	Overview(ctx context.Context) (*Stats, error)
}
