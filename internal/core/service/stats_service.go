package service

import (
	"context"
	"sort"

	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// StatsService derives aggregate counts from the full job and user sets,
// recomputed on every call.
type StatsService struct {
	jobs  ports.JobRepository
	users ports.UserRepository
}

func NewStatsService(jobs ports.JobRepository, users ports.UserRepository) *StatsService {
	return &StatsService{jobs: jobs, users: users}
}

func (s *StatsService) Overview(ctx context.Context) (*ports.Stats, error) {
	jobs, err := s.jobs.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(jobs, users), nil
}

// ComputeStats is a pure function over the in-memory job and user lists.
// TopUsers is sorted descending by job count; ties keep the order in which
// the usernames first appear in the job slice.
func ComputeStats(jobs []*domain.Job, users []*domain.User) *ports.Stats {
	stats := &ports.Stats{
		TotalJobs:   len(jobs),
		TotalUsers:  len(users),
		ByStatus:    make(map[string]int),
		ByUser:      make(map[string]int),
		ByActivity:  make(map[string]int),
		ByTruckType: make(map[string]int),
	}

	var order []string
	for _, j := range jobs {
		stats.ByStatus[string(j.Status)]++
		stats.ByActivity[j.Activity]++
		stats.ByTruckType[j.TruckType]++
		if _, seen := stats.ByUser[j.Username]; !seen {
			order = append(order, j.Username)
		}
		stats.ByUser[j.Username]++
	}

	ranked := make([]ports.UserJobCount, 0, len(order))
	for _, username := range order {
		ranked = append(ranked, ports.UserJobCount{Username: username, Jobs: stats.ByUser[username]})
	}
	sort.SliceStable(ranked, func(i, k int) bool {
		return ranked[i].Jobs > ranked[k].Jobs
	})
	stats.TopUsers = ranked

	return stats
}
