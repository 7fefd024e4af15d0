package service

import (
	"context"
	"testing"

	"github.com/trucklog/joblog-api/internal/core/domain"
)

func job(username, activity, truck string, status domain.JobStatus) *domain.Job {
	return &domain.Job{
		UserID:    "u-" + username,
		Username:  username,
		Activity:  activity,
		TruckType: truck,
		Status:    status,
		WeightKg:  100,
		Photo:     "http://x/p.jpg",
	}
}

func TestComputeStats_Counts(t *testing.T) {
	jobs := []*domain.Job{
		job("alice", "delivery", "flatbed", domain.StatusActive),
		job("alice", "pickup", "flatbed", domain.StatusFinished),
		job("bob", "delivery", "tanker", domain.StatusActive),
	}
	users := []*domain.User{
		{Username: "alice"}, {Username: "bob"}, {Username: "carol"},
	}

	stats := ComputeStats(jobs, users)

	if stats.TotalJobs != 3 || stats.TotalUsers != 3 {
		t.Fatalf("totals = (%d, %d), want (3, 3)", stats.TotalJobs, stats.TotalUsers)
	}
	if stats.ByStatus["active"] != 2 || stats.ByStatus["finished"] != 1 {
		t.Errorf("by_status = %v", stats.ByStatus)
	}
	if stats.ByActivity["delivery"] != 2 || stats.ByActivity["pickup"] != 1 {
		t.Errorf("by_activity = %v", stats.ByActivity)
	}
	if stats.ByTruckType["flatbed"] != 2 || stats.ByTruckType["tanker"] != 1 {
		t.Errorf("by_truck_type = %v", stats.ByTruckType)
	}
	if stats.ByUser["alice"] != 2 || stats.ByUser["bob"] != 1 {
		t.Errorf("by_user = %v", stats.ByUser)
	}
}

func TestComputeStats_TopUsersTieBreak(t *testing.T) {
	// bob appears first in the job list; carol has the same count. On a tie
	// the first-seen username must rank higher.
	jobs := []*domain.Job{
		job("bob", "delivery", "flatbed", domain.StatusActive),
		job("carol", "delivery", "flatbed", domain.StatusActive),
		job("alice", "pickup", "dump", domain.StatusActive),
		job("alice", "pickup", "dump", domain.StatusFinished),
		job("carol", "haulage", "tanker", domain.StatusActive),
		job("bob", "haulage", "tanker", domain.StatusActive),
	}

	stats := ComputeStats(jobs, nil)

	want := []struct {
		username string
		jobs     int
	}{
		{"bob", 2},
		{"carol", 2},
		{"alice", 2},
	}
	if len(stats.TopUsers) != len(want) {
		t.Fatalf("top_users length = %d, want %d", len(stats.TopUsers), len(want))
	}
	for i, w := range want {
		got := stats.TopUsers[i]
		if got.Username != w.username || got.Jobs != w.jobs {
			t.Errorf("top_users[%d] = %+v, want %+v", i, got, w)
		}
	}
}

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil, nil)
	if stats.TotalJobs != 0 || stats.TotalUsers != 0 {
		t.Fatalf("totals = (%d, %d), want zeros", stats.TotalJobs, stats.TotalUsers)
	}
	if len(stats.TopUsers) != 0 {
		t.Fatalf("top_users = %v, want empty", stats.TopUsers)
	}
}

func TestStatsService_Overview(t *testing.T) {
	jobRepo := newStubJobRepo()
	userRepo := newStubUserRepo()

	jobRepo.Create(context.Background(), job("alice", "delivery", "flatbed", domain.StatusActive))
	userRepo.Create(context.Background(), &domain.User{Username: "alice"})

	svc := NewStatsService(jobRepo, userRepo)
	stats, err := svc.Overview(context.Background())
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if stats.TotalJobs != 1 || stats.TotalUsers != 1 {
		t.Fatalf("totals = (%d, %d), want (1, 1)", stats.TotalJobs, stats.TotalUsers)
	}
}
