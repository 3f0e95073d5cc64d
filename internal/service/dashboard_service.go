package service

import (
	"context"
	"fmt"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/pkg/scheduler"

	"github.com/dustin/go-humanize"
)

const recentActivityLimit = 5

type IDashboardService interface {
	Overview(ctx context.Context) (*dto.DashboardResponse, error)
}

// liveCounter reports sessions currently holding an audio input.
type liveCounter interface {
	ActiveCount() int
}

type dashboardService struct {
	recorder   liveCounter
	recordings contract.RecordingRepository
	reports    contract.ReportRepository
	tasks      contract.TaskRepository
	activities contract.ActivityRepository
	clock      scheduler.Scheduler
}

func NewDashboardService(
	recorder liveCounter,
	recordings contract.RecordingRepository,
	reports contract.ReportRepository,
	tasks contract.TaskRepository,
	activities contract.ActivityRepository,
	clock scheduler.Scheduler,
) IDashboardService {
	return &dashboardService{
		recorder:   recorder,
		recordings: recordings,
		reports:    reports,
		tasks:      tasks,
		activities: activities,
		clock:      clock,
	}
}

func (s *dashboardService) Overview(ctx context.Context) (*dto.DashboardResponse, error) {
	now := s.clock.Now()

	recordings, err := s.recordings.Recent(ctx, 0)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	tasks, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	activities, err := s.activities.Recent(ctx, recentActivityLimit)
	if err != nil {
		return nil, err
	}

	var recordedToday, recordedThisMonth int
	for _, r := range recordings {
		if sameDay(r.RecordedAt, now) {
			recordedToday++
		}
		if r.RecordedAt.Year() == now.Year() && r.RecordedAt.Month() == now.Month() {
			recordedThisMonth++
		}
	}

	reportsThisWeek := 0
	for _, r := range reports {
		if now.Sub(r.VisitDate) < 7*24*time.Hour {
			reportsThisWeek++
		}
	}

	var pending, dueToday int
	for _, t := range tasks {
		if t.Status == entity.TaskCompleted {
			continue
		}
		if t.Status == entity.TaskPending {
			pending++
		}
		if t.DueDate == "Today" {
			dueToday++
		}
	}

	res := &dto.DashboardResponse{
		Stats: []dto.StatCard{
			{Title: "Active Recordings", Value: s.recorder.ActiveCount(), Change: fmt.Sprintf("+%d today", recordedToday)},
			{Title: "Visit Reports", Value: len(reports), Change: fmt.Sprintf("+%d this week", reportsThisWeek)},
			{Title: "Pending Tasks", Value: pending, Change: fmt.Sprintf("%d due today", dueToday)},
			{Title: "Properties Visited", Value: s.recordings.Count(ctx), Change: fmt.Sprintf("+%d this month", recordedThisMonth)},
		},
		RecentActivities: make([]dto.ActivityResponse, 0, len(activities)),
	}
	for _, a := range activities {
		res.RecentActivities = append(res.RecentActivities, dto.ActivityResponse{
			Type:        a.Type,
			Title:       a.Title,
			Description: a.Description,
			Time:        humanize.RelTime(a.OccurredAt, now, "ago", "from now"),
			OccurredAt:  a.OccurredAt,
		})
	}
	return res, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
