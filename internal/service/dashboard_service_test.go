package service

import (
	"context"
	"testing"
	"time"

	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedCounter int

func (c fixedCounter) ActiveCount() int { return int(c) }

func TestDashboardOverview(t *testing.T) {
	f := newFixture()
	now := f.clock.Now()
	activities := memory.NewActivityRepository(now)
	svc := NewDashboardService(
		fixedCounter(1),
		memory.NewRecordingRepository(now),
		memory.NewReportRepository(now),
		memory.NewTaskRepository(now),
		activities,
		f.clock,
	)

	res, err := svc.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, res.Stats, 4)

	assert.Equal(t, "Active Recordings", res.Stats[0].Title)
	assert.Equal(t, 1, res.Stats[0].Value)
	assert.Equal(t, "+2 today", res.Stats[0].Change)

	assert.Equal(t, 3, res.Stats[1].Value)
	assert.Equal(t, "+3 this week", res.Stats[1].Change)

	assert.Equal(t, 3, res.Stats[2].Value)
	assert.Equal(t, "1 due today", res.Stats[2].Change)

	assert.Equal(t, 156, res.Stats[3].Value)
	assert.Equal(t, "+2 this month", res.Stats[3].Change)

	require.Len(t, res.RecentActivities, 3)
	assert.Equal(t, "recording", res.RecentActivities[0].Type)
	assert.Equal(t, "2 hours ago", res.RecentActivities[0].Time)
}

func TestActivityPublisherFeedsDashboard(t *testing.T) {
	f := newFixture()
	now := f.clock.Now()
	activities := memory.NewActivityRepository(now)
	pub := NewActivityPublisher(activities)
	ctx := context.Background()

	require.NoError(t, pub.Publish(ctx, events.NewAt(events.LeadSubmitted, map[string]interface{}{
		"name":          "Jan de Vries",
		"property_type": "office",
	}, now)))
	// no activity for this one
	require.NoError(t, pub.Publish(ctx, events.NewAt(events.RecordingStarted, nil, now)))

	f.clock.Advance(90 * time.Second)
	svc := NewDashboardService(fixedCounter(0), memory.NewRecordingRepository(now), memory.NewReportRepository(now), memory.NewTaskRepository(now), activities, f.clock)

	res, err := svc.Overview(ctx)
	require.NoError(t, err)
	require.Len(t, res.RecentActivities, 4)
	lead := res.RecentActivities[0]
	assert.Equal(t, "lead", lead.Type)
	assert.Equal(t, "Jan de Vries is looking for office", lead.Description)
	assert.Equal(t, "1 minute ago", lead.Time)
}
