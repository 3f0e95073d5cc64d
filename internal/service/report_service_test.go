package service

import (
	"context"
	"testing"
	"time"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisitDateLabel(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, "Today, 2:30 PM", VisitDateLabel(time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), now))
	assert.Equal(t, "Yesterday, 4:45 PM", VisitDateLabel(time.Date(2025, 3, 9, 16, 45, 0, 0, time.UTC), now))
	assert.Equal(t, "Mar 1, 10:05 AM", VisitDateLabel(time.Date(2025, 3, 1, 10, 5, 0, 0, time.UTC), now))
}

func TestReportPreviewKeyPoints(t *testing.T) {
	clock := scheduler.NewVirtual()
	svc := NewReportService(memory.NewReportRepository(clock.Now()), clock)

	r, err := svc.Show(context.Background(), memory.SeedID("report-1"))
	require.NoError(t, err)
	assert.Len(t, r.KeyPoints, 5)
	assert.Len(t, r.PreviewKeyPoints, 3)
	assert.Equal(t, 2, r.MoreKeyPoints)
	assert.Equal(t, "Today, 2:30 PM", r.VisitDate)

	_, err = svc.Show(context.Background(), uuid.New())
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestReportListFilters(t *testing.T) {
	clock := scheduler.NewVirtual()
	svc := NewReportService(memory.NewReportRepository(clock.Now()), clock)
	ctx := context.Background()

	all, err := svc.List(ctx, &dto.ListReportsRequest{Status: "all"})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	followUp, err := svc.List(ctx, &dto.ListReportsRequest{Status: "follow-up"})
	require.NoError(t, err)
	require.Len(t, followUp, 1)
	assert.Equal(t, "Mike Brown", followUp[0].ClientName)

	search, err := svc.List(ctx, &dto.ListReportsRequest{Search: "wilson"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Yesterday, 4:45 PM", search[0].VisitDate)
}
