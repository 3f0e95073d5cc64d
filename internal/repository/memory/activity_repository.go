package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"

	"github.com/google/uuid"
)

const activityCap = 50

// activityRepository is a bounded log, newest last.
type activityRepository struct {
	mu   sync.RWMutex
	rows []entity.Activity
}

func NewActivityRepository(now time.Time) contract.ActivityRepository {
	return &activityRepository{rows: []entity.Activity{
		{Id: SeedID("activity-3"), Type: "task", Title: "Follow-up task created", Description: "Schedule second viewing for Ocean View property", OccurredAt: now.Add(-6 * time.Hour)},
		{Id: SeedID("activity-2"), Type: "report", Title: "Visit report generated", Description: "Downtown condo showing with John Smith", OccurredAt: now.Add(-4 * time.Hour)},
		{Id: SeedID("activity-1"), Type: "recording", Title: "New voice recording completed", Description: "123 Main St property visit", OccurredAt: now.Add(-2 * time.Hour)},
	}}
}

func (r *activityRepository) Append(ctx context.Context, a *entity.Activity) error {
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	r.mu.Lock()
	r.rows = append(r.rows, *a)
	if len(r.rows) > activityCap {
		r.rows = r.rows[len(r.rows)-activityCap:]
	}
	r.mu.Unlock()
	return nil
}

// Recent returns up to limit entries, newest first.
func (r *activityRepository) Recent(ctx context.Context, limit int) ([]*entity.Activity, error) {
	r.mu.RLock()
	out := make([]*entity.Activity, 0, len(r.rows))
	for i := range r.rows {
		a := r.rows[i]
		out = append(out, &a)
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
