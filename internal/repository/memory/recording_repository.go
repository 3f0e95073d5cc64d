package memory

import (
	"context"
	"sync"
	"time"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
)

// Historical totals shown on the recording page before this process
// recorded anything.
const (
	historicRecordings = 156
	historicSeconds    = 156 * (8*60 + 32)
)

type recordingRepository struct {
	mu   sync.RWMutex
	rows []entity.RecordingSummary
}

func NewRecordingRepository(now time.Time) contract.RecordingRepository {
	return &recordingRepository{rows: []entity.RecordingSummary{
		{Id: "seed-3", Title: "Suburban House", Seconds: 15*60 + 33, Status: "processed", RecordedAt: now.Add(-26 * time.Hour)},
		{Id: "seed-2", Title: "Downtown Apartment", Seconds: 8*60 + 22, Status: "processing", RecordedAt: now.Add(-5 * time.Hour)},
		{Id: "seed-1", Title: "Ocean View Condo", Seconds: 12*60 + 45, Status: "processed", RecordedAt: now.Add(-2 * time.Hour)},
	}}
}

func (r *recordingRepository) Append(ctx context.Context, s *entity.RecordingSummary) error {
	r.mu.Lock()
	r.rows = append(r.rows, *s)
	r.mu.Unlock()
	return nil
}

// Recent returns newest first.
func (r *recordingRepository) Recent(ctx context.Context, limit int) ([]*entity.RecordingSummary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*entity.RecordingSummary, 0, len(r.rows))
	for i := len(r.rows) - 1; i >= 0; i-- {
		row := r.rows[i]
		out = append(out, &row)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Count includes the historic total; the seeded rows are part of it.
func (r *recordingRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return historicRecordings + len(r.rows) - seededRecordings
}

func (r *recordingRepository) TotalSeconds(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := historicSeconds
	for _, row := range r.rows[seededRecordings:] {
		total += row.Seconds
	}
	return total
}

const seededRecordings = 3
