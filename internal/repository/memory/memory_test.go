package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func TestTaskRepositorySeedAndFilter(t *testing.T) {
	repo := NewTaskRepository(now)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Schedule second viewing for Ocean View Condo", all[0].Title)

	high, err := repo.FindAll(ctx, specification.TaskByPriority{Priority: "high"})
	require.NoError(t, err)
	assert.Len(t, high, 2)

	missing, err := repo.FindOne(ctx, specification.TaskByID{ID: uuid.New()})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTaskRepositoryReturnsCopies(t *testing.T) {
	repo := NewTaskRepository(now)
	ctx := context.Background()

	task, err := repo.FindOne(ctx, specification.TaskByID{ID: SeedID("task-1")})
	require.NoError(t, err)
	task.Title = "changed"

	again, _ := repo.FindOne(ctx, specification.TaskByID{ID: SeedID("task-1")})
	assert.NotEqual(t, "changed", again.Title)
}

func TestUpdateUnknownIsNotFound(t *testing.T) {
	repo := NewTaskRepository(now)
	err := repo.Update(context.Background(), &entity.Task{Id: uuid.New()})
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestTemplateDeleteKeepsOrder(t *testing.T) {
	repo := NewTemplateRepository(now)
	ctx := context.Background()

	extra := &entity.Template{Name: "Email", Type: "email", Content: "Hi {{name}}"}
	require.NoError(t, repo.Create(ctx, extra))
	require.NoError(t, repo.Delete(ctx, SeedID("template-1")))

	all, _ := repo.FindAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "Property Listing Template", all[0].Name)
	assert.Equal(t, "Email", all[1].Name)

	assert.ErrorIs(t, repo.Delete(ctx, SeedID("template-1")), serverutils.ErrNotFound)
}

func TestActivityRecentNewestFirst(t *testing.T) {
	repo := NewActivityRepository(now)
	ctx := context.Background()
	require.NoError(t, repo.Append(ctx, &entity.Activity{Type: "scraping", Title: "done", OccurredAt: now}))

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "done", recent[0].Title)
	assert.Equal(t, "New voice recording completed", recent[1].Title)
}

func TestRecordingTotals(t *testing.T) {
	repo := NewRecordingRepository(now)
	ctx := context.Background()
	assert.Equal(t, 156, repo.Count(ctx))

	require.NoError(t, repo.Append(ctx, &entity.RecordingSummary{Id: "r1", Seconds: 30}))
	assert.Equal(t, 157, repo.Count(ctx))
	assert.Equal(t, historicSeconds+30, repo.TotalSeconds(ctx))

	recent, _ := repo.Recent(ctx, 1)
	assert.Equal(t, "r1", recent[0].Id)
}

func TestViewStateEvictionHook(t *testing.T) {
	var evicted []string
	repo := NewViewStateRepository[int](time.Hour, func(key string, _ int) { evicted = append(evicted, key) })

	repo.Save("a", 1)
	v, ok := repo.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)

	repo.Delete("a")
	_, ok = repo.Get("a")
	assert.False(t, ok)
	assert.Equal(t, []string{"a"}, evicted)
}

func TestViewStateGetOrCreateSharesOneValue(t *testing.T) {
	repo := NewViewStateRepository[*int](time.Hour, nil)
	var created atomic.Int32

	var wg sync.WaitGroup
	got := make([]*int, 20)
	for i := range got {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got[i] = repo.GetOrCreate("u1", func() *int {
				created.Add(1)
				return new(int)
			})
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int32(1), created.Load())
	for _, v := range got {
		assert.Same(t, got[0], v)
	}
	assert.Equal(t, 1, repo.Count())
}

func TestViewStateTouchExtendsExpiry(t *testing.T) {
	repo := NewViewStateRepository[int](200*time.Millisecond, nil)
	repo.Save("live", 1)
	repo.Save("idle", 2)

	time.Sleep(120 * time.Millisecond)
	repo.Touch("live")
	repo.Touch("missing")
	time.Sleep(120 * time.Millisecond)

	_, ok := repo.Get("live")
	assert.True(t, ok)
	_, ok = repo.Get("idle")
	assert.False(t, ok)
	_, ok = repo.Get("missing")
	assert.False(t, ok)
}

func TestSettingsDefaultsPerUser(t *testing.T) {
	repo := NewSettingsRepository()
	ctx := context.Background()

	s := repo.Get(ctx, "u1")
	assert.Equal(t, "John Smith", s.Profile.Name)

	s.Profile.Name = "Jane"
	require.NoError(t, repo.Save(ctx, "u1", s))
	assert.Equal(t, "Jane", repo.Get(ctx, "u1").Profile.Name)
	assert.Equal(t, "John Smith", repo.Get(ctx, "u2").Profile.Name)
}
