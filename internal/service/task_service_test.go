package service

import (
	"context"
	"testing"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/memory"
	"robinrocks-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService(f *fixture) ITaskService {
	return NewTaskService(memory.NewTaskRepository(f.clock.Now()), f.clock, f.events, f.log)
}

func TestTaskListStats(t *testing.T) {
	svc := newTaskService(newFixture())

	res, err := svc.List(context.Background(), &dto.ListTasksRequest{Priority: "high"})
	require.NoError(t, err)
	assert.Len(t, res.Tasks, 2)
	assert.Equal(t, 5, res.Stats.Total)
	assert.Equal(t, 3, res.Stats.Pending)
	assert.Equal(t, 1, res.Stats.InProgress)
	assert.Equal(t, 1, res.Stats.Completed)
	assert.Equal(t, 2, res.Stats.HighPriority)
}

func TestTaskToggleRoundTrip(t *testing.T) {
	svc := newTaskService(newFixture())
	ctx := context.Background()
	id := memory.SeedID("task-2")

	done, err := svc.ToggleComplete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "completed", done.Status)
	assert.NotNil(t, done.UpdatedAt)

	// in-progress is not restored; a reopened task is pending
	open, err := svc.ToggleComplete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pending", open.Status)

	_, err = svc.ToggleComplete(ctx, uuid.New())
	assert.ErrorIs(t, err, serverutils.ErrNotFound)
}

func TestTaskCompletedHighPriorityNotCounted(t *testing.T) {
	svc := newTaskService(newFixture())
	ctx := context.Background()

	_, err := svc.ToggleComplete(ctx, memory.SeedID("task-1"))
	require.NoError(t, err)

	res, err := svc.List(ctx, &dto.ListTasksRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.HighPriority)
	assert.Equal(t, 2, res.Stats.Completed)
}

func TestTaskCreatePublishes(t *testing.T) {
	f := newFixture()
	svc := newTaskService(f)
	ctx := context.Background()

	task, err := svc.Create(ctx, "agent-1", &dto.CreateTaskRequest{Title: "Call landlord", Priority: "medium", DueDate: "Today"})
	require.NoError(t, err)
	assert.Equal(t, "pending", task.Status)
	assert.Equal(t, "manual", task.Source)
	assert.Equal(t, defaultAssignee, task.AssignedTo)

	shown, err := svc.Show(ctx, task.Id)
	require.NoError(t, err)
	assert.Equal(t, "Call landlord", shown.Title)

	require.Equal(t, []string{events.TaskCreated}, f.events.Types())
	assert.Equal(t, "agent-1", f.events.Events()[0].Payload()["user_id"])
}

func TestTaskUpdateRejectsCompleted(t *testing.T) {
	svc := newTaskService(newFixture())
	ctx := context.Background()

	req := &dto.UpdateTaskRequest{
		Id:       memory.SeedID("task-4"),
		Title:    "Edited",
		Priority: "low",
		Status:   "pending",
		DueDate:  "Today",
	}
	_, err := svc.Update(ctx, req)
	assert.ErrorIs(t, err, serverutils.ErrConflict)

	req.Id = memory.SeedID("task-5")
	updated, err := svc.Update(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "Today", updated.DueDate)
}
