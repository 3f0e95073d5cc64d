package service

import (
	"context"
	"fmt"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

const defaultAssignee = "You"

type ITaskService interface {
	List(ctx context.Context, req *dto.ListTasksRequest) (*dto.ListTasksResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error)
	Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	Update(ctx context.Context, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)
	ToggleComplete(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error)
}

type taskService struct {
	tasks     contract.TaskRepository
	clock     scheduler.Scheduler
	publisher events.Publisher
	logger    logger.ILogger
}

func NewTaskService(tasks contract.TaskRepository, clock scheduler.Scheduler, publisher events.Publisher, log logger.ILogger) ITaskService {
	return &taskService{tasks: tasks, clock: clock, publisher: publisher, logger: log}
}

func (s *taskService) List(ctx context.Context, req *dto.ListTasksRequest) (*dto.ListTasksResponse, error) {
	all, err := s.tasks.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	filtered, err := s.tasks.FindAll(ctx,
		specification.TaskSearch{Term: req.Search},
		specification.TaskByStatus{Status: req.Status},
		specification.TaskByPriority{Priority: req.Priority},
	)
	if err != nil {
		return nil, err
	}

	res := &dto.ListTasksResponse{
		Tasks: make([]dto.TaskResponse, 0, len(filtered)),
		Stats: TaskStats(all),
	}
	for _, t := range filtered {
		res.Tasks = append(res.Tasks, taskResponse(t))
	}
	return res, nil
}

// TaskStats counts by status. High priority only counts open tasks.
func TaskStats(all []*entity.Task) dto.TaskStatsResponse {
	stats := dto.TaskStatsResponse{Total: len(all)}
	for _, t := range all {
		switch t.Status {
		case entity.TaskPending:
			stats.Pending++
		case entity.TaskInProgress:
			stats.InProgress++
		case entity.TaskCompleted:
			stats.Completed++
		}
		if t.Priority == entity.PriorityHigh && t.Status != entity.TaskCompleted {
			stats.HighPriority++
		}
	}
	return stats
}

func (s *taskService) Show(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := taskResponse(task)
	return &res, nil
}

func (s *taskService) Create(ctx context.Context, userID string, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	task := &entity.Task{
		Id:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		Priority:        entity.TaskPriority(req.Priority),
		Status:          entity.TaskPending,
		DueDate:         req.DueDate,
		AssignedTo:      defaultAssignee,
		RelatedProperty: req.RelatedProperty,
		Source:          entity.SourceManual,
		CreatedAt:       s.clock.Now(),
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, s.logger, "Tasks", events.NewAt(events.TaskCreated, map[string]interface{}{
		"user_id": userID,
		"task_id": task.Id.String(),
		"title":   task.Title,
		"source":  string(task.Source),
	}, task.CreatedAt))

	res := taskResponse(task)
	return &res, nil
}

// Update edits an open task. Completed tasks are read-only until they are
// toggled back to pending.
func (s *taskService) Update(ctx context.Context, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.find(ctx, req.Id)
	if err != nil {
		return nil, err
	}
	if task.Status == entity.TaskCompleted {
		return nil, fmt.Errorf("%w: completed tasks cannot be edited", serverutils.ErrConflict)
	}

	now := s.clock.Now()
	task.Title = req.Title
	task.Description = req.Description
	task.Priority = entity.TaskPriority(req.Priority)
	task.Status = entity.TaskStatus(req.Status)
	task.DueDate = req.DueDate
	task.RelatedProperty = req.RelatedProperty
	task.UpdatedAt = &now

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	res := taskResponse(task)
	return &res, nil
}

// ToggleComplete flips completed to pending and anything else to completed.
func (s *taskService) ToggleComplete(ctx context.Context, id uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if task.Status == entity.TaskCompleted {
		task.Status = entity.TaskPending
	} else {
		task.Status = entity.TaskCompleted
	}
	now := s.clock.Now()
	task.UpdatedAt = &now

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	res := taskResponse(task)
	return &res, nil
}

func (s *taskService) find(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	task, err := s.tasks.FindOne(ctx, specification.TaskByID{ID: id})
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, serverutils.NotFound("task", id.String())
	}
	return task, nil
}

func taskResponse(t *entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		Id:              t.Id,
		Title:           t.Title,
		Description:     t.Description,
		Priority:        string(t.Priority),
		Status:          string(t.Status),
		DueDate:         t.DueDate,
		AssignedTo:      t.AssignedTo,
		RelatedProperty: t.RelatedProperty,
		Source:          string(t.Source),
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
