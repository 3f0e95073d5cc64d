package dto

import (
	"time"

	"github.com/google/uuid"
)

type ListTasksRequest struct {
	Search   string `query:"search"`
	Status   string `query:"status" validate:"omitempty,oneof=all pending in-progress completed"`
	Priority string `query:"priority" validate:"omitempty,oneof=all high medium low"`
}

type CreateTaskRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description"`
	Priority        string `json:"priority" validate:"required,oneof=high medium low"`
	DueDate         string `json:"dueDate" validate:"required"`
	RelatedProperty string `json:"relatedProperty"`
}

type UpdateTaskRequest struct {
	Id              uuid.UUID `json:"-"`
	Title           string    `json:"title" validate:"required"`
	Description     string    `json:"description"`
	Priority        string    `json:"priority" validate:"required,oneof=high medium low"`
	Status          string    `json:"status" validate:"required,oneof=pending in-progress completed"`
	DueDate         string    `json:"dueDate" validate:"required"`
	RelatedProperty string    `json:"relatedProperty"`
}

type TaskResponse struct {
	Id              uuid.UUID  `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Priority        string     `json:"priority"`
	Status          string     `json:"status"`
	DueDate         string     `json:"dueDate"`
	AssignedTo      string     `json:"assignedTo"`
	RelatedProperty string     `json:"relatedProperty,omitempty"`
	Source          string     `json:"source"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

type TaskStatsResponse struct {
	Total        int `json:"total"`
	Pending      int `json:"pending"`
	InProgress   int `json:"inProgress"`
	Completed    int `json:"completed"`
	HighPriority int `json:"highPriority"`
}

type ListTasksResponse struct {
	Tasks []TaskResponse    `json:"tasks"`
	Stats TaskStatsResponse `json:"stats"`
}
