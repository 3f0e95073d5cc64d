package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskPriority string

const (
	PriorityHigh   TaskPriority = "high"
	PriorityMedium TaskPriority = "medium"
	PriorityLow    TaskPriority = "low"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

type TaskSource string

const (
	SourceAIExtracted TaskSource = "ai-extracted"
	SourceManual      TaskSource = "manual"
)

type Task struct {
	Id              uuid.UUID
	Title           string
	Description     string
	Priority        TaskPriority
	Status          TaskStatus
	DueDate         string
	AssignedTo      string
	RelatedProperty string
	Source          TaskSource
	CreatedAt       time.Time
	UpdatedAt       *time.Time
}
