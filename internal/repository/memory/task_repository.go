package memory

import (
	"context"
	"time"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/serverutils"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/internal/repository/specification"

	"github.com/google/uuid"
)

type taskRepository struct {
	rows *store[uuid.UUID, entity.Task]
}

func NewTaskRepository(now time.Time) contract.TaskRepository {
	return &taskRepository{rows: newStore(func(t *entity.Task) uuid.UUID { return t.Id }, seedTasks(now)...)}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	if task.Id == uuid.Nil {
		task.Id = uuid.New()
	}
	r.rows.upsert(task)
	return nil
}

func (r *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	if !r.rows.update(task) {
		return serverutils.NotFound("task", task.Id.String())
	}
	return nil
}

func (r *taskRepository) FindOne(ctx context.Context, specs ...specification.Specification[*entity.Task]) (*entity.Task, error) {
	return r.rows.findOne(specs...), nil
}

func (r *taskRepository) FindAll(ctx context.Context, specs ...specification.Specification[*entity.Task]) ([]*entity.Task, error) {
	return r.rows.findAll(specs...), nil
}

func seedTasks(now time.Time) []entity.Task {
	const you = "You"
	return []entity.Task{
		{
			Id:              SeedID("task-1"),
			Title:           "Schedule second viewing for Ocean View Condo",
			Description:     "Client Sarah Johnson expressed strong interest and wants to bring her spouse for a second viewing. Follow up within 2 days.",
			Priority:        entity.PriorityHigh,
			Status:          entity.TaskPending,
			DueDate:         "Tomorrow",
			AssignedTo:      you,
			RelatedProperty: "123 Ocean View Drive, Unit 12A",
			Source:          entity.SourceAIExtracted,
			CreatedAt:       now,
		},
		{
			Id:              SeedID("task-2"),
			Title:           "Research soundproofing options for Downtown Plaza",
			Description:     "Client Mike Brown concerned about street noise. Gather information about existing soundproofing and potential improvements.",
			Priority:        entity.PriorityMedium,
			Status:          entity.TaskInProgress,
			DueDate:         "This Friday",
			AssignedTo:      you,
			RelatedProperty: "456 Downtown Plaza, Apartment 8B",
			Source:          entity.SourceAIExtracted,
			CreatedAt:       now,
		},
		{
			Id:              SeedID("task-3"),
			Title:           "Send school district information to Wilson family",
			Description:     "Provide detailed school ratings and enrollment information for the Suburban Lane property area.",
			Priority:        entity.PriorityHigh,
			Status:          entity.TaskPending,
			DueDate:         "Today",
			AssignedTo:      you,
			RelatedProperty: "789 Suburban Lane",
			Source:          entity.SourceAIExtracted,
			CreatedAt:       now,
		},
		{
			Id:          SeedID("task-4"),
			Title:       "Prepare market analysis for Oak Street property",
			Description: "Compile comparable sales data and market trends for upcoming client presentation.",
			Priority:    entity.PriorityLow,
			Status:      entity.TaskCompleted,
			DueDate:     "Yesterday",
			AssignedTo:  you,
			Source:      entity.SourceManual,
			CreatedAt:   now,
		},
		{
			Id:              SeedID("task-5"),
			Title:           "Contact contractor for kitchen renovation estimate",
			Description:     "Wilson family needs renovation cost estimate for kitchen at Suburban Lane property.",
			Priority:        entity.PriorityMedium,
			Status:          entity.TaskPending,
			DueDate:         "Next Monday",
			AssignedTo:      you,
			RelatedProperty: "789 Suburban Lane",
			Source:          entity.SourceAIExtracted,
			CreatedAt:       now,
		},
	}
}
