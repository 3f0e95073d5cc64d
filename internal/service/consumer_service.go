package service

import (
	"context"
	"encoding/json"
	"fmt"

	"robinrocks-be/internal/dto"
	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/mailer"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/scheduler"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService handles queued leads: it files a follow-up task, mails
// the prospect and announces the lead on the event bus.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	tasks      contract.TaskRepository
	mail       mailer.IEmailService
	agentInbox string
	publisher  events.Publisher
	clock      scheduler.Scheduler
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	tasks contract.TaskRepository,
	mail mailer.IEmailService,
	agentInbox string,
	publisher events.Publisher,
	clock scheduler.Scheduler,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		tasks:      tasks,
		mail:       mail,
		agentInbox: agentInbox,
		publisher:  publisher,
		clock:      clock,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.LeadQueuedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("LeadConsumer", "Failed to unmarshal message", map[string]interface{}{"message_id": msg.UUID, "error": err.Error()})
		msg.Ack() // redelivery cannot fix a malformed payload
		return
	}

	task := &entity.Task{
		Id:              uuid.New(),
		Title:           fmt.Sprintf("Contact %s about %s", payload.Name, payload.PropertyType),
		Description:     fmt.Sprintf("New lead looking for %s in %s. Budget %s, timeline %s. Reply within 24 hours.", payload.PropertyType, payload.Location, payload.Budget, payload.Timeline),
		Priority:        entity.PriorityHigh,
		Status:          entity.TaskPending,
		DueDate:         "Tomorrow",
		AssignedTo:      defaultAssignee,
		RelatedProperty: payload.Location,
		Source:          entity.SourceAIExtracted,
		CreatedAt:       cs.clock.Now(),
	}
	if err := cs.tasks.Create(ctx, task); err != nil {
		cs.logger.Error("LeadConsumer", "Failed to create follow-up task", map[string]interface{}{"lead_id": payload.LeadId.String(), "error": err.Error()})
		msg.Nack()
		return
	}

	// Mail failures are logged only; the task above must not be filed twice.
	if cs.mail != nil {
		if err := cs.mail.SendLeadConfirmation(payload.Email, mailer.LeadConfirmation{
			Name:         payload.Name,
			PropertyType: payload.PropertyType,
			Location:     payload.Location,
			Budget:       payload.Budget,
			Timeline:     payload.Timeline,
		}); err != nil {
			cs.logger.Warn("LeadConsumer", "Failed to send lead confirmation", map[string]interface{}{"lead_id": payload.LeadId.String(), "error": err.Error()})
		}
		if cs.agentInbox != "" {
			if err := cs.mail.SendFollowUpNotice(cs.agentInbox, task.Title); err != nil {
				cs.logger.Warn("LeadConsumer", "Failed to send follow-up notice", map[string]interface{}{"lead_id": payload.LeadId.String(), "error": err.Error()})
			}
		}
	}

	now := cs.clock.Now()
	publishEvent(ctx, cs.publisher, cs.logger, "LeadConsumer", events.NewAt(events.TaskCreated, map[string]interface{}{
		"task_id": task.Id.String(),
		"title":   task.Title,
		"source":  string(task.Source),
	}, now))
	publishEvent(ctx, cs.publisher, cs.logger, "LeadConsumer", events.NewAt(events.LeadSubmitted, map[string]interface{}{
		"lead_id":       payload.LeadId.String(),
		"name":          payload.Name,
		"property_type": payload.PropertyType,
		"location":      payload.Location,
		"task_id":       task.Id.String(),
	}, now))

	cs.logger.Info("LeadConsumer", "Lead processed", map[string]interface{}{"lead_id": payload.LeadId.String(), "task_id": task.Id.String()})
	msg.Ack()
}
