package service

import (
	"context"
	"fmt"
	"time"

	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/websocket"
	"robinrocks-be/pkg/events"
	pktNats "robinrocks-be/pkg/nats"
)

// EventSubscriber is the durable side of the event bus.
type EventSubscriber interface {
	Subscribe(ctx context.Context, subject, durableName string, handler pktNats.EventHandler) error
}

// Notification is the toast pushed to open sockets.
type Notification struct {
	Type       string                 `json:"type"`
	Title      string                 `json:"title"`
	Message    string                 `json:"message"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
	OccurredAt string                 `json:"occurred_at"`
}

type NotificationService struct {
	subscriber EventSubscriber
	delivery   Pusher
	logger     logger.ILogger
}

func NewNotificationService(sub EventSubscriber, delivery Pusher, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   pusherOrNop(delivery),
		logger:     log,
	}
}

// Start begins listening to every event on the bus.
func (s *NotificationService) Start(ctx context.Context) {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event subscriber, notifications disabled", nil)
		return
	}
	if err := s.subscriber.Subscribe(ctx, "events.>", "notif-service-worker", s.HandleEvent); err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

// HandleEvent pushes the event to its owner, or to everyone when the event
// has no owner.
func (s *NotificationService) HandleEvent(ctx context.Context, event events.Event) error {
	notif, ok := buildNotification(event)
	if !ok {
		s.logger.Debug("NotificationService", "No notification for event", map[string]interface{}{"type": event.EventType()})
		return nil
	}

	if userID, _ := event.Payload()["user_id"].(string); userID != "" {
		s.delivery.Push(userID, websocket.TypeNotification, notif)
	} else {
		s.delivery.Broadcast(websocket.TypeNotification, notif)
	}
	s.logger.Info("NotificationService", "Notification delivered", map[string]interface{}{"type": event.EventType()})
	return nil
}

func buildNotification(event events.Event) (Notification, bool) {
	p := event.Payload()
	n := Notification{
		Type:       event.EventType(),
		Metadata:   p,
		OccurredAt: event.Timestamp().Format(time.RFC3339),
	}
	switch event.EventType() {
	case events.RecordingStopped:
		n.Title = "Recording saved"
		n.Message = fmt.Sprintf("%v is being processed into a visit report.", p["title"])
	case events.ScrapingCompleted:
		n.Title = "Scraping completed"
		n.Message = fmt.Sprintf("Found %v new and %v updated properties.", p["new_properties"], p["updated_properties"])
	case events.LeadSubmitted:
		n.Title = "New lead"
		n.Message = fmt.Sprintf("%v is looking for %v in %v.", p["name"], p["property_type"], p["location"])
	case events.ConnectorConnected:
		n.Title = "Connected successfully"
		n.Message = fmt.Sprintf("%v has been connected", p["name"])
	case events.TaskCreated:
		n.Title = "Task created"
		n.Message = fmt.Sprintf("%v", p["title"])
	default:
		return Notification{}, false
	}
	return n, true
}
