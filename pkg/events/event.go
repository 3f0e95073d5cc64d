package events

import (
	"context"
	"time"
)

// Event is published on the bus under events.<EventType>.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

const (
	RecordingStarted   = "RECORDING_STARTED"
	RecordingStopped   = "RECORDING_STOPPED"
	ScrapingCompleted  = "SCRAPING_COMPLETED"
	LeadSubmitted      = "LEAD_SUBMITTED"
	TaskCreated        = "TASK_CREATED"
	ConnectorConnected = "CONNECTOR_CONNECTED"
)

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func New(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: time.Now()}
}

// NewAt stamps the event with a caller-supplied time.
func NewAt(eventType string, data map[string]interface{}, at time.Time) BaseEvent {
	return BaseEvent{Type: eventType, Data: data, OccurredAt: at}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Publisher sends domain events. Implementations must be safe for
// concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
