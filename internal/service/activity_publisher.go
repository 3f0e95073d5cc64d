package service

import (
	"context"
	"fmt"

	"robinrocks-be/internal/entity"
	"robinrocks-be/internal/repository/contract"
	"robinrocks-be/pkg/events"
)

// ActivityPublisher turns domain events into dashboard activity entries.
// Events without a dashboard entry are ignored.
type ActivityPublisher struct {
	activities contract.ActivityRepository
}

func NewActivityPublisher(activities contract.ActivityRepository) *ActivityPublisher {
	return &ActivityPublisher{activities: activities}
}

func (p *ActivityPublisher) Publish(ctx context.Context, event events.Event) error {
	a, ok := activityFor(event)
	if !ok {
		return nil
	}
	return p.activities.Append(ctx, a)
}

func activityFor(event events.Event) (*entity.Activity, bool) {
	data := event.Payload()
	str := func(key string) string {
		if v, ok := data[key]; ok && v != nil {
			return fmt.Sprint(v)
		}
		return ""
	}

	a := &entity.Activity{UserId: str("user_id"), OccurredAt: event.Timestamp()}
	switch event.EventType() {
	case events.RecordingStopped:
		a.Type = "recording"
		a.Title = "New voice recording completed"
		a.Description = str("title")
	case events.TaskCreated:
		a.Type = "task"
		a.Title = "Follow-up task created"
		a.Description = str("title")
	case events.ScrapingCompleted:
		a.Type = "scrape"
		a.Title = "Competitor scan completed"
		a.Description = fmt.Sprintf("%s new listings found", str("new_properties"))
	case events.LeadSubmitted:
		a.Type = "lead"
		a.Title = "New lead received"
		a.Description = fmt.Sprintf("%s is looking for %s", str("name"), str("property_type"))
	default:
		return nil, false
	}
	return a, true
}
