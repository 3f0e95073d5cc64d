package service

import (
	"context"

	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/pkg/events"
)

// Pusher delivers live view updates to a user's open sockets. The websocket
// hub implements it.
type Pusher interface {
	Push(userID, msgType string, data interface{})
	Broadcast(msgType string, data interface{})
}

type nopPusher struct{}

func (nopPusher) Push(string, string, interface{}) {}
func (nopPusher) Broadcast(string, interface{})    {}

func pusherOrNop(p Pusher) Pusher {
	if p == nil {
		return nopPusher{}
	}
	return p
}

// publishEvent sends an auxiliary event. Failures are logged and never fail
// the request that produced the event.
func publishEvent(ctx context.Context, pub events.Publisher, log logger.ILogger, module string, ev events.Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, ev); err != nil {
		log.Warn(module, "Failed to publish event", map[string]interface{}{"type": ev.EventType(), "error": err.Error()})
	}
}
