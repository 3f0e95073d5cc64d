package service

import (
	"sync"

	"robinrocks-be/internal/pkg/logger"
	"robinrocks-be/internal/pkg/metrics"
	"robinrocks-be/pkg/events"
	"robinrocks-be/pkg/scheduler"
)

type pushed struct {
	UserID string
	Type   string
	Data   interface{}
}

// recordingPusher keeps every frame the services try to deliver.
type recordingPusher struct {
	mu     sync.Mutex
	frames []pushed
}

func (p *recordingPusher) Push(userID, msgType string, data interface{}) {
	p.mu.Lock()
	p.frames = append(p.frames, pushed{UserID: userID, Type: msgType, Data: data})
	p.mu.Unlock()
}

func (p *recordingPusher) Broadcast(msgType string, data interface{}) {
	p.Push("*", msgType, data)
}

func (p *recordingPusher) ofType(msgType string) []pushed {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []pushed
	for _, f := range p.frames {
		if f.Type == msgType {
			out = append(out, f)
		}
	}
	return out
}

type fixture struct {
	clock  *scheduler.Virtual
	events *events.Memory
	pusher *recordingPusher
	m      *metrics.Metrics
	log    logger.ILogger
}

func newFixture() *fixture {
	return &fixture{
		clock:  scheduler.NewVirtual(),
		events: &events.Memory{},
		pusher: &recordingPusher{},
		m:      metrics.New(),
		log:    logger.NewNopLogger(),
	}
}
