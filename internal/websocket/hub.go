package websocket

import (
	"context"
	"encoding/json"
	"sync"

	"robinrocks-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	clusterChannel = "cluster_events"
	broadcastAll   = "*"
)

// Message types pushed to the browser.
const (
	TypeRecording    = "recording"
	TypePlayback     = "playback"
	TypeChat         = "chat"
	TypeScrape       = "scrape_progress"
	TypeNotification = "notification"
)

// Message is the frame written to every socket.
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type clusterFrame struct {
	Origin       string          `json:"origin"`
	TargetUserID string          `json:"target_user_id"`
	Message      json.RawMessage `json:"message"`
}

// Hub keeps the open sockets per user. A user may have several tabs open;
// each gets every frame addressed to that user.
type Hub struct {
	clients    map[string][]*Client
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex

	// rdb relays frames to the other instances. nil runs single-node.
	rdb    *redis.Client
	origin string
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		clients:    make(map[string][]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rdb:        rdb,
		origin:     uuid.NewString(),
		logger:     log,
	}
}

// Run serves register/unregister requests until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	if h.rdb != nil {
		go h.subscribeToRedis(ctx)
	}

	for {
		select {
		case <-ctx.Done():
			return
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.UserID] = append(h.clients[client.UserID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"user_id": client.UserID})
		case client := <-h.unregister:
			h.remove(client)
		}
	}
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients := h.clients[client.UserID]
	for i, c := range clients {
		if c != client {
			continue
		}
		h.clients[client.UserID] = append(clients[:i], clients[i+1:]...)
		close(client.Send)
		break
	}
	if len(h.clients[client.UserID]) == 0 {
		delete(h.clients, client.UserID)
		h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"user_id": client.UserID})
	}
}

// Connected reports whether userID has at least one local socket.
func (h *Hub) Connected(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}

// Push sends a typed frame to every socket of userID, here and on the other
// instances.
func (h *Hub) Push(userID, msgType string, data interface{}) {
	frame, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("Hub", "Failed to encode frame", map[string]interface{}{"type": msgType, "error": err.Error()})
		return
	}
	h.deliver(userID, frame)
	h.publish(userID, frame)
}

// Broadcast sends a typed frame to every connected socket.
func (h *Hub) Broadcast(msgType string, data interface{}) {
	h.Push(broadcastAll, msgType, data)
}

// deliver holds the read lock while sending so remove cannot close a
// channel mid-send. Sends never block.
func (h *Hub) deliver(userID string, frame []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	send := func(client *Client) {
		select {
		case client.Send <- frame:
		default:
			h.logger.Warn("Hub", "Client Send buffer full, dropping client", map[string]interface{}{"user_id": client.UserID})
			go func(c *Client) { h.unregister <- c }(client)
		}
	}

	if userID != broadcastAll {
		for _, client := range h.clients[userID] {
			send(client)
		}
		return
	}
	for _, clients := range h.clients {
		for _, client := range clients {
			send(client)
		}
	}
}

func (h *Hub) publish(userID string, frame []byte) {
	if h.rdb == nil {
		return
	}
	payload, _ := json.Marshal(clusterFrame{Origin: h.origin, TargetUserID: userID, Message: frame})
	if err := h.rdb.Publish(context.Background(), clusterChannel, payload).Err(); err != nil {
		h.logger.Warn("Hub", "Redis publish failed", map[string]interface{}{"error": err.Error()})
	}
}

func (h *Hub) subscribeToRedis(ctx context.Context) {
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		var frame clusterFrame
		if err := json.Unmarshal([]byte(msg.Payload), &frame); err != nil {
			h.logger.Warn("Hub", "Redis frame parse error", map[string]interface{}{"error": err.Error()})
			continue
		}
		if frame.Origin == h.origin {
			continue
		}
		h.deliver(frame.TargetUserID, frame.Message)
	}
}
