package advisor

import (
	"errors"
	"strings"
	"sync"
	"time"

	"robinrocks-be/pkg/scheduler"

	"github.com/google/uuid"
)

var (
	ErrEmptyMessage       = errors.New("message is empty")
	ErrConversationClosed = errors.New("conversation is closed")
)

type Role string

const (
	RoleUser    Role = "user"
	RoleAdvisor Role = "advisor"
)

type Message struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Rule      string    `json:"rule,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type pendingReply struct {
	input string
	ctx   Context
}

// Conversation is a message log with one advisor. Replies are produced after
// a fixed delay, one at a time, in submission order.
type Conversation struct {
	mu sync.Mutex

	id        string
	ruleset   *Ruleset
	clock     scheduler.Scheduler
	delay     time.Duration
	messages  []Message
	queue     []pendingReply
	timer     scheduler.Timer
	closed    bool
	listeners []func(Message)
}

// NewConversation opens a conversation and posts the ruleset greeting.
// A non-positive delay falls back to the ruleset's reply delay.
func NewConversation(id string, rs *Ruleset, clock scheduler.Scheduler, delay time.Duration, greetCtx Context) *Conversation {
	if delay <= 0 {
		delay = rs.ReplyDelay()
	}
	c := &Conversation{
		id:      id,
		ruleset: rs,
		clock:   clock,
		delay:   delay,
	}
	if greeting := rs.Greet(greetCtx); greeting != "" {
		c.messages = append(c.messages, Message{
			ID:        uuid.NewString(),
			Role:      RoleAdvisor,
			Content:   greeting,
			Timestamp: clock.Now(),
		})
	}
	return c
}

func (c *Conversation) ID() string {
	return c.id
}

func (c *Conversation) Ruleset() string {
	return c.ruleset.Name
}

// OnMessage registers a listener for every appended message.
func (c *Conversation) OnMessage(fn func(Message)) {
	c.mu.Lock()
	c.listeners = append(c.listeners, fn)
	c.mu.Unlock()
}

// Submit appends the user message immediately and queues the reply.
func (c *Conversation) Submit(input string, ctx Context) (Message, error) {
	if strings.TrimSpace(input) == "" {
		return Message{}, ErrEmptyMessage
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Message{}, ErrConversationClosed
	}
	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Content:   input,
		Timestamp: c.clock.Now(),
	}
	c.messages = append(c.messages, msg)
	c.queue = append(c.queue, pendingReply{input: input, ctx: ctx})
	if c.timer == nil {
		c.timer = c.clock.AfterFunc(c.delay, c.deliver)
	}
	c.mu.Unlock()

	c.notify(msg)
	return msg, nil
}

func (c *Conversation) deliver() {
	c.mu.Lock()
	if c.closed || len(c.queue) == 0 {
		c.timer = nil
		c.mu.Unlock()
		return
	}
	next := c.queue[0]
	c.queue = c.queue[1:]

	reply := c.ruleset.Respond(next.input, next.ctx)
	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleAdvisor,
		Content:   reply.Content,
		Rule:      reply.Rule,
		Timestamp: c.clock.Now(),
	}
	c.messages = append(c.messages, msg)

	if len(c.queue) > 0 {
		c.timer = c.clock.AfterFunc(c.delay, c.deliver)
	} else {
		c.timer = nil
	}
	c.mu.Unlock()

	c.notify(msg)
}

// Messages returns a copy of the log.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Pending is the number of replies still being "typed".
func (c *Conversation) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.queue)
}

// Close drops queued replies and cancels the outstanding timer.
func (c *Conversation) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.queue = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Conversation) notify(msg Message) {
	c.mu.Lock()
	listeners := make([]func(Message), len(c.listeners))
	copy(listeners, c.listeners)
	c.mu.Unlock()

	for _, fn := range listeners {
		fn(msg)
	}
}
