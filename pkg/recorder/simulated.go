package recorder

import (
	"context"
	"encoding/binary"
	"sync"
	"time"

	"robinrocks-be/pkg/scheduler"
)

// SimulatedDevice produces one synthetic chunk per interval. It stands in for
// a microphone when no browser is streaming audio to the service.
type SimulatedDevice struct {
	Scheduler scheduler.Scheduler
	Interval  time.Duration
	ChunkSize int
	// Deny makes Open fail as if the user refused microphone access.
	Deny bool
}

func (d *SimulatedDevice) Open(ctx context.Context, onChunk func([]byte)) (Capture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if d.Deny {
		return nil, ErrPermissionDenied
	}

	interval := d.Interval
	if interval <= 0 {
		interval = time.Second
	}
	size := d.ChunkSize
	if size < 8 {
		size = 8
	}

	c := &simulatedCapture{onChunk: onChunk, size: size}
	c.timer = d.Scheduler.Every(interval, c.emit)
	return c, nil
}

type simulatedCapture struct {
	mu       sync.Mutex
	onChunk  func([]byte)
	size     int
	seq      uint64
	paused   bool
	released bool
	timer    scheduler.Timer
}

func (c *simulatedCapture) emit() {
	c.mu.Lock()
	if c.paused || c.released {
		c.mu.Unlock()
		return
	}
	c.seq++
	chunk := make([]byte, c.size)
	binary.BigEndian.PutUint64(chunk, c.seq)
	c.mu.Unlock()

	c.onChunk(chunk)
}

func (c *simulatedCapture) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

func (c *simulatedCapture) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

func (c *simulatedCapture) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.released {
		return nil
	}
	c.released = true
	c.timer.Stop()
	return nil
}
