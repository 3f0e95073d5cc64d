package recorder

import (
	"context"
	"sync"
)

// RemoteDevice receives audio captured by the browser. Chunks arrive through
// Push and are forwarded to the open capture.
type RemoteDevice struct {
	mu      sync.Mutex
	capture *remoteCapture
}

func NewRemoteDevice() *RemoteDevice {
	return &RemoteDevice{}
}

func (d *RemoteDevice) Open(ctx context.Context, onChunk func([]byte)) (Capture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.capture != nil && !d.capture.isReleased() {
		return nil, ErrDeviceBusy
	}
	d.capture = &remoteCapture{onChunk: onChunk}
	return d.capture, nil
}

// Push delivers one chunk. Chunks pushed while the capture is paused are
// discarded. Empty chunks are ignored.
func (d *RemoteDevice) Push(data []byte) error {
	d.mu.Lock()
	c := d.capture
	d.mu.Unlock()
	if c == nil {
		return ErrNotCapturing
	}
	return c.push(data)
}

type remoteCapture struct {
	mu       sync.Mutex
	onChunk  func([]byte)
	paused   bool
	released bool
}

func (c *remoteCapture) push(data []byte) error {
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		return ErrNotCapturing
	}
	if c.paused || len(data) == 0 {
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	c.onChunk(data)
	return nil
}

func (c *remoteCapture) isReleased() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

func (c *remoteCapture) Pause() {
	c.mu.Lock()
	c.paused = true
	c.mu.Unlock()
}

func (c *remoteCapture) Resume() {
	c.mu.Lock()
	c.paused = false
	c.mu.Unlock()
}

func (c *remoteCapture) Release() error {
	c.mu.Lock()
	c.released = true
	c.mu.Unlock()
	return nil
}
