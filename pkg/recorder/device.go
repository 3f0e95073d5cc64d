package recorder

import (
	"context"
	"sync"
)

// Device is the audio capture capability. Open acquires the input and starts
// delivering chunks to onChunk in capture order until the capture is released.
type Device interface {
	Open(ctx context.Context, onChunk func([]byte)) (Capture, error)
}

// Capture is an open handle on a Device.
type Capture interface {
	Pause()
	Resume()
	// Release frees the device. Calling it more than once is safe.
	Release() error
}

// DeviceLock grants exclusive ownership of a device key (one per user) to a
// single session at a time.
type DeviceLock struct {
	mu      sync.Mutex
	holders map[string]string
}

func NewDeviceLock() *DeviceLock {
	return &DeviceLock{holders: make(map[string]string)}
}

// Acquire claims key for holder. Re-acquiring by the current holder succeeds.
func (l *DeviceLock) Acquire(key, holder string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if current, ok := l.holders[key]; ok && current != holder {
		return ErrDeviceBusy
	}
	l.holders[key] = holder
	return nil
}

// Release frees key if holder owns it. It is a no-op otherwise.
func (l *DeviceLock) Release(key, holder string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.holders[key] == holder {
		delete(l.holders, key)
	}
}

// Holder returns the session currently holding key.
func (l *DeviceLock) Holder(key string) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.holders[key]
	return h, ok
}

// Count is the number of keys currently held.
func (l *DeviceLock) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.holders)
}
