package recorder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"robinrocks-be/pkg/scheduler"
)

// SessionConfig holds the collaborators of a Session.
type SessionConfig struct {
	ID string
	// DeviceKey identifies the physical input (one per user). Two sessions with
	// the same key never hold the device at the same time.
	DeviceKey    string
	Device       Device
	Lock         *DeviceLock
	Scheduler    scheduler.Scheduler
	TickInterval time.Duration
	MimeType     string
}

// Session is one recording lifecycle: Idle -> Recording <-> Paused -> Stopped.
// A stopped session is terminal; record again with a new Session.
type Session struct {
	mu sync.Mutex

	cfg      SessionConfig
	state    State
	elapsed  int
	chunks   [][]byte
	buffered int
	capture  Capture
	tick     scheduler.Timer
	artifact *Artifact
	playback *Playback

	startedAt *time.Time
	stoppedAt *time.Time

	listeners []func(Snapshot)
}

func NewSession(cfg SessionConfig) *Session {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if cfg.MimeType == "" {
		cfg.MimeType = DefaultMimeType
	}
	if cfg.Lock == nil {
		cfg.Lock = NewDeviceLock()
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = scheduler.NewReal()
	}
	return &Session{cfg: cfg, state: StateIdle}
}

func (s *Session) ID() string {
	return s.cfg.ID
}

// OnChange registers a listener called after every transition and tick.
func (s *Session) OnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

// Start acquires the device and begins recording. On failure the session
// stays idle and Start may be retried.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle {
		state := s.state
		s.mu.Unlock()
		return transitionError("start", state)
	}

	if err := s.cfg.Lock.Acquire(s.cfg.DeviceKey, s.cfg.ID); err != nil {
		s.mu.Unlock()
		return err
	}

	capture, err := s.cfg.Device.Open(ctx, s.deliver)
	if err != nil {
		s.cfg.Lock.Release(s.cfg.DeviceKey, s.cfg.ID)
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	now := s.cfg.Scheduler.Now()
	s.capture = capture
	s.state = StateRecording
	s.elapsed = 0
	s.chunks = nil
	s.buffered = 0
	s.startedAt = &now
	s.tick = s.cfg.Scheduler.Every(s.cfg.TickInterval, s.onTick)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Pause suspends buffering and halts the elapsed counter.
func (s *Session) Pause() error {
	s.mu.Lock()
	if s.state != StateRecording {
		state := s.state
		s.mu.Unlock()
		return transitionError("pause", state)
	}
	s.tick.Stop()
	s.tick = nil
	s.capture.Pause()
	s.state = StatePaused
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Resume continues buffering and counting from the preserved elapsed time.
func (s *Session) Resume() error {
	s.mu.Lock()
	if s.state != StatePaused {
		state := s.state
		s.mu.Unlock()
		return transitionError("resume", state)
	}
	s.capture.Resume()
	s.state = StateRecording
	s.tick = s.cfg.Scheduler.Every(s.cfg.TickInterval, s.onTick)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return nil
}

// Stop finalizes the recording and releases the device. Calling Stop on an
// idle or already stopped session does nothing.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.state == StateIdle || s.state == StateStopped {
		s.mu.Unlock()
		return nil
	}

	if s.tick != nil {
		s.tick.Stop()
		s.tick = nil
	}

	now := s.cfg.Scheduler.Now()
	if len(s.chunks) > 0 {
		duration := time.Duration(s.elapsed) * s.cfg.TickInterval
		s.artifact = newArtifact(s.cfg.ID, s.cfg.MimeType, s.chunks, duration, now)
		s.playback = newPlayback(s.cfg.Scheduler, s.artifact.Duration(), s.playbackChanged)
	}

	releaseErr := s.capture.Release()
	s.cfg.Lock.Release(s.cfg.DeviceKey, s.cfg.ID)
	s.state = StateStopped
	s.stoppedAt = &now
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	if releaseErr != nil {
		return fmt.Errorf("release audio device: %w", releaseErr)
	}
	return nil
}

// Artifact returns the finalized recording, or nil when the session has not
// stopped or captured nothing.
func (s *Session) Artifact() *Artifact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact
}

// Playback returns the player over the finalized artifact.
func (s *Session) Playback() (*Playback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.playback == nil {
		return nil, ErrNoArtifact
	}
	return s.playback, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Chunks returns a copy of the buffered chunk sequence.
func (s *Session) Chunks() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]byte, len(s.chunks))
	copy(out, s.chunks)
	return out
}

func (s *Session) deliver(chunk []byte) {
	s.mu.Lock()
	if s.state != StateRecording || len(chunk) == 0 {
		s.mu.Unlock()
		return
	}
	buf := make([]byte, len(chunk))
	copy(buf, chunk)
	s.chunks = append(s.chunks, buf)
	s.buffered += len(buf)
	s.mu.Unlock()
}

func (s *Session) onTick() {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return
	}
	s.elapsed++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *Session) playbackChanged() {
	s.notify(s.Snapshot())
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:             s.cfg.ID,
		State:          s.state,
		ElapsedSeconds: s.elapsed,
		Elapsed:        FormatElapsed(s.elapsed),
		ChunkCount:     len(s.chunks),
		BufferedBytes:  s.buffered,
		HasArtifact:    s.artifact != nil,
		StartedAt:      s.startedAt,
		StoppedAt:      s.stoppedAt,
	}
	if s.playback != nil {
		snap.IsPlaying = s.playback.IsPlaying()
	}
	return snap
}

func (s *Session) notify(snap Snapshot) {
	s.mu.Lock()
	listeners := make([]func(Snapshot), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
