package recorder

import (
	"context"
	"encoding/binary"
	"testing"
	"time"

	"robinrocks-be/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, clock *scheduler.Virtual, lock *DeviceLock, id string, device Device) *Session {
	t.Helper()
	return NewSession(SessionConfig{
		ID:        id,
		DeviceKey: "agent-1",
		Device:    device,
		Lock:      lock,
		Scheduler: clock,
	})
}

func TestSessionElapsedCountsOnlyRecordingTime(t *testing.T) {
	clock := scheduler.NewVirtual()
	device := &SimulatedDevice{Scheduler: clock, Interval: time.Second}
	s := newTestSession(t, clock, NewDeviceLock(), "s1", device)

	require.NoError(t, s.Start(context.Background()))
	clock.Advance(3 * time.Second)
	require.NoError(t, s.Pause())
	clock.Advance(2 * time.Second)
	require.NoError(t, s.Resume())
	clock.Advance(2 * time.Second)
	require.NoError(t, s.Stop())

	snap := s.Snapshot()
	assert.Equal(t, StateStopped, snap.State)
	assert.Equal(t, 5, snap.ElapsedSeconds)
	assert.Equal(t, "00:05", snap.Elapsed)
	assert.True(t, snap.HasArtifact)
}

func TestSessionChunksPreserveOrderAcrossPause(t *testing.T) {
	clock := scheduler.NewVirtual()
	device := NewRemoteDevice()
	s := newTestSession(t, clock, NewDeviceLock(), "s1", device)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, device.Push([]byte("a")))
	require.NoError(t, device.Push([]byte("b")))
	require.NoError(t, s.Pause())
	require.NoError(t, device.Push([]byte("dropped")))
	require.NoError(t, s.Resume())
	require.NoError(t, device.Push([]byte("c")))
	require.NoError(t, device.Push(nil))
	require.NoError(t, s.Stop())

	assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, s.Chunks())
	require.NotNil(t, s.Artifact())
	assert.Equal(t, []byte("abc"), s.Artifact().Bytes())
	assert.Equal(t, DefaultMimeType, s.Artifact().MimeType())
}

func TestSessionSimulatedChunksAreSequential(t *testing.T) {
	clock := scheduler.NewVirtual()
	device := &SimulatedDevice{Scheduler: clock, Interval: time.Second, ChunkSize: 16}
	s := newTestSession(t, clock, NewDeviceLock(), "s1", device)

	require.NoError(t, s.Start(context.Background()))
	clock.Advance(2 * time.Second)
	require.NoError(t, s.Pause())
	clock.Advance(3 * time.Second)
	require.NoError(t, s.Resume())
	clock.Advance(1 * time.Second)
	require.NoError(t, s.Stop())

	chunks := s.Chunks()
	require.Len(t, chunks, 3)
	for i, c := range chunks[:2] {
		assert.Equal(t, uint64(i+1), binary.BigEndian.Uint64(c))
	}
	assert.Greater(t, binary.BigEndian.Uint64(chunks[2]), binary.BigEndian.Uint64(chunks[1]))
	assert.Equal(t, 48, s.Artifact().Size())
}

func TestSessionStartDeviceUnavailable(t *testing.T) {
	clock := scheduler.NewVirtual()
	lock := NewDeviceLock()
	device := &SimulatedDevice{Scheduler: clock, Deny: true}
	s := newTestSession(t, clock, lock, "s1", device)

	err := s.Start(context.Background())
	require.ErrorIs(t, err, ErrDeviceUnavailable)
	assert.Equal(t, StateIdle, s.Snapshot().State)
	_, held := lock.Holder("agent-1")
	assert.False(t, held)

	device.Deny = false
	require.NoError(t, s.Start(context.Background()))
	assert.Equal(t, StateRecording, s.Snapshot().State)
}

func TestSessionDeviceIsExclusive(t *testing.T) {
	clock := scheduler.NewVirtual()
	lock := NewDeviceLock()
	first := newTestSession(t, clock, lock, "s1", &SimulatedDevice{Scheduler: clock})
	second := newTestSession(t, clock, lock, "s2", &SimulatedDevice{Scheduler: clock})

	require.NoError(t, first.Start(context.Background()))
	require.ErrorIs(t, second.Start(context.Background()), ErrDeviceBusy)
	assert.Equal(t, StateIdle, second.Snapshot().State)

	require.NoError(t, first.Stop())
	require.NoError(t, second.Start(context.Background()))
}

func TestSessionStopIsIdempotent(t *testing.T) {
	clock := scheduler.NewVirtual()
	s := newTestSession(t, clock, NewDeviceLock(), "s1", &SimulatedDevice{Scheduler: clock})

	assert.NoError(t, s.Stop(), "stop from idle is a no-op")
	assert.Equal(t, StateIdle, s.Snapshot().State)

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop())
	assert.NoError(t, s.Stop())
	assert.Equal(t, StateStopped, s.Snapshot().State)
}

func TestSessionInvalidTransitions(t *testing.T) {
	clock := scheduler.NewVirtual()
	s := newTestSession(t, clock, NewDeviceLock(), "s1", &SimulatedDevice{Scheduler: clock})

	assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)
	assert.ErrorIs(t, s.Resume(), ErrInvalidTransition)

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrInvalidTransition)
	assert.ErrorIs(t, s.Resume(), ErrInvalidTransition)

	require.NoError(t, s.Stop())
	assert.ErrorIs(t, s.Start(context.Background()), ErrInvalidTransition, "stopped sessions are not reused")
	assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)
}

func TestSessionWithoutChunksHasNoArtifact(t *testing.T) {
	clock := scheduler.NewVirtual()
	s := newTestSession(t, clock, NewDeviceLock(), "s1", NewRemoteDevice())

	require.NoError(t, s.Start(context.Background()))
	clock.Advance(2 * time.Second)
	require.NoError(t, s.Stop())

	assert.Nil(t, s.Artifact())
	_, err := s.Playback()
	assert.ErrorIs(t, err, ErrNoArtifact)
}

func TestSessionNotifiesListeners(t *testing.T) {
	clock := scheduler.NewVirtual()
	s := newTestSession(t, clock, NewDeviceLock(), "s1", &SimulatedDevice{Scheduler: clock})

	var states []State
	s.OnChange(func(snap Snapshot) { states = append(states, snap.State) })

	require.NoError(t, s.Start(context.Background()))
	clock.Advance(time.Second)
	require.NoError(t, s.Pause())
	require.NoError(t, s.Stop())

	assert.Equal(t, []State{StateRecording, StateRecording, StatePaused, StateStopped}, states)
}

func TestRemoteDevicePushAfterRelease(t *testing.T) {
	device := NewRemoteDevice()
	assert.ErrorIs(t, device.Push([]byte("x")), ErrNotCapturing)

	c, err := device.Open(context.Background(), func([]byte) {})
	require.NoError(t, err)
	_, err = device.Open(context.Background(), func([]byte) {})
	assert.ErrorIs(t, err, ErrDeviceBusy)

	require.NoError(t, c.Release())
	require.NoError(t, c.Release())
	assert.ErrorIs(t, device.Push([]byte("x")), ErrNotCapturing)
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{765, "12:45"},
		{-3, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.seconds))
	}
}
