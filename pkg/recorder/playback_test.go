package recorder

import (
	"context"
	"testing"
	"time"

	"robinrocks-be/pkg/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordedSession(t *testing.T, clock *scheduler.Virtual, seconds int) *Session {
	t.Helper()
	s := NewSession(SessionConfig{
		ID:        "s1",
		DeviceKey: "agent-1",
		Device:    &SimulatedDevice{Scheduler: clock},
		Scheduler: clock,
	})
	require.NoError(t, s.Start(context.Background()))
	clock.Advance(time.Duration(seconds) * time.Second)
	require.NoError(t, s.Stop())
	return s
}

func TestPlaybackFlipsOffAtEnd(t *testing.T) {
	clock := scheduler.NewVirtual()
	s := recordedSession(t, clock, 4)

	p, err := s.Playback()
	require.NoError(t, err)
	assert.Equal(t, 4*time.Second, p.Duration())

	assert.True(t, p.Toggle())
	clock.Advance(3 * time.Second)
	assert.True(t, p.IsPlaying())
	assert.Equal(t, 3*time.Second, p.Position())

	clock.Advance(time.Second)
	assert.False(t, p.IsPlaying())
	assert.False(t, s.Snapshot().IsPlaying)
	assert.Equal(t, 4*time.Second, p.Position())
}

func TestPlaybackToggleAndResumeFromPosition(t *testing.T) {
	clock := scheduler.NewVirtual()
	p, err := recordedSession(t, clock, 10).Playback()
	require.NoError(t, err)

	p.Toggle()
	clock.Advance(2 * time.Second)
	assert.False(t, p.Toggle())
	clock.Advance(5 * time.Second)
	assert.Equal(t, 2*time.Second, p.Position())

	p.Toggle()
	clock.Advance(7 * time.Second)
	assert.True(t, p.IsPlaying())
	clock.Advance(time.Second)
	assert.False(t, p.IsPlaying())

	assert.True(t, p.Toggle(), "playing from the end restarts")
	assert.Equal(t, time.Duration(0), p.Position())
}

func TestPlaybackSeekAndEnded(t *testing.T) {
	clock := scheduler.NewVirtual()
	p, err := recordedSession(t, clock, 6).Playback()
	require.NoError(t, err)

	p.Seek(-time.Second)
	assert.Equal(t, time.Duration(0), p.Position())
	p.Seek(time.Minute)
	assert.Equal(t, 6*time.Second, p.Position())

	p.Seek(4 * time.Second)
	p.Toggle()
	clock.Advance(2 * time.Second)
	assert.False(t, p.IsPlaying())

	p.Seek(0)
	p.Toggle()
	p.Ended()
	assert.False(t, p.IsPlaying())
}
