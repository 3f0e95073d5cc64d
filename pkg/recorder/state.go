package recorder

import (
	"errors"
	"fmt"
	"time"
)

type State string

const (
	StateIdle      State = "IDLE"
	StateRecording State = "RECORDING"
	StatePaused    State = "PAUSED"
	StateStopped   State = "STOPPED"
)

var (
	// ErrDeviceUnavailable is returned when the audio input cannot be acquired
	// (permission denied or no device). The session stays idle.
	ErrDeviceUnavailable = errors.New("audio input device unavailable")
	// ErrDeviceBusy is returned when another session already holds the device.
	ErrDeviceBusy = errors.New("audio input device is held by another session")
	// ErrInvalidTransition is returned by Start, Pause and Resume when called
	// from a state that does not allow them.
	ErrInvalidTransition = errors.New("invalid recording state transition")
	// ErrNoArtifact is returned by playback operations before a recording with
	// at least one chunk has been stopped.
	ErrNoArtifact = errors.New("no finalized recording available")
	// ErrPermissionDenied is reported by devices when the user refused access.
	ErrPermissionDenied = errors.New("microphone permission denied")
	// ErrNotCapturing is returned when chunks are pushed to a device with no open capture.
	ErrNotCapturing = errors.New("device is not capturing")
)

func transitionError(op string, from State) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, op, from)
}

// Snapshot is a read-only view of a session.
type Snapshot struct {
	ID             string     `json:"id"`
	State          State      `json:"state"`
	ElapsedSeconds int        `json:"elapsed_seconds"`
	Elapsed        string     `json:"elapsed"`
	ChunkCount     int        `json:"chunk_count"`
	BufferedBytes  int        `json:"buffered_bytes"`
	HasArtifact    bool       `json:"has_artifact"`
	IsPlaying      bool       `json:"is_playing"`
	StartedAt      *time.Time `json:"started_at,omitempty"`
	StoppedAt      *time.Time `json:"stopped_at,omitempty"`
}

// FormatElapsed renders seconds as MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
