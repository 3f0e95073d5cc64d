package recorder

import "time"

const DefaultMimeType = "audio/wav"

// Artifact is the finalized recording: all captured chunks concatenated in
// capture order. It never changes after creation.
type Artifact struct {
	sessionID string
	mimeType  string
	data      []byte
	duration  time.Duration
	createdAt time.Time
}

func newArtifact(sessionID, mimeType string, chunks [][]byte, duration time.Duration, now time.Time) *Artifact {
	size := 0
	for _, c := range chunks {
		size += len(c)
	}
	data := make([]byte, 0, size)
	for _, c := range chunks {
		data = append(data, c...)
	}
	return &Artifact{
		sessionID: sessionID,
		mimeType:  mimeType,
		data:      data,
		duration:  duration,
		createdAt: now,
	}
}

func (a *Artifact) SessionID() string       { return a.sessionID }
func (a *Artifact) MimeType() string        { return a.mimeType }
func (a *Artifact) Size() int               { return len(a.data) }
func (a *Artifact) Duration() time.Duration { return a.duration }
func (a *Artifact) CreatedAt() time.Time    { return a.createdAt }

// Bytes returns a copy of the audio data.
func (a *Artifact) Bytes() []byte {
	out := make([]byte, len(a.data))
	copy(out, a.data)
	return out
}
