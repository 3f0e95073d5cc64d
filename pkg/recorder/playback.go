package recorder

import (
	"sync"
	"time"

	"robinrocks-be/pkg/scheduler"
)

// Playback is a Play/Pause toggle over a finalized artifact. It flips back to
// not playing on its own when the end of the recording is reached.
type Playback struct {
	mu        sync.Mutex
	clock     scheduler.Scheduler
	duration  time.Duration
	position  time.Duration
	playing   bool
	startedAt time.Time
	endTimer  scheduler.Timer
	onChange  func()
}

func newPlayback(clock scheduler.Scheduler, duration time.Duration, onChange func()) *Playback {
	return &Playback{clock: clock, duration: duration, onChange: onChange}
}

func (p *Playback) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// Position returns the current playback offset.
func (p *Playback) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *Playback) Duration() time.Duration {
	return p.duration
}

// Toggle starts playback when paused and pauses it when playing. Playing
// from the end restarts at the beginning. It returns the new playing flag.
func (p *Playback) Toggle() bool {
	p.mu.Lock()
	if p.playing {
		p.pauseLocked()
	} else {
		if p.position >= p.duration {
			p.position = 0
		}
		p.playLocked()
	}
	playing := p.playing
	p.mu.Unlock()

	p.changed()
	return playing
}

// Seek moves the playback offset, clamped to the recording length.
func (p *Playback) Seek(offset time.Duration) {
	p.mu.Lock()
	if offset < 0 {
		offset = 0
	}
	if offset > p.duration {
		offset = p.duration
	}
	wasPlaying := p.playing
	if wasPlaying {
		p.pauseLocked()
	}
	p.position = offset
	if wasPlaying {
		p.playLocked()
	}
	p.mu.Unlock()

	p.changed()
}

// Ended marks playback as finished. The player calls it when the client
// reports the end of the media.
func (p *Playback) Ended() {
	p.mu.Lock()
	if p.endTimer != nil {
		p.endTimer.Stop()
		p.endTimer = nil
	}
	p.playing = false
	p.position = p.duration
	p.mu.Unlock()

	p.changed()
}

func (p *Playback) playLocked() {
	p.playing = true
	p.startedAt = p.clock.Now()
	p.endTimer = p.clock.AfterFunc(p.duration-p.position, p.Ended)
}

func (p *Playback) pauseLocked() {
	p.position = p.positionLocked()
	p.playing = false
	if p.endTimer != nil {
		p.endTimer.Stop()
		p.endTimer = nil
	}
}

func (p *Playback) positionLocked() time.Duration {
	if !p.playing {
		return p.position
	}
	pos := p.position + p.clock.Now().Sub(p.startedAt)
	if pos > p.duration {
		pos = p.duration
	}
	return pos
}

func (p *Playback) changed() {
	if p.onChange != nil {
		p.onChange()
	}
}
