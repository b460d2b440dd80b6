// Package audio plays short generated cues for engine events.
// A failed speaker init degrades to silence rather than failing the game
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/slgem/slgem/events"
)

const sampleRate = beep.SampleRate(48000)

// Cue identifies one of the generated sounds
type Cue int

const (
	CueTurnStart Cue = iota
	CueUnitMove
	CueError
)

// CuePlayer synthesizes and plays event cues through the system speaker.
// It implements the game loop's Handler so cues track drained events
type CuePlayer struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewCuePlayer creates a cue player; call Init before use
func NewCuePlayer() *CuePlayer {
	return &CuePlayer{
		mixer: &beep.Mixer{},
	}
}

// Init opens the speaker. An error leaves the player in silent mode;
// Play becomes a no-op and the caller may continue without audio
func (p *CuePlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops playback and releases the speaker
func (p *CuePlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// SetMuted toggles cue playback without touching the speaker
func (p *CuePlayer) SetMuted(muted bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
}

// Play queues a cue on the mixer. Silent when uninitialized or muted
func (p *CuePlayer) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || p.muted {
		return
	}
	speaker.Lock()
	p.mixer.Add(cueStreamer(cue))
	speaker.Unlock()
}

// cueStreamer builds the generated sound for a cue
func cueStreamer(cue Cue) beep.Streamer {
	switch cue {
	case CueTurnStart:
		// Rising two-note chime
		first := newFade(newTone(660, 80*time.Millisecond, sampleRate),
			80*time.Millisecond, 5*time.Millisecond, 20*time.Millisecond, sampleRate)
		second := newFade(newTone(880, 120*time.Millisecond, sampleRate),
			120*time.Millisecond, 5*time.Millisecond, 40*time.Millisecond, sampleRate)
		return beep.Seq(first, second)
	case CueUnitMove:
		return newFade(newTone(440, 50*time.Millisecond, sampleRate),
			50*time.Millisecond, 2*time.Millisecond, 15*time.Millisecond, sampleRate)
	case CueError:
		return newFade(newTone(180, 200*time.Millisecond, sampleRate),
			200*time.Millisecond, 2*time.Millisecond, 60*time.Millisecond, sampleRate)
	}
	return beep.Silence(0)
}

// EventTypes returns the event types this handler processes
func (p *CuePlayer) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventTurnStart,
		events.EventUnitMove,
		events.EventLog,
	}
}

// HandleEvent plays the cue matching a drained event.
// Log events only sound at error level
func (p *CuePlayer) HandleEvent(pe events.PrioritizedEvent) error {
	switch pe.Event.Type {
	case events.EventTurnStart:
		p.Play(CueTurnStart)
	case events.EventUnitMove:
		p.Play(CueUnitMove)
	case events.EventLog:
		if payload, ok := pe.Event.Payload.(*events.LogPayload); ok && payload.Level == events.LogError {
			p.Play(CueError)
		}
	}
	return nil
}
