// Package audio names the arcade's sound cues and the sinks that receive
// them. The speaker backend lives in the beep subpackage so the simulators
// never link against an audio device.
package audio

import "sync"

// Cue names a one-shot sound effect
type Cue int

const (
	CueShoot Cue = iota
	CueEnemyHit
	CueExplosion
	CueExplosionBig
	CuePlayerHit
	CueBossWarning
	CueBossNote
	CueUI
	CueButton
	CueAlarm
	CueGameOver
	cueCount
)

var cueNames = [cueCount]string{
	CueShoot:        "shoot",
	CueEnemyHit:     "enemy-hit",
	CueExplosion:    "explosion",
	CueExplosionBig: "explosion[big]",
	CuePlayerHit:    "player-hit",
	CueBossWarning:  "boss-warning",
	CueBossNote:     "boss-note",
	CueUI:           "ui",
	CueButton:       "button",
	CueAlarm:        "alarm",
	CueGameOver:     "gameover",
}

// AllCues lists every cue in order
func AllCues() []Cue {
	out := make([]Cue, 0, cueCount)
	for c := Cue(0); c < cueCount; c++ {
		out = append(out, c)
	}
	return out
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Explosion returns the explosion cue for the given size
func Explosion(big bool) Cue {
	if big {
		return CueExplosionBig
	}
	return CueExplosion
}

// Sink receives fire-and-forget cue triggers. Implementations must never
// block or panic.
type Sink interface {
	Play(c Cue)
}

// Nop discards every cue
type Nop struct{}

// Play does nothing
func (Nop) Play(Cue) {}

// Recorder keeps every cue it receives, in order. Useful for tests and for
// replaying a frame's sounds on another sink.
type Recorder struct {
	mu   sync.Mutex
	cues []Cue
}

// Play records the cue
func (r *Recorder) Play(c Cue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = append(r.cues, c)
}

// Cues returns a copy of the recorded cues
func (r *Recorder) Cues() []Cue {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Cue, len(r.cues))
	copy(out, r.cues)
	return out
}

// Count returns how many times c was played
func (r *Recorder) Count(c Cue) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

// Reset forgets all recorded cues
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cues = r.cues[:0]
}
