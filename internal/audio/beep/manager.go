package beep

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"chosenoffset.com/puffinarcade/internal/audio"
)

const (
	sampleRate   = beep.SampleRate(44100)
	masterGain   = 0.78
	bufferLength = 100 * time.Millisecond
)

// Manager owns the speaker, the master bus and the ambient loop. The zero
// value is not usable; call NewManager.
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	ctrl        *beep.Ctrl
	master      *effects.Volume
	rnd         *rand.Rand
	initialized bool
	enabled     bool

	ambience ambience
}

// NewManager creates a manager that is enabled but silent until Init succeeds
func NewManager(ambienceInterval time.Duration) *Manager {
	mixer := &beep.Mixer{}
	ctrl := &beep.Ctrl{Streamer: mixer}
	m := &Manager{
		mixer: mixer,
		ctrl:  ctrl,
		master: &effects.Volume{
			Streamer: ctrl,
			Base:     2,
			Volume:   math.Log2(masterGain),
		},
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
		enabled: true,
	}
	m.ambience.interval = ambienceInterval
	m.ambience.play = m.playHum
	return m
}

// Init opens the speaker. Calling it again after success is a no-op. On
// failure the manager stays usable and silent.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(bufferLength)); err != nil {
		return fmt.Errorf("failed to open speaker: %w", err)
	}

	m.master.Silent = !m.enabled
	speaker.Play(m.master)
	m.initialized = true
	return nil
}

// Initialized reports whether the speaker is open
func (m *Manager) Initialized() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized
}

// Suspend pauses the master bus without dropping queued sounds
func (m *Manager) Suspend() {
	m.withBus(func() { m.ctrl.Paused = true })
}

// Resume continues a suspended master bus
func (m *Manager) Resume() {
	m.withBus(func() { m.ctrl.Paused = false })
}

// SetEnabled mutes or unmutes all output. Disabling also stops the ambience.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	m.enabled = enabled
	m.mu.Unlock()

	m.withBus(func() { m.master.Silent = !enabled })
	if !enabled {
		m.StopAmbience()
	}
}

// Enable turns sound on
func (m *Manager) Enable() { m.SetEnabled(true) }

// Disable turns sound off
func (m *Manager) Disable() { m.SetEnabled(false) }

// Enabled reports whether sound is on
func (m *Manager) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// Play triggers a cue. It never blocks on the device and is a no-op when the
// speaker is closed or sound is disabled.
func (m *Manager) Play(c audio.Cue) {
	m.mu.Lock()
	voices := Voices(c, m.rnd)
	m.mu.Unlock()
	m.playVoices(voices)
}

func (m *Manager) playHum() {
	m.playVoices(humVoices())
}

func (m *Manager) playVoices(voices []Voice) {
	if len(voices) == 0 {
		return
	}

	m.mu.Lock()
	if !m.initialized || !m.enabled {
		m.mu.Unlock()
		return
	}
	streams := make([]beep.Streamer, 0, len(voices))
	for _, v := range voices {
		streams = append(streams, v.Streamer(sampleRate, m.rnd))
	}
	m.mu.Unlock()

	speaker.Lock()
	m.mixer.Add(streams...)
	speaker.Unlock()
}

// withBus runs fn with the speaker locked when it is open
func (m *Manager) withBus(fn func()) {
	m.mu.Lock()
	initialized := m.initialized
	m.mu.Unlock()

	if !initialized {
		fn()
		return
	}
	speaker.Lock()
	fn()
	speaker.Unlock()
}

// StartAmbience begins the recurring background cue. Starting twice is a
// no-op.
func (m *Manager) StartAmbience() {
	if !m.Enabled() {
		return
	}
	m.ambience.start()
}

// StopAmbience stops the background cue and waits for its goroutine to exit
func (m *Manager) StopAmbience() {
	m.ambience.stop()
}

// AmbienceRunning reports whether the ambient loop is active
func (m *Manager) AmbienceRunning() bool {
	return m.ambience.running()
}

// Close stops the ambience and drops every queued sound
func (m *Manager) Close() {
	m.StopAmbience()

	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// ambience runs play on a fixed interval in its own goroutine
type ambience struct {
	mu       sync.Mutex
	interval time.Duration
	play     func()
	quit     chan struct{}
	done     chan struct{}
}

func (a *ambience) start() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.quit != nil || a.interval <= 0 {
		return
	}
	a.quit = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop(a.quit, a.done)
}

func (a *ambience) loop(quit, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	a.play()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			a.play()
		}
	}
}

func (a *ambience) stop() {
	a.mu.Lock()
	quit, done := a.quit, a.done
	a.quit, a.done = nil, nil
	a.mu.Unlock()

	if quit == nil {
		return
	}
	close(quit)
	<-done
}

func (a *ambience) running() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quit != nil
}
