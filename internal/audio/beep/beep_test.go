package beep

import (
	"math"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gopxl/beep"

	"chosenoffset.com/puffinarcade/internal/audio"
)

func drain(s beep.Streamer) (samples int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		samples += n
		if !ok || n == 0 {
			return samples, peak
		}
	}
}

func TestEveryCueHasARecipe(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	for _, c := range audio.AllCues() {
		if len(Voices(c, rnd)) == 0 {
			t.Errorf("Cue %s has no voices", c)
		}
	}
}

func TestToneLengthAndGain(t *testing.T) {
	tone := Tone{Freq: 670, Duration: 50 * time.Millisecond, Wave: WaveSquare, Gain: 0.07, Slide: 250}
	n, peak := drain(tone.Streamer(sampleRate, nil))

	want := sampleRate.N(50*time.Millisecond + toneTail)
	if n != want {
		t.Errorf("Tone rendered %d samples, want %d", n, want)
	}
	if peak <= 0 || peak > 0.07+1e-9 {
		t.Errorf("Tone peak %v outside (0, 0.07]", peak)
	}
}

func TestSineToneUsesGenerator(t *testing.T) {
	tone := Tone{Freq: 440, Duration: 30 * time.Millisecond, Wave: WaveSine, Gain: 0.1}
	n, peak := drain(tone.Streamer(sampleRate, nil))
	if n != sampleRate.N(30*time.Millisecond+toneTail) {
		t.Errorf("Unexpected sine length %d", n)
	}
	if peak <= 0 {
		t.Error("Expected audible sine tone")
	}
}

func TestDelayedToneAddsSilence(t *testing.T) {
	tone := Tone{Freq: 300, Duration: 100 * time.Millisecond, Wave: WaveSquare, Gain: 0.1, Delay: 120 * time.Millisecond}
	n, _ := drain(tone.Streamer(sampleRate, nil))
	want := sampleRate.N(120*time.Millisecond) + sampleRate.N(100*time.Millisecond+toneTail)
	if n != want {
		t.Errorf("Delayed tone rendered %d samples, want %d", n, want)
	}
}

func TestNoiseBurstIsBounded(t *testing.T) {
	nz := Noise{Duration: 100 * time.Millisecond, Gain: 0.08}
	n, peak := drain(nz.Streamer(sampleRate, rand.New(rand.NewSource(2))))
	if n != sampleRate.N(100*time.Millisecond) {
		t.Errorf("Noise rendered %d samples", n)
	}
	if peak > 0.08+1e-9 {
		t.Errorf("Noise peak %v too loud", peak)
	}
}

func TestSlideFloorsAtMinimumFrequency(t *testing.T) {
	o := &oscillator{wave: WaveSaw, start: 90, end: math.Max(minSlideHz, 90-200), slide: 100, rate: sampleRate}
	o.position = 100
	if got := o.freq(); math.Abs(got-minSlideHz) > 1e-9 {
		t.Errorf("Slide ended at %v Hz, want %v", got, float64(minSlideHz))
	}
}

// TestManagerGracefulDegradation verifies audio operations don't panic when not initialized
func TestManagerGracefulDegradation(t *testing.T) {
	m := NewManager(0)

	defer func() {
		if r := recover(); r != nil {
			t.Errorf("Sound operations panicked without initialization: %v", r)
		}
	}()

	for _, c := range audio.AllCues() {
		m.Play(c)
	}
	m.Suspend()
	m.Resume()
	m.Disable()
	if m.Enabled() {
		t.Error("Expected manager to be disabled")
	}
	m.Enable()
	m.StartAmbience()
	m.StopAmbience()
	m.Close()
}

func TestAmbienceStartStop(t *testing.T) {
	var plays atomic.Int32
	a := &ambience{interval: 2 * time.Millisecond, play: func() { plays.Add(1) }}

	a.start()
	a.start() // second start is a no-op
	if !a.running() {
		t.Fatal("Expected ambience to be running")
	}

	deadline := time.Now().Add(time.Second)
	for plays.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	a.stop()
	a.stop() // idempotent

	if a.running() {
		t.Fatal("Expected ambience to be stopped")
	}
	if plays.Load() < 3 {
		t.Fatalf("Expected at least 3 ambient plays, got %d", plays.Load())
	}

	after := plays.Load()
	time.Sleep(10 * time.Millisecond)
	if plays.Load() != after {
		t.Error("Ambience kept playing after stop")
	}
}

func TestDisableStopsAmbience(t *testing.T) {
	m := NewManager(time.Millisecond)
	m.StartAmbience()
	if !m.AmbienceRunning() {
		t.Fatal("Expected ambience to start while enabled")
	}
	m.Disable()
	if m.AmbienceRunning() {
		t.Error("Expected Disable to stop the ambience")
	}
	m.StartAmbience()
	if m.AmbienceRunning() {
		t.Error("Ambience must not start while disabled")
	}
}
