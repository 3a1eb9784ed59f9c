// Package beep synthesizes the arcade's sound cues with gopxl/beep and plays
// them through the system speaker. Everything degrades to a no-op when no
// audio device is available, so callers never have to check.
package beep

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"chosenoffset.com/puffinarcade/internal/audio"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveTriangle
	WaveSaw
)

const (
	envFloor   = 0.0001
	attackTime = 10 * time.Millisecond
	toneTail   = 20 * time.Millisecond
	minSlideHz = 30
	noiseHPHz  = 880
)

// Voice is anything that can be rendered to a finite beep stream
type Voice interface {
	Streamer(sr beep.SampleRate, rnd *rand.Rand) beep.Streamer
}

// Tone is a single oscillator note with an exponential attack/decay envelope
// and an optional exponential pitch slide.
type Tone struct {
	Freq     float64
	Duration time.Duration
	Wave     WaveType
	Gain     float64
	Slide    float64 // Hz added by the end of the note
	Delay    time.Duration
}

// Noise is a decaying high-passed white noise burst
type Noise struct {
	Duration time.Duration
	Gain     float64
	Delay    time.Duration
}

// Streamer renders the tone. The stream ends after delay + duration + a short
// tail.
func (t Tone) Streamer(sr beep.SampleRate, _ *rand.Rand) beep.Streamer {
	n := sr.N(t.Duration + toneTail)
	var src beep.Streamer
	if t.Wave == WaveSine && t.Slide == 0 {
		if sine, err := generators.SineTone(sr, t.Freq); err == nil {
			src = sine
		}
	}
	if src == nil {
		end := t.Freq
		if t.Slide != 0 {
			end = math.Max(minSlideHz, t.Freq+t.Slide)
		}
		src = &oscillator{
			wave:  t.Wave,
			start: t.Freq,
			end:   end,
			slide: sr.N(t.Duration),
			rate:  sr,
		}
	}
	body := &envelope{
		src:    beep.Take(n, src),
		gain:   t.Gain,
		attack: sr.N(attackTime),
		decay:  sr.N(t.Duration),
	}
	return delayed(sr, t.Delay, body)
}

// Streamer renders the noise burst with its shape baked in
func (nz Noise) Streamer(sr beep.SampleRate, rnd *rand.Rand) beep.Streamer {
	n := sr.N(nz.Duration)
	if n < 1 {
		n = 1
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(1))
	}

	// One-pole high-pass so the burst reads as a crackle, not a thump
	rc := 1 / (2 * math.Pi * noiseHPHz)
	alpha := rc / (rc + 1/float64(sr))

	buf := make([][2]float64, n)
	var prevIn, prevOut float64
	for i := range buf {
		shape := 1 - float64(i)/float64(n)
		in := (rnd.Float64()*2 - 1) * shape * shape
		out := alpha * (prevOut + in - prevIn)
		prevIn, prevOut = in, out
		out = math.Max(-1, math.Min(1, out))
		buf[i][0] = out
		buf[i][1] = out
	}
	body := &envelope{
		src:    &sliceStreamer{buf: buf},
		gain:   nz.Gain,
		attack: sr.N(attackTime),
		decay:  n,
	}
	return delayed(sr, nz.Delay, body)
}

func delayed(sr beep.SampleRate, d time.Duration, s beep.Streamer) beep.Streamer {
	if d <= 0 {
		return s
	}
	return beep.Seq(beep.Silence(sr.N(d)), s)
}

// oscillator generates raw waves, gliding exponentially from start to end
// over slide samples
type oscillator struct {
	wave     WaveType
	start    float64
	end      float64
	slide    int
	position int
	phase    float64
	rate     beep.SampleRate
}

func (o *oscillator) freq() float64 {
	if o.start == o.end || o.slide <= 0 {
		return o.start
	}
	p := float64(o.position) / float64(o.slide)
	if p > 1 {
		p = 1
	}
	return o.start * math.Pow(o.end/o.start, p)
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveTriangle:
			val = 4*math.Abs(o.phase-0.5) - 1
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq() / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps exponentially from envFloor to gain over attack samples and
// back to envFloor by decay samples; anything after decay is silent.
type envelope struct {
	src      beep.Streamer
	gain     float64
	attack   int
	decay    int
	position int
}

func (e *envelope) level() float64 {
	switch {
	case e.gain <= envFloor:
		return 0
	case e.position < e.attack:
		p := float64(e.position) / float64(e.attack)
		return envFloor * math.Pow(e.gain/envFloor, p)
	case e.position < e.decay:
		span := e.decay - e.attack
		if span <= 0 {
			return 0
		}
		p := float64(e.position-e.attack) / float64(span)
		return e.gain * math.Pow(envFloor/e.gain, p)
	default:
		return 0
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.src.Stream(samples)
	for i := 0; i < n; i++ {
		lvl := e.level()
		samples[i][0] *= lvl
		samples[i][1] *= lvl
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

type sliceStreamer struct {
	buf [][2]float64
	pos int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	n = copy(samples, s.buf[s.pos:])
	s.pos += n
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Voices returns the recipe for a cue. rnd varies the boss note pitch.
func Voices(c audio.Cue, rnd *rand.Rand) []Voice {
	switch c {
	case audio.CueShoot:
		return []Voice{Tone{Freq: 670, Duration: ms(50), Wave: WaveSquare, Gain: 0.07, Slide: 250}}
	case audio.CueEnemyHit:
		return []Voice{Tone{Freq: 260, Duration: ms(70), Wave: WaveTriangle, Gain: 0.08, Slide: -60}}
	case audio.CueExplosion:
		return []Voice{
			Noise{Duration: ms(100), Gain: 0.08},
			Tone{Freq: 140, Duration: ms(100), Wave: WaveSaw, Gain: 0.09, Slide: -40},
		}
	case audio.CueExplosionBig:
		return []Voice{
			Noise{Duration: ms(180), Gain: 0.14},
			Tone{Freq: 90, Duration: ms(200), Wave: WaveSaw, Gain: 0.09, Slide: -40},
		}
	case audio.CuePlayerHit:
		return []Voice{Tone{Freq: 190, Duration: ms(160), Wave: WaveSaw, Gain: 0.11, Slide: -80}}
	case audio.CueBossWarning:
		return []Voice{
			Tone{Freq: 220, Duration: ms(100), Wave: WaveSquare, Gain: 0.1},
			Tone{Freq: 300, Duration: ms(100), Wave: WaveSquare, Gain: 0.1, Delay: ms(120)},
		}
	case audio.CueBossNote:
		jitter := 0.5
		if rnd != nil {
			jitter = rnd.Float64()
		}
		return []Voice{Tone{Freq: 440 + jitter*200, Duration: ms(90), Wave: WaveTriangle, Gain: 0.08, Slide: -50}}
	case audio.CueUI:
		return []Voice{Tone{Freq: 520, Duration: ms(50), Wave: WaveTriangle, Gain: 0.06, Slide: 70}}
	case audio.CueButton:
		return []Voice{Tone{Freq: 420, Duration: ms(40), Wave: WaveSquare, Gain: 0.06}}
	case audio.CueAlarm:
		return []Voice{
			Tone{Freq: 880, Duration: ms(90), Wave: WaveSquare, Gain: 0.08},
			Tone{Freq: 660, Duration: ms(90), Wave: WaveSquare, Gain: 0.08, Delay: ms(110)},
		}
	case audio.CueGameOver:
		return []Voice{
			Tone{Freq: 330, Duration: ms(180), Wave: WaveSaw, Gain: 0.09, Slide: -110},
			Tone{Freq: 220, Duration: ms(220), Wave: WaveSaw, Gain: 0.09, Slide: -80, Delay: ms(200)},
			Tone{Freq: 140, Duration: ms(360), Wave: WaveSaw, Gain: 0.08, Slide: -30, Delay: ms(440)},
		}
	}
	return nil
}

// humVoices is the ambient rig drone played by the ambience loop
func humVoices() []Voice {
	return []Voice{
		Tone{Freq: 55, Duration: ms(900), Wave: WaveSine, Gain: 0.035},
		Tone{Freq: 82.5, Duration: ms(700), Wave: WaveTriangle, Gain: 0.02, Delay: ms(250)},
	}
}
