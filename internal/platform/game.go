// Package platform simulates Puffin Platform Panic, a meter-management game
// set on an offshore rig. Production, safety and morale decay over time;
// random events push them around and the crew's actions pull them back. The
// run ends the moment any meter hits zero.
//
// The simulator never touches audio or the screen. Side effects it wants
// (camera shake, alarm and game-over cues) are queued and drained by the
// frame loop that owns it.
package platform

import (
	"fmt"
	"math"
	"slices"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/geom"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/simulation"
)

// State is the top-level run state
type State int

const (
	StateStart State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	}
	return "unknown"
}

// End reasons, checked in this order
const (
	ReasonProduction = "Production collapsed"
	ReasonSafety     = "Safety failed"
	ReasonMorale     = "Morale broke"
)

// ActiveEvent is one event currently in effect
type ActiveEvent struct {
	Kind      EventKind
	Remaining float64
}

// EffectKind tells the owner what to do with an Effect
type EffectKind int

const (
	EffectShake EffectKind = iota
	EffectCue
)

// Effect is a side effect requested by the simulator
type Effect struct {
	Kind EffectKind
	Cue  audio.Cue
}

// Game holds all meter-game state
type Game struct {
	cfg simulation.PlatformConfig
	rng *rng.Roller

	state      State
	reason     string
	meters     Meters
	survival   float64
	eventScore float64
	score      int
	best       int

	cooldowns   [actionCount]float64
	active      []ActiveEvent
	spawnTimer  float64
	ticker      string
	tickerTimer float64

	effects []Effect
}

// New creates a game on the start screen. A nil roller seeds from the clock.
func New(cfg simulation.PlatformConfig, best int, r *rng.Roller) *Game {
	if r == nil {
		r = rng.NewSeeded(0)
	}
	if best < 0 {
		best = 0
	}
	g := &Game{cfg: cfg, rng: r, best: best}
	g.reset()
	g.state = StateStart
	return g
}

func (g *Game) reset() {
	g.reason = ""
	g.meters = Meters{
		Production: g.cfg.StartMeter,
		Safety:     g.cfg.StartMeter,
		Morale:     g.cfg.StartMeter,
	}
	g.survival = 0
	g.eventScore = 0
	g.score = 0
	g.cooldowns = [actionCount]float64{}
	g.active = g.active[:0]
	g.spawnTimer = g.cfg.FirstSpawn
	g.ticker = ""
	g.tickerTimer = 0
	g.effects = g.effects[:0]
}

// Start begins a fresh run. Only valid from the start or game over screens.
func (g *Game) Start() bool {
	if g.state != StateStart && g.state != StateGameOver {
		return false
	}
	g.reset()
	g.state = StateRunning
	return true
}

// Restart abandons the current run and starts a new one
func (g *Game) Restart() {
	g.reset()
	g.state = StateRunning
}

// BackToTitle abandons the current run
func (g *Game) BackToTitle() {
	g.reset()
	g.state = StateStart
}

// Pause freezes a running game
func (g *Game) Pause() bool {
	if g.state != StateRunning {
		return false
	}
	g.state = StatePaused
	return true
}

// Resume continues a paused game
func (g *Game) Resume() bool {
	if g.state != StatePaused {
		return false
	}
	g.state = StateRunning
	return true
}

// TogglePause pauses a running game or resumes a paused one
func (g *Game) TogglePause() bool {
	if g.state == StateRunning {
		return g.Pause()
	}
	return g.Resume()
}

// State returns the current run state
func (g *Game) State() State { return g.state }

// Reason returns which meter ended the last run
func (g *Game) Reason() string { return g.reason }

// Score returns the current run's score
func (g *Game) Score() int { return g.score }

// BestScore returns the best score seen, including the current run
func (g *Game) BestScore() int { return g.best }

// ResetBestScore forgets the best score
func (g *Game) ResetBestScore() { g.best = 0 }

// Meters returns the current meter values
func (g *Game) Meters() Meters { return g.meters }

// Survival returns the seconds survived this run
func (g *Game) Survival() float64 { return g.survival }

// Ticker returns the text currently on the ticker
func (g *Game) Ticker() string { return g.ticker }

// ActiveCount returns the number of events in effect
func (g *Game) ActiveCount() int { return len(g.active) }

// SpawnTimer returns the seconds until the next event
func (g *Game) SpawnTimer() float64 { return g.spawnTimer }

// Difficulty scales decay: 1 at the start, +1 every DifficultyRamp seconds
func (g *Game) Difficulty() float64 {
	if g.cfg.DifficultyRamp <= 0 {
		return 1
	}
	return 1 + g.survival/g.cfg.DifficultyRamp
}

// Cooldown returns the seconds left before a can be used again
func (g *Game) Cooldown(a Action) float64 {
	if !a.Valid() {
		return 0
	}
	return g.cooldowns[a]
}

// IsActive reports whether an event of kind k is in effect
func (g *Game) IsActive(k EventKind) bool {
	return slices.ContainsFunc(g.active, func(e ActiveEvent) bool { return e.Kind == k })
}

// DrainEffects returns and clears the queued side effects
func (g *Game) DrainEffects() []Effect {
	if len(g.effects) == 0 {
		return nil
	}
	out := slices.Clone(g.effects)
	g.effects = g.effects[:0]
	return out
}

func (g *Game) emit(e Effect) {
	g.effects = append(g.effects, e)
}

func (g *Game) post(text string) {
	g.ticker = text
	g.tickerTimer = g.cfg.TickerDuration
}

// Update advances a running game by dt seconds. It is a no-op in any other
// state. dt is clamped to [0, MaxDT].
func (g *Game) Update(dt float64) {
	if g.state != StateRunning {
		return
	}
	dt = geom.Clamp(dt, 0, g.cfg.MaxDT)

	g.survival += dt
	g.refreshScore()

	difficulty := g.Difficulty()
	decay := Meters{
		Production: -g.cfg.DecayProduction,
		Safety:     -g.cfg.DecaySafety,
		Morale:     -g.cfg.DecayMorale,
	}
	g.meters = g.meters.Add(decay.Scale(difficulty * dt))
	if g.checkEnd() {
		return
	}

	for i := range g.cooldowns {
		g.cooldowns[i] = geom.Approach(g.cooldowns[i], dt)
	}

	// A meter that hits zero ends the run before a spawn can refill it
	g.updateEvents(dt)
	if g.checkEnd() {
		return
	}

	g.spawnTimer -= dt
	if g.spawnTimer <= 0 {
		g.spawnEvent()
		g.spawnTimer = g.nextSpawnGap()
	}

	g.updateTicker(dt)
	g.checkEnd()
}

func (g *Game) refreshScore() {
	s := int(math.Floor(g.survival*g.cfg.ScorePerSecond + g.eventScore))
	if s > g.score {
		g.score = s
	}
	if g.score > g.best {
		g.best = g.score
	}
}

func (g *Game) updateEvents(dt float64) {
	kept := g.active[:0]
	for _, e := range g.active {
		spec := e.Kind.Spec()
		if !spec.Ongoing.IsZero() {
			g.meters = g.meters.Add(spec.Ongoing.Scale(dt))
		}
		e.Remaining -= dt
		if e.Remaining <= 0 {
			if spec.Clear.Valid() {
				g.post(fmt.Sprintf("%s passed on its own.", spec.Title))
			}
			continue
		}
		kept = append(kept, e)
	}
	g.active = kept
}

func (g *Game) nextSpawnGap() float64 {
	lo := g.cfg.SpawnMin.At(g.survival)
	hi := g.cfg.SpawnMax.At(g.survival)
	if hi < lo {
		hi = lo
	}
	return g.rng.Range(lo, hi)
}

// spawnEvent starts a random event that is not already active
func (g *Game) spawnEvent() {
	candidates := make([]EventKind, 0, eventCount)
	for k := EventKind(0); k < eventCount; k++ {
		if !g.IsActive(k) {
			candidates = append(candidates, k)
		}
	}
	if len(candidates) == 0 {
		return
	}
	g.startEvent(rng.Pick(g.rng, candidates))
}

func (g *Game) startEvent(k EventKind) {
	if g.IsActive(k) {
		return
	}
	spec := k.Spec()
	g.meters = g.meters.Add(spec.Immediate)
	g.active = append(g.active, ActiveEvent{Kind: k, Remaining: spec.Duration})
	g.post(spec.Text)
	if spec.Shake {
		g.emit(Effect{Kind: EffectShake})
	}
	if spec.Alarm {
		g.emit(Effect{Kind: EffectCue, Cue: audio.CueAlarm})
	}
}

func (g *Game) updateTicker(dt float64) {
	if g.tickerTimer > 0 {
		g.tickerTimer = geom.Approach(g.tickerTimer, dt)
		if g.tickerTimer > 0 {
			return
		}
	}
	if len(g.active) > 0 {
		g.ticker = g.active[0].Kind.Spec().Text
	} else {
		g.ticker = ""
	}
}

// checkEnd ends the run when any meter is empty and reports whether the
// game is over
func (g *Game) checkEnd() bool {
	if g.state != StateRunning {
		return g.state == StateGameOver
	}
	switch {
	case g.meters.Production <= 0:
		g.endRun(ReasonProduction)
	case g.meters.Safety <= 0:
		g.endRun(ReasonSafety)
	case g.meters.Morale <= 0:
		g.endRun(ReasonMorale)
	default:
		return false
	}
	return true
}

func (g *Game) endRun(reason string) {
	g.state = StateGameOver
	g.reason = reason
	g.emit(Effect{Kind: EffectCue, Cue: audio.CueGameOver})
}

// FailReason says why PerformAction was rejected
type FailReason int

const (
	FailNone FailReason = iota
	FailNotRunning
	FailUnknown
	FailCooling
)

func (r FailReason) String() string {
	switch r {
	case FailNotRunning:
		return "not running"
	case FailUnknown:
		return "unknown action"
	case FailCooling:
		return "cooling down"
	}
	return ""
}

// ActionResult reports the outcome of PerformAction
type ActionResult struct {
	OK           bool
	Reason       FailReason
	Resolved     []EventKind
	Bonus        int
	PlaySound    bool
	CooldownLeft float64
}

// PerformAction applies action a. It is rejected without side effects when
// the game is not running, a is unknown, or a is cooling down.
func (g *Game) PerformAction(a Action) ActionResult {
	if g.state != StateRunning {
		return ActionResult{Reason: FailNotRunning}
	}
	if !a.Valid() {
		return ActionResult{Reason: FailUnknown}
	}
	if left := g.cooldowns[a]; left > 0 {
		return ActionResult{Reason: FailCooling, CooldownLeft: left}
	}

	spec := a.Spec()
	g.meters = g.meters.Add(spec.Delta)

	res := ActionResult{OK: true, PlaySound: true}
	kept := g.active[:0]
	for _, e := range g.active {
		ev := e.Kind.Spec()
		if ev.Clear == a {
			res.Resolved = append(res.Resolved, e.Kind)
			res.Bonus += ev.Bonus
			continue
		}
		kept = append(kept, e)
	}
	g.active = kept

	if len(res.Resolved) > 0 {
		g.eventScore += float64(res.Bonus)
		g.post(fmt.Sprintf("%s cleared! +%d", res.Resolved[0].Spec().Title, res.Bonus))
	}

	g.cooldowns[a] = spec.Cooldown
	res.CooldownLeft = spec.Cooldown
	g.refreshScore()
	g.checkEnd()
	return res
}

// PerformKey is PerformAction for an action looked up by key
func (g *Game) PerformKey(key string) ActionResult {
	a, ok := ParseAction(key)
	if !ok {
		if g.state != StateRunning {
			return ActionResult{Reason: FailNotRunning}
		}
		return ActionResult{Reason: FailUnknown}
	}
	return g.PerformAction(a)
}
