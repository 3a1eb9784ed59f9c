// Package shmup simulates Deck Siege, a vertical shoot-'em-up: waves of
// enemies drift toward the deck line while the player's deck gun shoots them
// down. The simulator owns all gameplay state; a frame loop calls Update once
// per frame and hands Snapshot to the renderer.
package shmup

import (
	"image/color"
	"math"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/geom"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/simulation"
)

// State is the top-level run state
type State int

const (
	StateTitle State = iota
	StateRunning
	StatePaused
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameover"
	}
	return "unknown"
}

// GameOverReason records which end condition fired first
type GameOverReason int

const (
	ReasonNone GameOverReason = iota
	ReasonDeckBreached
	ReasonOutOfLives
)

func (r GameOverReason) String() string {
	switch r {
	case ReasonDeckBreached:
		return "The deck was breached"
	case ReasonOutOfLives:
		return "Out of lives"
	}
	return ""
}

// Input is the held state of the controls for one frame
type Input struct {
	Left, Right, Fire bool
}

// Game holds all shoot-'em-up state and logic
type Game struct {
	cfg   simulation.ShmupConfig
	audio audio.Sink
	rng   *rng.Roller

	state     State
	reason    GameOverReason
	score     int
	highScore int

	combo          int
	comboTimer     float64
	wave           int
	waveBonus      int
	waveClearDelay float64
	globalTime     float64
	cameraShake    float64
	bossWarning    float64

	player           Player
	boss             *Boss
	enemies          []Enemy
	projectiles      []Projectile
	enemyProjectiles []Projectile
	particles        []Particle
	powerups         []Powerup
}

// New creates a game on the title screen. A nil sink plays nothing and a nil
// roller seeds from the clock.
func New(cfg simulation.ShmupConfig, sink audio.Sink, highScore int, r *rng.Roller) *Game {
	if sink == nil {
		sink = audio.Nop{}
	}
	if r == nil {
		r = rng.NewSeeded(0)
	}
	if highScore < 0 {
		highScore = 0
	}
	g := &Game{
		cfg:       cfg,
		audio:     sink,
		rng:       r,
		highScore: highScore,
	}
	g.Reset()
	return g
}

// Reset discards the current run and returns to the title screen
func (g *Game) Reset() {
	g.state = StateTitle
	g.reason = ReasonNone
	g.score = 0
	g.combo = 0
	g.comboTimer = 0
	g.wave = 0
	g.waveBonus = 0
	g.waveClearDelay = 0
	g.globalTime = 0
	g.cameraShake = 0
	g.bossWarning = 0

	g.player = Player{
		X:         g.cfg.Width * 0.5,
		Y:         g.DeckLine() - 88,
		W:         78,
		H:         52,
		BaseSpeed: g.cfg.PlayerSpeed,
		Lives:     g.cfg.Lives,
	}

	g.boss = nil
	g.enemies = g.enemies[:0]
	g.projectiles = g.projectiles[:0]
	g.enemyProjectiles = g.enemyProjectiles[:0]
	g.particles = g.particles[:0]
	g.powerups = g.powerups[:0]
}

// StartRun begins a fresh run at wave 1. Only valid from the title or game
// over screens.
func (g *Game) StartRun() bool {
	if g.state != StateTitle && g.state != StateGameOver {
		return false
	}
	g.Reset()
	g.state = StateRunning
	g.startWave(1)
	return true
}

// Restart abandons the current run, whatever its state, and starts a new one
func (g *Game) Restart() {
	g.Reset()
	g.state = StateRunning
	g.startWave(1)
}

// BackToTitle abandons the current run
func (g *Game) BackToTitle() {
	g.Reset()
}

// Pause freezes a running game
func (g *Game) Pause() bool {
	if g.state != StateRunning {
		return false
	}
	g.state = StatePaused
	return true
}

// Resume continues a paused game exactly where it stopped
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

// Reason returns why the last run ended
func (g *Game) Reason() GameOverReason { return g.reason }

// Score returns the current run's score
func (g *Game) Score() int { return g.score }

// HighScore returns the best score seen, including the current run
func (g *Game) HighScore() int { return g.highScore }

// ResetHighScore forgets the best score
func (g *Game) ResetHighScore() { g.highScore = 0 }

// Wave returns the current wave number (0 before the first run)
func (g *Game) Wave() int { return g.wave }

// Lives returns the player's remaining lives
func (g *Game) Lives() int { return g.player.Lives }

// DeckLine returns the y coordinate enemies must not reach
func (g *Game) DeckLine() float64 {
	return g.cfg.Height * g.cfg.DeckRatio
}

// Dimensions returns the logical playfield size
func (g *Game) Dimensions() (width, height float64) {
	return g.cfg.Width, g.cfg.Height
}

// Multiplier is the combo score multiplier: 1 + floor(combo/5)
func (g *Game) Multiplier() int {
	return 1 + g.combo/5
}

func (g *Game) addScore(base int) {
	gain := int(math.Floor(float64(base) * float64(g.Multiplier())))
	g.score += gain
	if g.score > g.highScore {
		g.highScore = g.score
	}
}

func (g *Game) shake(amount float64) {
	g.cameraShake = math.Max(g.cameraShake, amount)
}

// endRun moves a running game to game over. The first reason sticks.
func (g *Game) endRun(reason GameOverReason) {
	if g.state != StateRunning {
		return
	}
	g.state = StateGameOver
	g.reason = reason
}

func (g *Game) spawnParticles(x, y float64, count int, clr color.RGBA, speed float64) {
	for i := 0; i < count; i++ {
		a := g.rng.Range(0, math.Pi*2)
		sp := g.rng.Range(speed*0.35, speed)
		g.particles = append(g.particles, Particle{
			X:     x,
			Y:     y,
			VX:    math.Cos(a) * sp,
			VY:    math.Sin(a) * sp,
			Life:  g.rng.Range(0.25, 0.7),
			R:     g.rng.Range(4, 10),
			Color: clr,
		})
	}
}

func (g *Game) spawnEnemyProjectile(x, y, vx, vy float64, kind ProjectileKind) {
	r := 9.0
	if kind == KindNote {
		r = 10
	}
	g.enemyProjectiles = append(g.enemyProjectiles, Projectile{X: x, Y: y, VX: vx, VY: vy, R: r, Life: 5, Kind: kind})
}

func (g *Game) firePlayerShot() {
	g.projectiles = append(g.projectiles, Projectile{
		X:    g.player.X,
		Y:    g.player.Y - 36,
		VY:   -g.cfg.ShotSpeed,
		R:    8,
		Life: 2.1,
		Kind: KindShot,
	})
	g.player.FireCooldown = g.cfg.FireCooldown
	g.audio.Play(audio.CueShoot)
}

func (g *Game) killEnemy(e *Enemy, byPlayer bool) {
	e.Dead = true
	big := e.Type == Jiggs
	count := 14
	if big {
		count = 24
	}
	g.spawnParticles(e.X, e.Y, count, e.Color, 420)
	g.audio.Play(audio.Explosion(big))

	if byPlayer {
		g.combo++
		g.comboTimer = g.cfg.ComboTimeout
		g.addScore(e.Points)
		if g.rng.Chance(g.cfg.PowerupDropRate) {
			g.powerups = append(g.powerups, Powerup{
				Kind: PowerupIntegrity,
				X:    e.X,
				Y:    e.Y,
				R:    20,
				VY:   105,
				Life: 9,
			})
		}
	}
	if big {
		g.shake(12)
	}
}

func (g *Game) hitPlayer() {
	g.player.Lives = geom.ClampInt(g.player.Lives-1, 0, g.cfg.MaxLives)
	g.combo = 0
	g.comboTimer = 0
	g.audio.Play(audio.CuePlayerHit)
	g.shake(8)
	if g.player.Lives <= 0 {
		g.endRun(ReasonOutOfLives)
	}
}
