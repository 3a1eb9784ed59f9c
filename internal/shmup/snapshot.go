package shmup

import "slices"

// Snapshot is a point-in-time copy of everything the renderer needs. It
// shares no memory with the Game, so mutating it has no effect.
type Snapshot struct {
	State      State
	Reason     GameOverReason
	Score      int
	HighScore  int
	Combo      int
	Multiplier int
	Wave       int
	WaveBonus  int
	Lives      int

	GlobalTime  float64
	CameraShake float64
	BossWarning float64
	DeckLine    float64
	Width       float64
	Height      float64

	Player           Player
	Boss             *Boss
	Enemies          []Enemy
	Projectiles      []Projectile
	EnemyProjectiles []Projectile
	Particles        []Particle
	Powerups         []Powerup
}

// BossWarningActive reports whether the boss banner should be shown
func (s *Snapshot) BossWarningActive() bool {
	return s.BossWarning > 0
}

// Snapshot copies the current state
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		State:            g.state,
		Reason:           g.reason,
		Score:            g.score,
		HighScore:        g.highScore,
		Combo:            g.combo,
		Multiplier:       g.Multiplier(),
		Wave:             g.wave,
		WaveBonus:        g.waveBonus,
		Lives:            g.player.Lives,
		GlobalTime:       g.globalTime,
		CameraShake:      g.cameraShake,
		BossWarning:      g.bossWarning,
		DeckLine:         g.DeckLine(),
		Width:            g.cfg.Width,
		Height:           g.cfg.Height,
		Player:           g.player,
		Enemies:          slices.Clone(g.enemies),
		Projectiles:      slices.Clone(g.projectiles),
		EnemyProjectiles: slices.Clone(g.enemyProjectiles),
		Particles:        slices.Clone(g.particles),
		Powerups:         slices.Clone(g.powerups),
	}
	if g.boss != nil {
		b := *g.boss
		s.Boss = &b
	}
	return s
}
