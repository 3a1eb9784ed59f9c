package shmup

import (
	"math"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/geom"
)

const (
	gridSpacingX = 95
	gridSpacingY = 90
	gridTop      = 150
)

// IsBossWave reports whether wave n is a boss wave
func (g *Game) IsBossWave(n int) bool {
	return n > 0 && n%g.cfg.BossEvery == 0
}

// BossHP is the hit points of the boss on wave n
func BossHP(n int) int {
	return 42 + 11*n
}

// GridSize returns the rows and columns of a regular wave
func GridSize(n int) (rows, cols int) {
	rows = geom.ClampInt(2+int(math.Floor(float64(n)*0.45)), 2, 6)
	cols = geom.ClampInt(6+int(math.Floor(float64(n)*0.4)), 6, 10)
	return rows, cols
}

func (g *Game) startWave(n int) {
	g.wave = n
	g.waveBonus = 0
	g.enemies = g.enemies[:0]
	g.enemyProjectiles = g.enemyProjectiles[:0]
	g.powerups = g.powerups[:0]

	if g.IsBossWave(n) {
		g.bossWarning = g.cfg.BossWarning
		g.audio.Play(audio.CueBossWarning)
		g.cameraShake = 14
		hp := BossHP(n)
		g.boss = &Boss{
			X:                 g.cfg.Width * 0.5,
			Y:                 230,
			W:                 220,
			H:                 120,
			HP:                hp,
			MaxHP:             hp,
			Dir:               1,
			ReversePulseTimer: 2.8,
		}
		return
	}

	g.boss = nil
	g.waveClearDelay = g.cfg.WaveClearDelay

	rows, cols := GridSize(n)
	startX := g.cfg.Width*0.5 - float64(cols-1)*gridSpacingX/2
	bonusHP := int(math.Floor(float64(n) * 0.15))

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			t := ChooseEnemy(n, col, row, g.rng)
			spec := t.Spec()
			x := startX + float64(col)*gridSpacingX
			g.enemies = append(g.enemies, Enemy{
				Type:      t,
				X:         x,
				Y:         gridTop + float64(row)*gridSpacingY,
				OriginX:   x,
				HP:        spec.HP + bonusHP,
				Points:    spec.Points,
				Speed:     spec.Speed + float64(n)*4,
				Radius:    spec.Radius,
				Color:     spec.Color,
				Phase:     g.rng.Range(0, math.Pi*2),
				FireTimer: g.rng.Range(0.4, 3.2),
				Alpha:     1,
			})
		}
	}
}
