package shmup

import (
	"image/color"
	"math"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/geom"
)

const (
	playerMargin   = 58
	slowFactor     = 0.55
	enemySwing     = 56
	bossMargin     = 130
	shotTrailLife  = 0.15
	enemyTrailLife = 0.18
	pickupRadius   = 28
	particleDrag   = 0.97
	particleFall   = 80
)

var (
	bossHitColor   = color.RGBA{0xff, 0xc8, 0x57, 0xff}
	bossDeathColor = color.RGBA{0xff, 0x8a, 0x3d, 0xff}
	sparkColor     = color.RGBA{0xf2, 0xf5, 0xf7, 0xff}
	pickupColor    = color.RGBA{0x1f, 0xa3, 0xa3, 0xff}
)

// Update advances a running game by dt seconds. It is a no-op in any other
// state. dt is clamped to [0, MaxDT].
func (g *Game) Update(dt float64, in Input) {
	if g.state != StateRunning {
		return
	}
	dt = geom.Clamp(dt, 0, g.cfg.MaxDT)

	g.globalTime += dt
	g.cameraShake = geom.Approach(g.cameraShake, dt*22)
	g.comboTimer = geom.Approach(g.comboTimer, dt)
	if g.comboTimer == 0 {
		g.combo = 0
	}

	g.updatePlayer(dt, in)
	g.updateEnemies(dt)
	g.updateBoss(dt)
	g.updateProjectiles(dt)
	g.updatePowerups(dt)
	g.updateParticles(dt)
	g.updateWaveProgress(dt)

	if g.score > g.highScore {
		g.highScore = g.score
	}
}

func (g *Game) updatePlayer(dt float64, in Input) {
	p := &g.player

	speedScale := 1.0
	if p.Slowed() {
		speedScale = slowFactor
	}
	reverse := 1.0
	if p.Reversed() {
		reverse = -1
	}
	dx := 0.0
	if in.Right {
		dx++
	}
	if in.Left {
		dx--
	}
	p.X += dx * reverse * p.BaseSpeed * speedScale * dt
	p.X = geom.Clamp(p.X, playerMargin, g.cfg.Width-playerMargin)

	p.FireCooldown = geom.Approach(p.FireCooldown, dt)
	p.SlowTimer = geom.Approach(p.SlowTimer, dt)
	p.ReversedTimer = geom.Approach(p.ReversedTimer, dt)

	if in.Fire {
		p.AutoFireTimer -= dt
		if p.AutoFireTimer <= 0 && p.FireCooldown <= 0 {
			g.firePlayerShot()
			p.AutoFireTimer = g.cfg.AutoFireInterval
		}
	} else {
		p.AutoFireTimer = 0
	}
}

func (g *Game) updateEnemies(dt float64) {
	if g.bossWarning > 0 {
		return
	}

	drift := 12 + float64(g.wave)*4
	t := g.globalTime
	deck := g.DeckLine()

	for i := range g.enemies {
		e := &g.enemies[i]
		if e.Dead {
			continue
		}
		e.Phase += dt * 1.4

		if e.Type == Screech {
			e.X += math.Sin(t*5+e.Phase) * (e.Speed * 0.55) * dt
		} else {
			e.X = e.OriginX + math.Sin(t*1.7+e.Phase)*enemySwing
		}

		e.Y += drift * dt
		if e.Type == Fogged {
			e.Alpha = 0.25 + (math.Sin(t*3.2+e.Phase)*0.5+0.5)*0.6
		}

		e.FireTimer -= dt
		if e.FireTimer <= 0 {
			switch e.Type {
			case Biscuit:
				g.spawnEnemyProjectile(e.X, e.Y+26, g.rng.Range(-60, 60), 280+float64(g.wave)*8, KindCrumb)
			case Gravy:
				g.spawnEnemyProjectile(e.X, e.Y+26, 0, 260+float64(g.wave)*10, KindGravy)
			}
			e.FireTimer = g.rng.Range(1.4, 3.5)
		}

		if e.Y+e.Radius >= deck {
			g.endRun(ReasonDeckBreached)
		}
	}

	g.compactEnemies()
}

func (g *Game) compactEnemies() {
	kept := g.enemies[:0]
	for _, e := range g.enemies {
		if !e.Dead {
			kept = append(kept, e)
		}
	}
	g.enemies = kept
}

func (g *Game) updateBoss(dt float64) {
	b := g.boss
	if b == nil || g.bossWarning > 0 {
		return
	}
	wave := float64(g.wave)

	b.Phase += dt * 1.4
	b.X += b.Dir * (190 + wave*12) * dt
	b.Y = 220 + math.Sin(b.Phase)*18

	if b.X < bossMargin || b.X > g.cfg.Width-bossMargin {
		b.Dir *= -1
	}

	b.ShootTimer -= dt
	if b.ShootTimer <= 0 {
		volley := 3 + g.wave/4
		for i := 0; i < volley; i++ {
			spread := (-float64(volley)/2 + float64(i) + 0.5) * 0.24
			g.spawnEnemyProjectile(b.X+spread*55, b.Y+40, spread*230, 300+wave*12, KindNote)
		}
		g.audio.Play(audio.CueBossNote)
		b.ShootTimer = math.Max(0.7, 1.35-wave*0.04)
	}

	b.ReversePulseTimer -= dt
	if b.ReversePulseTimer <= 0 {
		g.player.ReversedTimer = g.cfg.ReverseDuration
		b.ReversePulseTimer = g.rng.Range(4.8, 6.5)
	}
}

func advance(p *Projectile, dt, trailLife float64) {
	p.Life -= dt
	p.X += p.VX * dt
	p.Y += p.VY * dt
	p.Trail.Push(TrailPoint{X: p.X, Y: p.Y, Life: trailLife})
	p.Trail.Age(dt)
}

func (g *Game) updateProjectiles(dt float64) {
	for i := range g.projectiles {
		p := &g.projectiles[i]
		advance(p, dt, shotTrailLife)

		if g.boss != nil && g.bossWarning <= 0 && p.Life > 0 {
			box := geom.Box{X: g.boss.X, Y: g.boss.Y, W: g.boss.W, H: g.boss.H}
			if box.Contains(p.X, p.Y) {
				g.hitBoss(p)
			}
		}
		if p.Life <= 0 {
			continue
		}

		for j := range g.enemies {
			e := &g.enemies[j]
			if e.Dead {
				continue
			}
			if geom.CirclesOverlap(p.X, p.Y, e.X, e.Y, p.R+e.Radius*0.7) {
				e.HP--
				p.Life = 0
				g.audio.Play(audio.CueEnemyHit)
				if e.HP <= 0 {
					g.killEnemy(e, true)
				} else {
					g.spawnParticles(p.X, p.Y, 4, sparkColor, 180)
				}
				break
			}
		}
	}
	g.compactEnemies()

	player := geom.Box{X: g.player.X, Y: g.player.Y, W: g.player.W, H: g.player.H}
	for i := range g.enemyProjectiles {
		p := &g.enemyProjectiles[i]
		advance(p, dt, enemyTrailLife)

		if p.Life > 0 && player.Contains(p.X, p.Y) {
			p.Life = 0
			g.hitPlayer()
			if p.Kind == KindGravy {
				g.player.SlowTimer = g.cfg.SlowDuration
			}
		}
	}

	g.projectiles = filterProjectiles(g.projectiles, func(p *Projectile) bool {
		return p.Life > 0 && p.Y > -80
	})
	limit := g.cfg.Height + 80
	g.enemyProjectiles = filterProjectiles(g.enemyProjectiles, func(p *Projectile) bool {
		return p.Life > 0 && p.Y < limit
	})
}

func filterProjectiles(ps []Projectile, keep func(*Projectile) bool) []Projectile {
	kept := ps[:0]
	for i := range ps {
		if keep(&ps[i]) {
			kept = append(kept, ps[i])
		}
	}
	return kept
}

func (g *Game) hitBoss(p *Projectile) {
	b := g.boss
	b.HP--
	p.Life = 0
	g.audio.Play(audio.CueEnemyHit)
	g.spawnParticles(p.X, p.Y, 5, bossHitColor, 220)
	g.combo++
	g.comboTimer = 2
	g.addScore(42)

	if b.HP <= 0 {
		b.HP = 0
		g.spawnParticles(b.X, b.Y, 46, bossDeathColor, 520)
		g.audio.Play(audio.CueExplosionBig)
		g.cameraShake = 16
		g.waveBonus = g.cfg.BossBonusPerWave * g.wave
		g.addScore(g.waveBonus)
		g.boss = nil
		g.waveClearDelay = g.cfg.BossClearDelay
	}
}

func (g *Game) updatePowerups(dt float64) {
	kept := g.powerups[:0]
	limit := g.cfg.Height + 60
	for _, item := range g.powerups {
		item.Life -= dt
		item.Y += item.VY * dt
		if geom.CirclesOverlap(item.X, item.Y, g.player.X, g.player.Y, item.R+pickupRadius) {
			item.Life = 0
			g.player.Lives = geom.ClampInt(g.player.Lives+1, 0, g.cfg.MaxLives)
			g.audio.Play(audio.CueEnemyHit)
			g.spawnParticles(item.X, item.Y, 12, pickupColor, 260)
		}
		if item.Life > 0 && item.Y < limit {
			kept = append(kept, item)
		}
	}
	g.powerups = kept
}

func (g *Game) updateParticles(dt float64) {
	kept := g.particles[:0]
	for _, p := range g.particles {
		p.Age += dt
		p.X += p.VX * dt
		p.Y += p.VY * dt
		p.VX *= particleDrag
		p.VY *= particleDrag
		p.VY += particleFall * dt
		if p.Age < p.Life {
			kept = append(kept, p)
		}
	}
	g.particles = kept
}

func (g *Game) updateWaveProgress(dt float64) {
	if g.state != StateRunning {
		return
	}

	if g.bossWarning > 0 {
		g.bossWarning = math.Max(0, g.bossWarning-dt)
		return
	}

	if len(g.enemies) == 0 && g.boss == nil {
		g.waveClearDelay -= dt
		if g.waveClearDelay <= 0 {
			g.waveBonus = g.cfg.WaveBonusPerWave * g.wave
			g.addScore(g.waveBonus)
			g.startWave(g.wave + 1)
		}
	}
}
