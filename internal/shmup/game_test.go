package shmup

import (
	"math"
	"reflect"
	"testing"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/simulation"
)

func newTestGame(t *testing.T) (*Game, *audio.Recorder) {
	t.Helper()
	rec := &audio.Recorder{}
	g := New(simulation.DefaultConfig().Shmup, rec, 0, rng.NewSeeded(42))
	return g, rec
}

func startedGame(t *testing.T) (*Game, *audio.Recorder) {
	t.Helper()
	g, rec := newTestGame(t)
	if !g.StartRun() {
		t.Fatalf("StartRun from title should succeed")
	}
	return g, rec
}

// still places an enemy that will not move or fire during a dt=0 frame
func still(typ EnemyType, x, y float64) Enemy {
	spec := typ.Spec()
	return Enemy{
		Type:      typ,
		X:         x,
		Y:         y,
		OriginX:   x,
		HP:        spec.HP,
		Points:    spec.Points,
		Speed:     spec.Speed,
		Radius:    spec.Radius,
		Color:     spec.Color,
		FireTimer: 10,
		Alpha:     1,
	}
}

func TestStateTransitions(t *testing.T) {
	g, _ := newTestGame(t)

	if g.State() != StateTitle {
		t.Fatalf("Expected title state, got %s", g.State())
	}
	if g.Pause() {
		t.Errorf("Pause on the title screen should fail")
	}
	if !g.StartRun() {
		t.Fatalf("StartRun should succeed from title")
	}
	if g.StartRun() {
		t.Errorf("StartRun should fail while running")
	}
	if !g.Pause() || g.State() != StatePaused {
		t.Errorf("Expected paused state, got %s", g.State())
	}
	if g.Pause() {
		t.Errorf("Pause while paused should fail")
	}
	if !g.TogglePause() || g.State() != StateRunning {
		t.Errorf("TogglePause should resume, got %s", g.State())
	}
	g.BackToTitle()
	if g.State() != StateTitle || g.Wave() != 0 {
		t.Errorf("BackToTitle should reset to the title, got %s wave %d", g.State(), g.Wave())
	}
}

func TestFirstWaveIsAllCod(t *testing.T) {
	g, _ := startedGame(t)

	if g.Wave() != 1 {
		t.Fatalf("Expected wave 1, got %d", g.Wave())
	}
	if len(g.enemies) != 12 {
		t.Fatalf("Expected 12 enemies in wave 1, got %d", len(g.enemies))
	}
	for i, e := range g.enemies {
		if e.Type != Cod {
			t.Errorf("Enemy %d: expected cod, got %s", i, e.Type)
		}
		if e.HP != 1 {
			t.Errorf("Enemy %d: expected hp 1, got %d", i, e.HP)
		}
	}
	if g.Lives() != 5 {
		t.Errorf("Expected 5 lives, got %d", g.Lives())
	}
}

func TestChooseEnemyNeverReturnsLockedType(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		r := rng.NewSeeded(seed)
		for wave := 1; wave <= 12; wave++ {
			for row := 0; row < 6; row++ {
				for col := 0; col < 10; col++ {
					typ := ChooseEnemy(wave, col, row, r)
					if !Unlocked(typ, wave) {
						t.Fatalf("seed %d wave %d cell (%d,%d): %s is locked", seed, wave, col, row, typ)
					}
				}
			}
		}
	}
}

func TestGridSize(t *testing.T) {
	tests := []struct {
		wave       int
		rows, cols int
	}{
		{1, 2, 6},
		{3, 3, 7},
		{10, 6, 10},
		{30, 6, 10},
	}
	for _, tt := range tests {
		rows, cols := GridSize(tt.wave)
		if rows != tt.rows || cols != tt.cols {
			t.Errorf("GridSize(%d) = %dx%d, want %dx%d", tt.wave, rows, cols, tt.rows, tt.cols)
		}
	}
}

func TestBossWaveWarningHoldsBoss(t *testing.T) {
	g, rec := startedGame(t)
	g.startWave(4)

	if !g.IsBossWave(4) || g.IsBossWave(3) {
		t.Fatalf("Expected wave 4 to be the only boss wave of the two")
	}
	if g.boss == nil {
		t.Fatalf("Expected a boss on wave 4")
	}
	if g.boss.HP != 86 || g.boss.MaxHP != 86 {
		t.Errorf("Expected boss hp 86, got %d/%d", g.boss.HP, g.boss.MaxHP)
	}
	if len(g.enemies) != 0 {
		t.Errorf("Boss waves have no grid, got %d enemies", len(g.enemies))
	}
	if rec.Count(audio.CueBossWarning) != 1 {
		t.Errorf("Expected one boss warning cue, got %d", rec.Count(audio.CueBossWarning))
	}

	startX := g.boss.X
	dt := 1.0 / 32
	for frame := 1; frame <= 80; frame++ {
		g.Update(dt, Input{})
		if g.boss.X != startX {
			t.Fatalf("Boss moved during the warning on frame %d", frame)
		}
	}
	if g.bossWarning != 0 {
		t.Fatalf("Expected warning to be over after 2.5s, got %v", g.bossWarning)
	}
	g.Update(dt, Input{})
	if g.boss.X == startX {
		t.Errorf("Boss should move once the warning is over")
	}
}

func TestKillingEnemyRaisesComboAndScore(t *testing.T) {
	g, rec := startedGame(t)
	g.enemies = []Enemy{still(Cod, 540, 600), still(Cod, 200, 300)}
	g.combo = 4
	g.comboTimer = 1
	g.projectiles = append(g.projectiles, Projectile{X: 540, Y: 600, R: 8, Life: 2, Kind: KindShot})

	g.Update(0, Input{})

	if g.combo != 5 {
		t.Errorf("Expected combo 5, got %d", g.combo)
	}
	if g.Multiplier() != 2 {
		t.Errorf("Expected multiplier 2, got %d", g.Multiplier())
	}
	if g.Score() != 220 {
		t.Errorf("Expected score 220, got %d", g.Score())
	}
	if g.HighScore() != 220 {
		t.Errorf("Expected high score to follow, got %d", g.HighScore())
	}
	if len(g.enemies) != 1 {
		t.Errorf("Expected the dead enemy to be removed, %d left", len(g.enemies))
	}
	if len(g.projectiles) != 0 {
		t.Errorf("Expected the shot to be spent, %d left", len(g.projectiles))
	}
	if rec.Count(audio.CueExplosion) != 1 {
		t.Errorf("Expected one explosion cue, got %d", rec.Count(audio.CueExplosion))
	}
}

func TestKilledEnemyLeavesSnapshotSameFrame(t *testing.T) {
	g, _ := startedGame(t)
	g.enemies = []Enemy{still(Cod, 540, 600)}
	g.projectiles = append(g.projectiles, Projectile{X: 540, Y: 600, R: 20, Life: 2, Kind: KindShot})

	g.Update(0.016, Input{})

	snap := g.Snapshot()
	for _, e := range snap.Enemies {
		if e.Dead {
			t.Fatalf("Dead enemy reached the snapshot: %+v", e)
		}
	}
	if len(snap.Enemies) != 0 {
		t.Fatalf("Expected no enemies after the kill, got %d", len(snap.Enemies))
	}
	if want := g.cfg.WaveClearDelay - 0.016; math.Abs(g.waveClearDelay-want) > 1e-9 {
		t.Errorf("Expected the clear countdown to start this frame, delay %.3f want %.3f", g.waveClearDelay, want)
	}
}

func TestNonLethalHitKeepsEnemy(t *testing.T) {
	g, _ := startedGame(t)
	g.enemies = []Enemy{still(Jiggs, 540, 600)}
	g.projectiles = append(g.projectiles, Projectile{X: 540, Y: 600, R: 8, Life: 2})

	g.Update(0, Input{})

	if len(g.enemies) != 1 || g.enemies[0].HP != 4 {
		t.Fatalf("Expected jiggs to survive with 4 hp, got %+v", g.enemies)
	}
	if g.Score() != 0 || g.combo != 0 {
		t.Errorf("Non-lethal hits do not score, got score %d combo %d", g.Score(), g.combo)
	}
}

func TestComboExpires(t *testing.T) {
	g, _ := startedGame(t)
	g.combo = 3
	g.comboTimer = 0.02

	g.Update(0.03, Input{})

	if g.combo != 0 {
		t.Errorf("Expected combo to reset, got %d", g.combo)
	}
}

func TestUpdateIgnoredUnlessRunning(t *testing.T) {
	g, _ := newTestGame(t)
	before := g.Snapshot()
	g.Update(0.03, Input{Fire: true, Right: true})
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Errorf("Update on the title screen changed state")
	}

	g.StartRun()
	g.Update(0.03, Input{Fire: true})
	g.Pause()
	paused := g.Snapshot()
	for i := 0; i < 10; i++ {
		g.Update(0.03, Input{Fire: true, Left: true})
	}
	if !reflect.DeepEqual(paused, g.Snapshot()) {
		t.Errorf("Update while paused changed state")
	}

	g.Resume()
	g.Update(0.03, Input{})
	if g.Snapshot().GlobalTime <= paused.GlobalTime {
		t.Errorf("Resumed game should continue from where it stopped")
	}
}

func TestDeltaTimeIsClamped(t *testing.T) {
	g, _ := startedGame(t)
	x := g.player.X

	g.Update(5, Input{Right: true})

	want := x + g.cfg.PlayerSpeed*g.cfg.MaxDT
	if math.Abs(g.player.X-want) > 1e-9 {
		t.Errorf("Expected x %.3f after a clamped step, got %.3f", want, g.player.X)
	}

	g.Update(-1, Input{Right: true})
	if math.Abs(g.player.X-want) > 1e-9 {
		t.Errorf("Negative dt should not move the player, got %.3f", g.player.X)
	}
}

func TestPlayerStaysInBounds(t *testing.T) {
	g, _ := startedGame(t)
	g.enemies = []Enemy{still(Cod, 540, 300)}
	for i := 0; i < 200; i++ {
		g.Update(0.03, Input{Left: true})
	}
	if g.player.X != 58 {
		t.Errorf("Expected player clamped at 58, got %.2f", g.player.X)
	}
}

func TestAutoFire(t *testing.T) {
	g, rec := startedGame(t)

	g.Update(0.03, Input{Fire: true})
	if len(g.projectiles) != 1 {
		t.Fatalf("Expected one shot on the first fire frame, got %d", len(g.projectiles))
	}
	if rec.Count(audio.CueShoot) != 1 {
		t.Errorf("Expected one shoot cue, got %d", rec.Count(audio.CueShoot))
	}

	g.Update(0.03, Input{Fire: true})
	if len(g.projectiles) != 1 {
		t.Errorf("Cooldown should block a second shot, got %d", len(g.projectiles))
	}

	g.Update(0.03, Input{})
	if g.player.AutoFireTimer != 0 {
		t.Errorf("Releasing fire should zero the auto-fire timer, got %v", g.player.AutoFireTimer)
	}
}

func TestLivesStayInRange(t *testing.T) {
	g, _ := startedGame(t)
	for i := 0; i < 10; i++ {
		g.hitPlayer()
	}
	if g.Lives() != 0 {
		t.Errorf("Expected lives floored at 0, got %d", g.Lives())
	}
	if g.State() != StateGameOver || g.Reason() != ReasonOutOfLives {
		t.Errorf("Expected out-of-lives game over, got %s (%s)", g.State(), g.Reason())
	}
}

func TestPowerupCappedAtMaxLives(t *testing.T) {
	g, _ := startedGame(t)
	g.enemies = []Enemy{still(Cod, 540, 300)}

	g.player.Lives = 6
	g.powerups = append(g.powerups, Powerup{X: g.player.X, Y: g.player.Y, R: 20, Life: 9})
	g.Update(0, Input{})
	if g.Lives() != 7 {
		t.Fatalf("Expected pickup to restore a life, got %d", g.Lives())
	}
	if len(g.powerups) != 0 {
		t.Errorf("Expected the pickup to be consumed")
	}

	g.powerups = append(g.powerups, Powerup{X: g.player.X, Y: g.player.Y, R: 20, Life: 9})
	g.Update(0, Input{})
	if g.Lives() != 7 {
		t.Errorf("Expected lives capped at 7, got %d", g.Lives())
	}
}

func TestGravySlowsPlayer(t *testing.T) {
	g, rec := startedGame(t)
	g.enemies = []Enemy{still(Cod, 540, 300)}
	g.enemyProjectiles = append(g.enemyProjectiles, Projectile{X: g.player.X, Y: g.player.Y, R: 9, Life: 5, Kind: KindGravy})

	g.Update(0, Input{})

	if g.Lives() != 4 {
		t.Errorf("Expected a lost life, got %d", g.Lives())
	}
	if g.player.SlowTimer != g.cfg.SlowDuration {
		t.Errorf("Expected slow timer %.2f, got %.2f", g.cfg.SlowDuration, g.player.SlowTimer)
	}
	if rec.Count(audio.CuePlayerHit) != 1 {
		t.Errorf("Expected a player-hit cue")
	}

	x := g.player.X
	g.Update(0.03, Input{Right: true})
	want := x + g.cfg.PlayerSpeed*0.55*0.03
	if math.Abs(g.player.X-want) > 1e-9 {
		t.Errorf("Expected slowed move to %.3f, got %.3f", want, g.player.X)
	}
}

func TestReversedControls(t *testing.T) {
	g, _ := startedGame(t)
	g.enemies = []Enemy{still(Cod, 540, 300)}
	g.player.ReversedTimer = 1
	x := g.player.X

	g.Update(0.03, Input{Right: true})

	if g.player.X >= x {
		t.Errorf("Reversed controls should move left, went from %.2f to %.2f", x, g.player.X)
	}
}

func TestDeckBreachTakesPrecedence(t *testing.T) {
	g, _ := startedGame(t)
	g.player.Lives = 1
	g.enemies = []Enemy{still(Cod, 540, g.DeckLine())}
	g.enemyProjectiles = append(g.enemyProjectiles, Projectile{X: g.player.X, Y: g.player.Y, R: 9, Life: 5, Kind: KindCrumb})

	g.Update(0, Input{})

	if g.State() != StateGameOver {
		t.Fatalf("Expected game over, got %s", g.State())
	}
	if g.Reason() != ReasonDeckBreached {
		t.Errorf("Expected deck breach to win, got %q", g.Reason())
	}
	if g.Lives() != 0 {
		t.Errorf("The rest of the frame should still run, lives %d", g.Lives())
	}
}

func TestWaveClearAwardsBonus(t *testing.T) {
	g, _ := startedGame(t)
	g.enemies = g.enemies[:0]

	for i := 0; i < 100 && g.Wave() == 1; i++ {
		g.Update(0.03, Input{})
	}

	if g.Wave() != 2 {
		t.Fatalf("Expected wave 2, got %d", g.Wave())
	}
	if g.Score() != 180 {
		t.Errorf("Expected wave bonus 180, got %d", g.Score())
	}
	if len(g.enemies) != 12 {
		t.Errorf("Expected a fresh grid of 12, got %d", len(g.enemies))
	}
}

func TestBossDeath(t *testing.T) {
	g, rec := startedGame(t)
	g.startWave(4)
	g.bossWarning = 0
	g.boss.HP = 1
	g.projectiles = append(g.projectiles, Projectile{X: g.boss.X, Y: 220, R: 8, Life: 2})

	g.Update(0, Input{})

	if g.boss != nil {
		t.Fatalf("Expected the boss to be destroyed")
	}
	if g.Score() != 42+2200 {
		t.Errorf("Expected score %d, got %d", 42+2200, g.Score())
	}
	if g.waveClearDelay != g.cfg.BossClearDelay {
		t.Errorf("Expected clear delay %.1f, got %.2f", g.cfg.BossClearDelay, g.waveClearDelay)
	}
	if rec.Count(audio.CueExplosionBig) != 1 {
		t.Errorf("Expected a big explosion cue")
	}
	if rec.Count(audio.CueBossNote) != 1 {
		t.Errorf("Expected the opening boss volley")
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	g, _ := startedGame(t)
	g.startWave(4)

	s := g.Snapshot()
	s.Boss.X = -1
	s.Player.Lives = 99
	if g.boss.X == -1 || g.Lives() == 99 {
		t.Errorf("Mutating a snapshot leaked into the game")
	}

	g.startWave(1)
	s = g.Snapshot()
	s.Enemies[0].X = -1
	if g.enemies[0].X == -1 {
		t.Errorf("Snapshot shares the enemy slice")
	}
}

func TestTrailKeepsNewestPoints(t *testing.T) {
	var tr Trail
	for i := 0; i < 8; i++ {
		tr.Push(TrailPoint{X: float64(i), Life: 1})
	}
	if tr.Len() != MaxTrail {
		t.Fatalf("Expected %d points, got %d", MaxTrail, tr.Len())
	}
	if tr.Points()[0].X != 3 {
		t.Errorf("Expected oldest point 3, got %.0f", tr.Points()[0].X)
	}

	tr.Age(0.5)
	if tr.Len() != MaxTrail {
		t.Errorf("Points with life left should stay, got %d", tr.Len())
	}
	tr.Age(0.6)
	if tr.Len() != 0 {
		t.Errorf("Expected every point to expire, got %d", tr.Len())
	}
}
