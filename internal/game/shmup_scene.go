package game

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/placeholders"
	"chosenoffset.com/puffinarcade/internal/render"
	"chosenoffset.com/puffinarcade/internal/shmup"
	"chosenoffset.com/puffinarcade/internal/simulation"
	"chosenoffset.com/puffinarcade/internal/storage"
	"chosenoffset.com/puffinarcade/internal/ui/hud"
)

var (
	shotColor  = color.RGBA{255, 240, 170, 255}
	crumbColor = color.RGBA{214, 186, 130, 255}
	gravyColor = color.RGBA{142, 110, 73, 255}
	noteColor  = color.RGBA{180, 120, 255, 255}
	hpBack     = color.RGBA{60, 20, 20, 255}
	hpFill     = color.RGBA{220, 60, 60, 255}
)

// ShmupScene hosts Deck Siege.
type ShmupScene struct {
	sceneBase

	Game *shmup.Game
	cfg  simulation.ShmupConfig

	controls  shmup.Input
	lastState shmup.State

	hud     *hud.HUD
	sprites *sprites
}

// NewShmupScene creates the scene on its title screen. store may be nil.
func NewShmupScene(d Deps, cfg simulation.ShmupConfig, store *storage.Store, r *rng.Roller) *ShmupScene {
	base := newSceneBase(d, store)
	var sink audio.Sink = audio.Nop{}
	if d.Audio != nil {
		sink = d.Audio
	}
	s := &ShmupScene{
		sceneBase: base,
		Game:      shmup.New(cfg, sink, base.bestCache, r),
		cfg:       cfg,
	}
	s.hud = hud.New(hud.DefaultConfig(), d.Renderer, int(cfg.Width), int(cfg.Height))
	s.hud.SetLines(hud.ShmupLines(s.Game.Snapshot()))
	return s
}

// Size returns the playfield size.
func (s *ShmupScene) Size() (int, int) { return int(s.cfg.Width), int(s.cfg.Height) }

// MaxDT returns the frame step cap.
func (s *ShmupScene) MaxDT() float64 { return s.cfg.MaxDT }

// Enter shows the title screen.
func (s *ShmupScene) Enter() {
	s.Game.BackToTitle()
	s.lastState = s.Game.State()
	s.controls = shmup.Input{}
}

// Leave abandons any run in progress.
func (s *ShmupScene) Leave() {
	s.Game.BackToTitle()
	s.controls = shmup.Input{}
}

// Update maps input to simulator operations and steps the run.
func (s *ShmupScene) Update(dt float64) bool {
	switch s.Game.State() {
	case shmup.StateTitle:
		if s.justPressed(render.KeyEscape) {
			return true
		}
		if s.justPressed(render.KeyEnter, render.KeySpace) {
			s.beginRun()
		} else if s.justPressed(render.KeyR) {
			s.resetHighScore()
		}
		s.handleToggles()

	case shmup.StateRunning:
		if s.justPressed(render.KeyP, render.KeyEscape) {
			s.play(audio.CueUI)
			s.Game.TogglePause()
			break
		}
		s.controls = shmup.Input{
			Left:  s.held(render.KeyLeft, render.KeyA),
			Right: s.held(render.KeyRight, render.KeyD),
			Fire:  s.held(render.KeySpace),
		}
		s.Game.Update(dt, s.controls)

	case shmup.StatePaused:
		switch {
		case s.justPressed(render.KeyP, render.KeyEscape):
			s.play(audio.CueUI)
			s.Game.Resume()
		case s.justPressed(render.KeyEnter):
			s.beginRun()
		case s.justPressed(render.KeyT):
			s.play(audio.CueUI)
			s.Game.BackToTitle()
		case s.justPressed(render.KeyR):
			s.resetHighScore()
		}
		s.handleToggles()

	case shmup.StateGameOver:
		switch {
		case s.justPressed(render.KeyEnter):
			s.beginRun()
		case s.justPressed(render.KeyT, render.KeyEscape):
			s.play(audio.CueUI)
			s.Game.BackToTitle()
		}
		s.handleToggles()
	}

	snap := s.Game.Snapshot()
	s.syncBest(snap.HighScore)
	if snap.State == shmup.StateGameOver {
		s.controls = shmup.Input{}
		if s.lastState != shmup.StateGameOver {
			s.play(audio.CueGameOver)
			log.Printf("Deck Siege over on wave %d with %d points: %s", max(1, snap.Wave), snap.Score, snap.Reason)
		}
	}
	s.lastState = snap.State
	s.hud.SetLines(hud.ShmupLines(snap))
	return false
}

func (s *ShmupScene) beginRun() {
	s.startAudio()
	s.play(audio.CueUI)
	s.Game.Restart()
	s.controls = shmup.Input{}
}

func (s *ShmupScene) resetHighScore() {
	s.Game.ResetHighScore()
	s.resetBest()
}

// Controls returns the input the last running frame was stepped with.
func (s *ShmupScene) Controls() shmup.Input { return s.controls }

// Draw renders the snapshot with camera shake, then the HUD and overlays.
func (s *ShmupScene) Draw(screen render.Image) {
	if s.sprites == nil {
		s.sprites = loadSprites(s.renderer)
	}
	w, h := s.Size()
	canvas := s.frame(w, h)
	snap := s.Game.Snapshot()

	ox, oy := shakeOffset(snap.CameraShake, snap.GlobalTime)
	s.drawBackdrop(canvas, &snap, ox, oy)
	s.drawEntities(canvas, &snap, ox, oy)

	if snap.State != shmup.StateTitle {
		s.hud.Draw(canvas)
	}
	s.drawOverlay(canvas, &snap)
	s.present(screen, snap.GlobalTime)
}

// shakeOffset jitters the playfield by up to amount units.
func shakeOffset(amount, t float64) (float64, float64) {
	if amount <= 0 {
		return 0, 0
	}
	return math.Sin(t*91) * amount, math.Cos(t*77) * amount
}

func (s *ShmupScene) drawBackdrop(dst render.Image, snap *shmup.Snapshot, ox, oy float64) {
	dst.Fill(placeholders.Palette.Night)
	deck := float32(snap.DeckLine + oy)
	s.renderer.FillRect(dst, 0, deck, float32(snap.Width), float32(snap.Height)-deck, placeholders.Palette.Hull)
	s.renderer.StrokeLine(dst, 0, deck, float32(snap.Width), deck, 4, placeholders.Palette.Deck)

	// Drifting swell lines above the deck
	for i := 0; i < 6; i++ {
		y := math.Mod(snap.GlobalTime*40+float64(i)*snap.DeckLine/6, snap.DeckLine)
		s.renderer.StrokeLine(dst, 0, float32(y+oy), float32(snap.Width), float32(y+oy), 1, fade(placeholders.Palette.Sea, 0.6))
	}
}

func (s *ShmupScene) drawEntities(dst render.Image, snap *shmup.Snapshot, ox, oy float64) {
	for _, pu := range snap.Powerups {
		drawCentered(dst, s.sprites.powerup, pu.X+ox, pu.Y+oy, 1)
	}

	for _, e := range snap.Enemies {
		drawCentered(dst, s.sprites.enemy(int(e.Type)), e.X+ox, e.Y+oy, e.Alpha)
	}

	if b := snap.Boss; b != nil {
		drawCentered(dst, s.sprites.boss, b.X+ox, b.Y+oy, 1)
		barW := float32(b.W)
		x, y := float32(b.X-b.W/2+ox), float32(b.Y-b.H/2-24+oy)
		s.renderer.FillRect(dst, x, y, barW, 10, hpBack)
		if b.MaxHP > 0 {
			s.renderer.FillRect(dst, x, y, barW*float32(b.HP)/float32(b.MaxHP), 10, hpFill)
		}
	}

	s.drawProjectiles(dst, snap.Projectiles, ox, oy)
	s.drawProjectiles(dst, snap.EnemyProjectiles, ox, oy)

	for _, p := range snap.Particles {
		a := 1 - p.Age/p.Life
		s.renderer.FillCircle(dst, float32(p.X+ox), float32(p.Y+oy), float32(p.R), fade(p.Color, a))
	}

	if snap.State != shmup.StateTitle {
		pl := snap.Player
		drawCentered(dst, s.sprites.player, pl.X+ox, pl.Y+oy, 1)
		if pl.Slowed() {
			s.renderer.StrokeCircle(dst, float32(pl.X+ox), float32(pl.Y+oy), float32(pl.W*0.7), 3, gravyColor)
		}
		if pl.Reversed() {
			s.renderer.StrokeCircle(dst, float32(pl.X+ox), float32(pl.Y+oy), float32(pl.W*0.8), 3, noteColor)
		}
	}
}

func projectileColor(k shmup.ProjectileKind) color.RGBA {
	switch k {
	case shmup.KindCrumb:
		return crumbColor
	case shmup.KindGravy:
		return gravyColor
	case shmup.KindNote:
		return noteColor
	}
	return shotColor
}

func (s *ShmupScene) drawProjectiles(dst render.Image, ps []shmup.Projectile, ox, oy float64) {
	for _, p := range ps {
		clr := projectileColor(p.Kind)
		for i, tp := range p.Trail.Points() {
			a := 0.5 * float64(i+1) / float64(p.Trail.Len()+1)
			s.renderer.FillCircle(dst, float32(tp.X+ox), float32(tp.Y+oy), float32(p.R*0.6), fade(clr, a))
		}
		s.renderer.FillCircle(dst, float32(p.X+ox), float32(p.Y+oy), float32(p.R), clr)
	}
}

func (s *ShmupScene) drawOverlay(dst render.Image, snap *shmup.Snapshot) {
	w := int(snap.Width)
	switch snap.State {
	case shmup.StateTitle:
		hud.Overlay(s.renderer, dst, "DECK SIEGE", []string{
			"Hold the deck against the galley.",
			fmt.Sprintf("High score %d", snap.HighScore),
			"",
			"ENTER to start   ESC for menu",
			"ARROWS move   SPACE fire   P pause",
			s.toggleHint(),
		}, 3)
	case shmup.StateRunning:
		if snap.BossWarningActive() {
			hud.Banner(s.renderer, dst, "BOSS INCOMING", w, int(snap.Height*0.3), placeholders.Palette.Warning, 6)
		}
	case shmup.StatePaused:
		hud.Overlay(s.renderer, dst, "PAUSED", []string{
			"P to resume   ENTER to restart   T for title",
			s.toggleHint(),
		}, 3)
	case shmup.StateGameOver:
		hud.Overlay(s.renderer, dst, "GAME OVER", []string{
			snap.Reason.String(),
			fmt.Sprintf("Final Score: %d  Wave %d", snap.Score, max(1, snap.Wave)),
			"ENTER to restart   T for title",
		}, 3)
	}
}

func (s *ShmupScene) toggleHint() string {
	return fmt.Sprintf("M sound %s   C crt %s   R reset high score", onOff(s.settings.Sound), onOff(s.settings.CRT))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
