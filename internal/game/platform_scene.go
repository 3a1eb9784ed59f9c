package game

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/placeholders"
	"chosenoffset.com/puffinarcade/internal/platform"
	"chosenoffset.com/puffinarcade/internal/render"
	"chosenoffset.com/puffinarcade/internal/simulation"
	"chosenoffset.com/puffinarcade/internal/storage"
	"chosenoffset.com/puffinarcade/internal/ui/hud"
)

// Logical screen of the meter game
const (
	platformWidth  = 320
	platformHeight = 180
	horizon        = 0.62 // Fraction of the height covered by sky

	shakeDuration = 0.35
	shakeAmount   = 1.25
)

var (
	skyBands = []color.RGBA{
		{0x2b, 0x3f, 0x55, 0xff},
		{0x2b, 0x3f, 0x55, 0xff},
		{0x3d, 0x56, 0x6e, 0xff},
		{0x3d, 0x56, 0x6e, 0xff},
		{0x56, 0x74, 0x8c, 0xff},
		{0x56, 0x74, 0x8c, 0xff},
		{0x7a, 0x9b, 0xb0, 0xff},
		{0x7a, 0x9b, 0xb0, 0xff},
	}
	fogColor   = color.NRGBA{231, 242, 248, 51}
	stormColor = color.NRGBA{185, 210, 225, 31}
	muted      = color.RGBA{170, 180, 190, 255}
	ready      = color.RGBA{235, 240, 245, 255}
)

// PlatformScene hosts Puffin Platform Panic.
type PlatformScene struct {
	sceneBase

	Game *platform.Game
	cfg  simulation.PlatformConfig

	fx          *rng.Roller
	shakeTimer  float64
	shakeX      float64
	shakeY      float64
	oceanOffset float64
	clock       float64
	ambient     bool
	lastState   platform.State

	sprites *sprites
}

// NewPlatformScene creates the scene on its start screen. store may be nil.
func NewPlatformScene(d Deps, cfg simulation.PlatformConfig, store *storage.Store, r *rng.Roller) *PlatformScene {
	base := newSceneBase(d, store)
	return &PlatformScene{
		sceneBase: base,
		Game:      platform.New(cfg, base.bestCache, r),
		cfg:       cfg,
		fx:        rng.NewSeeded(0),
	}
}

// Size returns the logical screen size.
func (p *PlatformScene) Size() (int, int) { return platformWidth, platformHeight }

// MaxDT returns the frame step cap.
func (p *PlatformScene) MaxDT() float64 { return p.cfg.MaxDT }

// Enter shows the start screen.
func (p *PlatformScene) Enter() {
	p.Game.BackToTitle()
	p.lastState = p.Game.State()
	p.shakeTimer = 0
}

// Leave abandons any run and silences the rig.
func (p *PlatformScene) Leave() {
	p.Game.BackToTitle()
	p.syncAmbience()
}

// Update maps input to simulator operations, steps the run and routes the
// simulator's effects to audio and the screen.
func (p *PlatformScene) Update(dt float64) bool {
	switch p.Game.State() {
	case platform.StateStart:
		if p.justPressed(render.KeyEscape) {
			return true
		}
		if p.justPressed(render.KeyEnter, render.KeySpace) {
			p.beginRun()
		} else if p.justPressed(render.KeyR) {
			p.Game.ResetBestScore()
			p.resetBest()
		}
		p.handleToggles()

	case platform.StateRunning:
		if p.justPressed(render.KeyP, render.KeyEscape) {
			p.play(audio.CueUI)
			p.Game.Pause()
			break
		}
		for i, k := range render.DigitKeys {
			if p.input.IsKeyJustPressed(k) {
				p.perform(platform.Action(i))
			}
		}
		p.Game.Update(dt)

	case platform.StatePaused:
		switch {
		case p.justPressed(render.KeyP, render.KeyEscape):
			p.play(audio.CueUI)
			p.Game.Resume()
		case p.justPressed(render.KeyEnter):
			p.beginRun()
		case p.justPressed(render.KeyT):
			p.play(audio.CueUI)
			p.Game.BackToTitle()
		}
		p.handleToggles()

	case platform.StateGameOver:
		switch {
		case p.justPressed(render.KeyEnter):
			p.beginRun()
		case p.justPressed(render.KeyT, render.KeyEscape):
			p.play(audio.CueUI)
			p.Game.BackToTitle()
		}
		p.handleToggles()
	}

	p.drainEffects()
	p.advanceVisuals(dt)
	p.syncAmbience()

	state := p.Game.State()
	p.syncBest(p.Game.BestScore())
	if state == platform.StateGameOver && p.lastState != platform.StateGameOver {
		log.Printf("Platform shift over after %.0fs with %d points: %s", p.Game.Survival(), p.Game.Score(), p.Game.Reason())
	}
	p.lastState = state
	return false
}

func (p *PlatformScene) beginRun() {
	p.startAudio()
	p.play(audio.CueUI)
	p.Game.Restart()
	p.shakeTimer = 0
}

func (p *PlatformScene) perform(a platform.Action) {
	res := p.Game.PerformAction(a)
	if res.OK && res.PlaySound {
		p.play(audio.CueButton)
	}
	if len(res.Resolved) > 0 {
		p.play(audio.CueUI)
	}
}

func (p *PlatformScene) drainEffects() {
	for _, e := range p.Game.DrainEffects() {
		switch e.Kind {
		case platform.EffectShake:
			p.shakeTimer = max(p.shakeTimer, shakeDuration)
		case platform.EffectCue:
			p.play(e.Cue)
		}
	}
}

// advanceVisuals runs the scene clock, ocean scroll and shake jitter.
// They only move while a run is live.
func (p *PlatformScene) advanceVisuals(dt float64) {
	if p.Game.State() != platform.StateRunning {
		return
	}
	p.clock += dt
	p.oceanOffset = math.Mod(p.oceanOffset+dt*15, 16)

	p.shakeX, p.shakeY = 0, 0
	if p.shakeTimer > 0 {
		p.shakeTimer = max(0, p.shakeTimer-dt)
		p.shakeX = math.Round(p.fx.Range(-shakeAmount, shakeAmount))
		p.shakeY = math.Round(p.fx.Range(-shakeAmount, shakeAmount))
	}
}

// syncAmbience keeps the rig hum playing exactly while a run is live.
func (p *PlatformScene) syncAmbience() {
	running := p.Game.State() == platform.StateRunning
	if running == p.ambient {
		return
	}
	p.ambient = running
	if running {
		p.startAmbience()
	} else {
		p.stopAmbience()
	}
}

// ShakeTimer returns the seconds of screen shake left.
func (p *PlatformScene) ShakeTimer() float64 { return p.shakeTimer }

// Draw renders the rig, the meters and any overlays.
func (p *PlatformScene) Draw(screen render.Image) {
	if p.sprites == nil {
		p.sprites = loadSprites(p.renderer)
	}
	canvas := p.frame(platformWidth, platformHeight)
	snap := p.Game.Snapshot()

	p.drawSky(canvas)
	p.drawOcean(canvas)
	p.drawRig(canvas, &snap)

	if snap.EventActive(platform.FogBank) {
		p.drawFog(canvas)
	}
	if snap.EventActive(platform.Storm) {
		p.drawStorm(canvas)
	}

	if snap.State != platform.StateStart {
		p.drawPanel(canvas, &snap)
	}
	p.drawOverlay(canvas, &snap)
	p.present(screen, p.clock)
}

func (p *PlatformScene) drawSky(dst render.Image) {
	dst.Fill(placeholders.Palette.Night)
	bandHeight := math.Floor(platformHeight * horizon / float64(len(skyBands)))
	for i, c := range skyBands {
		y := float64(i)*bandHeight + p.shakeY
		p.renderer.FillRect(dst, float32(p.shakeX), float32(y), platformWidth, float32(bandHeight+1), c)
	}
}

func (p *PlatformScene) drawOcean(dst render.Image) {
	yStart := math.Floor(platformHeight * horizon)
	p.renderer.FillRect(dst, 0, float32(yStart+p.shakeY), platformWidth, platformHeight, placeholders.Palette.Sea)

	tw, th := p.sprites.wave.Size()
	for y := yStart; y < platformHeight; y += float64(th) {
		for x := -float64(tw); x < platformWidth+float64(tw); x += float64(tw) {
			drawAt(dst, p.sprites.wave, math.Floor(x-p.oceanOffset)+p.shakeX, y+p.shakeY, 1)
		}
	}
}

func (p *PlatformScene) drawRig(dst render.Image, snap *platform.Snapshot) {
	ox, oy := float32(p.shakeX), float32(p.shakeY)
	steel, hull := placeholders.Palette.Steel, placeholders.Palette.Hull

	// Legs, deck, derrick
	for _, x := range []float32{118, 150, 182} {
		p.renderer.FillRect(dst, x+ox, 96+oy, 6, 52, hull)
	}
	p.renderer.FillRect(dst, 104+ox, 88+oy, 96, 10, steel)
	p.renderer.StrokeLine(dst, 140+ox, 88+oy, 152+ox, 40+oy, 2, steel)
	p.renderer.StrokeLine(dst, 164+ox, 88+oy, 152+ox, 40+oy, 2, steel)
	p.renderer.FillRect(dst, 110+ox, 76+oy, 20, 12, placeholders.Palette.Deck)

	if snap.EventActive(platform.PuffinInvasion) {
		for i := 0; i < 5; i++ {
			x := 108 + float64(i)*18 + math.Sin(p.clock*4+float64(i))*2
			drawAt(dst, p.sprites.puffin, x+p.shakeX, 76+p.shakeY, 1)
		}
	}
	if snap.EventActive(platform.Iceberg) {
		p.renderer.FillRect(dst, 250+ox, 108+oy, 34, 14, placeholders.Palette.Paper)
		p.renderer.FillRect(dst, 258+ox, 98+oy, 16, 10, placeholders.Palette.Paper)
	}
	if snap.EventActive(platform.PumpFailure) && math.Mod(p.clock, 0.5) < 0.25 {
		p.renderer.FillCircle(dst, 196+ox, 84+oy, 3, placeholders.Palette.Warning)
	}
}

func (p *PlatformScene) drawFog(dst render.Image) {
	step := int(p.clock * 20)
	for y := 0; y < platformHeight; y += 4 {
		for x := 0; x < platformWidth; x += 4 {
			if (x*13+y*7+step)%9 < 2 {
				p.renderer.FillRect(dst, float32(x), float32(y), 4, 4, fogColor)
			}
		}
	}
}

func (p *PlatformScene) drawStorm(dst render.Image) {
	for y := 0; y < platformHeight; y += 6 {
		ox := math.Mod(float64(y)*0.5+p.clock*70, 12)
		for x := -12; x < platformWidth+12; x += 12 {
			p.renderer.FillRect(dst, float32(float64(x)+ox), float32(y), 6, 1, stormColor)
		}
	}
}

func (p *PlatformScene) drawPanel(dst render.Image, snap *platform.Snapshot) {
	r := p.renderer
	r.DrawText(dst, fmt.Sprintf("SCORE %d  BEST %d", snap.Score, snap.BestScore), 4, 2, ready, 0.75)
	if snap.Ticker != "" {
		r.DrawText(dst, snap.Ticker, 4, 14, placeholders.Palette.Warning, 0.75)
	}

	for i, e := range snap.Events {
		r.DrawText(dst, fmt.Sprintf("%s %.0fs", e.Kind.Spec().Title, math.Ceil(e.Remaining)), 4, 30+i*10, muted, 0.6)
	}

	for i, a := range platform.Actions() {
		spec := a.Spec()
		text, clr := fmt.Sprintf("%c %s", spec.Hotkey, spec.Label), ready
		if left := snap.Cooldown(a); left > 0 {
			text, clr = fmt.Sprintf("%c %s %.1fs", spec.Hotkey, spec.Label, left), muted
		}
		r.DrawText(dst, text, 226, 30+i*12, clr, 0.6)
	}

	m := snap.Meters
	hud.MeterBar(r, dst, 8, 166, 96, 7, "PRODUCTION", m.Production, 0.5)
	hud.MeterBar(r, dst, 112, 166, 96, 7, "SAFETY", m.Safety, 0.5)
	hud.MeterBar(r, dst, 216, 166, 96, 7, "MORALE", m.Morale, 0.5)
}

func (p *PlatformScene) drawOverlay(dst render.Image, snap *platform.Snapshot) {
	switch snap.State {
	case platform.StateStart:
		hud.Overlay(p.renderer, dst, "PUFFIN PLATFORM PANIC", []string{
			"Keep the rig running.",
			fmt.Sprintf("Best %d", snap.BestScore),
			"ENTER start  1-6 actions  P pause",
			p.toggleHint() + "  R reset best",
		}, 0.6)
	case platform.StatePaused:
		hud.Overlay(p.renderer, dst, "PAUSED", []string{
			"P resume  ENTER restart  T title",
			p.toggleHint(),
		}, 0.6)
	case platform.StateGameOver:
		hud.Overlay(p.renderer, dst, "SHIFT OVER", []string{
			snap.Reason,
			fmt.Sprintf("Score %d  Survived %.0fs", snap.Score, snap.Survival),
			"ENTER restart  T title",
		}, 0.6)
	}
}

func (p *PlatformScene) toggleHint() string {
	return fmt.Sprintf("M sound %s  C crt %s", onOff(p.settings.Sound), onOff(p.settings.CRT))
}
