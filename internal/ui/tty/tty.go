// Package tty runs Puffin Platform Panic in a terminal. Meters are drawn as
// bars, events and cooldowns as text rows, and the 1-6 keys drive the crew.
// One goroutine owns the game: it selects over terminal events and a frame
// ticker, so the simulator is never touched concurrently.
package tty

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/clock"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/platform"
	"chosenoffset.com/puffinarcade/internal/simulation"
	"chosenoffset.com/puffinarcade/internal/storage"
	"chosenoffset.com/puffinarcade/internal/ui/hud"
	"github.com/gdamore/tcell/v2"
)

const (
	frameInterval = time.Second / 30
	flashDuration = 0.35
	barWidth      = 30
)

// Audio is the sound surface the terminal frontend drives
type Audio interface {
	audio.Sink
	Init() error
	SetEnabled(enabled bool)
	StartAmbience()
	StopAmbience()
}

// Options configure an App
type Options struct {
	Config simulation.PlatformConfig
	Store  *storage.Store // nil disables persistence
	Audio  Audio          // nil keeps the game silent
	Sound  *bool          // forces the sound setting when non-nil
	Roller *rng.Roller
}

// App is the terminal frontend
type App struct {
	screen tcell.Screen
	game   *platform.Game
	cfg    simulation.PlatformConfig
	store  *storage.Store
	audio  Audio

	settings  storage.Settings
	bestCache int
	audioInit bool
	ambient   bool
	lastState platform.State
	flash     float64
	clock     clock.Frame
}

// New creates an App drawing to screen. The screen must already be
// initialized; the caller finalizes it.
func New(screen tcell.Screen, opts Options) *App {
	settings := storage.Defaults().Settings
	best := 0
	if opts.Store != nil {
		settings = opts.Store.Settings()
		best = opts.Store.BestScore()
	}
	if opts.Sound != nil {
		settings.Sound = *opts.Sound
	}

	a := &App{
		screen:    screen,
		game:      platform.New(opts.Config, best, opts.Roller),
		cfg:       opts.Config,
		store:     opts.Store,
		audio:     opts.Audio,
		settings:  settings,
		bestCache: best,
		clock:     clock.Frame{Max: opts.Config.MaxDT},
	}
	a.lastState = a.game.State()
	if a.audio != nil {
		a.audio.SetEnabled(settings.Sound)
	}
	return a
}

// Game exposes the simulator
func (a *App) Game() *platform.Game { return a.game }

// Flashing reports whether the alarm border is lit
func (a *App) Flashing() bool { return a.flash > 0 }

type commandKind int

const (
	cmdNone commandKind = iota
	cmdQuit
	cmdConfirm
	cmdPause
	cmdTitle
	cmdResetBest
	cmdSound
	cmdAction
)

type command struct {
	kind   commandKind
	action platform.Action
}

// commandFor maps a key press to a command
func commandFor(ev *tcell.EventKey) command {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return command{kind: cmdQuit}
	case tcell.KeyEnter:
		return command{kind: cmdConfirm}
	case tcell.KeyEscape:
		return command{kind: cmdPause}
	case tcell.KeyRune:
	default:
		return command{}
	}

	r := unicode.ToLower(ev.Rune())
	if act, ok := platform.ActionForHotkey(r); ok {
		return command{kind: cmdAction, action: act}
	}
	switch r {
	case 'q':
		return command{kind: cmdQuit}
	case ' ':
		return command{kind: cmdConfirm}
	case 'p':
		return command{kind: cmdPause}
	case 't':
		return command{kind: cmdTitle}
	case 'r':
		return command{kind: cmdResetBest}
	case 'm':
		return command{kind: cmdSound}
	}
	return command{}
}

// HandleEvent applies one terminal event. It returns false when the player
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.apply(commandFor(ev))
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) apply(c command) bool {
	switch c.kind {
	case cmdQuit:
		return false
	case cmdSound:
		a.toggleSound()
		return true
	}

	switch a.game.State() {
	case platform.StateStart:
		switch c.kind {
		case cmdConfirm:
			a.startAudio()
			a.play(audio.CueUI)
			a.game.Start()
		case cmdResetBest:
			a.resetBest()
		case cmdPause:
			return false
		}
	case platform.StateRunning:
		switch c.kind {
		case cmdPause:
			a.play(audio.CueUI)
			a.game.Pause()
		case cmdAction:
			res := a.game.PerformAction(c.action)
			if res.OK && res.PlaySound {
				a.play(audio.CueButton)
			}
			if len(res.Resolved) > 0 {
				a.play(audio.CueUI)
			}
		}
	case platform.StatePaused:
		switch c.kind {
		case cmdPause:
			a.play(audio.CueUI)
			a.game.Resume()
		case cmdConfirm:
			a.play(audio.CueUI)
			a.game.Restart()
		case cmdTitle:
			a.game.BackToTitle()
		case cmdResetBest:
			a.resetBest()
		}
	case platform.StateGameOver:
		switch c.kind {
		case cmdConfirm:
			a.startAudio()
			a.play(audio.CueUI)
			a.game.Restart()
		case cmdTitle, cmdPause:
			a.game.BackToTitle()
		}
	}
	a.sync()
	return true
}

// Step advances the game by dt seconds and applies its queued effects
func (a *App) Step(dt float64) {
	a.game.Update(dt)
	for _, e := range a.game.DrainEffects() {
		switch e.Kind {
		case platform.EffectShake:
			a.flash = max(a.flash, flashDuration)
		case platform.EffectCue:
			a.play(e.Cue)
		}
	}
	if a.flash > 0 {
		a.flash = max(0, a.flash-dt)
	}
	a.sync()
}

func (a *App) sync() {
	running := a.game.State() == platform.StateRunning
	if running != a.ambient {
		a.ambient = running
		if a.audio != nil {
			if running {
				a.audio.StartAmbience()
			} else {
				a.audio.StopAmbience()
			}
		}
	}

	if best := a.game.BestScore(); best != a.bestCache {
		a.bestCache = best
		if a.store != nil {
			if err := a.store.SetBestScore(best); err != nil {
				log.Printf("Failed to save best score: %v", err)
			}
		}
	}

	state := a.game.State()
	if state == platform.StateGameOver && a.lastState != platform.StateGameOver {
		log.Printf("Shift over after %.0fs with %d points: %s", a.game.Survival(), a.game.Score(), a.game.Reason())
	}
	a.lastState = state
}

func (a *App) startAudio() {
	if a.audio == nil {
		return
	}
	if !a.audioInit {
		a.audioInit = true
		if err := a.audio.Init(); err != nil {
			log.Printf("Audio unavailable, continuing silently: %v", err)
		}
	}
	a.audio.SetEnabled(a.settings.Sound)
}

func (a *App) play(c audio.Cue) {
	if a.audio != nil {
		a.audio.Play(c)
	}
}

func (a *App) toggleSound() {
	a.settings.Sound = !a.settings.Sound
	if a.audio != nil {
		a.audio.SetEnabled(a.settings.Sound)
		if a.settings.Sound && a.ambient {
			a.audio.StartAmbience()
		}
	}
	if a.store != nil {
		if err := a.store.SetSettings(a.settings); err != nil {
			log.Printf("Failed to save settings: %v", err)
		}
	}
	a.play(audio.CueUI)
}

func (a *App) resetBest() {
	a.game.ResetBestScore()
	a.bestCache = 0
	if a.store != nil {
		if err := a.store.ResetBestScore(); err != nil {
			log.Printf("Failed to reset best score: %v", err)
		}
	}
	a.play(audio.CueUI)
}

// Close stops the ambience loop
func (a *App) Close() {
	if a.audio != nil && a.ambient {
		a.audio.StopAmbience()
	}
	a.ambient = false
}

// Run owns the game until ctx is cancelled or the player quits
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	events := make(chan tcell.Event, 64)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.clock.Tick(time.Now())
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !a.HandleEvent(ev) {
				return nil
			}
			a.Draw()
		case now := <-ticker.C:
			a.Step(a.clock.Tick(now))
			a.Draw()
		}
	}
}

var (
	styleText   = tcell.StyleDefault
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleMuted  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleReady  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleAlert  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleTicker = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleBorder = tcell.StyleDefault.Foreground(tcell.ColorTeal)
)

func meterStyle(v float64) tcell.Style {
	c := hud.MeterColor(v)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Draw renders the current snapshot
func (a *App) Draw() {
	s := a.screen
	s.Clear()
	w, h := s.Size()
	snap := a.game.Snapshot()

	border := styleBorder
	if a.flash > 0 {
		border = styleAlert
	}
	a.box(0, 0, w, h, border)

	a.text(2, 1, styleTitle, "PUFFIN PLATFORM PANIC")
	a.text(2, 2, styleText, fmt.Sprintf("SCORE %d   BEST %d   SHIFT %.0fs", snap.Score, snap.BestScore, snap.Survival))

	row := 4
	for _, m := range []struct {
		label string
		value float64
	}{
		{"PRODUCTION", snap.Meters.Production},
		{"SAFETY", snap.Meters.Safety},
		{"MORALE", snap.Meters.Morale},
	} {
		a.meter(2, row, m.label, m.value)
		row++
	}

	row++
	a.text(2, row, styleMuted, "EVENTS")
	row++
	if len(snap.Events) == 0 {
		a.text(4, row, styleMuted, "all quiet")
		row++
	}
	for _, e := range snap.Events {
		spec := e.Kind.Spec()
		line := fmt.Sprintf("%s %.0fs", spec.Title, e.Remaining)
		if spec.Clear.Valid() {
			cl := spec.Clear.Spec()
			line += fmt.Sprintf("  [%c %s]", cl.Hotkey, cl.Label)
		}
		a.text(4, row, styleAlert, line)
		row++
	}

	row++
	a.text(2, row, styleMuted, "ACTIONS")
	row++
	for _, act := range platform.Actions() {
		spec := act.Spec()
		a.text(4, row, styleText, fmt.Sprintf("%c %s", spec.Hotkey, spec.Label))
		if cd := snap.Cooldown(act); cd > 0 {
			a.text(26, row, styleMuted, fmt.Sprintf("%.1fs", cd))
		} else {
			a.text(26, row, styleReady, "ready")
		}
		row++
	}

	if snap.Ticker != "" {
		a.text(2, h-3, styleTicker, snap.Ticker)
	}
	a.text(2, h-2, styleMuted, a.hint(snap))

	s.Show()
}

func (a *App) hint(snap platform.Snapshot) string {
	sound := "off"
	if a.settings.Sound {
		sound = "on"
	}
	switch snap.State {
	case platform.StateStart:
		return fmt.Sprintf("ENTER start shift  R reset best  M sound %s  Q quit", sound)
	case platform.StatePaused:
		return "PAUSED  P resume  ENTER restart  T title  Q quit"
	case platform.StateGameOver:
		return fmt.Sprintf("SHIFT OVER: %s  ENTER restart  T title  Q quit", snap.Reason)
	}
	return fmt.Sprintf("1-6 act  P pause  M sound %s  Q quit", sound)
}

func (a *App) meter(x, y int, label string, v float64) {
	fill := hud.MeterFill(barWidth, v)
	bar := strings.Repeat("█", fill) + strings.Repeat("░", barWidth-fill)
	a.text(x, y, styleText, fmt.Sprintf("%-10s", label))
	a.text(x+11, y, meterStyle(v), bar)
	a.text(x+12+barWidth, y, styleText, fmt.Sprintf("%3.0f", v))
}

func (a *App) text(x, y int, style tcell.Style, s string) {
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x++
	}
}

func (a *App) box(x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for i := x + 1; i < x+w-1; i++ {
		a.screen.SetContent(i, y, tcell.RuneHLine, nil, style)
		a.screen.SetContent(i, y+h-1, tcell.RuneHLine, nil, style)
	}
	for j := y + 1; j < y+h-1; j++ {
		a.screen.SetContent(x, j, tcell.RuneVLine, nil, style)
		a.screen.SetContent(x+w-1, j, tcell.RuneVLine, nil, style)
	}
	a.screen.SetContent(x, y, tcell.RuneULCorner, nil, style)
	a.screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, style)
	a.screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, style)
	a.screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, style)
}
