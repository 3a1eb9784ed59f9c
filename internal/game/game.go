// Package game owns the frame loop: it turns wall-clock frames into
// simulator steps, maps input to simulator operations, persists scores and
// settings, and draws each game's snapshot.
package game

import (
	"log"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/render"
	"chosenoffset.com/puffinarcade/internal/render/crt"
	"chosenoffset.com/puffinarcade/internal/simulation"
	"chosenoffset.com/puffinarcade/internal/storage"
)

// Deps are the collaborators shared by every scene. A nil Audio keeps the
// scenes silent.
type Deps struct {
	Renderer render.Renderer
	Input    render.InputManager
	Audio    Audio
	App      simulation.AppConfig
}

// sceneBase carries the per-game plumbing both scenes need: settings,
// persistence, audio start-up and the CRT pass.
type sceneBase struct {
	renderer render.Renderer
	input    render.InputManager
	audio    Audio
	store    *storage.Store

	settings  storage.Settings
	bestCache int
	audioInit bool

	crt    *crt.Effect
	canvas render.Image
}

func newSceneBase(d Deps, store *storage.Store) sceneBase {
	settings := storage.Defaults().Settings
	best := 0
	if store != nil {
		settings = store.Settings()
		best = store.BestScore()
	}
	if d.App.Sound != nil {
		settings.Sound = *d.App.Sound
	}
	if d.App.CRT != nil {
		settings.CRT = *d.App.CRT
	}

	b := sceneBase{
		renderer:  d.Renderer,
		input:     d.Input,
		audio:     d.Audio,
		store:     store,
		settings:  settings,
		bestCache: best,
		crt:       crt.New(d.Renderer, settings.CRT),
	}
	if b.audio != nil {
		b.audio.SetEnabled(settings.Sound)
	}
	return b
}

// Settings returns the scene's current sound and CRT toggles.
func (b *sceneBase) Settings() storage.Settings { return b.settings }

// startAudio initializes the device on the first run and resumes it after.
func (b *sceneBase) startAudio() {
	if b.audio == nil {
		return
	}
	if !b.audioInit {
		b.audioInit = true
		if err := b.audio.Init(); err != nil {
			log.Printf("Audio unavailable, continuing silently: %v", err)
		}
	}
	b.audio.Resume()
	b.audio.SetEnabled(b.settings.Sound)
}

func (b *sceneBase) play(c audio.Cue) {
	if b.audio != nil {
		b.audio.Play(c)
	}
}

func (b *sceneBase) stopAmbience() {
	if b.audio != nil {
		b.audio.StopAmbience()
	}
}

func (b *sceneBase) startAmbience() {
	if b.audio != nil {
		b.audio.StartAmbience()
	}
}

func (b *sceneBase) toggleSound() {
	b.settings.Sound = !b.settings.Sound
	if b.audio != nil {
		b.audio.SetEnabled(b.settings.Sound)
	}
	b.saveSettings()
	b.play(audio.CueUI)
}

func (b *sceneBase) toggleCRT() {
	b.settings.CRT = b.crt.Toggle()
	b.saveSettings()
	b.play(audio.CueUI)
}

func (b *sceneBase) saveSettings() {
	if b.store == nil {
		return
	}
	if err := b.store.SetSettings(b.settings); err != nil {
		log.Printf("Failed to save settings: %v", err)
	}
}

// syncBest writes the best score whenever the simulator reports a new one.
func (b *sceneBase) syncBest(best int) {
	if best == b.bestCache {
		return
	}
	b.bestCache = best
	if b.store == nil {
		return
	}
	if err := b.store.SetBestScore(best); err != nil {
		log.Printf("Failed to save best score: %v", err)
	}
}

func (b *sceneBase) resetBest() {
	b.bestCache = 0
	if b.store != nil {
		if err := b.store.ResetBestScore(); err != nil {
			log.Printf("Failed to reset best score: %v", err)
		}
	}
	b.play(audio.CueUI)
}

// handleToggles applies the M and C keys shared by every state.
func (b *sceneBase) handleToggles() {
	if b.input.IsKeyJustPressed(render.KeyM) {
		b.toggleSound()
	}
	if b.input.IsKeyJustPressed(render.KeyC) {
		b.toggleCRT()
	}
}

// frame returns the offscreen canvas, recreating it when the size changes.
func (b *sceneBase) frame(w, h int) render.Image {
	if b.canvas == nil || needsResize(b.canvas, w, h) {
		if b.canvas != nil {
			b.canvas.Dispose()
		}
		b.canvas = b.renderer.NewImage(w, h)
	}
	b.canvas.Clear()
	return b.canvas
}

func (b *sceneBase) present(screen render.Image, t float64) {
	b.crt.Apply(screen, b.canvas, t)
}

func (b *sceneBase) justPressed(keys ...render.Key) bool {
	for _, k := range keys {
		if b.input.IsKeyJustPressed(k) {
			return true
		}
	}
	return false
}

func (b *sceneBase) held(keys ...render.Key) bool {
	for _, k := range keys {
		if b.input.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
