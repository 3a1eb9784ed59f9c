package tty

import (
	"context"
	"testing"
	"time"

	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/platform"
	"chosenoffset.com/puffinarcade/internal/simulation"
	"chosenoffset.com/puffinarcade/internal/storage"
	"github.com/gdamore/tcell/v2"
)

type fakeAudio struct {
	audio.Recorder
	inits   int
	enabled bool
	starts  int
	stops   int
}

func (f *fakeAudio) Init() error             { f.inits++; return nil }
func (f *fakeAudio) SetEnabled(enabled bool) { f.enabled = enabled }
func (f *fakeAudio) StartAmbience()          { f.starts++ }
func (f *fakeAudio) StopAmbience()           { f.stops++ }

func newTestApp(t *testing.T, seed int64) (*App, tcell.SimulationScreen, *fakeAudio, string) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Failed to init screen: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	dir := t.TempDir()
	store, err := storage.Open(dir, storage.KeyPlatform)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	sink := &fakeAudio{}
	app := New(screen, Options{
		Config: simulation.DefaultConfig().Platform,
		Store:  store,
		Audio:  sink,
		Roller: rng.NewSeeded(seed),
	})
	return app, screen, sink, dir
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func row(screen tcell.Screen, x, y, n int) string {
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		r, _, _, _ := screen.GetContent(x+i, y)
		out = append(out, r)
	}
	return string(out)
}

func TestCommandFor(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want command
	}{
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), command{kind: cmdQuit}},
		{"q", runeKey('q'), command{kind: cmdQuit}},
		{"enter", key(tcell.KeyEnter), command{kind: cmdConfirm}},
		{"space", runeKey(' '), command{kind: cmdConfirm}},
		{"escape", key(tcell.KeyEscape), command{kind: cmdPause}},
		{"p", runeKey('p'), command{kind: cmdPause}},
		{"upper P", runeKey('P'), command{kind: cmdPause}},
		{"t", runeKey('t'), command{kind: cmdTitle}},
		{"r", runeKey('r'), command{kind: cmdResetBest}},
		{"m", runeKey('m'), command{kind: cmdSound}},
		{"1", runeKey('1'), command{kind: cmdAction, action: platform.Drill}},
		{"6", runeKey('6'), command{kind: cmdAction, action: platform.Shoo}},
		{"7", runeKey('7'), command{}},
		{"arrow", key(tcell.KeyUp), command{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := commandFor(tt.ev); got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestAppStartPauseQuit(t *testing.T) {
	app, _, sink, _ := newTestApp(t, 1)

	if !app.HandleEvent(key(tcell.KeyEnter)) {
		t.Fatal("Enter should not quit")
	}
	if app.Game().State() != platform.StateRunning {
		t.Fatalf("Expected running, got %v", app.Game().State())
	}
	if sink.inits != 1 || sink.starts != 1 {
		t.Errorf("Expected audio init and ambience start, got %d inits and %d starts", sink.inits, sink.starts)
	}

	app.HandleEvent(runeKey('1'))
	if app.Game().Cooldown(platform.Drill) <= 0 {
		t.Error("Expected drill to be cooling down")
	}
	if sink.Count(audio.CueButton) != 1 {
		t.Errorf("Expected one button cue, got %d", sink.Count(audio.CueButton))
	}

	// A cooling action is rejected silently
	app.HandleEvent(runeKey('1'))
	if sink.Count(audio.CueButton) != 1 {
		t.Error("Expected no cue for a rejected action")
	}

	app.HandleEvent(runeKey('p'))
	if app.Game().State() != platform.StatePaused || sink.stops != 1 {
		t.Errorf("Expected pause to stop the ambience, got %v with %d stops", app.Game().State(), sink.stops)
	}

	if app.HandleEvent(runeKey('q')) {
		t.Error("Expected q to quit")
	}
}

func TestAppEscapeOnStartQuits(t *testing.T) {
	app, _, _, _ := newTestApp(t, 1)
	if app.HandleEvent(key(tcell.KeyEscape)) {
		t.Error("Expected Esc on the start screen to quit")
	}
}

func TestAppSoundToggleIsSaved(t *testing.T) {
	app, _, sink, dir := newTestApp(t, 1)

	app.HandleEvent(runeKey('m'))
	if sink.enabled {
		t.Error("Expected sound to be disabled")
	}

	reopened, err := storage.Open(dir, storage.KeyPlatform)
	if err != nil {
		t.Fatal(err)
	}
	if reopened.Settings().Sound {
		t.Error("Expected the sound setting to be persisted")
	}
}

func TestAppShiftEndsAndSavesBest(t *testing.T) {
	app, _, sink, dir := newTestApp(t, 2)
	app.HandleEvent(key(tcell.KeyEnter))

	for i := 0; i < 20000 && app.Game().State() == platform.StateRunning; i++ {
		app.Step(0.05)
	}
	if app.Game().State() != platform.StateGameOver {
		t.Fatal("Expected the meters to run out")
	}
	if sink.Count(audio.CueGameOver) != 1 {
		t.Errorf("Expected one game over cue, got %d", sink.Count(audio.CueGameOver))
	}
	if sink.stops != 1 {
		t.Errorf("Expected the ambience to stop at game over, got %d stops", sink.stops)
	}

	reopened, err := storage.Open(dir, storage.KeyPlatform)
	if err != nil {
		t.Fatal(err)
	}
	if best := reopened.BestScore(); best == 0 || best != app.Game().BestScore() {
		t.Errorf("Expected saved best %d, got %d", app.Game().BestScore(), best)
	}
}

func TestAppShakeFlashesBorder(t *testing.T) {
	app, _, sink, _ := newTestApp(t, 5)
	app.HandleEvent(key(tcell.KeyEnter))

	flashed := false
	for i := 0; i < 20000 && !flashed; i++ {
		app.Step(0.05)
		flashed = app.Flashing()
		if app.Game().State() == platform.StateGameOver {
			app.HandleEvent(key(tcell.KeyEnter))
		}
	}
	if !flashed {
		t.Fatal("Expected a shaking event to flash the border")
	}
	if sink.Count(audio.CueAlarm) == 0 {
		t.Error("Expected an alarm cue with the shake")
	}

	// The flash fades even while nothing new happens
	app.Game().Pause()
	app.Step(flashDuration)
	if app.Flashing() {
		t.Error("Expected the flash to fade")
	}
}

func TestAppDraw(t *testing.T) {
	app, screen, _, _ := newTestApp(t, 1)
	app.Draw()

	if got := row(screen, 2, 1, 21); got != "PUFFIN PLATFORM PANIC" {
		t.Errorf("Unexpected title %q", got)
	}
	if got := row(screen, 2, 4, 10); got != "PRODUCTION" {
		t.Errorf("Unexpected meter label %q", got)
	}
	if r, _, _, _ := screen.GetContent(0, 0); r != tcell.RuneULCorner {
		t.Errorf("Expected a border corner, got %q", r)
	}
	if got := row(screen, 2, 22, 11); got != "ENTER start" {
		t.Errorf("Unexpected hint %q", got)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	app, screen, _, _ := newTestApp(t, 1)
	if err := screen.PostEvent(runeKey('q')); err != nil {
		t.Fatal(err)
	}
	if err := app.Run(context.Background()); err != nil {
		t.Errorf("Expected a clean quit, got %v", err)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	app, _, _, _ := newTestApp(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := app.Run(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestAppClearingAnEventPlaysUICue(t *testing.T) {
	app, _, sink, _ := newTestApp(t, 3)
	app.HandleEvent(key(tcell.KeyEnter))

	for i := 0; i < 20000; i++ {
		app.Step(0.05)
		if app.Game().State() == platform.StateGameOver {
			app.HandleEvent(key(tcell.KeyEnter))
			continue
		}
		for _, e := range app.Game().Snapshot().Events {
			act := e.Kind.Spec().Clear
			if !act.Valid() || app.Game().Cooldown(act) > 0 {
				continue
			}
			before := sink.Count(audio.CueUI)
			app.HandleEvent(runeKey(act.Spec().Hotkey))
			if app.Game().IsActive(e.Kind) {
				t.Fatalf("Expected %v to be cleared", e.Kind)
			}
			if got := sink.Count(audio.CueUI); got != before+1 {
				t.Errorf("Expected a ui cue for the cleared event, got %d -> %d", before, got)
			}
			return
		}
	}
	t.Fatal("Expected a clearable event to appear")
}

func TestAppFrameStepStartsAtZeroAndIsCapped(t *testing.T) {
	app, _, _, _ := newTestApp(t, 1)
	now := time.Unix(500, 0)

	if dt := app.clock.Tick(now); dt != 0 {
		t.Fatalf("Expected the first frame step to be 0, got %f", dt)
	}
	if dt := app.clock.Tick(now.Add(time.Minute)); dt != app.cfg.MaxDT {
		t.Errorf("Expected a stalled frame to be capped at %f, got %f", app.cfg.MaxDT, dt)
	}
}
