package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	beepaudio "chosenoffset.com/puffinarcade/internal/audio/beep"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/game"
	"chosenoffset.com/puffinarcade/internal/render"
	ebitenrender "chosenoffset.com/puffinarcade/internal/render/ebiten"
	"chosenoffset.com/puffinarcade/internal/simulation"
	"chosenoffset.com/puffinarcade/internal/storage"
	"chosenoffset.com/puffinarcade/internal/ui/menu"
)

const (
	menuWidth  = 640
	menuHeight = 480
)

func main() {
	configPath := flag.String("config", "puffin.yaml", "tuning file (YAML or JSON); missing means defaults")
	flag.Parse()

	if err := run(*configPath); err != nil {
		log.Printf("Arcade stopped: %v", err)
		os.Exit(1)
	}
}

// run owns every resource so its defers complete before main exits
func run(configPath string) error {
	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := simulation.ApplyEnv(cfg); err != nil {
		log.Printf("Warning: ignoring bad environment overrides: %v", err)
	}
	log.Printf("Config loaded (seed %d, saves in %s)", cfg.App.Seed, cfg.App.SaveDir)

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	sound := beepaudio.NewManager(time.Duration(cfg.App.AmbienceInterval * float64(time.Second)))
	defer sound.Close()

	deps := game.Deps{
		Renderer: renderer,
		Input:    inputMgr,
		Audio:    sound,
		App:      cfg.App,
	}
	roller := rng.NewSeeded(cfg.App.Seed)

	gameManager := game.NewManager(inputMgr, menuWidth, menuHeight)
	gameManager.SetMainMenu(menu.NewMainMenu([]menu.Entry{
		{ID: storage.KeyDeckSiege, Title: "Deck Siege", Blurb: "Hold the deck against the galley's revenge."},
		{ID: storage.KeyPlatform, Title: "Puffin Platform Panic", Blurb: "Keep an offshore rig running through the shift."},
	}, renderer, inputMgr, menuWidth, menuHeight))

	gameManager.AddScene(storage.KeyDeckSiege,
		game.NewShmupScene(deps, cfg.Shmup, openStore(cfg.App.SaveDir, storage.KeyDeckSiege), roller))
	gameManager.AddScene(storage.KeyPlatform,
		game.NewPlatformScene(deps, cfg.Platform, openStore(cfg.App.SaveDir, storage.KeyPlatform), roller))
	defer gameManager.Close()

	// Set up the window around the tallest scene
	engine.SetWindowSize(int(cfg.Shmup.Width*cfg.App.WindowScale), int(cfg.Shmup.Height*cfg.App.WindowScale))
	engine.SetWindowTitle("Puffin Arcade")
	engine.SetWindowResizable(true)

	log.Println("Starting arcade...")
	if err := engine.RunGame(gameManager); err != nil && !errors.Is(err, render.Terminate) {
		return err
	}
	return nil
}

// openStore opens a save file. An unreadable save is reported and play
// continues on defaults.
func openStore(dir, key string) *storage.Store {
	store, err := storage.Open(dir, key)
	if err != nil {
		log.Printf("Warning: save %s was unreadable, starting fresh: %v", key, err)
	}
	return store
}
