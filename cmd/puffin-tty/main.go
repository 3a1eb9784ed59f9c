package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	beepaudio "chosenoffset.com/puffinarcade/internal/audio/beep"
	"chosenoffset.com/puffinarcade/internal/core/rng"
	"chosenoffset.com/puffinarcade/internal/simulation"
	"chosenoffset.com/puffinarcade/internal/storage"
	"chosenoffset.com/puffinarcade/internal/ui/tty"
	"github.com/gdamore/tcell/v2"
)

func main() {
	configPath := flag.String("config", "puffin.yaml", "tuning file (YAML or JSON); missing means defaults")
	logPath := flag.String("log", "", "write log output to this file instead of discarding it")
	flag.Parse()

	// The terminal belongs to tcell; log lines would corrupt it
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "puffin-tty: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := simulation.ApplyEnv(cfg); err != nil {
		log.Printf("Warning: ignoring bad environment overrides: %v", err)
	}

	store, err := storage.Open(cfg.App.SaveDir, storage.KeyPlatform)
	if err != nil {
		log.Printf("Warning: save was unreadable, starting fresh: %v", err)
	}

	sound := beepaudio.NewManager(time.Duration(cfg.App.AmbienceInterval * float64(time.Second)))
	defer sound.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	app := tty.New(screen, tty.Options{
		Config: cfg.Platform,
		Store:  store,
		Audio:  sound,
		Sound:  cfg.App.Sound,
		Roller: rng.NewSeeded(cfg.App.Seed),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("Starting terminal shift...")
	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
