package simulation

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig returned error for missing file: %v", err)
	}
	def := DefaultConfig()
	if cfg.Shmup.BossWarning != def.Shmup.BossWarning {
		t.Errorf("Expected default boss warning %v, got %v", def.Shmup.BossWarning, cfg.Shmup.BossWarning)
	}
	if cfg.Platform.StartMeter != 70 {
		t.Errorf("Expected start meter 70, got %v", cfg.Platform.StartMeter)
	}
}

func TestDefaultClearDelays(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Shmup.WaveClearDelay != 0.8 {
		t.Errorf("Expected regular wave clear delay 0.8, got %v", cfg.Shmup.WaveClearDelay)
	}
	if cfg.Shmup.BossClearDelay != 1.4 {
		t.Errorf("Expected boss clear delay 1.4, got %v", cfg.Shmup.BossClearDelay)
	}
}

func TestLoadConfigOverlaysYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	data := `
app:
  seed: 42
shmup:
  lives: 3
platform:
  spawn_min:
    floor: 1.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.App.Seed != 42 {
		t.Errorf("Expected seed 42, got %d", cfg.App.Seed)
	}
	if cfg.Shmup.Lives != 3 {
		t.Errorf("Expected lives 3, got %d", cfg.Shmup.Lives)
	}
	// Untouched values keep their defaults
	if cfg.Shmup.MaxLives != 7 {
		t.Errorf("Expected max lives 7, got %d", cfg.Shmup.MaxLives)
	}
	if cfg.Platform.SpawnMin.Floor != 1.5 || cfg.Platform.SpawnMin.Start != 6 {
		t.Errorf("Unexpected spawn_min %+v", cfg.Platform.SpawnMin)
	}
}

func TestLoadConfigAcceptsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(`{"shmup": {"boss_every": 3}}`), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Shmup.BossEvery != 3 {
		t.Errorf("Expected boss_every 3, got %d", cfg.Shmup.BossEvery)
	}
}

func TestLoadConfigRejectsMalformedAndInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("shmup: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Error("Expected error for malformed YAML")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("shmup:\n  lives: 9\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(invalid); err == nil {
		t.Error("Expected error for lives above max_lives")
	}
}

func TestSpawnGapShrinksToFloor(t *testing.T) {
	g := SpawnGap{Start: 6, Slope: 30, Floor: 2.5}
	if got := g.At(0); got != 6 {
		t.Errorf("At(0) = %v, want 6", got)
	}
	if got := g.At(30); got != 5 {
		t.Errorf("At(30) = %v, want 5", got)
	}
	if got := g.At(1000); got != 2.5 {
		t.Errorf("At(1000) = %v, want floor 2.5", got)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(envFile, []byte("PUFFIN_SAVE_DIR_UNUSED=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvSeed, "99")
	t.Setenv(EnvSaveDir, "/tmp/puffin")
	t.Setenv(EnvSound, "false")
	t.Setenv(EnvCRT, "true")
	t.Setenv(EnvScale, "0.5")

	cfg := DefaultConfig()
	if err := ApplyEnv(cfg, envFile); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.App.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", cfg.App.Seed)
	}
	if cfg.App.SaveDir != "/tmp/puffin" {
		t.Errorf("Expected save dir override, got %q", cfg.App.SaveDir)
	}
	if cfg.App.Sound == nil || *cfg.App.Sound {
		t.Error("Expected sound forced off")
	}
	if cfg.App.CRT == nil || !*cfg.App.CRT {
		t.Error("Expected CRT forced on")
	}
	if cfg.App.WindowScale != 0.5 {
		t.Errorf("Expected scale 0.5, got %v", cfg.App.WindowScale)
	}
}

func TestApplyEnvReportsBadValues(t *testing.T) {
	t.Setenv(EnvSeed, "not-a-number")
	cfg := DefaultConfig()
	err := ApplyEnv(cfg, filepath.Join(t.TempDir(), "missing.env"))
	if err == nil {
		t.Fatal("Expected error for unparseable seed")
	}
	if cfg.App.Seed != 0 {
		t.Errorf("Seed should be untouched, got %d", cfg.App.Seed)
	}
}
