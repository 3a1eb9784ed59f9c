// Package simulation provides the tuning configuration for both simulators.
// Values start from DefaultConfig and can be overridden from a YAML (or JSON)
// file and from environment variables, so a designer can rebalance a run
// without rebuilding.
package simulation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all tuning for the arcade
type Config struct {
	App      AppConfig      `yaml:"app" json:"app"`
	Shmup    ShmupConfig    `yaml:"shmup" json:"shmup"`
	Platform PlatformConfig `yaml:"platform" json:"platform"`
}

// AppConfig holds settings that belong to the process rather than a run
type AppConfig struct {
	Seed             int64   `yaml:"seed" json:"seed"`                           // 0 = seed from the clock
	SaveDir          string  `yaml:"save_dir" json:"save_dir"`                   // Where save files live
	WindowScale      float64 `yaml:"window_scale" json:"window_scale"`           // Window size relative to the logical screen
	AmbienceInterval float64 `yaml:"ambience_interval" json:"ambience_interval"` // Seconds between ambient cues

	// Forced settings override what the save file says. nil keeps the saved value.
	Sound *bool `yaml:"sound,omitempty" json:"sound,omitempty"`
	CRT   *bool `yaml:"crt,omitempty" json:"crt,omitempty"`
}

// ShmupConfig tunes the shoot-'em-up
type ShmupConfig struct {
	Width     float64 `yaml:"width" json:"width"`
	Height    float64 `yaml:"height" json:"height"`
	DeckRatio float64 `yaml:"deck_ratio" json:"deck_ratio"` // Deck line as a fraction of height
	MaxDT     float64 `yaml:"max_dt" json:"max_dt"`

	Lives            int     `yaml:"lives" json:"lives"`
	MaxLives         int     `yaml:"max_lives" json:"max_lives"`
	PlayerSpeed      float64 `yaml:"player_speed" json:"player_speed"`
	FireCooldown     float64 `yaml:"fire_cooldown" json:"fire_cooldown"`
	AutoFireInterval float64 `yaml:"auto_fire_interval" json:"auto_fire_interval"`
	ShotSpeed        float64 `yaml:"shot_speed" json:"shot_speed"`

	ComboTimeout     float64 `yaml:"combo_timeout" json:"combo_timeout"`
	BossEvery        int     `yaml:"boss_every" json:"boss_every"`
	BossWarning      float64 `yaml:"boss_warning" json:"boss_warning"`
	WaveClearDelay   float64 `yaml:"wave_clear_delay" json:"wave_clear_delay"`
	BossClearDelay   float64 `yaml:"boss_clear_delay" json:"boss_clear_delay"`
	PowerupDropRate  float64 `yaml:"powerup_drop_rate" json:"powerup_drop_rate"`
	SlowDuration     float64 `yaml:"slow_duration" json:"slow_duration"`
	ReverseDuration  float64 `yaml:"reverse_duration" json:"reverse_duration"`
	WaveBonusPerWave int     `yaml:"wave_bonus_per_wave" json:"wave_bonus_per_wave"`
	BossBonusPerWave int     `yaml:"boss_bonus_per_wave" json:"boss_bonus_per_wave"`
}

// PlatformConfig tunes the meter-management game
type PlatformConfig struct {
	MaxDT      float64 `yaml:"max_dt" json:"max_dt"`
	StartMeter float64 `yaml:"start_meter" json:"start_meter"`

	DecayProduction float64 `yaml:"decay_production" json:"decay_production"` // Per second at difficulty 1
	DecaySafety     float64 `yaml:"decay_safety" json:"decay_safety"`
	DecayMorale     float64 `yaml:"decay_morale" json:"decay_morale"`
	DifficultyRamp  float64 `yaml:"difficulty_ramp" json:"difficulty_ramp"` // Seconds to add +1 difficulty

	FirstSpawn     float64  `yaml:"first_spawn" json:"first_spawn"`
	SpawnMin       SpawnGap `yaml:"spawn_min" json:"spawn_min"`
	SpawnMax       SpawnGap `yaml:"spawn_max" json:"spawn_max"`
	TickerDuration float64  `yaml:"ticker_duration" json:"ticker_duration"`
	ScorePerSecond float64  `yaml:"score_per_second" json:"score_per_second"`
}

// SpawnGap is a bound that shrinks linearly with survival time:
// max(Floor, Start - t/Slope)
type SpawnGap struct {
	Start float64 `yaml:"start" json:"start"`
	Slope float64 `yaml:"slope" json:"slope"`
	Floor float64 `yaml:"floor" json:"floor"`
}

// At evaluates the bound at survival time t
func (g SpawnGap) At(t float64) float64 {
	v := g.Start
	if g.Slope > 0 {
		v -= t / g.Slope
	}
	if v < g.Floor {
		return g.Floor
	}
	return v
}

// DefaultConfig returns the tuning both games shipped with
func DefaultConfig() *Config {
	return &Config{
		App: AppConfig{
			Seed:             0,
			SaveDir:          DefaultSaveDir(),
			WindowScale:      0.42,
			AmbienceInterval: 2.4,
		},
		Shmup: ShmupConfig{
			Width:            1080,
			Height:           1920,
			DeckRatio:        0.78,
			MaxDT:            0.033,
			Lives:            5,
			MaxLives:         7,
			PlayerSpeed:      520,
			FireCooldown:     0.16,
			AutoFireInterval: 0.08,
			ShotSpeed:        900,
			ComboTimeout:     2.2,
			BossEvery:        4,
			BossWarning:      2.5,
			WaveClearDelay:   0.8,
			BossClearDelay:   1.4,
			PowerupDropRate:  0.06,
			SlowDuration:     2.2,
			ReverseDuration:  1.7,
			WaveBonusPerWave: 180,
			BossBonusPerWave: 550,
		},
		Platform: PlatformConfig{
			MaxDT:           0.05,
			StartMeter:      70,
			DecayProduction: 1.4,
			DecaySafety:     1.0,
			DecayMorale:     0.8,
			DifficultyRamp:  90,
			FirstSpawn:      4,
			SpawnMin:        SpawnGap{Start: 6, Slope: 30, Floor: 2.5},
			SpawnMax:        SpawnGap{Start: 11, Slope: 20, Floor: 4.5},
			TickerDuration:  3.5,
			ScorePerSecond:  10,
		},
	}
}

// DefaultSaveDir returns the per-user directory for save files, falling back
// to the working directory when the platform has none.
func DefaultSaveDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "puffinarcade")
}

// LoadConfig loads config from a YAML or JSON file on top of the defaults
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return config, nil
}

// Validate rejects values that would break the simulation loop
func (c *Config) Validate() error {
	switch {
	case c.Shmup.Width <= 0 || c.Shmup.Height <= 0:
		return fmt.Errorf("shmup playfield must be positive, got %vx%v", c.Shmup.Width, c.Shmup.Height)
	case c.Shmup.DeckRatio <= 0 || c.Shmup.DeckRatio >= 1:
		return fmt.Errorf("shmup deck_ratio must be in (0,1), got %v", c.Shmup.DeckRatio)
	case c.Shmup.MaxLives < 1 || c.Shmup.Lives < 1 || c.Shmup.Lives > c.Shmup.MaxLives:
		return fmt.Errorf("shmup lives must satisfy 1 <= lives <= max_lives, got %d/%d", c.Shmup.Lives, c.Shmup.MaxLives)
	case c.Shmup.BossEvery < 1:
		return fmt.Errorf("shmup boss_every must be >= 1, got %d", c.Shmup.BossEvery)
	case c.Shmup.MaxDT <= 0 || c.Platform.MaxDT <= 0:
		return fmt.Errorf("max_dt must be positive")
	case c.Platform.StartMeter <= 0 || c.Platform.StartMeter > 100:
		return fmt.Errorf("platform start_meter must be in (0,100], got %v", c.Platform.StartMeter)
	case c.Platform.SpawnMin.Floor <= 0:
		return fmt.Errorf("platform spawn_min.floor must be positive, got %v", c.Platform.SpawnMin.Floor)
	}
	return nil
}

// Environment variables read by ApplyEnv
const (
	EnvSeed    = "PUFFIN_SEED"
	EnvSaveDir = "PUFFIN_SAVE_DIR"
	EnvSound   = "PUFFIN_SOUND"
	EnvCRT     = "PUFFIN_CRT"
	EnvScale   = "PUFFIN_SCALE"
)

// ApplyEnv loads an optional .env file and applies PUFFIN_* overrides.
// Unparseable values are reported and skipped.
func ApplyEnv(c *Config, envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	var errs []error
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		} else {
			c.App.Seed = seed
		}
	}
	if v := os.Getenv(EnvSaveDir); v != "" {
		c.App.SaveDir = v
	}
	if v := os.Getenv(EnvScale); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil || scale <= 0 {
			errs = append(errs, fmt.Errorf("%s: invalid scale %q", EnvScale, v))
		} else {
			c.App.WindowScale = scale
		}
	}
	if v := os.Getenv(EnvSound); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSound, err))
		} else {
			c.App.Sound = &b
		}
	}
	if v := os.Getenv(EnvCRT); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvCRT, err))
		} else {
			c.App.CRT = &b
		}
	}
	return errors.Join(errs...)
}
