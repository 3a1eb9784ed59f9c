// Package storage persists each game's best score and settings as a small
// JSON file. Missing or corrupt files never stop a game from starting: they
// are replaced by defaults.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
)

// Save keys for the two games
const (
	KeyDeckSiege = "deck-siege.save.v1"
	KeyPlatform  = "puffin-platform-panic.save.v1"
)

// ErrCorrupt reports a save file that exists but could not be understood
var ErrCorrupt = errors.New("corrupt save data")

// Settings are the player-facing toggles
type Settings struct {
	Sound bool `json:"sound"`
	CRT   bool `json:"crt"`
}

// Data is the persisted shape
type Data struct {
	BestScore int      `json:"bestScore"`
	Settings  Settings `json:"settings"`
}

// Defaults returns a fresh copy of the default save
func Defaults() Data {
	return Data{
		BestScore: 0,
		Settings:  Settings{Sound: true, CRT: true},
	}
}

// Decode parses raw save bytes leniently. Unknown or wrongly typed fields
// fall back to defaults; only unparseable JSON is an error.
func Decode(raw []byte) (Data, error) {
	out := Defaults()
	if len(raw) == 0 {
		return out, nil
	}

	var parsed map[string]any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return out, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if parsed == nil {
		return out, fmt.Errorf("%w: not an object", ErrCorrupt)
	}

	out.BestScore = toScore(parsed["bestScore"])
	if settings, ok := parsed["settings"].(map[string]any); ok {
		// Only an explicit false turns a toggle off
		out.Settings.Sound = settings["sound"] != false
		out.Settings.CRT = settings["crt"] != false
	}
	return out, nil
}

func toScore(v any) int {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0
	}
	if f > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(f)
}

// Store is one game's save file
type Store struct {
	mu   sync.RWMutex
	path string
	data Data
}

// Open loads <dir>/<key>.json. The returned store is always usable; a
// non-nil error (wrapping ErrCorrupt) means the file was unreadable and
// defaults are in effect.
func Open(dir, key string) (*Store, error) {
	s := &Store{
		path: filepath.Join(dir, key+".json"),
		data: Defaults(),
	}
	data, err := s.load()
	s.data = data
	return s, err
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

func (s *Store) load() (Data, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return Defaults(), fmt.Errorf("failed to read save file: %w", err)
	}
	data, err := Decode(raw)
	if err != nil {
		return Defaults(), fmt.Errorf("save file %s: %w", s.path, err)
	}
	return data, nil
}

// Data returns a copy of the current save
func (s *Store) Data() Data {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data
}

// BestScore returns the stored best score
func (s *Store) BestScore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.BestScore
}

// Settings returns the stored settings
func (s *Store) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data.Settings
}

// SetBestScore raises the best score and writes the file. Lower values are
// ignored.
func (s *Store) SetBestScore(score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if score <= s.data.BestScore {
		return nil
	}
	s.data.BestScore = score
	return s.writeLocked()
}

// ResetBestScore sets the best score back to zero
func (s *Store) ResetBestScore() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.BestScore = 0
	return s.writeLocked()
}

// SetSettings replaces the settings and writes the file
func (s *Store) SetSettings(settings Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Settings = settings
	return s.writeLocked()
}

// Save replaces the whole save and writes the file
func (s *Store) Save(data Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data.BestScore < 0 {
		data.BestScore = 0
	}
	s.data = data
	return s.writeLocked()
}

// Reset removes the file and returns to defaults
func (s *Store) Reset() (Data, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = Defaults()
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return s.data, fmt.Errorf("failed to remove save file: %w", err)
	}
	return s.data, nil
}

func (s *Store) writeLocked() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize save: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp save: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace save file: %w", err)
	}
	return nil
}
