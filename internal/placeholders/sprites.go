package placeholders

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"chosenoffset.com/puffinarcade/internal/shmup"
)

// Palette holds the fixed colors shared by the sprites and the scenes
var Palette = struct {
	Night     color.RGBA
	Sea       color.RGBA
	SeaFoam   color.RGBA
	Deck      color.RGBA
	Steel     color.RGBA
	Hull      color.RGBA
	Warning   color.RGBA
	Brass     color.RGBA
	Teal      color.RGBA
	Ink       color.RGBA
	Paper     color.RGBA
	PuffinBk  color.RGBA
	PuffinBk2 color.RGBA
	Beak      color.RGBA
}{
	Night:     color.RGBA{0x0b, 0x14, 0x1f, 0xff},
	Sea:       color.RGBA{0x17, 0x3a, 0x52, 0xff},
	SeaFoam:   color.RGBA{0x5e, 0x9c, 0xb5, 0xff},
	Deck:      color.RGBA{0xc9, 0x4f, 0x3d, 0xff},
	Steel:     color.RGBA{0x8a, 0x99, 0xa6, 0xff},
	Hull:      color.RGBA{0x3b, 0x4a, 0x57, 0xff},
	Warning:   color.RGBA{0xff, 0xc8, 0x57, 0xff},
	Brass:     color.RGBA{0xd9, 0xa4, 0x41, 0xff},
	Teal:      color.RGBA{0x1f, 0xa3, 0xa3, 0xff},
	Ink:       color.RGBA{0x10, 0x12, 0x16, 0xff},
	Paper:     color.RGBA{0xf2, 0xf5, 0xf7, 0xff},
	PuffinBk:  color.RGBA{0x1a, 0x1c, 0x22, 0xff},
	PuffinBk2: color.RGBA{0xe7, 0xf2, 0xf8, 0xff},
	Beak:      color.RGBA{0xff, 0x7a, 0x2f, 0xff},
}

// Enemy draws an enemy of type t. The sprite is centred and sized to the
// type's collision radius.
func Enemy(t shmup.EnemyType) *image.RGBA {
	spec := t.Spec()
	r := int(spec.Radius)
	size := r*2 + 4
	c := size / 2
	img := NewCanvas(size, size)
	outline := Darken(spec.Color, 0.55)

	switch t {
	case shmup.Jiggs:
		// Three stacked plates
		plate := r * 2 / 3
		for i := 0; i < 3; i++ {
			FillRoundedRect(img, c-r, c-r+i*plate, r*2, plate, plate/3, Lighten(spec.Color, 0.1*float64(i)), outline)
		}
	case shmup.Screech:
		// Bottle: round body, narrow neck
		FillRoundedRect(img, c-r/2, c-r/3, r, r+r/3, r/3, spec.Color, outline)
		FillRect(img, c-r/6, c-r, r/3, r*2/3, outline)
		FillRect(img, c-r/6+1, c-r+1, r/3-2, r*2/3-1, spec.Color)
	default:
		FillCircle(img, c, c, r, spec.Color, outline)
		// Eye
		FillCircle(img, c+r/3, c-r/4, r/6, Palette.Paper, Palette.Ink)
	}

	return img
}

// Boss draws the boss as a rounded box the size of its hit box
func Boss() *image.RGBA {
	const w, h = 220, 120
	img := NewCanvas(w, h)
	FillRoundedRect(img, 0, 0, w, h, 24, Palette.Hull, Darken(Palette.Hull, 0.5))
	FillRoundedRect(img, 20, 20, w-40, 36, 10, Palette.Steel, Darken(Palette.Steel, 0.6))
	for i := 0; i < 4; i++ {
		FillCircle(img, 40+i*47, 88, 10, Palette.Warning, Darken(Palette.Warning, 0.5))
	}
	return img
}

// Player draws the deck gun
func Player() *image.RGBA {
	const w, h = 78, 52
	img := NewCanvas(w, h)
	FillRoundedRect(img, 0, h/2, w, h/2, 8, Palette.Steel, Darken(Palette.Steel, 0.5))
	FillRect(img, w/2-5, 0, 10, h/2+4, Palette.Hull)
	FillCircle(img, w/2, h/2+4, 12, Palette.Brass, Darken(Palette.Brass, 0.5))
	return img
}

// Powerup draws the integrity pickup
func Powerup() *image.RGBA {
	const r = 20
	img := NewCanvas(r*2+4, r*2+4)
	FillCircle(img, r+2, r+2, r, Palette.Teal, Darken(Palette.Teal, 0.5))
	FillRect(img, r-1, 8, 6, r*2-12, Palette.Paper)
	FillRect(img, 8, r-1, r*2-12, 6, Palette.Paper)
	return img
}

// Puffin draws the small puffin used by the rig game
func Puffin() *image.RGBA {
	const size = 12
	img := NewCanvas(size, size)
	FillCircle(img, 6, 7, 4, Palette.PuffinBk, Palette.PuffinBk)
	FillCircle(img, 6, 8, 2, Palette.PuffinBk2, Palette.PuffinBk2)
	FillCircle(img, 6, 3, 2, Palette.PuffinBk, Palette.PuffinBk)
	FillRect(img, 8, 3, 3, 2, Palette.Beak)
	return img
}

// WaveTile is one tile of the scrolling ocean
func WaveTile() *image.RGBA {
	const w, h = 16, 6
	img := NewCanvas(w, h)
	FillRect(img, 0, 0, w, h, Palette.Sea)
	for x := 0; x < w; x++ {
		if x%8 < 4 {
			img.Set(x, x%8/2, Palette.SeaFoam)
		}
	}
	return img
}

// Set holds every generated sprite
type Set struct {
	Enemies []*image.RGBA // Indexed by shmup.EnemyType
	Boss    *image.RGBA
	Player  *image.RGBA
	Powerup *image.RGBA
	Puffin  *image.RGBA
	Wave    *image.RGBA
}

// Generate draws the whole sprite set
func Generate() *Set {
	s := &Set{
		Boss:    Boss(),
		Player:  Player(),
		Powerup: Powerup(),
		Puffin:  Puffin(),
		Wave:    WaveTile(),
	}
	for _, t := range shmup.EnemyTypes() {
		s.Enemies = append(s.Enemies, Enemy(t))
	}
	return s
}

// Sheet packs the set into one image, enemies first
func (s *Set) Sheet() *image.RGBA {
	tiles := append([]*image.RGBA{}, s.Enemies...)
	tiles = append(tiles, s.Player, s.Powerup, s.Puffin, s.Wave, s.Boss)
	return CreateAtlas(tiles, 4)
}

// GenerateAndSave writes the sprite sheet to dir/sprites.png
func GenerateAndSave(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(dir, "sprites.png")
	if err := SavePNG(Generate().Sheet(), path); err != nil {
		return "", fmt.Errorf("failed to save %s: %w", path, err)
	}
	return path, nil
}
