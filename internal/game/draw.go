package game

import (
	"image/color"
	"math"

	"chosenoffset.com/puffinarcade/internal/placeholders"
	"chosenoffset.com/puffinarcade/internal/render"
)

func needsResize(img render.Image, w, h int) bool {
	bounds := img.Bounds()
	return bounds.Dx() != w || bounds.Dy() != h
}

// sprites are the placeholder bitmaps uploaded to the renderer once.
type sprites struct {
	enemies []render.Image
	boss    render.Image
	player  render.Image
	powerup render.Image
	puffin  render.Image
	wave    render.Image
}

func loadSprites(r render.Renderer) *sprites {
	set := placeholders.Generate()
	s := &sprites{
		boss:    r.NewImageFromImage(set.Boss),
		player:  r.NewImageFromImage(set.Player),
		powerup: r.NewImageFromImage(set.Powerup),
		puffin:  r.NewImageFromImage(set.Puffin),
		wave:    r.NewImageFromImage(set.Wave),
	}
	for _, img := range set.Enemies {
		s.enemies = append(s.enemies, r.NewImageFromImage(img))
	}
	return s
}

func (s *sprites) enemy(i int) render.Image {
	if i < 0 || i >= len(s.enemies) {
		return s.enemies[0]
	}
	return s.enemies[i]
}

func (s *sprites) dispose() {
	for _, img := range s.enemies {
		img.Dispose()
	}
	for _, img := range []render.Image{s.boss, s.player, s.powerup, s.puffin, s.wave} {
		img.Dispose()
	}
}

// drawCentered draws img centred on (cx, cy) with the given opacity.
func drawCentered(dst, img render.Image, cx, cy, alpha float64) {
	w, h := img.Size()
	drawAt(dst, img, cx-float64(w)/2, cy-float64(h)/2, alpha)
}

func drawAt(dst, img render.Image, x, y, alpha float64) {
	if alpha <= 0 {
		return
	}
	op := &render.DrawImageOptions{GeoM: render.NewGeoM(), Alpha: float32(alpha)}
	op.GeoM.Translate(math.Round(x), math.Round(y))
	dst.DrawImage(img, op)
}

// fade returns c with its alpha scaled by a in [0, 1].
func fade(c color.RGBA, a float64) color.NRGBA {
	a = max(0, min(1, a))
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(float64(c.A) * a)}
}

