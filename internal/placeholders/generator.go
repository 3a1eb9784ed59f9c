// Package placeholders draws the arcade's sprites procedurally so neither game
// ships image assets. Every sprite is an *image.RGBA with a transparent
// background; scenes upload them once and cmd/gensprites writes them to a
// PNG sheet for inspection.
package placeholders

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
)

var transparent = color.RGBA{0, 0, 0, 0}

// NewCanvas creates a transparent image of the given size
func NewCanvas(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{transparent}, image.Point{}, draw.Src)
	return img
}

// FillRect fills the rectangle [x, x+w) x [y, y+h), clipped to the image
func FillRect(img *image.RGBA, x, y, w, h int, col color.RGBA) {
	r := image.Rect(x, y, x+w, y+h).Intersect(img.Bounds())
	draw.Draw(img, r, &image.Uniform{col}, image.Point{}, draw.Src)
}

// FillCircle draws a filled circle with a one pixel outline
func FillCircle(img *image.RGBA, cx, cy, radius int, fillColor, outlineColor color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dx := x - cx
			dy := y - cy
			distSq := dx*dx + dy*dy

			if distSq <= radius*radius {
				img.Set(x, y, fillColor)
			} else if distSq <= (radius+1)*(radius+1) {
				img.Set(x, y, outlineColor)
			}
		}
	}
}

// FillRoundedRect draws a rectangle with corners of the given radius and a
// one pixel outline
func FillRoundedRect(img *image.RGBA, x, y, w, h, radius int, fillColor, outlineColor color.RGBA) {
	inside := func(px, py, inset int) bool {
		left, top := x+inset, y+inset
		right, bottom := x+w-1-inset, y+h-1-inset
		if px < left || px > right || py < top || py > bottom {
			return false
		}
		r := radius - inset
		if r <= 0 {
			return true
		}
		cx, cy := px, py
		switch {
		case px < left+r:
			cx = left + r
		case px > right-r:
			cx = right - r
		}
		switch {
		case py < top+r:
			cy = top + r
		case py > bottom-r:
			cy = bottom - r
		}
		dx, dy := px-cx, py-cy
		return dx*dx+dy*dy <= r*r
	}

	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			if inside(px, py, 1) {
				img.Set(px, py, fillColor)
			} else if inside(px, py, 0) {
				img.Set(px, py, outlineColor)
			}
		}
	}
}

// CreateAtlas packs sprites left to right into rows of the given column
// count. Each cell is as large as the largest sprite.
func CreateAtlas(tiles []*image.RGBA, columns int) *image.RGBA {
	if columns < 1 {
		columns = 1
	}
	cellW, cellH := 1, 1
	for _, t := range tiles {
		if t == nil {
			continue
		}
		if t.Bounds().Dx() > cellW {
			cellW = t.Bounds().Dx()
		}
		if t.Bounds().Dy() > cellH {
			cellH = t.Bounds().Dy()
		}
	}

	rows := (len(tiles) + columns - 1) / columns
	atlas := NewCanvas(columns*cellW, rows*cellH)

	// Copy each tile into the atlas
	for i, tile := range tiles {
		if tile == nil {
			continue
		}
		x := (i % columns) * cellW
		y := (i / columns) * cellH
		destRect := image.Rect(x, y, x+tile.Bounds().Dx(), y+tile.Bounds().Dy())
		draw.Draw(atlas, destRect, tile, tile.Bounds().Min, draw.Src)
	}

	return atlas
}

// SavePNG saves an image to a PNG file
func SavePNG(img image.Image, filepath string) error {
	file, err := os.Create(filepath)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}

// Darken returns a darker version of a color
func Darken(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * factor),
		G: uint8(float64(c.G) * factor),
		B: uint8(float64(c.B) * factor),
		A: c.A,
	}
}

// Lighten returns a lighter version of a color
func Lighten(c color.RGBA, factor float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) + (255-float64(c.R))*factor),
		G: uint8(float64(c.G) + (255-float64(c.G))*factor),
		B: uint8(float64(c.B) + (255-float64(c.B))*factor),
		A: c.A,
	}
}
