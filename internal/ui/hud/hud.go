// Package hud provides the heads-up display widgets shared by both games:
// a stat panel, meter bars, centered banners and full-screen overlays.
package hud

import (
	"fmt"
	"image/color"

	"chosenoffset.com/puffinarcade/internal/render"
	"chosenoffset.com/puffinarcade/internal/shmup"
)

// Config defines where and how the stat panel is drawn
type Config struct {
	Position string  `yaml:"position"` // "top-left", "top-right", "bottom-left", "bottom-right"
	Opacity  float64 `yaml:"opacity"`  // Background opacity (0-1)
	Scale    float64 `yaml:"scale"`    // Text scale
	Padding  int     `yaml:"padding"`  // Distance from the screen edge
}

// DefaultConfig returns a sensible default HUD configuration
func DefaultConfig() *Config {
	return &Config{
		Position: "top-left",
		Opacity:  0.7,
		Scale:    2,
		Padding:  10,
	}
}

// Line is one row of the stat panel
type Line struct {
	Text  string
	Color color.RGBA
}

var (
	colorText   = color.RGBA{235, 240, 245, 255}
	colorMuted  = color.RGBA{160, 170, 185, 255}
	colorAccent = color.RGBA{255, 214, 102, 255}
	colorBorder = color.RGBA{60, 60, 80, 255}
)

// HUD manages the stat panel
type HUD struct {
	config       *Config
	renderer     render.Renderer
	screenWidth  int
	screenHeight int

	lines []Line

	// Cached layout
	panelWidth  int
	panelHeight int
}

// New creates a new HUD with the given configuration
func New(config *Config, r render.Renderer, screenWidth, screenHeight int) *HUD {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Scale <= 0 {
		config.Scale = 1
	}
	return &HUD{
		config:       config,
		renderer:     r,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

// SetScreenSize updates the screen dimensions
func (h *HUD) SetScreenSize(width, height int) {
	h.screenWidth = width
	h.screenHeight = height
}

// SetLines replaces the panel contents
func (h *HUD) SetLines(lines []Line) {
	h.lines = lines
	h.layout()
}

// Lines returns the current panel contents
func (h *HUD) Lines() []Line { return h.lines }

func (h *HUD) layout() {
	width, lineHeight := 0, 0
	for _, l := range h.lines {
		w, lh := h.renderer.MeasureText(l.Text, h.config.Scale)
		if w > width {
			width = w
		}
		lineHeight = lh
	}
	h.panelWidth = width + 16
	h.panelHeight = len(h.lines)*lineHeight + 12
}

// Draw renders the panel to the screen
func (h *HUD) Draw(screen render.Image) {
	if len(h.lines) == 0 {
		return
	}

	x, y := h.calculatePosition()

	panel := color.NRGBA{20, 20, 30, uint8(h.config.Opacity * 255)}
	h.renderer.FillRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(h.panelHeight), panel)
	h.renderer.StrokeRect(screen, float32(x), float32(y), float32(h.panelWidth), float32(h.panelHeight), 1, colorBorder)

	currentY := y + 6
	for _, l := range h.lines {
		h.renderer.DrawText(screen, l.Text, x+8, currentY, l.Color, h.config.Scale)
		_, lh := h.renderer.MeasureText(l.Text, h.config.Scale)
		currentY += lh
	}
}

// calculatePosition returns the top-left corner of the panel
func (h *HUD) calculatePosition() (int, int) {
	padding := h.config.Padding

	switch h.config.Position {
	case "top-right":
		return h.screenWidth - h.panelWidth - padding, padding
	case "bottom-left":
		return padding, h.screenHeight - h.panelHeight - padding
	case "bottom-right":
		return h.screenWidth - h.panelWidth - padding, h.screenHeight - h.panelHeight - padding
	default: // "top-left"
		return padding, padding
	}
}

// ShmupLines builds the Deck Siege stat panel. The wave never reads below 1.
func ShmupLines(s shmup.Snapshot) []Line {
	return []Line{
		{Text: fmt.Sprintf("SCORE %d", s.Score), Color: colorText},
		{Text: fmt.Sprintf("HIGH  %d", s.HighScore), Color: colorMuted},
		{Text: fmt.Sprintf("WAVE  %d", max(1, s.Wave)), Color: colorText},
		{Text: fmt.Sprintf("LIVES %d", s.Lives), Color: colorText},
		{Text: fmt.Sprintf("x%d", s.Multiplier), Color: colorAccent},
	}
}

// MeterColor picks green, yellow or red for a 0-100 meter value
func MeterColor(value float64) color.RGBA {
	switch {
	case value > 60:
		return color.RGBA{50, 180, 50, 255}
	case value > 30:
		return color.RGBA{200, 180, 50, 255}
	default:
		return color.RGBA{200, 50, 50, 255}
	}
}

// MeterFill returns how many pixels of an inner width w a value fills
func MeterFill(w int, value float64) int {
	value = max(0, min(100, value))
	return int(float64(w) * value / 100)
}

// MeterBar draws a labelled bar with the label above it
func MeterBar(r render.Renderer, dst render.Image, x, y, w, h int, label string, value float64, scale float64) {
	_, lh := r.MeasureText(label, scale)
	r.DrawText(dst, label, x, y-lh, colorText, scale)

	r.FillRect(dst, float32(x), float32(y), float32(w), float32(h), color.RGBA{10, 16, 24, 255})
	r.FillRect(dst, float32(x+1), float32(y+1), float32(w-2), float32(h-2), color.RGBA{34, 46, 60, 255})
	if fill := MeterFill(w-2, value); fill > 0 {
		r.FillRect(dst, float32(x+1), float32(y+1), float32(fill), float32(h-2), MeterColor(value))
	}
}

// Banner draws text centered horizontally on a screen of width w
func Banner(r render.Renderer, dst render.Image, text string, w, y int, clr color.Color, scale float64) {
	tw, _ := r.MeasureText(text, scale)
	r.DrawText(dst, text, (w-tw)/2, y, clr, scale)
}

// Overlay dims the whole screen and draws a centered title with lines below
func Overlay(r render.Renderer, dst render.Image, title string, lines []string, scale float64) {
	w, h := dst.Size()
	r.FillRect(dst, 0, 0, float32(w), float32(h), color.RGBA{0, 0, 0, 160})

	_, th := r.MeasureText(title, scale*2)
	_, lh := r.MeasureText("M", scale)
	y := h/2 - (th+len(lines)*lh)/2
	Banner(r, dst, title, w, y, colorAccent, scale*2)
	y += th + lh/2
	for _, l := range lines {
		Banner(r, dst, l, w, y, colorText, scale)
		y += lh
	}
}
