// Package crt applies the optional CRT post effect: scanlines, a vignette and
// an occasional brightness flicker. It prefers a Kage shader and falls back to
// drawing translucent scanlines when the shader cannot be compiled.
package crt

import (
	_ "embed"
	"image/color"
	"log"
	"math"

	"chosenoffset.com/puffinarcade/internal/render"
)

//go:embed crt.kage
var shaderSrc []byte

var (
	scanlineColor = color.RGBA{10, 16, 24, 36}
	flickerColor  = color.RGBA{8, 8, 8, 8}
)

// Effect draws a finished frame to the screen, with or without the CRT look
type Effect struct {
	renderer render.Renderer
	shader   render.Shader
	enabled  bool
}

// New compiles the shader. A compile failure is logged and the effect uses
// the scanline fallback.
func New(r render.Renderer, enabled bool) *Effect {
	e := &Effect{renderer: r, enabled: enabled}
	shader, err := r.CompileShader(shaderSrc)
	if err != nil {
		log.Printf("CRT shader unavailable, using scanline fallback: %v", err)
	} else {
		e.shader = shader
	}
	return e
}

// Enabled reports whether the effect is on
func (e *Effect) Enabled() bool { return e.enabled }

// SetEnabled turns the effect on or off
func (e *Effect) SetEnabled(enabled bool) { e.enabled = enabled }

// Toggle flips the effect and returns the new state
func (e *Effect) Toggle() bool {
	e.enabled = !e.enabled
	return e.enabled
}

// Apply draws src onto dst at the origin. t is the scene clock in seconds.
func (e *Effect) Apply(dst, src render.Image, t float64) {
	if !e.enabled {
		dst.DrawImage(src, nil)
		return
	}

	w, h := src.Size()
	if e.shader != nil {
		dst.DrawRectShader(w, h, e.shader, &render.DrawRectShaderOptions{
			Images:   [4]render.Image{src},
			Uniforms: map[string]any{"Time": float32(t)},
		})
		return
	}

	dst.DrawImage(src, nil)
	for _, y := range ScanlineRows(h) {
		e.renderer.FillRect(dst, 0, float32(y), float32(w), 1, scanlineColor)
	}
	if Flicker(t) {
		e.renderer.FillRect(dst, 0, 0, float32(w), float32(h), flickerColor)
	}
}

// Dispose releases the shader
func (e *Effect) Dispose() {
	if e.shader != nil {
		e.shader.Dispose()
		e.shader = nil
	}
}

// ScanlineRows returns the rows darkened by the fallback: every other row
// starting at zero.
func ScanlineRows(height int) []int {
	if height <= 0 {
		return nil
	}
	rows := make([]int, 0, (height+1)/2)
	for y := 0; y < height; y += 2 {
		rows = append(rows, y)
	}
	return rows
}

// Flicker reports whether the brief brightness flicker is visible at time t
func Flicker(t float64) bool {
	return math.Sin(t*12) > 0.93
}
