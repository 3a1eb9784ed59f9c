// Package rendertest provides recording implementations of the render
// interfaces so scenes and widgets can be driven in tests without a window.
package rendertest

import (
	"errors"
	"image"
	"image/color"

	"chosenoffset.com/puffinarcade/internal/render"
)

func init() {
	if render.NewGeoM == nil {
		render.NewGeoM = func() render.GeoM { return &GeoM{SX: 1, SY: 1} }
	}
}

// ErrShader is returned by CompileShader when FailShaders is set
var ErrShader = errors.New("rendertest: shaders disabled")

// Renderer records what was drawn
type Renderer struct {
	FailShaders bool

	Texts   []string
	Rects   int
	Circles int
	Lines   int
	Shaders int
}

// NewRenderer creates an empty recorder
func NewRenderer() *Renderer { return &Renderer{} }

// Reset forgets everything recorded so far
func (r *Renderer) Reset() {
	r.Texts = nil
	r.Rects, r.Circles, r.Lines = 0, 0, 0
}

// HasText reports whether text was drawn since the last Reset
func (r *Renderer) HasText(text string) bool {
	for _, t := range r.Texts {
		if t == text {
			return true
		}
	}
	return false
}

func (r *Renderer) NewImage(width, height int) render.Image {
	return &Image{W: width, H: height}
}

func (r *Renderer) NewImageFromImage(src image.Image) render.Image {
	b := src.Bounds()
	return &Image{W: b.Dx(), H: b.Dy()}
}

func (r *Renderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.Circles++
}

func (r *Renderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.Circles++
}

func (r *Renderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	r.Rects++
}

func (r *Renderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	r.Rects++
}

func (r *Renderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	r.Lines++
}

func (r *Renderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.Texts = append(r.Texts, text)
}

// MeasureText uses the same 6x16 cell as the ebiten debug font
func (r *Renderer) MeasureText(text string, scale float64) (width, height int) {
	return int(float64(len(text)) * 6 * scale), int(16 * scale)
}

func (r *Renderer) CompileShader(src []byte) (render.Shader, error) {
	if r.FailShaders {
		return nil, ErrShader
	}
	return &Shader{}, nil
}

// Shader is a no-op shader
type Shader struct{ Disposed bool }

func (s *Shader) Dispose() { s.Disposed = true }

// Image counts operations performed on it
type Image struct {
	W, H        int
	Fills       int
	Draws       int
	ShaderDraws int
	Disposed    bool
	LastGeoM    *GeoM
	LastAlpha   float32
}

func (i *Image) Bounds() image.Rectangle { return image.Rect(0, 0, i.W, i.H) }

func (i *Image) Size() (width, height int) { return i.W, i.H }

func (i *Image) Fill(clr color.Color) { i.Fills++ }

func (i *Image) Clear() { i.Fills++ }

func (i *Image) Dispose() { i.Disposed = true }

func (i *Image) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	i.Draws++
	i.LastGeoM = nil
	i.LastAlpha = 0
	if opts != nil {
		if g, ok := opts.GeoM.(*GeoM); ok {
			i.LastGeoM = g
		}
		i.LastAlpha = opts.Alpha
	}
}

func (i *Image) DrawRectShader(width, height int, shader render.Shader, opts *render.DrawRectShaderOptions) {
	i.ShaderDraws++
}

// GeoM tracks translation and scale
type GeoM struct {
	TX, TY float64
	SX, SY float64
}

func (g *GeoM) Translate(tx, ty float64) { g.TX += tx; g.TY += ty }

func (g *GeoM) Scale(sx, sy float64) {
	g.SX *= sx
	g.SY *= sy
	g.TX *= sx
	g.TY *= sy
}

func (g *GeoM) Reset() { *g = GeoM{SX: 1, SY: 1} }

// Input is a scripted InputManager. Tap marks a key just pressed for one
// frame; EndFrame clears the just-pressed set.
type Input struct {
	pressed   map[render.Key]bool
	just      map[render.Key]bool
	X, Y      int
	MouseJust bool
}

// NewInput creates an input with nothing held
func NewInput() *Input {
	return &Input{pressed: map[render.Key]bool{}, just: map[render.Key]bool{}}
}

// Press holds a key down
func (in *Input) Press(k render.Key) {
	if !in.pressed[k] {
		in.just[k] = true
	}
	in.pressed[k] = true
}

// Release lets a key go
func (in *Input) Release(k render.Key) { delete(in.pressed, k) }

// Tap marks k as just pressed for the current frame only
func (in *Input) Tap(k render.Key) {
	in.just[k] = true
}

// Click presses the left mouse button at (x, y) for one frame
func (in *Input) Click(x, y int) {
	in.X, in.Y = x, y
	in.MouseJust = true
}

// EndFrame clears one-frame state
func (in *Input) EndFrame() {
	in.just = map[render.Key]bool{}
	in.MouseJust = false
}

func (in *Input) IsKeyPressed(key render.Key) bool { return in.pressed[key] || in.just[key] }

func (in *Input) IsKeyJustPressed(key render.Key) bool { return in.just[key] }

func (in *Input) GetCursorPosition() (x, y int) { return in.X, in.Y }

func (in *Input) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return button == render.MouseButtonLeft && in.MouseJust
}
