// Package ebiten implements the render interfaces on top of Ebitengine.
package ebiten

import (
	"errors"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"chosenoffset.com/puffinarcade/internal/render"
)

// Debug font cell size
const (
	charWidth  = 6
	charHeight = 16
)

// maxCachedText bounds the rendered-text cache; it is flushed when full.
const maxCachedText = 256

// EbitenRenderer draws with ebiten's vector package and debug font. Rendered
// strings are cached as white glyph images and tinted on draw.
type EbitenRenderer struct {
	text map[string]*ebiten.Image
}

func init() {
	render.NewGeoM = func() render.GeoM {
		return NewGeoM()
	}
}

func NewRenderer() render.Renderer {
	return &EbitenRenderer{text: make(map[string]*ebiten.Image)}
}

func (r *EbitenRenderer) NewImage(width, height int) render.Image {
	return &EbitenImage{img: ebiten.NewImage(width, height)}
}

// NewImageFromImage uploads a CPU-side image, such as a generated sprite.
func (r *EbitenRenderer) NewImageFromImage(src image.Image) render.Image {
	return &EbitenImage{img: ebiten.NewImageFromImage(src)}
}

func (r *EbitenRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	vector.DrawFilledCircle(dst.(*EbitenImage).img, x, y, radius, clr, true)
}

func (r *EbitenRenderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	vector.StrokeCircle(dst.(*EbitenImage).img, x, y, radius, strokeWidth, clr, true)
}

// Rects are not anti-aliased so panels stay crisp at integer scales
func (r *EbitenRenderer) FillRect(dst render.Image, x, y, width, height float32, clr color.Color) {
	vector.DrawFilledRect(dst.(*EbitenImage).img, x, y, width, height, clr, false)
}

func (r *EbitenRenderer) StrokeRect(dst render.Image, x, y, width, height float32, strokeWidth float32, clr color.Color) {
	vector.StrokeRect(dst.(*EbitenImage).img, x, y, width, height, strokeWidth, clr, false)
}

func (r *EbitenRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	vector.StrokeLine(dst.(*EbitenImage).img, x0, y0, x1, y1, strokeWidth, clr, true)
}

func (r *EbitenRenderer) DrawText(dst render.Image, str string, x, y int, clr color.Color, scale float64) {
	if str == "" {
		return
	}
	if scale <= 0 {
		scale = 1
	}

	glyphs := r.textImage(str)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterNearest
	dst.(*EbitenImage).img.DrawImage(glyphs, op)
}

func (r *EbitenRenderer) textImage(str string) *ebiten.Image {
	if img, ok := r.text[str]; ok {
		return img
	}
	if len(r.text) >= maxCachedText {
		for k, img := range r.text {
			img.Deallocate()
			delete(r.text, k)
		}
	}
	w, h := r.MeasureText(str, 1)
	img := ebiten.NewImage(w+2, h)
	ebitenutil.DebugPrintAt(img, str, 0, 0)
	r.text[str] = img
	return img
}

func (r *EbitenRenderer) MeasureText(str string, scale float64) (width, height int) {
	return int(float64(len(str)) * charWidth * scale), int(charHeight * scale)
}

// CompileShader compiles Kage source
func (r *EbitenRenderer) CompileShader(src []byte) (render.Shader, error) {
	shader, err := ebiten.NewShader(src)
	if err != nil {
		return nil, err
	}
	return &EbitenShader{shader: shader}, nil
}

// EbitenShader wraps an ebiten.Shader
type EbitenShader struct {
	shader *ebiten.Shader
}

func (s *EbitenShader) Dispose() {
	if s.shader != nil {
		s.shader.Dispose()
	}
}

// EbitenImage wraps an ebiten.Image
type EbitenImage struct {
	img *ebiten.Image
}

func (i *EbitenImage) Bounds() image.Rectangle {
	return i.img.Bounds()
}

func (i *EbitenImage) Size() (width, height int) {
	return i.img.Bounds().Dx(), i.img.Bounds().Dy()
}

func (i *EbitenImage) Fill(clr color.Color) {
	i.img.Fill(clr)
}

func (i *EbitenImage) Clear() {
	i.img.Clear()
}

func (i *EbitenImage) Dispose() {
	if i.img != nil {
		i.img.Dispose()
	}
}

// DrawImage blits src. Alpha outside (0, 1) draws fully opaque.
func (i *EbitenImage) DrawImage(src render.Image, opts *render.DrawImageOptions) {
	srcImg := src.(*EbitenImage).img

	if opts == nil {
		i.img.DrawImage(srcImg, nil)
		return
	}

	op := &ebiten.DrawImageOptions{}
	if g, ok := opts.GeoM.(*EbitenGeoM); ok {
		op.GeoM = g.geoM
	}
	if opts.Alpha > 0 && opts.Alpha < 1 {
		op.ColorScale.ScaleAlpha(opts.Alpha)
	}
	i.img.DrawImage(srcImg, op)
}

func (i *EbitenImage) DrawRectShader(width, height int, shader render.Shader, opts *render.DrawRectShaderOptions) {
	op := &ebiten.DrawRectShaderOptions{}
	if opts != nil {
		for idx, img := range opts.Images {
			if img != nil {
				op.Images[idx] = img.(*EbitenImage).img
			}
		}
		op.Uniforms = opts.Uniforms
	}
	i.img.DrawRectShader(width, height, shader.(*EbitenShader).shader, op)
}

// EbitenGeoM wraps ebiten.GeoM
type EbitenGeoM struct {
	geoM ebiten.GeoM
}

func NewGeoM() render.GeoM {
	return &EbitenGeoM{geoM: ebiten.GeoM{}}
}

func (g *EbitenGeoM) Translate(tx, ty float64) {
	g.geoM.Translate(tx, ty)
}

func (g *EbitenGeoM) Scale(sx, sy float64) {
	g.geoM.Scale(sx, sy)
}

func (g *EbitenGeoM) Reset() {
	g.geoM.Reset()
}

// EbitenInputManager polls ebiten's keyboard and mouse state
type EbitenInputManager struct{}

func NewInputManager() render.InputManager {
	return &EbitenInputManager{}
}

func (m *EbitenInputManager) IsKeyPressed(key render.Key) bool {
	k, ok := keyMap[key]
	return ok && ebiten.IsKeyPressed(k)
}

func (m *EbitenInputManager) IsKeyJustPressed(key render.Key) bool {
	k, ok := keyMap[key]
	return ok && inpututil.IsKeyJustPressed(k)
}

func (m *EbitenInputManager) GetCursorPosition() (x, y int) {
	return ebiten.CursorPosition()
}

func (m *EbitenInputManager) IsMouseButtonJustPressed(button render.MouseButton) bool {
	return inpututil.IsMouseButtonJustPressed(mouseButtonToEbiten(button))
}

var keyMap = map[render.Key]ebiten.Key{
	render.KeyW:      ebiten.KeyW,
	render.KeyA:      ebiten.KeyA,
	render.KeyS:      ebiten.KeyS,
	render.KeyD:      ebiten.KeyD,
	render.KeyUp:     ebiten.KeyArrowUp,
	render.KeyDown:   ebiten.KeyArrowDown,
	render.KeyLeft:   ebiten.KeyArrowLeft,
	render.KeyRight:  ebiten.KeyArrowRight,
	render.KeySpace:  ebiten.KeySpace,
	render.KeyEscape: ebiten.KeyEscape,
	render.KeyEnter:  ebiten.KeyEnter,
	render.KeyP:      ebiten.KeyP,
	render.KeyT:      ebiten.KeyT,
	render.KeyM:      ebiten.KeyM,
	render.KeyC:      ebiten.KeyC,
	render.KeyR:      ebiten.KeyR,
	render.Key1:      ebiten.KeyDigit1,
	render.Key2:      ebiten.KeyDigit2,
	render.Key3:      ebiten.KeyDigit3,
	render.Key4:      ebiten.KeyDigit4,
	render.Key5:      ebiten.KeyDigit5,
	render.Key6:      ebiten.KeyDigit6,
}

func mouseButtonToEbiten(render.MouseButton) ebiten.MouseButton {
	return ebiten.MouseButtonLeft
}

// EbitenEngine drives the ebiten window and loop
type EbitenEngine struct{}

func NewEngine() render.Engine {
	return &EbitenEngine{}
}

func (e *EbitenEngine) SetWindowSize(width, height int) {
	ebiten.SetWindowSize(width, height)
}

func (e *EbitenEngine) SetWindowTitle(title string) {
	ebiten.SetWindowTitle(title)
}

func (e *EbitenEngine) SetWindowResizable(resizable bool) {
	if resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
}

// RunGame blocks until the game ends. Terminate ends it without error.
func (e *EbitenEngine) RunGame(game render.Game) error {
	return ebiten.RunGame(&gameAdapter{game: game})
}

type gameAdapter struct {
	game render.Game
}

func (a *gameAdapter) Update() error {
	err := a.game.Update()
	if errors.Is(err, render.Terminate) {
		return ebiten.Termination
	}
	return err
}

func (a *gameAdapter) Draw(screen *ebiten.Image) {
	a.game.Draw(&EbitenImage{img: screen})
}

func (a *gameAdapter) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.game.Layout(outsideWidth, outsideHeight)
}
