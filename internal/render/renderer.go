// Package render defines the backend-neutral drawing, input and engine
// interfaces the arcade scenes are written against. The ebiten subpackage
// implements them; tests use rendertest and never need a GPU.
package render

import (
	"image"
	"image/color"
)

// Shader is a compiled post-processing program
type Shader interface {
	Dispose()
}

// DrawRectShaderOptions feeds a shader pass. Images[0] is the source frame.
type DrawRectShaderOptions struct {
	Images   [4]Image
	Uniforms map[string]any
}

// Renderer creates surfaces and draws primitives onto them. Scenes only ever
// see this interface, so the backend can be swapped without touching game
// code.
type Renderer interface {
	NewImage(width, height int) Image
	NewImageFromImage(src image.Image) Image

	FillCircle(dst Image, x, y, radius float32, clr color.Color)
	StrokeCircle(dst Image, x, y, radius float32, strokeWidth float32, clr color.Color)
	FillRect(dst Image, x, y, width, height float32, clr color.Color)
	StrokeRect(dst Image, x, y, width, height float32, strokeWidth float32, clr color.Color)
	StrokeLine(dst Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color)

	// DrawText uses a fixed-cell debug font; MeasureText reports its extent
	DrawText(dst Image, text string, x, y int, clr color.Color, scale float64)
	MeasureText(text string, scale float64) (width, height int)

	CompileShader(src []byte) (Shader, error)
}

// Image is a drawable surface
type Image interface {
	Bounds() image.Rectangle
	Size() (width, height int)

	Fill(clr color.Color)
	Clear()

	DrawImage(src Image, opts *DrawImageOptions)
	DrawRectShader(width, height int, shader Shader, opts *DrawRectShaderOptions)

	Dispose()
}

// DrawImageOptions positions a sprite blit
type DrawImageOptions struct {
	GeoM GeoM
	// Alpha scales the source alpha. Zero is treated as fully opaque.
	Alpha float32
}

// GeoM is an affine transform applied to a blit
type GeoM interface {
	Translate(tx, ty float64)
	Scale(sx, sy float64)
	Reset()
}

// NewGeoM is installed by the active backend
var NewGeoM func() GeoM

// InputManager reports keyboard and mouse state for the current frame
type InputManager interface {
	IsKeyPressed(key Key) bool
	IsKeyJustPressed(key Key) bool
	GetCursorPosition() (x, y int)
	IsMouseButtonJustPressed(button MouseButton) bool
}

// Key is a backend-neutral key code
type Key int

// Keys the arcade binds
const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEscape
	KeyEnter
	KeyP // Pause
	KeyT // Back to title
	KeyM // Sound toggle
	KeyC // CRT toggle
	KeyR // Reset best score
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
)

// DigitKeys are the number-row keys in order, used for action hotkeys
var DigitKeys = []Key{Key1, Key2, Key3, Key4, Key5, Key6}

// MouseButton is a backend-neutral mouse button
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
)

// Game is driven by an Engine: Update once per tick, Draw once per frame.
// Layout maps the window size to the logical screen size.
type Game interface {
	Update() error
	Draw(screen Image)
	Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int)
}

// Engine owns the window and the main loop
type Engine interface {
	SetWindowSize(width, height int)
	SetWindowTitle(title string)
	SetWindowResizable(resizable bool)

	// RunGame blocks until the game returns an error or Terminate
	RunGame(game Game) error
}

// Terminate is returned from Game.Update to end the loop cleanly.
var Terminate = errTerminate{}

type errTerminate struct{}

func (errTerminate) Error() string { return "render: terminated" }
