package menu

import (
	"image/color"

	"chosenoffset.com/puffinarcade/internal/render"
)

// GameState represents which screen the arcade is showing.
type GameState int

const (
	StateMainMenu GameState = iota
	StatePlaying
)

// Entry is one game on the title menu.
type Entry struct {
	ID    string
	Title string
	Blurb string
}

// Selection is the game picked from the menu.
type Selection struct {
	ID    string
	Index int
}

// Layout of the entry list
const (
	listX       = 50
	listY       = 120
	entryHeight = 70
	entryWidth  = 420
)

// MainMenu represents the main menu screen.
type MainMenu struct {
	entries      []Entry
	selected     int
	renderer     render.Renderer
	input        render.InputManager
	screenWidth  int
	screenHeight int
	scale        float64
}

// NewMainMenu creates a new main menu.
func NewMainMenu(entries []Entry, r render.Renderer, input render.InputManager, width, height int) *MainMenu {
	return &MainMenu{
		entries:      entries,
		renderer:     r,
		input:        input,
		screenWidth:  width,
		screenHeight: height,
		scale:        2,
	}
}

// SetSize updates the screen dimensions.
func (m *MainMenu) SetSize(width, height int) {
	m.screenWidth = width
	m.screenHeight = height
}

// Selected returns the highlighted entry index.
func (m *MainMenu) Selected() int { return m.selected }

// Update moves the highlight and reports a game once it is chosen with
// Enter, Space or a click on an entry.
func (m *MainMenu) Update() (selected bool, selection Selection) {
	if len(m.entries) == 0 {
		return false, Selection{}
	}

	if m.input.IsMouseButtonJustPressed(render.MouseButtonLeft) {
		mouseX, mouseY := m.input.GetCursorPosition()
		for i := range m.entries {
			if pointInRect(mouseX, mouseY, m.entryRect(i)) {
				m.selected = i
				return true, m.selection()
			}
		}
	}

	if m.input.IsKeyJustPressed(render.KeyUp) || m.input.IsKeyJustPressed(render.KeyW) {
		m.selected = (m.selected - 1 + len(m.entries)) % len(m.entries)
	}
	if m.input.IsKeyJustPressed(render.KeyDown) || m.input.IsKeyJustPressed(render.KeyS) {
		m.selected = (m.selected + 1) % len(m.entries)
	}
	if m.input.IsKeyJustPressed(render.KeyEnter) || m.input.IsKeyJustPressed(render.KeySpace) {
		return true, m.selection()
	}

	return false, Selection{}
}

func (m *MainMenu) selection() Selection {
	return Selection{ID: m.entries[m.selected].ID, Index: m.selected}
}

func (m *MainMenu) entryRect(i int) rect {
	return rect{x: listX, y: listY + i*entryHeight, w: entryWidth, h: entryHeight - 10}
}

// Draw renders the menu to the screen.
func (m *MainMenu) Draw(screen render.Image) {
	screen.Fill(color.RGBA{20, 20, 30, 255})

	titleColor := color.RGBA{255, 255, 255, 255}
	m.renderer.DrawText(screen, "PUFFIN ARCADE", listX, 30, titleColor, m.scale*1.5)
	m.renderer.DrawText(screen, "Select a Game", listX, 75, color.RGBA{180, 180, 200, 255}, m.scale)

	if len(m.entries) == 0 {
		m.renderer.DrawText(screen, "No games installed!", listX, listY, color.RGBA{255, 100, 100, 255}, m.scale)
		return
	}

	for i, e := range m.entries {
		r := m.entryRect(i)
		nameColor := color.RGBA{200, 200, 255, 255}
		if i == m.selected {
			nameColor = color.RGBA{100, 255, 100, 255}
			m.renderer.StrokeRect(screen, float32(r.x-8), float32(r.y-6), float32(r.w), float32(r.h), 2, nameColor)
			m.renderer.DrawText(screen, ">", r.x-30, r.y, nameColor, m.scale)
		}
		m.renderer.DrawText(screen, e.Title, r.x, r.y, nameColor, m.scale)
		m.renderer.DrawText(screen, e.Blurb, r.x, r.y+32, color.RGBA{160, 160, 160, 255}, m.scale*0.75)
	}

	instructionY := m.screenHeight - 60
	instructionColor := color.RGBA{150, 150, 150, 255}
	m.renderer.DrawText(screen, "UP/DOWN to choose, ENTER or click to play.", 20, instructionY, instructionColor, m.scale*0.75)
	m.renderer.DrawText(screen, "ESC in a game's title screen returns here.", 20, instructionY+20, instructionColor, m.scale*0.75)
}

type rect struct {
	x, y, w, h int
}

func pointInRect(px, py int, r rect) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}
