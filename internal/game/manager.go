package game

import (
	"log"
	"time"

	"chosenoffset.com/puffinarcade/internal/core/clock"
	"chosenoffset.com/puffinarcade/internal/render"
	"chosenoffset.com/puffinarcade/internal/ui/menu"
)

// Manager handles the overall arcade state: the title menu and whichever
// scene it handed control to.
type Manager struct {
	ScreenWidth  int
	ScreenHeight int
	State        menu.GameState
	MainMenu     *menu.MainMenu
	Current      Scene
	InputMgr     render.InputManager

	// Now is the frame time source; tests replace it.
	Now   func() time.Time
	Clock clock.Frame

	scenes map[string]Scene
}

// NewManager creates a manager showing the menu at the given logical size.
func NewManager(input render.InputManager, width, height int) *Manager {
	return &Manager{
		ScreenWidth:  width,
		ScreenHeight: height,
		State:        menu.StateMainMenu,
		InputMgr:     input,
		Now:          time.Now,
		scenes:       map[string]Scene{},
	}
}

// SetMainMenu sets the main menu.
func (m *Manager) SetMainMenu(mainMenu *menu.MainMenu) {
	m.MainMenu = mainMenu
}

// AddScene registers the scene started by the menu entry with the given id.
func (m *Manager) AddScene(id string, s Scene) {
	m.scenes[id] = s
}

// Update advances the menu or the current scene. Esc on the menu quits.
func (m *Manager) Update() error {
	dt := m.Clock.Tick(m.Now())

	switch m.State {
	case menu.StateMainMenu:
		if m.InputMgr.IsKeyJustPressed(render.KeyEscape) {
			return render.Terminate
		}
		if m.MainMenu == nil {
			return nil
		}
		selected, selection := m.MainMenu.Update()
		if !selected {
			return nil
		}
		scene, ok := m.scenes[selection.ID]
		if !ok {
			log.Printf("No scene registered for %q", selection.ID)
			return nil
		}
		m.enter(scene)
	case menu.StatePlaying:
		if m.Current == nil {
			m.State = menu.StateMainMenu
			return nil
		}
		if m.Current.Update(dt) {
			m.Current.Leave()
			m.Current = nil
			m.State = menu.StateMainMenu
			m.Clock = clock.Frame{}
		}
	}
	return nil
}

func (m *Manager) enter(s Scene) {
	m.Current = s
	m.State = menu.StatePlaying
	m.Clock = clock.Frame{Max: s.MaxDT()}
	s.Enter()
}

// Draw draws the current state.
func (m *Manager) Draw(screen render.Image) {
	switch m.State {
	case menu.StateMainMenu:
		if m.MainMenu != nil {
			m.MainMenu.Draw(screen)
		}
	case menu.StatePlaying:
		if m.Current != nil {
			m.Current.Draw(screen)
		}
	}
}

// Layout returns the logical size of whatever is showing; the engine scales
// it to the window.
func (m *Manager) Layout(outsideWidth, outsideHeight int) (int, int) {
	if m.State == menu.StatePlaying && m.Current != nil {
		return m.Current.Size()
	}
	return m.ScreenWidth, m.ScreenHeight
}

// Close leaves the current scene so its audio stops.
func (m *Manager) Close() {
	if m.Current != nil {
		m.Current.Leave()
		m.Current = nil
	}
	m.State = menu.StateMainMenu
}
