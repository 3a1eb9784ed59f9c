package menu

import (
	"testing"

	"chosenoffset.com/puffinarcade/internal/render"
	"chosenoffset.com/puffinarcade/internal/render/rendertest"
)

var testEntries = []Entry{
	{ID: "deck-siege", Title: "Deck Siege"},
	{ID: "platform", Title: "Puffin Platform Panic"},
}

func newTestMenu() (*MainMenu, *rendertest.Input, *rendertest.Renderer) {
	r := rendertest.NewRenderer()
	in := rendertest.NewInput()
	return NewMainMenu(testEntries, r, in, 1080, 720), in, r
}

func TestKeyboardNavigationWraps(t *testing.T) {
	m, in, _ := newTestMenu()

	in.Tap(render.KeyUp)
	if ok, _ := m.Update(); ok {
		t.Fatal("Moving the highlight should not select")
	}
	in.EndFrame()
	if m.Selected() != 1 {
		t.Fatalf("Expected Up from the top to wrap to 1, got %d", m.Selected())
	}

	in.Tap(render.KeyDown)
	m.Update()
	in.EndFrame()
	if m.Selected() != 0 {
		t.Fatalf("Expected Down from the bottom to wrap to 0, got %d", m.Selected())
	}
}

func TestEnterSelectsHighlighted(t *testing.T) {
	m, in, _ := newTestMenu()

	in.Tap(render.KeyDown)
	m.Update()
	in.EndFrame()

	in.Tap(render.KeyEnter)
	ok, sel := m.Update()
	if !ok {
		t.Fatal("Expected Enter to select")
	}
	if sel.ID != "platform" || sel.Index != 1 {
		t.Errorf("Unexpected selection %+v", sel)
	}
}

func TestHeldKeyDoesNotRepeat(t *testing.T) {
	m, in, _ := newTestMenu()

	in.Press(render.KeyDown)
	m.Update()
	in.EndFrame()
	m.Update()
	if m.Selected() != 1 {
		t.Errorf("Expected a held key to move once, got %d", m.Selected())
	}
}

func TestClickSelectsEntry(t *testing.T) {
	m, in, _ := newTestMenu()

	in.Click(listX+10, listY+entryHeight+5)
	ok, sel := m.Update()
	if !ok || sel.ID != "platform" {
		t.Fatalf("Expected click to pick the second game, got %v %+v", ok, sel)
	}
	in.EndFrame()

	in.Click(5, 5)
	if ok, _ := m.Update(); ok {
		t.Error("Expected a click outside the list to do nothing")
	}
}

func TestDrawHighlightsSelection(t *testing.T) {
	m, _, r := newTestMenu()
	screen := &rendertest.Image{W: 1080, H: 720}

	m.Draw(screen)
	if !r.HasText("Deck Siege") || !r.HasText("Puffin Platform Panic") || !r.HasText(">") {
		t.Errorf("Missing menu text: %v", r.Texts)
	}
	if screen.Fills != 1 {
		t.Errorf("Expected background fill, got %d", screen.Fills)
	}
}

func TestEmptyMenu(t *testing.T) {
	r := rendertest.NewRenderer()
	m := NewMainMenu(nil, r, rendertest.NewInput(), 100, 100)
	if ok, _ := m.Update(); ok {
		t.Error("Expected no selection from an empty menu")
	}
	m.Draw(&rendertest.Image{W: 100, H: 100})
	if !r.HasText("No games installed!") {
		t.Error("Expected empty-menu notice")
	}
}
