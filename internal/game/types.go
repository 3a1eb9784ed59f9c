package game

import (
	"chosenoffset.com/puffinarcade/internal/audio"
	"chosenoffset.com/puffinarcade/internal/render"
)

// Audio is the part of the speaker-backed manager the scenes drive.
type Audio interface {
	audio.Sink
	Init() error
	Resume()
	SetEnabled(enabled bool)
	Enabled() bool
	StartAmbience()
	StopAmbience()
}

// Scene is one game hosted by the Manager.
type Scene interface {
	// Size is the logical screen size the scene draws at.
	Size() (width, height int)

	// MaxDT caps the frame step for this scene.
	MaxDT() float64

	// Enter is called when the menu hands control to the scene.
	Enter()

	// Update advances one frame. Returning true hands control back to the menu.
	Update(dt float64) (leave bool)

	Draw(screen render.Image)

	// Leave is called when control returns to the menu.
	Leave()
}
