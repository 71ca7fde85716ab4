// Package scene defines the Scene interface for sandbox screens.
//
// The game loop delegates Update and Draw to the current scene, which owns
// its own world and input handling.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene represents one screen of the sandbox.
//
// Scene transitions are handled by returning a new Scene from Update.
type Scene interface {
	// Update updates the scene state.
	// dt is the frame time in seconds (typically 1/60).
	// Returns the next scene if a transition is needed, nil to stay on current scene.
	// Returns an error to terminate the loop.
	Update(dt float64) (next Scene, err error)

	// Draw renders the scene to the screen.
	Draw(screen *ebiten.Image)

	// OnEnter is called when entering this scene.
	OnEnter()

	// OnExit is called when leaving this scene, including on shutdown.
	OnExit()
}
