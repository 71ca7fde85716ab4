package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/arcadebody/internal/domain/entity"
)

// InputSystem turns sandbox input into intents
type InputSystem struct {
	push float64
	held PushIntent // last push emitted
}

// NewInputSystem creates a new input system. push is the acceleration applied
// to the controlled body while an arrow key is held.
func NewInputSystem(push float64) *InputSystem {
	return &InputSystem{push: push}
}

// InputState holds the current input state
type InputState struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Pause  bool
	Step   bool
	Reset  bool
	Save   bool
	MouseX int
	MouseY int
	// Left click spawns a body at the cursor
	MouseClick bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	return InputState{
		Left:       ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:      ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Up:         ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Down:       ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		Pause:      inpututil.IsKeyJustPressed(ebiten.KeySpace),
		Step:       inpututil.IsKeyJustPressed(ebiten.KeyPeriod),
		Reset:      inpututil.IsKeyJustPressed(ebiten.KeyR),
		Save:       inpututil.IsKeyJustPressed(ebiten.KeyF5),
		MouseX:     mx,
		MouseY:     my,
		MouseClick: inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
	}
}

// Intents converts one frame of input into intents, in a fixed order
func (s *InputSystem) Intents(input InputState) []Intent {
	var intents []Intent

	if input.Reset {
		intents = append(intents, ResetIntent{})
	}
	if input.Pause {
		intents = append(intents, PauseIntent{})
	}
	if input.Step {
		intents = append(intents, StepIntent{})
	}
	if input.Save {
		intents = append(intents, SaveIntent{})
	}
	if input.MouseClick {
		intents = append(intents, SpawnIntent{X: float64(input.MouseX), Y: float64(input.MouseY)})
	}

	// Only key changes emit a push, so idle frames leave the body alone
	if p := s.pushIntent(input); p != s.held {
		s.held = p
		intents = append(intents, p)
	}

	return intents
}

// ReleasePush forgets the held push. The next frame re-emits it if keys are
// still down, which re-applies it to a rebuilt world.
func (s *InputSystem) ReleasePush() {
	s.held = PushIntent{}
}

func (s *InputSystem) pushIntent(input InputState) PushIntent {
	var p PushIntent
	if input.Left {
		p.AX -= s.push
	}
	if input.Right {
		p.AX += s.push
	}
	if input.Up {
		p.AY -= s.push
	}
	if input.Down {
		p.AY += s.push
	}
	return p
}

// ApplyPush sets the controlled body's acceleration to its configured base plus
// the push. A zero push restores the base.
func ApplyPush(body *entity.Body, base entity.Vec2, p PushIntent) {
	if body == nil {
		return
	}
	body.Acceleration = entity.Vec2{X: base.X + p.AX, Y: base.Y + p.AY}
}
