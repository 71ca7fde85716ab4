package system

// Intent represents an action requested by the user
type Intent interface {
	isIntent()
}

// PushIntent accelerates the controlled body
type PushIntent struct {
	AX, AY float64
}

func (PushIntent) isIntent() {}

// SpawnIntent adds a body centered on a screen position
type SpawnIntent struct {
	X, Y float64
}

func (SpawnIntent) isIntent() {}

// ResetIntent restores the world to its loaded state
type ResetIntent struct{}

func (ResetIntent) isIntent() {}

// PauseIntent toggles between running and paused
type PauseIntent struct{}

func (PauseIntent) isIntent() {}

// StepIntent advances a paused world by one step
type StepIntent struct{}

func (StepIntent) isIntent() {}

// SaveIntent writes the current trace to disk
type SaveIntent struct{}

func (SaveIntent) isIntent() {}
