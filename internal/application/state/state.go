package state

// Phase is the stage of a simulation step the stepper is in
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreStep
	PhaseResolve
	PhasePostStep
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhasePreStep:
		return "PreStep"
	case PhaseResolve:
		return "Resolve"
	case PhasePostStep:
		return "PostStep"
	default:
		return "Unknown"
	}
}

// Next returns the phase that follows p; PostStep wraps to Idle
func (p Phase) Next() Phase {
	switch p {
	case PhaseIdle:
		return PhasePreStep
	case PhasePreStep:
		return PhaseResolve
	case PhaseResolve:
		return PhasePostStep
	default:
		return PhaseIdle
	}
}

// RunState is whether the sandbox is advancing the simulation
type RunState int

const (
	RunRunning RunState = iota
	RunPaused
	RunSingleStep // advance one step, then pause
)

// String returns the string representation of the run state
func (s RunState) String() string {
	switch s {
	case RunRunning:
		return "Running"
	case RunPaused:
		return "Paused"
	case RunSingleStep:
		return "SingleStep"
	default:
		return "Unknown"
	}
}
