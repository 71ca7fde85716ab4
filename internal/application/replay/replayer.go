package replay

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/younwookim/arcadebody/internal/application/system"
)

// ErrDiverged is wrapped when a live run stops matching its recorded trace
var ErrDiverged = errors.New("trace diverged")

// Replayer feeds a recorded trace's input back into a live run
type Replayer struct {
	trace Trace
	frame int
}

// NewReplayer creates a new replayer from a trace
func NewReplayer(trace Trace) *Replayer {
	return &Replayer{trace: trace}
}

// LoadTrace loads a trace from a file
func LoadTrace(filename string) (*Trace, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var trace Trace
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&trace); err != nil {
		return nil, fmt.Errorf("failed to decode trace: %w", err)
	}

	return &trace, nil
}

// GetInput returns the next recorded input and advances.
// Returns false, with empty input, once the recording is exhausted.
func (r *Replayer) GetInput() (system.InputState, bool) {
	if r.frame >= len(r.trace.Inputs) {
		return system.InputState{}, false
	}

	in := r.trace.Inputs[r.frame]
	r.frame++
	return in.State(), true
}

// IsFinished returns true once every recorded input has been played
func (r *Replayer) IsFinished() bool {
	return r.frame >= len(r.trace.Inputs)
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of recorded updates
func (r *Replayer) TotalFrames() int {
	return len(r.trace.Inputs)
}

// Seed returns the seed used for the recording
func (r *Replayer) Seed() int64 {
	return r.trace.Seed
}

// StepSize returns the recorded fixed step
func (r *Replayer) StepSize() float64 {
	return r.trace.StepSize
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}

// Compare returns the step of the first frame where a and b differ.
// ok is true, and step -1, when both traces hold identical frames.
// Steps restart after a world reset, so frames are matched by position.
func Compare(a, b Trace) (step int, ok bool) {
	n := min(len(a.Frames), len(b.Frames))
	for i := 0; i < n; i++ {
		if !frameEqual(a.Frames[i], b.Frames[i]) {
			return a.Frames[i].Step, false
		}
	}
	switch {
	case len(a.Frames) > n:
		return a.Frames[n].Step, false
	case len(b.Frames) > n:
		return b.Frames[n].Step, false
	}
	return -1, true
}

// frameEqual is exact: a deterministic run reproduces every bit
func frameEqual(a, b Frame) bool {
	if a.Step != b.Step || len(a.Bodies) != len(b.Bodies) {
		return false
	}
	for i := range a.Bodies {
		if a.Bodies[i] != b.Bodies[i] {
			return false
		}
	}
	return true
}
