package replay

import (
	"strings"

	"github.com/younwookim/arcadebody/internal/application/system"
	"github.com/younwookim/arcadebody/internal/domain/entity"
)

// TraceVersion is written into every saved trace
const TraceVersion = "1.1"

// FrameInput records the input read on one update, paused or not
type FrameInput struct {
	F  int  `json:"f"`            // update number
	L  bool `json:"l,omitempty"`  // Left
	R  bool `json:"r,omitempty"`  // Right
	U  bool `json:"u,omitempty"`  // Up
	D  bool `json:"d,omitempty"`  // Down
	P  bool `json:"p,omitempty"`  // Pause
	S  bool `json:"s,omitempty"`  // Step
	RS bool `json:"rs,omitempty"` // Reset
	SV bool `json:"sv,omitempty"` // Save
	MX int  `json:"mx"`           // MouseX
	MY int  `json:"my"`           // MouseY
	MC bool `json:"mc,omitempty"` // MouseClick
}

// NewFrameInput converts an input state for recording
func NewFrameInput(f int, in system.InputState) FrameInput {
	return FrameInput{
		F:  f,
		L:  in.Left,
		R:  in.Right,
		U:  in.Up,
		D:  in.Down,
		P:  in.Pause,
		S:  in.Step,
		RS: in.Reset,
		SV: in.Save,
		MX: in.MouseX,
		MY: in.MouseY,
		MC: in.MouseClick,
	}
}

// State converts a recorded frame back to an input state
func (fi FrameInput) State() system.InputState {
	return system.InputState{
		Left:       fi.L,
		Right:      fi.R,
		Up:         fi.U,
		Down:       fi.D,
		Pause:      fi.P,
		Step:       fi.S,
		Reset:      fi.RS,
		Save:       fi.SV,
		MouseX:     fi.MX,
		MouseY:     fi.MY,
		MouseClick: fi.MC,
	}
}

// BodyState is one body's snapshot at the end of a step
type BodyState struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	VX       float64 `json:"vx"`
	VY       float64 `json:"vy"`
	Rotation float64 `json:"rot"`
	Blocked  string  `json:"blocked,omitempty"` // subset of "udlr"
}

// Frame records every body after one step
type Frame struct {
	Step   int         `json:"step"`
	Bodies []BodyState `json:"bodies"`
}

// Trace contains all data needed to re-drive a run and check it for determinism.
// Inputs holds one entry per update; Frames holds one entry per step.
type Trace struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Name      string       `json:"name"`
	StartTime string       `json:"startTime"`
	StepSize  float64      `json:"stepSize"`
	Inputs    []FrameInput `json:"inputs,omitempty"`
	Frames    []Frame      `json:"frames"`
}

// Row is the flattened CSV form of one body in one frame
type Row struct {
	Step     int     `csv:"step"`
	ID       int     `csv:"id"`
	X        float64 `csv:"x"`
	Y        float64 `csv:"y"`
	VX       float64 `csv:"vx"`
	VY       float64 `csv:"vy"`
	Rotation float64 `csv:"rotation"`
	Blocked  string  `csv:"blocked"`
}

// Snapshot captures bodies in order. IDs are slice indices, so the stepper's
// insertion order must be stable across runs.
func Snapshot(step int, bodies []*entity.Body) Frame {
	f := Frame{Step: step, Bodies: make([]BodyState, len(bodies))}
	for i, b := range bodies {
		f.Bodies[i] = BodyState{
			ID:       i,
			X:        b.X,
			Y:        b.Y,
			VX:       b.Velocity.X,
			VY:       b.Velocity.Y,
			Rotation: b.Rotation,
			Blocked:  FaceMask(b.Blocked),
		}
	}
	return f
}

// FaceMask encodes the set faces as letters in "udlr" order
func FaceMask(f entity.Faces) string {
	var sb strings.Builder
	if f.Up {
		sb.WriteByte('u')
	}
	if f.Down {
		sb.WriteByte('d')
	}
	if f.Left {
		sb.WriteByte('l')
	}
	if f.Right {
		sb.WriteByte('r')
	}
	return sb.String()
}

// Rows flattens the trace for CSV export
func (t Trace) Rows() []Row {
	var rows []Row
	for _, f := range t.Frames {
		for _, b := range f.Bodies {
			rows = append(rows, Row{
				Step:     f.Step,
				ID:       b.ID,
				X:        b.X,
				Y:        b.Y,
				VX:       b.VX,
				VY:       b.VY,
				Rotation: b.Rotation,
				Blocked:  b.Blocked,
			})
		}
	}
	return rows
}
