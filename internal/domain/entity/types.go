package entity

import "math"

// Vec2 is a 2D vector in physics space
type Vec2 struct {
	X, Y float64
}

// IsZero returns true if both components are exactly zero
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Len returns the vector magnitude
func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// IsFinite returns false if either component is NaN or infinite
func (v Vec2) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y)
}

// Rect is an axis-aligned rectangle (top-left origin, Y down)
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Right returns the right edge (X + Width)
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the bottom edge (Y + Height)
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains reports whether the other rect lies fully inside r (edges inclusive)
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Faces is a per-step set of contact flags, one field per cardinal face.
// None is true when no face is set.
type Faces struct {
	None  bool
	Up    bool
	Down  bool
	Left  bool
	Right bool
}

// NoFaces returns a face set with no contact
func NoFaces() Faces {
	return Faces{None: true}
}

// Clear resets the set to "no contact"
func (f *Faces) Clear() {
	*f = NoFaces()
}

// Any returns true if at least one face is set
func (f Faces) Any() bool {
	return f.Up || f.Down || f.Left || f.Right
}

// Facing is the cardinal direction a body last moved in
type Facing int

const (
	FacingNone Facing = iota
	FacingLeft
	FacingRight
	FacingUp
	FacingDown
)

// String returns the string representation of the facing
func (f Facing) String() string {
	switch f {
	case FacingNone:
		return "None"
	case FacingLeft:
		return "Left"
	case FacingRight:
		return "Right"
	case FacingUp:
		return "Up"
	case FacingDown:
		return "Down"
	default:
		return "Unknown"
	}
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
