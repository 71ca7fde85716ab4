package entity

// Entity is the visual object a Body is attached to.
// The body reads transform state from it and writes position/rotation deltas back.
type Entity interface {
	// WorldPosition returns the anchor point in physics (world) space
	WorldPosition() (x, y float64)
	// ScreenPosition returns the anchor point in render space
	ScreenPosition() (x, y float64)
	// Anchor returns the anchor as a fraction of the size (0,0 = top-left)
	Anchor() (x, y float64)
	// Scale returns the current scale factors
	Scale() (x, y float64)
	// SourceSize returns the unscaled size
	SourceSize() (w, h float64)
	// Angle returns the rotation in degrees
	Angle() float64

	Translate(dx, dy float64)
	Rotate(dz float64)
}

// Sprite is a minimal Entity: a sized, anchored, scaled rectangle with a camera offset.
type Sprite struct {
	X, Y             float64 // world position of the anchor
	AnchorX, AnchorY float64
	ScaleX, ScaleY   float64
	Width, Height    float64 // unscaled
	Rotation         float64 // degrees

	// CameraX/CameraY are subtracted from the world position to get screen space
	CameraX, CameraY float64
}

// NewSprite creates a sprite of the given unscaled size at a world position.
// Anchor defaults to top-left and scale to 1.
func NewSprite(x, y, w, h float64) *Sprite {
	return &Sprite{
		X:      x,
		Y:      y,
		ScaleX: 1,
		ScaleY: 1,
		Width:  w,
		Height: h,
	}
}

func (s *Sprite) WorldPosition() (float64, float64) { return s.X, s.Y }

func (s *Sprite) ScreenPosition() (float64, float64) { return s.X - s.CameraX, s.Y - s.CameraY }

func (s *Sprite) Anchor() (float64, float64) { return s.AnchorX, s.AnchorY }

func (s *Sprite) Scale() (float64, float64) { return s.ScaleX, s.ScaleY }

func (s *Sprite) SourceSize() (float64, float64) { return s.Width, s.Height }

func (s *Sprite) Angle() float64 { return s.Rotation }

// Translate moves the sprite by a delta
func (s *Sprite) Translate(dx, dy float64) {
	s.X += dx
	s.Y += dy
}

// Rotate adds a rotation delta in degrees
func (s *Sprite) Rotate(dz float64) {
	s.Rotation += dz
}

// Center returns the center of the scaled sprite in world space
func (s *Sprite) Center() (float64, float64) {
	w, h := s.Width*s.ScaleX, s.Height*s.ScaleY
	return s.X - s.AnchorX*w + w/2, s.Y - s.AnchorY*h + h/2
}
