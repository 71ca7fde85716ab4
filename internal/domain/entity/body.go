package entity

import "math"

// Body defaults
const (
	DefaultMaxVelocity       = 10000
	DefaultMaxAngular        = 1000
	DefaultMinBounceVelocity = 0.5
)

// Body is the AABB physics state attached to one visual entity.
// X/Y is the top-left corner in physics space. The entity is moved by the
// difference between X/Y and the snapshot taken at the start of the step.
type Body struct {
	entity Entity

	// Geometry
	X, Y                      float64
	Width, Height             float64 // scaled
	SourceWidth, SourceHeight float64 // unscaled
	HalfWidth, HalfHeight     float64
	Offset                    Vec2 // body offset from the entity anchor
	Center                    Vec2

	// Render-space top-left, sampled in PreUpdate
	ScreenX, ScreenY float64

	// Snapshot taken at the start of the step
	PreX, PreY  float64
	PreRotation float64

	// Kinematics
	Velocity       Vec2
	Acceleration   Vec2
	MotionVelocity Vec2 // per-step velocity delta from the motion collaborator
	PrevVelocity   Vec2
	Drag           Vec2
	Gravity        Vec2
	Bounce         Vec2 // restitution per axis (0 = none, 1 = full)
	MaxVelocity    Vec2
	Speed          float64 // |Velocity|, recomputed each step
	Angle          float64 // atan2 of Velocity, radians
	Friction       float64

	Rotation            float64 // degrees
	AngularVelocity     float64
	AngularAcceleration float64
	AngularDrag         float64
	MaxAngular          float64
	Mass                float64

	// Contact state, reset every step
	Touching    Faces
	WasTouching Faces
	Blocked     Faces
	Embedded    bool
	OverlapX    float64
	OverlapY    float64

	// Behavior flags
	Immovable          bool
	Moves              bool
	AllowRotation      bool
	AllowGravity       bool
	CollideWorldBounds bool
	CustomSeparateX    bool
	CustomSeparateY    bool
	MinBounceVelocity  float64

	Facing Facing

	// cached scale, used to detect scale changes
	sx, sy float64
}

// NewBody creates a body bound to an entity, sized from the entity's source size and scale
func NewBody(e Entity) *Body {
	sw, sh := e.SourceSize()
	b := &Body{
		entity:            e,
		SourceWidth:       sw,
		SourceHeight:      sh,
		MaxVelocity:       Vec2{X: DefaultMaxVelocity, Y: DefaultMaxVelocity},
		MaxAngular:        DefaultMaxAngular,
		Mass:              1,
		Touching:          NoFaces(),
		WasTouching:       NoFaces(),
		Blocked:           NoFaces(),
		Moves:             true,
		AllowRotation:     true,
		AllowGravity:      true,
		MinBounceVelocity: DefaultMinBounceVelocity,
		Facing:            FacingNone,
	}

	sx, sy := e.Scale()
	b.applyScale(math.Abs(sx), math.Abs(sy))

	b.X, b.Y = b.sampleTopLeft()
	b.PreX, b.PreY = b.X, b.Y
	b.Rotation = e.Angle()
	b.PreRotation = b.Rotation
	b.updateCenter()
	return b
}

// Entity returns the visual entity this body drives
func (b *Body) Entity() Entity {
	return b.entity
}

// Right returns the right edge (X + Width)
func (b *Body) Right() float64 {
	return b.X + b.Width
}

// SetRight mirrors SetBottom on the X axis, including its inverted subtraction.
func (b *Body) SetRight(value float64) {
	if value <= b.X {
		b.Width = 0
	} else {
		b.Width = b.X - value
	}
}

// Bottom returns the bottom edge (Y + Height)
func (b *Body) Bottom() float64 {
	return b.Y + b.Height
}

// SetBottom sets Height from a bottom edge. Values at or above Y zero the height;
// otherwise Height becomes Y - value, which is negative. Existing callers rely on
// this, so it is kept as is.
func (b *Body) SetBottom(value float64) {
	if value <= b.Y {
		b.Height = 0
	} else {
		b.Height = b.Y - value
	}
}

// Bounds returns the body AABB
func (b *Body) Bounds() Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// DeltaX returns the X movement since the start of the step
func (b *Body) DeltaX() float64 {
	return b.X - b.PreX
}

// DeltaY returns the Y movement since the start of the step
func (b *Body) DeltaY() float64 {
	return b.Y - b.PreY
}

// DeltaZ returns the rotation change since the start of the step
func (b *Body) DeltaZ() float64 {
	return b.Rotation - b.PreRotation
}

// DeltaAbsX returns the absolute X movement since the start of the step
func (b *Body) DeltaAbsX() float64 {
	return math.Abs(b.DeltaX())
}

// DeltaAbsY returns the absolute Y movement since the start of the step
func (b *Body) DeltaAbsY() float64 {
	return math.Abs(b.DeltaY())
}

// UpdateBounds resyncs the scaled size when the entity scale changes.
// Returns true if the size was recomputed. Non-finite scales are ignored and
// negative (mirrored) scales size the body by their magnitude.
func (b *Body) UpdateBounds(scaleX, scaleY float64) bool {
	if !isFinite(scaleX) || !isFinite(scaleY) {
		return false
	}
	scaleX, scaleY = math.Abs(scaleX), math.Abs(scaleY)
	if scaleX == b.sx && scaleY == b.sy {
		return false
	}

	b.applyScale(scaleX, scaleY)
	b.updateCenter()
	return true
}

// SetSize sets the unscaled body size and its offset from the entity anchor.
// Non-finite input is ignored; negative sizes clamp to zero.
func (b *Body) SetSize(width, height, offsetX, offsetY float64) {
	if !isFinite(width) || !isFinite(height) || !isFinite(offsetX) || !isFinite(offsetY) {
		return
	}

	b.SourceWidth = math.Max(width, 0)
	b.SourceHeight = math.Max(height, 0)
	b.applyScale(b.sx, b.sy)
	b.Offset = Vec2{X: offsetX, Y: offsetY}
	b.updateCenter()
}

// Reset zeroes motion and re-snaps position and rotation from the entity.
func (b *Body) Reset() {
	b.Velocity = Vec2{}
	b.Acceleration = Vec2{}
	b.MotionVelocity = Vec2{}
	b.AngularVelocity = 0
	b.AngularAcceleration = 0

	b.PreX, b.PreY = b.sampleTopLeft()
	b.PreRotation = b.entity.Angle()

	b.X, b.Y = b.PreX, b.PreY
	b.Rotation = b.PreRotation
	b.updateCenter()
}

// sampleTopLeft computes the physics-space top-left from the entity transform
func (b *Body) sampleTopLeft() (x, y float64) {
	wx, wy := b.entity.WorldPosition()
	ax, ay := b.entity.Anchor()
	return wx - ax*b.Width + b.Offset.X, wy - ay*b.Height + b.Offset.Y
}

func (b *Body) applyScale(sx, sy float64) {
	b.Width = b.SourceWidth * sx
	b.Height = b.SourceHeight * sy
	b.HalfWidth = math.Floor(b.Width / 2)
	b.HalfHeight = math.Floor(b.Height / 2)
	b.sx, b.sy = sx, sy
}

func (b *Body) updateCenter() {
	b.Center = Vec2{X: b.X + b.HalfWidth, Y: b.Y + b.HalfHeight}
}
