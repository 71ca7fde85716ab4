package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/younwookim/arcadebody/internal/domain/entity"
)

// ErrInvalidConfig is wrapped by every validation error
var ErrInvalidConfig = errors.New("invalid config")

// SimulationConfig is the root config for a simulation file (JSON or YAML)
type SimulationConfig struct {
	Name    string          `json:"name" yaml:"name"`
	Display DisplayConfig   `json:"display" yaml:"display"`
	World   WorldConfig     `json:"world" yaml:"world"`
	Physics PhysicsSettings `json:"physics" yaml:"physics"`
	Bodies  []BodyConfig    `json:"bodies" yaml:"bodies"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth" yaml:"screen_width"`
	ScreenHeight int `json:"screenHeight" yaml:"screen_height"`
	Scale        int `json:"scale" yaml:"scale"`
	Framerate    int `json:"framerate" yaml:"framerate"`
}

// WorldConfig is the static world bounds rectangle
type WorldConfig struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

type PhysicsSettings struct {
	// FixedStep is the simulation step in seconds. 0 means 1/Framerate.
	FixedStep float64 `json:"fixedStep" yaml:"fixed_step"`
	Gravity   XY      `json:"gravity" yaml:"gravity"`
	Seed      int64   `json:"seed" yaml:"seed"`
}

// XY is a pair of floats
type XY struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// BodyConfig describes one body, or a row of Count identical bodies spaced by Spacing.
// Pointer fields fall back to the body defaults when omitted.
type BodyConfig struct {
	Name    string  `json:"name" yaml:"name"`
	Count   int     `json:"count" yaml:"count"`
	Spacing XY      `json:"spacing" yaml:"spacing"`
	X       float64 `json:"x" yaml:"x"`
	Y       float64 `json:"y" yaml:"y"`
	Width   float64 `json:"width" yaml:"width"`
	Height  float64 `json:"height" yaml:"height"`
	Anchor  XY      `json:"anchor" yaml:"anchor"`
	Scale   *XY     `json:"scale" yaml:"scale"`
	Offset  XY      `json:"offset" yaml:"offset"`

	Velocity          XY       `json:"velocity" yaml:"velocity"`
	Acceleration      XY       `json:"acceleration" yaml:"acceleration"`
	Drag              XY       `json:"drag" yaml:"drag"`
	Gravity           XY       `json:"gravity" yaml:"gravity"`
	Bounce            XY       `json:"bounce" yaml:"bounce"`
	MaxVelocity       *XY      `json:"maxVelocity" yaml:"max_velocity"`
	Friction          float64  `json:"friction" yaml:"friction"`
	MinBounceVelocity *float64 `json:"minBounceVelocity" yaml:"min_bounce_velocity"`
	Mass              float64  `json:"mass" yaml:"mass"`

	AngularVelocity float64  `json:"angularVelocity" yaml:"angular_velocity"`
	AngularDrag     float64  `json:"angularDrag" yaml:"angular_drag"`
	MaxAngular      *float64 `json:"maxAngular" yaml:"max_angular"`

	CollideWorldBounds bool  `json:"collideWorldBounds" yaml:"collide_world_bounds"`
	Immovable          bool  `json:"immovable" yaml:"immovable"`
	Moves              *bool `json:"moves" yaml:"moves"`
	AllowGravity       *bool `json:"allowGravity" yaml:"allow_gravity"`
	AllowRotation      *bool `json:"allowRotation" yaml:"allow_rotation"`
}

// Bounds returns the world rectangle
func (w WorldConfig) Bounds() entity.Rect {
	return entity.Rect{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}

// Vec returns the pair as a vector
func (v XY) Vec() entity.Vec2 {
	return entity.Vec2{X: v.X, Y: v.Y}
}

// StepSeconds returns the fixed step duration
func (c *SimulationConfig) StepSeconds() float64 {
	if c.Physics.FixedStep > 0 {
		return c.Physics.FixedStep
	}
	if c.Display.Framerate > 0 {
		return 1.0 / float64(c.Display.Framerate)
	}
	return 1.0 / 60.0
}

// Validate checks values that would put non-finite or negative numbers into the simulation
func (c *SimulationConfig) Validate() error {
	if c.World.Width <= 0 || c.World.Height <= 0 {
		return fmt.Errorf("%w: world size must be positive, got %vx%v", ErrInvalidConfig, c.World.Width, c.World.Height)
	}
	if c.Physics.FixedStep < 0 {
		return fmt.Errorf("%w: fixed step must not be negative", ErrInvalidConfig)
	}
	if !finite(c.Physics.Gravity.X, c.Physics.Gravity.Y, c.Physics.FixedStep) {
		return fmt.Errorf("%w: physics values must be finite", ErrInvalidConfig)
	}
	for i, b := range c.Bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d (%s): %w", i, b.Name, err)
		}
	}
	return nil
}

// Validate checks a single body entry
func (b BodyConfig) Validate() error {
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative size %vx%v", ErrInvalidConfig, b.Width, b.Height)
	}
	if b.Count < 0 {
		return fmt.Errorf("%w: negative count %d", ErrInvalidConfig, b.Count)
	}
	if b.Mass < 0 || b.Friction < 0 {
		return fmt.Errorf("%w: mass and friction must not be negative", ErrInvalidConfig)
	}
	if !finite(
		b.X, b.Y, b.Width, b.Height, b.Spacing.X, b.Spacing.Y, b.Offset.X, b.Offset.Y,
		b.Velocity.X, b.Velocity.Y, b.Acceleration.X, b.Acceleration.Y,
		b.Drag.X, b.Drag.Y, b.Gravity.X, b.Gravity.Y, b.Bounce.X, b.Bounce.Y,
		b.Friction, b.Mass, b.AngularVelocity, b.AngularDrag,
	) {
		return fmt.Errorf("%w: body values must be finite", ErrInvalidConfig)
	}
	// clamp pins velocity to -limit when the limit is negative
	if b.MaxVelocity != nil {
		if !finite(b.MaxVelocity.X, b.MaxVelocity.Y) || b.MaxVelocity.X < 0 || b.MaxVelocity.Y < 0 {
			return fmt.Errorf("%w: max velocity must be finite and not negative, got %v", ErrInvalidConfig, *b.MaxVelocity)
		}
	}
	if b.MaxAngular != nil && (!finite(*b.MaxAngular) || *b.MaxAngular < 0) {
		return fmt.Errorf("%w: max angular must be finite and not negative, got %v", ErrInvalidConfig, *b.MaxAngular)
	}
	if b.MinBounceVelocity != nil && !finite(*b.MinBounceVelocity) {
		return fmt.Errorf("%w: min bounce velocity must be finite", ErrInvalidConfig)
	}
	return nil
}

// Instances returns how many bodies this entry spawns
func (b BodyConfig) Instances() int {
	if b.Count <= 0 {
		return 1
	}
	return b.Count
}

// Apply copies the configured kinematics and flags onto a body
func (b BodyConfig) Apply(body *entity.Body) {
	if b.Offset != (XY{}) {
		body.SetSize(body.SourceWidth, body.SourceHeight, b.Offset.X, b.Offset.Y)
	}

	body.Velocity = b.Velocity.Vec()
	body.Acceleration = b.Acceleration.Vec()
	body.Drag = b.Drag.Vec()
	body.Gravity = b.Gravity.Vec()
	body.Bounce = b.Bounce.Vec()
	body.Friction = b.Friction
	body.AngularVelocity = b.AngularVelocity
	body.AngularDrag = b.AngularDrag
	body.CollideWorldBounds = b.CollideWorldBounds
	body.Immovable = b.Immovable

	if b.MaxVelocity != nil {
		body.MaxVelocity = b.MaxVelocity.Vec()
	}
	if b.MinBounceVelocity != nil {
		body.MinBounceVelocity = *b.MinBounceVelocity
	}
	if b.MaxAngular != nil {
		body.MaxAngular = *b.MaxAngular
	}
	if b.Mass > 0 {
		body.Mass = b.Mass
	}
	if b.Moves != nil {
		body.Moves = *b.Moves
	}
	if b.AllowGravity != nil {
		body.AllowGravity = *b.AllowGravity
	}
	if b.AllowRotation != nil {
		body.AllowRotation = *b.AllowRotation
	}
}

func finite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
