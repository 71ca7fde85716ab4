package system

import "github.com/younwookim/arcadebody/internal/domain/entity"

// ArcadeMotion is the default motion collaborator. It integrates world and
// body gravity, acceleration and drag into each body's MotionVelocity and
// advances angular velocity and rotation.
type ArcadeMotion struct {
	Gravity entity.Vec2
}

// NewArcadeMotion creates a motion updater with world gravity
func NewArcadeMotion(gravity entity.Vec2) *ArcadeMotion {
	return &ArcadeMotion{Gravity: gravity}
}

// UpdateMotion implements entity.MotionUpdater
func (m *ArcadeMotion) UpdateMotion(b *entity.Body, elapsed float64) {
	b.AngularVelocity = computeVelocity(b.AngularVelocity, 0, b.AngularAcceleration, b.AngularDrag, b.MaxAngular, elapsed)
	b.Rotation += b.AngularVelocity * elapsed

	var gx, gy float64
	if b.AllowGravity {
		gx = m.Gravity.X + b.Gravity.X
		gy = m.Gravity.Y + b.Gravity.Y
	}

	vx := computeVelocity(b.Velocity.X, gx, b.Acceleration.X, b.Drag.X, b.MaxVelocity.X, elapsed)
	vy := computeVelocity(b.Velocity.Y, gy, b.Acceleration.Y, b.Drag.Y, b.MaxVelocity.Y, elapsed)

	b.MotionVelocity.X = vx - b.Velocity.X
	b.MotionVelocity.Y = vy - b.Velocity.Y
}

// computeVelocity returns the velocity after one step. Drag only applies when
// there is no acceleration and never reverses the sign.
func computeVelocity(v, gravity, accel, drag, limit, dt float64) float64 {
	v += gravity * dt

	if accel != 0 {
		v += accel * dt
	} else if drag != 0 {
		d := drag * dt
		switch {
		case v-d > 0:
			v -= d
		case v+d < 0:
			v += d
		default:
			v = 0
		}
	}

	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
