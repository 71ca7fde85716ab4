package entity

import "math"

// MotionUpdater turns gravity, acceleration and drag into a per-step velocity
// delta (MotionVelocity). It may also advance angular state.
type MotionUpdater interface {
	UpdateMotion(b *Body, elapsed float64)
}

// MotionFunc adapts a function to MotionUpdater
type MotionFunc func(b *Body, elapsed float64)

// UpdateMotion calls f(b, elapsed)
func (f MotionFunc) UpdateMotion(b *Body, elapsed float64) {
	f(b, elapsed)
}

// Step carries everything a body needs for one simulation step
type Step struct {
	Elapsed float64 // seconds
	Bounds  Rect    // static world bounds
	Motion  MotionUpdater
}

// PreUpdate snapshots the step-start state, resets per-step contact flags and,
// for moving bodies, runs the world bounds check, the motion collaborator and
// the integrator in that order.
func (b *Body) PreUpdate(step Step) {
	b.WasTouching = b.Touching
	b.Touching.Clear()
	b.Embedded = false

	ax, ay := b.entity.Anchor()
	sx, sy := b.entity.ScreenPosition()
	b.ScreenX = sx - ax*b.Width + b.Offset.X
	b.ScreenY = sy - ay*b.Height + b.Offset.Y

	b.PreX, b.PreY = b.sampleTopLeft()
	b.PreRotation = b.entity.Angle()

	b.X, b.Y = b.PreX, b.PreY
	b.Rotation = b.PreRotation

	b.Speed = b.Velocity.Len()
	b.Angle = math.Atan2(b.Velocity.Y, b.Velocity.X)

	b.Blocked.Clear()
	b.OverlapX, b.OverlapY = 0, 0

	if b.Moves {
		if b.CollideWorldBounds {
			b.CheckWorldBounds(step.Bounds)
		}
		if step.Motion != nil {
			step.Motion.UpdateMotion(b, step.Elapsed)
		}
		b.ApplyMotion(step.Elapsed)
	}

	b.PrevVelocity = b.Velocity
}

// CheckWorldBounds records penetration of the world edges in OverlapX/OverlapY
// and the matching Blocked face. At most one face per axis is set. A body
// resting exactly on an edge counts as blocked only while moving into it.
// Position is not changed here.
func (b *Body) CheckWorldBounds(bounds Rect) {
	switch {
	case b.X < bounds.X || (b.X == bounds.X && b.Velocity.X < 0):
		b.OverlapX = bounds.X - b.X
		b.Blocked.Left = true
		b.Blocked.None = false
	case b.Right() > bounds.Right() || (b.Right() == bounds.Right() && b.Velocity.X > 0):
		b.OverlapX = b.Right() - bounds.Right()
		b.Blocked.Right = true
		b.Blocked.None = false
	}

	switch {
	case b.Y < bounds.Y || (b.Y == bounds.Y && b.Velocity.Y < 0):
		b.OverlapY = bounds.Y - b.Y
		b.Blocked.Up = true
		b.Blocked.None = false
	case b.Bottom() > bounds.Bottom() || (b.Bottom() == bounds.Bottom() && b.Velocity.Y > 0):
		b.OverlapY = b.Bottom() - bounds.Bottom()
		b.Blocked.Down = true
		b.Blocked.None = false
	}
}

// ApplyMotion advances position and velocity by one step of elapsed seconds,
// separating and bouncing on blocked faces, then clamps velocity to MaxVelocity.
func (b *Body) ApplyMotion(elapsed float64) {
	if b.Friction > 0 && b.Acceleration.IsZero() {
		if b.Speed > b.Friction {
			b.Speed -= b.Friction
		} else {
			b.Speed = 0
		}
		b.Velocity.X = math.Cos(b.Angle) * b.Speed
		b.Velocity.Y = math.Sin(b.Angle) * b.Speed
	}

	b.applyMotionX(elapsed)
	b.applyMotionY(elapsed)

	b.Velocity.X = clamp(b.Velocity.X, b.MaxVelocity.X)
	b.Velocity.Y = clamp(b.Velocity.Y, b.MaxVelocity.Y)
}

func (b *Body) applyMotionX(elapsed float64) {
	switch {
	case b.Blocked.Left:
		b.X += b.OverlapX
		b.PreX = b.X

		if -b.Velocity.X > b.MinBounceVelocity && b.Bounce.X != 0 {
			b.Velocity.X *= -b.Bounce.X
			b.X += elapsed * (b.Velocity.X + b.MotionVelocity.X/2)
			b.Velocity.X += b.MotionVelocity.X
		} else {
			b.Velocity.X = 0
			b.MotionVelocity.X = 0
		}

	case b.Blocked.Right:
		b.X -= b.OverlapX
		b.PreX = b.X

		// The gate reads the Y axis here, unlike the left face.
		if b.Velocity.Y > b.MinBounceVelocity && b.Bounce.Y != 0 {
			b.Velocity.X *= -b.Bounce.X
			b.X += elapsed * (b.Velocity.X + b.MotionVelocity.X/2)
			b.Velocity.X += b.MotionVelocity.X
		} else {
			b.Velocity.X = 0
			b.MotionVelocity.X = 0
		}

	default:
		b.X += elapsed * (b.Velocity.X + b.MotionVelocity.X/2)
		b.Velocity.X += b.MotionVelocity.X
	}
}

func (b *Body) applyMotionY(elapsed float64) {
	switch {
	case b.Blocked.Up:
		b.Y += b.OverlapY
		b.Velocity.Y *= -b.Bounce.Y

		dy := elapsed * (b.Velocity.Y + b.MotionVelocity.Y/2)
		if dy > b.MinBounceVelocity {
			b.Y += dy
			b.Velocity.Y += b.MotionVelocity.Y
		} else {
			b.PreY = b.Y
			b.Velocity.Y = 0
			b.MotionVelocity.Y = 0
		}

	case b.Blocked.Down:
		b.Y -= b.OverlapY
		b.Velocity.Y *= -b.Bounce.Y

		dy := elapsed * (b.Velocity.Y + b.MotionVelocity.Y/2)
		if dy < -b.MinBounceVelocity {
			b.Y += dy
			b.Velocity.Y += b.MotionVelocity.Y
		} else {
			b.PreY = b.Y
			b.Velocity.Y = 0
			b.MotionVelocity.Y = 0
		}

	default:
		b.Y += elapsed * (b.Velocity.Y + b.MotionVelocity.Y/2)
		b.Velocity.Y += b.MotionVelocity.Y
	}
}

// PostUpdate writes this step's position and rotation deltas to the entity.
// Bodies with Moves=false are left alone.
func (b *Body) PostUpdate() {
	if !b.Moves {
		return
	}

	dx, dy := b.DeltaX(), b.DeltaY()

	if dx < 0 {
		b.Facing = FacingLeft
	} else if dx > 0 {
		b.Facing = FacingRight
	}
	if dy < 0 {
		b.Facing = FacingUp
	} else if dy > 0 {
		b.Facing = FacingDown
	}

	if dx != 0 || dy != 0 {
		b.entity.Translate(dx, dy)
	}
	b.updateCenter()

	if b.AllowRotation {
		if dz := b.DeltaZ(); dz != 0 {
			b.entity.Rotate(dz)
		}
	}
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}
