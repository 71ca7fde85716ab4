package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestBody creates a body on a top-left anchored, unscaled sprite
func newTestBody(x, y, w, h float64) (*Body, *Sprite) {
	s := NewSprite(x, y, w, h)
	return NewBody(s), s
}

func TestNewBody_Defaults(t *testing.T) {
	b, s := newTestBody(10, 20, 16, 8)

	require.NotNil(t, b)
	assert.Same(t, s, b.Entity())
	assert.Equal(t, 10.0, b.X)
	assert.Equal(t, 20.0, b.Y)
	assert.Equal(t, 16.0, b.Width)
	assert.Equal(t, 8.0, b.Height)
	assert.Equal(t, 8.0, b.HalfWidth)
	assert.Equal(t, 4.0, b.HalfHeight)
	assert.Equal(t, Vec2{X: 18, Y: 24}, b.Center)

	assert.True(t, b.Moves)
	assert.True(t, b.AllowGravity)
	assert.True(t, b.AllowRotation)
	assert.False(t, b.CollideWorldBounds)
	assert.Equal(t, DefaultMinBounceVelocity, b.MinBounceVelocity)
	assert.Equal(t, Vec2{X: DefaultMaxVelocity, Y: DefaultMaxVelocity}, b.MaxVelocity)
	assert.Equal(t, 1.0, b.Mass)
	assert.True(t, b.Touching.None)
	assert.True(t, b.WasTouching.None)
	assert.Equal(t, FacingNone, b.Facing)
}

func TestNewBody_AnchorAndScale(t *testing.T) {
	s := NewSprite(10, 20, 16, 8)
	s.AnchorX, s.AnchorY = 0.5, 0.5
	s.ScaleX, s.ScaleY = 2, 2

	b := NewBody(s)

	assert.Equal(t, 32.0, b.Width)
	assert.Equal(t, 16.0, b.Height)
	assert.Equal(t, -6.0, b.X, "anchor offset uses scaled width")
	assert.Equal(t, 12.0, b.Y)
	assert.Equal(t, Vec2{X: 10, Y: 20}, b.Center)
}

func TestBody_Edges(t *testing.T) {
	b, _ := newTestBody(5, 7, 10, 20)

	assert.Equal(t, 15.0, b.Right())
	assert.Equal(t, 27.0, b.Bottom())
	assert.Equal(t, Rect{X: 5, Y: 7, Width: 10, Height: 20}, b.Bounds())
}

// SetBottom/SetRight subtract in the opposite direction to the getters.
// These tests pin the existing behavior.
func TestBody_SetBottom(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		wantHeight float64
	}{
		{"above top zeroes height", 5, 0},
		{"at top zeroes height", 10, 0},
		{"below top gives y minus value", 30, -20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := newTestBody(0, 10, 10, 10)
			b.SetBottom(tt.value)
			assert.Equal(t, tt.wantHeight, b.Height)
		})
	}
}

func TestBody_SetRight(t *testing.T) {
	b, _ := newTestBody(10, 0, 10, 10)

	b.SetRight(4)
	assert.Equal(t, 0.0, b.Width)

	b.SetRight(25)
	assert.Equal(t, -15.0, b.Width)
}

func TestBody_Deltas(t *testing.T) {
	b, _ := newTestBody(0, 0, 10, 10)
	b.PreX, b.PreY, b.PreRotation = 10, 20, 30
	b.X, b.Y, b.Rotation = 7, 25, 45

	assert.Equal(t, -3.0, b.DeltaX())
	assert.Equal(t, 5.0, b.DeltaY())
	assert.Equal(t, 15.0, b.DeltaZ())
	assert.Equal(t, 3.0, b.DeltaAbsX())
	assert.Equal(t, 5.0, b.DeltaAbsY())
}

func TestBody_UpdateBounds(t *testing.T) {
	b, _ := newTestBody(0, 0, 10, 6)

	assert.False(t, b.UpdateBounds(1, 1), "unchanged scale is a no-op")

	require.True(t, b.UpdateBounds(2, 3))
	assert.Equal(t, 20.0, b.Width)
	assert.Equal(t, 18.0, b.Height)
	assert.Equal(t, 10.0, b.HalfWidth)
	assert.Equal(t, 9.0, b.HalfHeight)
	assert.Equal(t, Vec2{X: 10, Y: 9}, b.Center)

	assert.False(t, b.UpdateBounds(2, 3))
	assert.False(t, b.UpdateBounds(-2, -3), "mirrored scale keeps the same size")
}

func TestBody_UpdateBounds_IgnoresNonFinite(t *testing.T) {
	b, _ := newTestBody(0, 0, 10, 10)

	assert.False(t, b.UpdateBounds(math.NaN(), 1))
	assert.False(t, b.UpdateBounds(1, math.Inf(1)))
	assert.Equal(t, 10.0, b.Width)
	assert.Equal(t, 10.0, b.Height)
}

func TestBody_HalfExtentsFloor(t *testing.T) {
	b, _ := newTestBody(0, 0, 11, 7)

	assert.Equal(t, 5.0, b.HalfWidth)
	assert.Equal(t, 3.0, b.HalfHeight)
}

func TestBody_SetSize(t *testing.T) {
	s := NewSprite(0, 0, 10, 10)
	s.ScaleX, s.ScaleY = 2, 2
	b := NewBody(s)

	b.SetSize(4, 6, 1, 2)

	assert.Equal(t, 4.0, b.SourceWidth)
	assert.Equal(t, 6.0, b.SourceHeight)
	assert.Equal(t, 8.0, b.Width, "size is scaled by the cached scale")
	assert.Equal(t, 12.0, b.Height)
	assert.Equal(t, 4.0, b.HalfWidth)
	assert.Equal(t, 6.0, b.HalfHeight)
	assert.Equal(t, Vec2{X: 1, Y: 2}, b.Offset)
	assert.Equal(t, Vec2{X: 4, Y: 6}, b.Center)
}

func TestBody_SetSize_Guards(t *testing.T) {
	b, _ := newTestBody(0, 0, 10, 10)

	b.SetSize(math.NaN(), 5, 0, 0)
	assert.Equal(t, 10.0, b.Width, "non-finite input is ignored")

	b.SetSize(-4, -1, 0, 0)
	assert.Equal(t, 0.0, b.Width)
	assert.Equal(t, 0.0, b.Height)
	assert.Equal(t, 0.0, b.HalfWidth)
}

func TestBody_SetSize_OffsetAppliesOnNextSnapshot(t *testing.T) {
	b, _ := newTestBody(50, 50, 10, 10)
	b.SetSize(10, 10, 3, -2)

	b.PreUpdate(Step{Elapsed: 1.0 / 60})

	assert.Equal(t, 53.0, b.X)
	assert.Equal(t, 48.0, b.Y)
}

func TestBody_Reset(t *testing.T) {
	b, s := newTestBody(0, 0, 10, 10)
	b.Velocity = Vec2{X: 30, Y: -40}
	b.Acceleration = Vec2{X: 1, Y: 2}
	b.MotionVelocity = Vec2{X: 3, Y: 4}
	b.AngularVelocity = 90
	b.AngularAcceleration = 10

	s.X, s.Y = 40, 60
	s.Rotation = 15

	b.Reset()

	assert.True(t, b.Velocity.IsZero())
	assert.True(t, b.Acceleration.IsZero())
	assert.True(t, b.MotionVelocity.IsZero())
	assert.Zero(t, b.AngularVelocity)
	assert.Zero(t, b.AngularAcceleration)
	assert.Equal(t, 40.0, b.X)
	assert.Equal(t, 60.0, b.Y)
	assert.Equal(t, 40.0, b.PreX)
	assert.Equal(t, 60.0, b.PreY)
	assert.Equal(t, 15.0, b.Rotation)
	assert.Equal(t, 15.0, b.PreRotation)
	assert.Equal(t, Vec2{X: 45, Y: 65}, b.Center)
}

func TestBody_Reset_Idempotent(t *testing.T) {
	b, s := newTestBody(0, 0, 10, 10)
	b.Velocity = Vec2{X: 12, Y: 7}
	s.X = 33

	b.Reset()
	first := *b
	b.Reset()

	assert.Equal(t, first, *b)
}
