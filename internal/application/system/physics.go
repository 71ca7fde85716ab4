package system

import (
	"log/slog"
	"slices"

	"github.com/younwookim/arcadebody/internal/application/state"
	"github.com/younwookim/arcadebody/internal/domain/entity"
)

// Resolver handles body-vs-body collision between the pre-step and post-step
// phases. It may adjust positions, velocities and contact flags of any body.
type Resolver interface {
	Resolve(bodies []*entity.Body)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(bodies []*entity.Body)

// Resolve calls f(bodies)
func (f ResolverFunc) Resolve(bodies []*entity.Body) {
	f(bodies)
}

// PhysicsSystem steps an ordered set of bodies against static world bounds.
// Each step runs PreUpdate for every body, then the resolvers, then PostUpdate.
// Bodies are processed in insertion order so runs are reproducible.
type PhysicsSystem struct {
	bounds    entity.Rect
	motion    entity.MotionUpdater
	resolvers []Resolver
	bodies    []*entity.Body
	phase     state.Phase
	steps     int
	logger    *slog.Logger
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(bounds entity.Rect, motion entity.MotionUpdater, logger *slog.Logger) *PhysicsSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PhysicsSystem{
		bounds: bounds,
		motion: motion,
		phase:  state.PhaseIdle,
		logger: logger,
	}
}

// Add registers bodies with the system
func (s *PhysicsSystem) Add(bodies ...*entity.Body) {
	s.bodies = append(s.bodies, bodies...)
}

// Remove unregisters a body, keeping the order of the rest. Returns false if it was not registered.
func (s *PhysicsSystem) Remove(b *entity.Body) bool {
	i := slices.Index(s.bodies, b)
	if i < 0 {
		return false
	}
	s.bodies = slices.Delete(s.bodies, i, i+1)
	return true
}

// Clear removes all bodies
func (s *PhysicsSystem) Clear() {
	s.bodies = nil
}

// AddResolver appends a resolver run between the pre-step and post-step phases
func (s *PhysicsSystem) AddResolver(r Resolver) {
	s.resolvers = append(s.resolvers, r)
}

// Bodies returns the registered bodies in step order. The slice must not be modified.
func (s *PhysicsSystem) Bodies() []*entity.Body { return s.bodies }

// Len returns the number of registered bodies
func (s *PhysicsSystem) Len() int { return len(s.bodies) }

// Bounds returns the world bounds
func (s *PhysicsSystem) Bounds() entity.Rect { return s.bounds }

// SetBounds replaces the world bounds from the next step on
func (s *PhysicsSystem) SetBounds(r entity.Rect) { s.bounds = r }

// SetMotion replaces the motion collaborator
func (s *PhysicsSystem) SetMotion(m entity.MotionUpdater) { s.motion = m }

// Phase returns the phase the system is in
func (s *PhysicsSystem) Phase() state.Phase { return s.phase }

// Steps returns the number of completed steps
func (s *PhysicsSystem) Steps() int { return s.steps }

// Step advances every body by dt seconds
func (s *PhysicsSystem) Step(dt float64) {
	step := entity.Step{Elapsed: dt, Bounds: s.bounds, Motion: s.motion}

	s.advance() // PreStep
	for _, b := range s.bodies {
		sx, sy := b.Entity().Scale()
		b.UpdateBounds(sx, sy)
		b.PreUpdate(step)
	}

	s.advance() // Resolve
	for _, r := range s.resolvers {
		r.Resolve(s.bodies)
	}

	s.advance() // PostStep
	for i, b := range s.bodies {
		if !b.Velocity.IsFinite() || !(entity.Vec2{X: b.X, Y: b.Y}).IsFinite() {
			s.logger.Warn("non-finite body state, resetting",
				"step", s.steps,
				"body", i,
				"x", b.X,
				"y", b.Y,
				"vx", b.Velocity.X,
				"vy", b.Velocity.Y,
			)
			b.Reset()
		}
		b.PostUpdate()
	}

	s.advance() // Idle
	s.steps++
}

// Stats returns speed and energy statistics over all bodies
func (s *PhysicsSystem) Stats() EnergyReport {
	return Measure(s.bodies)
}

func (s *PhysicsSystem) advance() {
	s.phase = s.phase.Next()
}
