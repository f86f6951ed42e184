// Package systems contains ECS systems for the simulation.
package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/barrage/components"
)

// Bounds represents the field rectangle anchored at the origin.
type Bounds struct {
	Width, Height float64
}

// Contains reports whether a point lies inside the rectangle, edges included.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x <= b.Width && y >= 0 && y <= b.Height
}

// Integrate advances a position by one tick of its velocity.
func Integrate(pos *components.Position, vel components.Velocity) {
	pos.X += vel.X
	pos.Y += vel.Y
}

// ReflectWalls keeps a disk inside the bounds. Each axis is handled on its own:
// a leading edge past a wall is clamped back onto it and that axis's velocity
// is pointed away from the wall. Returns true if any wall was touched.
func ReflectWalls(pos *components.Position, vel *components.Velocity, radius float64, b Bounds) bool {
	hit := false

	if pos.X-radius < 0 {
		pos.X = radius
		vel.X = math.Abs(vel.X)
		hit = true
	} else if pos.X+radius > b.Width {
		pos.X = b.Width - radius
		vel.X = -math.Abs(vel.X)
		hit = true
	}

	if pos.Y-radius < 0 {
		pos.Y = radius
		vel.Y = math.Abs(vel.Y)
		hit = true
	} else if pos.Y+radius > b.Height {
		pos.Y = b.Height - radius
		vel.Y = -math.Abs(vel.Y)
		hit = true
	}

	return hit
}

// ClampToBounds moves a disk back inside the bounds without touching its
// velocity. Returns true if the position changed.
func ClampToBounds(pos *components.Position, radius float64, b Bounds) bool {
	x := min(max(pos.X, radius), b.Width-radius)
	y := min(max(pos.Y, radius), b.Height-radius)
	if x == pos.X && y == pos.Y {
		return false
	}
	pos.X, pos.Y = x, y
	return true
}

// PhysicsSystem moves targets and projectiles.
type PhysicsSystem struct {
	targets     *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Target]
	projectiles *ecs.Filter3[components.Position, components.Velocity, components.Projectile]
	bounds      Bounds
}

// NewPhysicsSystem creates a new physics system.
func NewPhysicsSystem(w *ecs.World, bounds Bounds) *PhysicsSystem {
	return &PhysicsSystem{
		targets:     ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Target](w),
		projectiles: ecs.NewFilter3[components.Position, components.Velocity, components.Projectile](w),
		bounds:      bounds,
	}
}

// Update integrates every body by one tick. Targets bounce off the walls;
// projectiles fly free. Returns the number of targets that touched a wall.
func (s *PhysicsSystem) Update() int {
	bounces := 0

	query := s.targets.Query()
	for query.Next() {
		pos, vel, body, _ := query.Get()
		Integrate(pos, *vel)
		if ReflectWalls(pos, vel, body.Radius, s.bounds) {
			bounces++
		}
	}

	pq := s.projectiles.Query()
	for pq.Next() {
		pos, vel, _ := pq.Get()
		Integrate(pos, *vel)
	}

	return bounces
}

// Contain clamps every target back inside the field. Pair resolution can push
// a disk through a wall after reflection, so this runs last in the tick.
// Returns the number of targets moved.
func (s *PhysicsSystem) Contain() int {
	moved := 0
	query := s.targets.Query()
	for query.Next() {
		pos, _, body, _ := query.Get()
		if ClampToBounds(pos, body.Radius, s.bounds) {
			moved++
		}
	}
	return moved
}
