// Package components defines ECS components for the simulation.
package components

import "math"

// Target is a destructible disk. Mass and ScoreValue are fixed at creation.
type Target struct {
	ID         uint32
	Mass       float64
	ScoreValue int
	Color      uint8 // palette index, cosmetic only
}

// NewTarget derives mass and score value from the radius.
func NewTarget(id uint32, radius, density float64, color uint8) Target {
	return Target{
		ID:         id,
		Mass:       density * math.Pi * radius * radius,
		ScoreValue: int(radius * 2),
		Color:      color,
	}
}

// Projectile marks a disk fired from the cannon.
type Projectile struct {
	ID uint32
}
