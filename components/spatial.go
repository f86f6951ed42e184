package components

import "gonum.org/v1/gonum/spatial/r2"

// Position represents an entity's field position.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's displacement per tick.
type Velocity struct {
	X, Y float64
}

// Body holds the collision radius. It never changes after creation.
type Body struct {
	Radius float64
}

// Vec returns the position as a gonum vector.
func (p Position) Vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

// Set overwrites the position from a vector.
func (p *Position) Set(v r2.Vec) { p.X, p.Y = v.X, v.Y }

// Vec returns the velocity as a gonum vector.
func (v Velocity) Vec() r2.Vec { return r2.Vec{X: v.X, Y: v.Y} }

// Set overwrites the velocity from a vector.
func (v *Velocity) Set(u r2.Vec) { v.X, v.Y = u.X, u.Y }
