package game

import (
	"math"

	"github.com/pthm-cable/barrage/config"
)

// Cannon holds the emitter parameters set by the player. Changes only affect
// the next shot.
type Cannon struct {
	Angle  float64 // degrees above the horizontal
	Power  float64 // projectile speed per tick
	Y      float64 // pivot height
	Barrel float64 // barrel length, sets the muzzle position

	limits config.CannonConfig
	minY   float64
	maxY   float64
}

// NewCannon creates a cannon at the configured defaults.
func NewCannon(cfg *config.Config) Cannon {
	return Cannon{
		Angle:  cfg.Cannon.DefaultAngle,
		Power:  cfg.Cannon.DefaultPower,
		Y:      cfg.Derived.CannonY,
		Barrel: cfg.Cannon.DefaultBarrel,
		limits: cfg.Cannon,
		minY:   cfg.Derived.MinCannonY,
		maxY:   cfg.Derived.MaxCannonY,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// SetAngle sets the launch angle, clamped to the configured range.
func (c *Cannon) SetAngle(deg float64) {
	c.Angle = clamp(deg, c.limits.MinAngle, c.limits.MaxAngle)
}

// SetPower sets the launch speed, clamped to the configured range.
func (c *Cannon) SetPower(p float64) {
	c.Power = clamp(p, c.limits.MinPower, c.limits.MaxPower)
}

// SetY sets the emitter height, clamped to the configured range.
func (c *Cannon) SetY(y float64) {
	c.Y = clamp(y, c.minY, c.maxY)
}

// SetBarrel sets the barrel length, clamped to the configured range.
func (c *Cannon) SetBarrel(l float64) {
	c.Barrel = clamp(l, c.limits.MinBarrel, c.limits.MaxBarrel)
}

// NudgeAngle changes the angle by delta. Results outside the range are
// ignored rather than clamped. Returns whether the angle changed.
func (c *Cannon) NudgeAngle(delta float64) bool {
	a := c.Angle + delta
	if a < c.limits.MinAngle || a > c.limits.MaxAngle {
		return false
	}
	c.Angle = a
	return true
}

// NudgeY moves the emitter by delta, ignoring moves that leave the range.
func (c *Cannon) NudgeY(delta float64) bool {
	y := c.Y + delta
	if y < c.minY || y > c.maxY {
		return false
	}
	c.Y = y
	return true
}

func (c Cannon) radians() float64 {
	return c.Angle * math.Pi / 180
}

// Velocity returns the launch velocity. Screen Y grows downward, so a
// positive angle yields a negative Y component.
func (c Cannon) Velocity() (vx, vy float64) {
	rad := c.radians()
	return c.Power * math.Cos(rad), -c.Power * math.Sin(rad)
}

// Pivot returns the point the barrel rotates around.
func (c Cannon) Pivot() (x, y float64) {
	return c.limits.BaseX, c.Y
}

// Muzzle returns the barrel tip, where projectiles appear.
func (c Cannon) Muzzle() (x, y float64) {
	rad := c.radians()
	return c.limits.BaseX + c.Barrel*math.Cos(rad), c.Y - c.Barrel*math.Sin(rad)
}

// BarrelWidth grows with power so the barrel hints at shot strength.
func (c Cannon) BarrelWidth() float64 {
	return 5 + (c.Power-5)*7/15
}
