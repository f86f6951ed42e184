package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r2"
	"pgregory.net/rapid"

	"github.com/pthm-cable/barrage/components"
)

func drawDisk(t *rapid.T, name string) (components.Position, components.Velocity, float64) {
	pos := components.Position{
		X: rapid.Float64Range(100, 200).Draw(t, name+"_x"),
		Y: rapid.Float64Range(100, 200).Draw(t, name+"_y"),
	}
	vel := components.Velocity{
		X: rapid.Float64Range(-10, 10).Draw(t, name+"_vx"),
		Y: rapid.Float64Range(-10, 10).Draw(t, name+"_vy"),
	}
	r := rapid.Float64Range(5, 35).Draw(t, name+"_r")
	return pos, vel, r
}

func TestResolvePairConservesMomentumAndEnergy(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1, v1, ra := drawDisk(t, "a")
		p2, v2, rb := drawDisk(t, "b")
		m1 := math.Pi * ra * ra
		m2 := math.Pi * rb * rb

		before := r2.Add(r2.Scale(m1, v1.Vec()), r2.Scale(m2, v2.Vec()))
		energyBefore := m1*r2.Dot(v1.Vec(), v1.Vec()) + m2*r2.Dot(v2.Vec(), v2.Vec())

		a := Disk{Pos: &p1, Vel: &v1, Radius: ra, Mass: m1}
		b := Disk{Pos: &p2, Vel: &v2, Radius: rb, Mass: m2}
		if !ResolvePair(a, b) {
			return
		}

		after := r2.Add(r2.Scale(m1, v1.Vec()), r2.Scale(m2, v2.Vec()))
		energyAfter := m1*r2.Dot(v1.Vec(), v1.Vec()) + m2*r2.Dot(v2.Vec(), v2.Vec())

		scale := math.Max(1, r2.Norm(before))
		if r2.Norm(r2.Sub(after, before)) > 1e-6*scale {
			t.Fatalf("momentum changed: %v -> %v", before, after)
		}
		if math.Abs(energyAfter-energyBefore) > 1e-6*math.Max(1, energyBefore) {
			t.Fatalf("kinetic energy changed: %v -> %v", energyBefore, energyAfter)
		}
	})
}

func TestResolvePairSeparatesDisks(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p1, v1, ra := drawDisk(t, "a")
		p2, v2, rb := drawDisk(t, "b")

		ResolvePair(
			Disk{Pos: &p1, Vel: &v1, Radius: ra, Mass: ra * ra},
			Disk{Pos: &p2, Vel: &v2, Radius: rb, Mass: rb * rb},
		)

		d := r2.Norm(r2.Sub(p1.Vec(), p2.Vec()))
		if d < ra+rb-1e-9 {
			t.Fatalf("disks still overlap: distance %v < %v", d, ra+rb)
		}
	})
}

func TestReflectWallsKeepsDiskInside(t *testing.T) {
	bounds := Bounds{Width: 600, Height: 400}

	rapid.Check(t, func(t *rapid.T) {
		r := rapid.Float64Range(1, 35).Draw(t, "r")
		pos := components.Position{
			X: rapid.Float64Range(-50, 650).Draw(t, "x"),
			Y: rapid.Float64Range(-50, 450).Draw(t, "y"),
		}
		vel := components.Velocity{
			X: rapid.Float64Range(-10, 10).Draw(t, "vx"),
			Y: rapid.Float64Range(-10, 10).Draw(t, "vy"),
		}
		speedX, speedY := math.Abs(vel.X), math.Abs(vel.Y)

		ReflectWalls(&pos, &vel, r, bounds)

		if pos.X < r || pos.X > bounds.Width-r || pos.Y < r || pos.Y > bounds.Height-r {
			t.Fatalf("disk r=%v left the field at (%v, %v)", r, pos.X, pos.Y)
		}
		if math.Abs(vel.X) != speedX || math.Abs(vel.Y) != speedY {
			t.Fatalf("reflection changed speed: (%v, %v) -> (%v, %v)", speedX, speedY, vel.X, vel.Y)
		}
	})
}

func TestResolvePairThenClampStaysInside(t *testing.T) {
	bounds := Bounds{Width: 600, Height: 400}

	rapid.Check(t, func(t *rapid.T) {
		ra := float64(rapid.IntRange(20, 35).Draw(t, "ra"))
		rb := float64(rapid.IntRange(20, 35).Draw(t, "rb"))
		p1 := components.Position{
			X: rapid.Float64Range(ra, bounds.Width-ra).Draw(t, "x1"),
			Y: rapid.Float64Range(ra, bounds.Height-ra).Draw(t, "y1"),
		}
		p2 := components.Position{
			X: min(max(p1.X+rapid.Float64Range(-ra-rb, ra+rb).Draw(t, "dx"), rb), bounds.Width-rb),
			Y: min(max(p1.Y+rapid.Float64Range(-ra-rb, ra+rb).Draw(t, "dy"), rb), bounds.Height-rb),
		}
		var v1, v2 components.Velocity

		ResolvePair(
			Disk{Pos: &p1, Vel: &v1, Radius: ra, Mass: ra * ra},
			Disk{Pos: &p2, Vel: &v2, Radius: rb, Mass: rb * rb},
		)
		ClampToBounds(&p1, ra, bounds)
		ClampToBounds(&p2, rb, bounds)

		for _, d := range []struct {
			p components.Position
			r float64
		}{{p1, ra}, {p2, rb}} {
			if d.p.X < d.r || d.p.X > bounds.Width-d.r || d.p.Y < d.r || d.p.Y > bounds.Height-d.r {
				t.Fatalf("disk r=%v outside the field at (%v, %v)", d.r, d.p.X, d.p.Y)
			}
		}
	})
}
