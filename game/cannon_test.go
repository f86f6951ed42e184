package game

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/barrage/config"
)

const eps = 1e-9

func TestNewCannonDefaults(t *testing.T) {
	c := NewCannon(config.Default())
	if c.Angle != 30 || c.Power != 10 || c.Barrel != 70 {
		t.Errorf("defaults = angle %v power %v barrel %v", c.Angle, c.Power, c.Barrel)
	}
	if c.Y != 200 {
		t.Errorf("Y = %v, want middle of the field (200)", c.Y)
	}
}

func TestCannonSettersClamp(t *testing.T) {
	c := NewCannon(config.Default())

	c.SetAngle(120)
	if c.Angle != 90 {
		t.Errorf("SetAngle(120) -> %v, want 90", c.Angle)
	}
	c.SetAngle(-5)
	if c.Angle != 0 {
		t.Errorf("SetAngle(-5) -> %v, want 0", c.Angle)
	}
	c.SetPower(50)
	if c.Power != 20 {
		t.Errorf("SetPower(50) -> %v, want 20", c.Power)
	}
	c.SetPower(1)
	if c.Power != 5 {
		t.Errorf("SetPower(1) -> %v, want 5", c.Power)
	}
	c.SetBarrel(10)
	if c.Barrel != 40 {
		t.Errorf("SetBarrel(10) -> %v, want 40", c.Barrel)
	}
	c.SetY(0)
	if c.Y != 50 {
		t.Errorf("SetY(0) -> %v, want 50", c.Y)
	}
	c.SetY(1000)
	if c.Y != 350 {
		t.Errorf("SetY(1000) -> %v, want 350", c.Y)
	}
}

func TestCannonNudgeRejectsOutOfRange(t *testing.T) {
	c := NewCannon(config.Default())
	c.SetAngle(90)
	if c.NudgeAngle(1) {
		t.Error("nudging past 90 should be rejected")
	}
	if c.Angle != 90 {
		t.Errorf("Angle = %v, want unchanged 90", c.Angle)
	}
	if !c.NudgeAngle(-1) || c.Angle != 89 {
		t.Errorf("NudgeAngle(-1) -> %v, want 89", c.Angle)
	}

	c.SetY(350)
	if c.NudgeY(5) {
		t.Error("nudging below the margin should be rejected")
	}
	if !c.NudgeY(-5) || c.Y != 345 {
		t.Errorf("NudgeY(-5) -> %v, want 345", c.Y)
	}
}

func TestCannonGeometry(t *testing.T) {
	c := NewCannon(config.Default())

	c.SetAngle(90)
	vx, vy := c.Velocity()
	if math.Abs(vx) > eps || math.Abs(vy+10) > eps {
		t.Errorf("Velocity at 90deg = (%v, %v), want (0, -10)", vx, vy)
	}
	mx, my := c.Muzzle()
	if math.Abs(mx-40) > eps || math.Abs(my-130) > eps {
		t.Errorf("Muzzle at 90deg = (%v, %v), want (40, 130)", mx, my)
	}
	px, py := c.Pivot()
	if px != 40 || py != 200 {
		t.Errorf("Pivot = (%v, %v), want (40, 200)", px, py)
	}

	c.SetPower(5)
	if c.BarrelWidth() != 5 {
		t.Errorf("BarrelWidth at power 5 = %v, want 5", c.BarrelWidth())
	}
	c.SetPower(20)
	if c.BarrelWidth() != 12 {
		t.Errorf("BarrelWidth at power 20 = %v, want 12", c.BarrelWidth())
	}
}

func TestCannonShotMovesOneStepPerTick(t *testing.T) {
	cfg := config.Default()
	f := NewField(cfg, rand.New(rand.NewSource(1)))

	c := NewCannon(cfg)
	c.SetAngle(0)
	c.SetPower(10)
	c.SetY(200)

	vx, vy := c.Velocity()
	if math.Abs(vx-10) > eps || math.Abs(vy) > eps {
		t.Fatalf("Velocity = (%v, %v), want (10, 0)", vx, vy)
	}

	f.Fire(c)
	before := f.Snapshot().Projectiles[0]
	f.Step()
	after := f.Snapshot().Projectiles[0]

	if math.Abs(after.X-before.X-10) > eps || math.Abs(after.Y-before.Y) > eps {
		t.Errorf("projectile moved (%v, %v) -> (%v, %v), want +10 in X", before.X, before.Y, after.X, after.Y)
	}
	if math.Abs(before.X-110) > eps {
		t.Errorf("projectile spawned at X=%v, want muzzle 110", before.X)
	}
}
