package game

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/barrage/components"
	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/systems"
	"github.com/pthm-cable/barrage/telemetry"
)

// BatchInfo describes a freshly spawned set of targets.
type BatchInfo struct {
	Level  int
	Count  int
	Speeds []float64
}

// StepResult summarizes one simulation tick.
type StepResult struct {
	ScoreDelta int
	Hits       int
	Escaped    int
	Contacts   int
	Bounces    int
}

// Field owns every target and projectile and advances them tick by tick.
type Field struct {
	cfg    *config.Config
	world  *ecs.World
	rng    *rand.Rand
	bounds systems.Bounds

	targetMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Target,
	]
	projectileMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Body,
		components.Projectile,
	]
	targetFilter     *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Target]
	projectileFilter *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Projectile]

	physics    *systems.PhysicsSystem
	collisions *systems.CollisionSystem
	perf       *telemetry.PerfCollector

	nextID      uint32
	targets     int
	projectiles int
	scratch     []ecs.Entity
}

// NewField creates an empty field.
func NewField(cfg *config.Config, rng *rand.Rand) *Field {
	world := ecs.NewWorld()
	bounds := systems.Bounds{Width: cfg.Field.Width, Height: cfg.Field.Height}

	return &Field{
		cfg:    cfg,
		world:  world,
		rng:    rng,
		bounds: bounds,
		targetMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Target,
		](world),
		projectileMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Body,
			components.Projectile,
		](world),
		targetFilter:     ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Target](world),
		projectileFilter: ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Projectile](world),
		physics:          systems.NewPhysicsSystem(world, bounds),
		collisions:       systems.NewCollisionSystem(world, bounds),
	}
}

// SetPerfCollector enables phase timing of Step. nil disables it.
func (f *Field) SetPerfCollector(p *telemetry.PerfCollector) {
	f.perf = p
}

// TargetCount returns the number of live targets.
func (f *Field) TargetCount() int {
	return f.targets
}

// ProjectileCount returns the number of live projectiles.
func (f *Field) ProjectileCount() int {
	return f.projectiles
}

// randInt returns an integer in [lo, hi].
func (f *Field) randInt(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Intn(hi-lo+1)
}

// SpawnBatch replaces all targets with a new batch sized for the level.
func (f *Field) SpawnBatch(level int) BatchInfo {
	f.clearTargets()

	tc := f.cfg.Targets
	count := TargetCount(f.cfg, level)
	base := BaseSpeed(f.cfg, level)
	width, height := int(f.bounds.Width), int(f.bounds.Height)

	info := BatchInfo{Level: level, Count: count, Speeds: make([]float64, 0, count)}
	for i := 0; i < count; i++ {
		r := f.randInt(tc.MinRadius, tc.MaxRadius)
		x := f.randInt(tc.SpawnMinX+r, width-r)
		y := f.randInt(r, height-r)

		speed := base - tc.SpeedBand + f.rng.Float64()*tc.SpeedBand
		heading := f.rng.Float64() * 2 * math.Pi

		f.SpawnTarget(float64(x), float64(y), float64(r),
			speed*math.Cos(heading), speed*math.Sin(heading),
			uint8(i%len(tc.Palette)))
		info.Speeds = append(info.Speeds, speed)
	}
	return info
}

// SpawnTarget adds one target. Mass and score value derive from the radius.
func (f *Field) SpawnTarget(x, y, radius, vx, vy float64, color uint8) ecs.Entity {
	id := f.nextID
	f.nextID++

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: vx, Y: vy}
	body := components.Body{Radius: radius}
	target := components.NewTarget(id, radius, f.cfg.Physics.Density, color)

	entity := f.targetMapper.NewEntity(&pos, &vel, &body, &target)
	f.targets++
	return entity
}

// SpawnProjectile adds one projectile.
func (f *Field) SpawnProjectile(x, y, vx, vy float64) ecs.Entity {
	id := f.nextID
	f.nextID++

	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{X: vx, Y: vy}
	body := components.Body{Radius: f.cfg.Projectile.Radius}
	proj := components.Projectile{ID: id}

	entity := f.projectileMapper.NewEntity(&pos, &vel, &body, &proj)
	f.projectiles++
	return entity
}

// Fire launches a projectile from the cannon's muzzle.
func (f *Field) Fire(c Cannon) ecs.Entity {
	x, y := c.Muzzle()
	vx, vy := c.Velocity()
	return f.SpawnProjectile(x, y, vx, vy)
}

func (f *Field) phase(ph telemetry.Phase) {
	if f.perf != nil {
		f.perf.StartPhase(ph)
	}
}

// Step advances the field by one tick: every body moves, targets bounce off
// walls, overlapping targets are resolved and clamped back inside the field,
// then projectiles are matched against targets. Removals happen once both
// passes are done.
func (f *Field) Step() StepResult {
	load := telemetry.TickLoad{Targets: f.targets, Projectiles: f.projectiles}
	if f.perf != nil {
		f.perf.StartTick()
	}

	var res StepResult

	f.phase(telemetry.PhaseIntegrate)
	res.Bounces = f.physics.Update()

	f.phase(telemetry.PhaseTargetCollisions)
	res.Contacts = f.collisions.ResolveTargets()
	f.physics.Contain()

	f.phase(telemetry.PhaseProjectileHits)
	report := f.collisions.DetectHits()

	f.phase(telemetry.PhaseCleanup)
	for _, hit := range report.Hits {
		f.removeTarget(hit.Target)
		f.removeProjectile(hit.Projectile)
	}
	for _, e := range report.Escaped {
		f.removeProjectile(e)
	}

	res.ScoreDelta = report.ScoreDelta
	res.Hits = len(report.Hits)
	res.Escaped = len(report.Escaped)

	if f.perf != nil {
		load.Contacts, load.Hits, load.Bounces = res.Contacts, res.Hits, res.Bounces
		f.perf.EndTick(load)
	}
	return res
}

func (f *Field) removeTarget(e ecs.Entity) {
	if !f.world.Alive(e) {
		return
	}
	f.world.RemoveEntity(e)
	f.targets--
}

func (f *Field) removeProjectile(e ecs.Entity) {
	if !f.world.Alive(e) {
		return
	}
	f.world.RemoveEntity(e)
	f.projectiles--
}

func (f *Field) clearTargets() {
	f.scratch = f.scratch[:0]
	query := f.targetFilter.Query()
	for query.Next() {
		f.scratch = append(f.scratch, query.Entity())
	}
	for _, e := range f.scratch {
		f.removeTarget(e)
	}
}

func (f *Field) clearProjectiles() {
	f.scratch = f.scratch[:0]
	query := f.projectileFilter.Query()
	for query.Next() {
		f.scratch = append(f.scratch, query.Entity())
	}
	for _, e := range f.scratch {
		f.removeProjectile(e)
	}
}

// Clear removes every target and projectile. Clearing an empty field is a no-op.
func (f *Field) Clear() {
	f.clearTargets()
	f.clearProjectiles()
}

// Snapshot copies the renderable state of every body.
func (f *Field) Snapshot() Snapshot {
	snap := Snapshot{
		Targets:     make([]BodyView, 0, f.targets),
		Projectiles: make([]BodyView, 0, f.projectiles),
	}
	palette := f.cfg.Targets.Palette

	query := f.targetFilter.Query()
	for query.Next() {
		pos, _, body, target := query.Get()
		snap.Targets = append(snap.Targets, BodyView{
			ID:     target.ID,
			X:      pos.X,
			Y:      pos.Y,
			Radius: body.Radius,
			Color:  palette[int(target.Color)%len(palette)],
		})
	}

	pq := f.projectileFilter.Query()
	for pq.Next() {
		pos, _, body, proj := pq.Get()
		snap.Projectiles = append(snap.Projectiles, BodyView{
			ID:     proj.ID,
			X:      pos.X,
			Y:      pos.Y,
			Radius: body.Radius,
		})
	}
	return snap
}
