package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/barrage/components"
)

// fallbackNormal is used when two centers coincide and the center line is undefined.
var fallbackNormal = r2.Vec{X: 1, Y: 0}

// Disk is a mutable view of one target used by pair resolution.
type Disk struct {
	Pos    *components.Position
	Vel    *components.Velocity
	Radius float64
	Mass   float64
}

// CollisionNormal returns the unit vector pointing from p2 to p1 and the
// distance between them. Coincident points yield fallbackNormal and 0.
func CollisionNormal(p1, p2 r2.Vec) (r2.Vec, float64) {
	diff := r2.Sub(p1, p2)
	d := r2.Norm(diff)
	if d == 0 {
		return fallbackNormal, 0
	}
	return r2.Scale(1/d, diff), d
}

// ElasticNormal applies the 1-D elastic collision formula to the normal
// velocity components of two bodies.
func ElasticNormal(v1n, v2n, m1, m2 float64) (float64, float64) {
	total := m1 + m2
	v1 := (v1n*(m1-m2) + 2*m2*v2n) / total
	v2 := (v2n*(m2-m1) + 2*m1*v1n) / total
	return v1, v2
}

// ResolvePair separates two overlapping disks and exchanges momentum along the
// center line. Each disk is pushed half the overlap depth regardless of mass.
// Tangential velocity is left alone. Returns false if the disks do not overlap.
func ResolvePair(a, b Disk) bool {
	p1, p2 := a.Pos.Vec(), b.Pos.Vec()
	minDist := a.Radius + b.Radius

	n, d := CollisionNormal(p1, p2)
	if d >= minDist {
		return false
	}

	shift := r2.Scale((minDist-d)*0.5, n)
	a.Pos.Set(r2.Add(p1, shift))
	b.Pos.Set(r2.Sub(p2, shift))

	t := r2.Vec{X: -n.Y, Y: n.X}
	v1, v2 := a.Vel.Vec(), b.Vel.Vec()
	v1n, v1t := r2.Dot(v1, n), r2.Dot(v1, t)
	v2n, v2t := r2.Dot(v2, n), r2.Dot(v2, t)

	v1n, v2n = ElasticNormal(v1n, v2n, a.Mass, b.Mass)

	a.Vel.Set(r2.Add(r2.Scale(v1n, n), r2.Scale(v1t, t)))
	b.Vel.Set(r2.Add(r2.Scale(v2n, n), r2.Scale(v2t, t)))
	return true
}

// Hit records a projectile destroying a target.
type Hit struct {
	Projectile ecs.Entity
	Target     ecs.Entity
	TargetID   uint32
	Score      int
}

// HitReport lists everything the projectile pass marked for removal.
type HitReport struct {
	Hits       []Hit
	Escaped    []ecs.Entity // projectiles that left the field without hitting
	ScoreDelta int
}

// CollisionSystem detects and resolves overlaps between disks.
type CollisionSystem struct {
	targetFilter     *ecs.Filter4[components.Position, components.Velocity, components.Body, components.Target]
	projectileFilter *ecs.Filter3[components.Position, components.Body, components.Projectile]

	posMap    *ecs.Map[components.Position]
	velMap    *ecs.Map[components.Velocity]
	bodyMap   *ecs.Map[components.Body]
	targetMap *ecs.Map[components.Target]

	bounds Bounds

	// Scratch buffers reused across ticks
	targets     []ecs.Entity
	projectiles []ecs.Entity
	marked      map[ecs.Entity]bool
}

// NewCollisionSystem creates a new collision system.
func NewCollisionSystem(w *ecs.World, bounds Bounds) *CollisionSystem {
	return &CollisionSystem{
		targetFilter:     ecs.NewFilter4[components.Position, components.Velocity, components.Body, components.Target](w),
		projectileFilter: ecs.NewFilter3[components.Position, components.Body, components.Projectile](w),
		posMap:           ecs.NewMap[components.Position](w),
		velMap:           ecs.NewMap[components.Velocity](w),
		bodyMap:          ecs.NewMap[components.Body](w),
		targetMap:        ecs.NewMap[components.Target](w),
		bounds:           bounds,
		marked:           make(map[ecs.Entity]bool),
	}
}

// collect gathers live entities so no query is open while components are mutated.
func (s *CollisionSystem) collect() {
	s.targets = s.targets[:0]
	query := s.targetFilter.Query()
	for query.Next() {
		s.targets = append(s.targets, query.Entity())
	}

	s.projectiles = s.projectiles[:0]
	pq := s.projectileFilter.Query()
	for pq.Next() {
		s.projectiles = append(s.projectiles, pq.Entity())
	}
}

func (s *CollisionSystem) disk(e ecs.Entity) Disk {
	return Disk{
		Pos:    s.posMap.Get(e),
		Vel:    s.velMap.Get(e),
		Radius: s.bodyMap.Get(e).Radius,
		Mass:   s.targetMap.Get(e).Mass,
	}
}

// ResolveTargets runs elastic resolution over every unordered target pair.
// Returns the number of overlapping pairs resolved.
func (s *CollisionSystem) ResolveTargets() int {
	s.collect()

	contacts := 0
	for i := 0; i < len(s.targets); i++ {
		a := s.disk(s.targets[i])
		for j := i + 1; j < len(s.targets); j++ {
			if ResolvePair(a, s.disk(s.targets[j])) {
				contacts++
			}
		}
	}
	return contacts
}

// DetectHits matches each projectile against the first overlapping target in
// iteration order. A target can be claimed by one projectile per tick and a
// projectile claims at most one target. Nothing is removed here; the caller
// removes the reported entities once the scan is over.
func (s *CollisionSystem) DetectHits() HitReport {
	s.collect()
	clear(s.marked)

	var report HitReport
	for _, p := range s.projectiles {
		pp := s.posMap.Get(p).Vec()
		pr := s.bodyMap.Get(p).Radius

		hit := false
		for _, t := range s.targets {
			if s.marked[t] {
				continue
			}
			tr := s.bodyMap.Get(t).Radius
			if r2.Norm(r2.Sub(pp, s.posMap.Get(t).Vec())) > tr+pr {
				continue
			}

			tg := s.targetMap.Get(t)
			s.marked[t] = true
			report.Hits = append(report.Hits, Hit{
				Projectile: p,
				Target:     t,
				TargetID:   tg.ID,
				Score:      tg.ScoreValue,
			})
			report.ScoreDelta += tg.ScoreValue
			hit = true
			break
		}

		if !hit && !s.bounds.Contains(pp.X, pp.Y) {
			report.Escaped = append(report.Escaped, p)
		}
	}
	return report
}
