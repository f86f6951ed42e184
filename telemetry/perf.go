// Package telemetry records per-level results and tick timing for a run.
package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one stage of a field tick.
type Phase int

const (
	PhaseIntegrate Phase = iota
	PhaseTargetCollisions
	PhaseProjectileHits
	PhaseCleanup
	numPhases
)

var phaseNames = [numPhases]string{"integrate", "target_collisions", "projectile_hits", "cleanup"}

func (p Phase) String() string {
	if p < 0 || p >= numPhases {
		return "unknown"
	}
	return phaseNames[p]
}

// TickLoad is what a tick had to work through: the bodies on the field when
// it began and the events it produced.
type TickLoad struct {
	Targets     int
	Projectiles int
	Contacts    int
	Hits        int
	Bounces     int
}

// pairs is the number of target pairs the collision sweep tested.
func (l TickLoad) pairs() int {
	return l.Targets * (l.Targets - 1) / 2
}

type tickSample struct {
	total  time.Duration
	phases [numPhases]time.Duration
	load   TickLoad
}

// PerfCollector times field ticks over a rolling window. Each sample keeps
// the load its tick carried so a slow tick can be told apart from a crowded one.
type PerfCollector struct {
	ring   []tickSample
	next   int
	filled int

	cur        tickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over the last window ticks.
func NewPerfCollector(window int) *PerfCollector {
	if window < 1 {
		window = 50
	}
	return &PerfCollector{ring: make([]tickSample, window)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.cur = tickSample{}
	p.inPhase = false
	p.tickStart = time.Now()
}

// StartPhase closes the running phase, if any, and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.phases[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndTick closes the tick and stores it with its load.
func (p *PerfCollector) EndTick(load TickLoad) {
	now := time.Now()
	p.closePhase(now)
	p.inPhase = false
	p.cur.total = now.Sub(p.tickStart)
	p.cur.load = load

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

// RecordFrame marks a rendered frame.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the ticks in the window.
type PerfStats struct {
	Ticks    int
	TickMean time.Duration
	TickStd  time.Duration
	TickMax  time.Duration

	// Percent of total tick time spent in each phase
	PhaseShare [numPhases]float64

	// Mean load per tick
	Targets     float64
	Projectiles float64
	Contacts    float64
	Hits        float64
	Bounces     float64

	// Collision sweep time per tested target pair
	PairCost time.Duration

	FPS float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	st := PerfStats{Ticks: p.filled}
	if p.frame > 0 {
		st.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return st
	}

	durs := make([]float64, p.filled)
	var phaseSum [numPhases]time.Duration
	var total time.Duration
	pairs := 0
	for i, s := range p.ring[:p.filled] {
		durs[i] = float64(s.total)
		total += s.total
		st.TickMax = max(st.TickMax, s.total)
		for ph, d := range s.phases {
			phaseSum[ph] += d
		}

		st.Targets += float64(s.load.Targets)
		st.Projectiles += float64(s.load.Projectiles)
		st.Contacts += float64(s.load.Contacts)
		st.Hits += float64(s.load.Hits)
		st.Bounces += float64(s.load.Bounces)
		pairs += s.load.pairs()
	}

	n := float64(p.filled)
	st.Targets /= n
	st.Projectiles /= n
	st.Contacts /= n
	st.Hits /= n
	st.Bounces /= n

	if p.filled > 1 {
		mean, std := stat.MeanStdDev(durs, nil)
		st.TickMean, st.TickStd = time.Duration(mean), time.Duration(std)
	} else {
		st.TickMean = time.Duration(durs[0])
	}

	if total > 0 {
		for ph, sum := range phaseSum {
			st.PhaseShare[ph] = float64(sum) / float64(total) * 100
		}
	}
	if pairs > 0 {
		st.PairCost = phaseSum[PhaseTargetCollisions] / time.Duration(pairs)
	}
	return st
}

// LogValue implements slog.LogValuer.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("tick_mean_us", s.TickMean.Microseconds()),
		slog.Int64("tick_std_us", s.TickStd.Microseconds()),
		slog.Int64("tick_max_us", s.TickMax.Microseconds()),
		slog.Float64("targets", s.Targets),
		slog.Float64("contacts", s.Contacts),
		slog.Int64("pair_cost_ns", s.PairCost.Nanoseconds()),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph, pct := range s.PhaseShare {
		if pct > 0.1 {
			attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	Tick                int64   `csv:"tick"`
	AvgTickUS           int64   `csv:"avg_tick_us"`
	StdTickUS           int64   `csv:"std_tick_us"`
	MaxTickUS           int64   `csv:"max_tick_us"`
	FPS                 float64 `csv:"fps"`
	IntegratePct        float64 `csv:"integrate_pct"`
	TargetCollisionsPct float64 `csv:"target_collisions_pct"`
	ProjectileHitsPct   float64 `csv:"projectile_hits_pct"`
	CleanupPct          float64 `csv:"cleanup_pct"`
	Targets             float64 `csv:"targets"`
	Projectiles         float64 `csv:"projectiles"`
	ContactsPerTick     float64 `csv:"contacts_per_tick"`
	HitsPerTick         float64 `csv:"hits_per_tick"`
	BouncesPerTick      float64 `csv:"bounces_per_tick"`
	PairCostNS          int64   `csv:"pair_cost_ns"`
}

// ToCSV flattens the stats into a row stamped with the session tick.
func (s PerfStats) ToCSV(tick int64) PerfStatsCSV {
	return PerfStatsCSV{
		Tick:                tick,
		AvgTickUS:           s.TickMean.Microseconds(),
		StdTickUS:           s.TickStd.Microseconds(),
		MaxTickUS:           s.TickMax.Microseconds(),
		FPS:                 s.FPS,
		IntegratePct:        s.PhaseShare[PhaseIntegrate],
		TargetCollisionsPct: s.PhaseShare[PhaseTargetCollisions],
		ProjectileHitsPct:   s.PhaseShare[PhaseProjectileHits],
		CleanupPct:          s.PhaseShare[PhaseCleanup],
		Targets:             s.Targets,
		Projectiles:         s.Projectiles,
		ContactsPerTick:     s.Contacts,
		HitsPerTick:         s.Hits,
		BouncesPerTick:      s.Bounces,
		PairCostNS:          s.PairCost.Nanoseconds(),
	}
}
