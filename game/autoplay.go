package game

// Autoplay drives a session without a player: it fires on a fixed tick
// cadence while sweeping the cannon angle back and forth across its range.
type Autoplay struct {
	session  *Session
	every    int64
	step     float64
	lastShot int64
	shots    int
}

// NewAutoplay fires every fireEvery ticks, moving the angle by step degrees
// between shots. fireEvery <= 0 disables firing.
func NewAutoplay(s *Session, fireEvery int, step float64) *Autoplay {
	return &Autoplay{session: s, every: int64(fireEvery), step: step}
}

// Update fires if a shot is due. Call it after each Session.Advance.
// Returns whether a projectile was launched.
func (a *Autoplay) Update() bool {
	if a.every <= 0 || !a.session.Running() {
		return false
	}
	t := a.session.Ticks()
	if t-a.lastShot < a.every {
		return false
	}
	a.lastShot = t

	if !a.session.NudgeAngle(a.step) {
		a.step = -a.step
		a.session.NudgeAngle(a.step)
	}
	if !a.session.Fire() {
		return false
	}
	a.shots++
	return true
}

// Shots returns how many projectiles autoplay has launched.
func (a *Autoplay) Shots() int {
	return a.shots
}
