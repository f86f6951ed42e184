package game

import "github.com/pthm-cable/barrage/config"

// TimeBudget returns the countdown, in seconds, granted for a level.
func TimeBudget(cfg *config.Config, level int) int {
	return max(cfg.Levels.MinTime, cfg.Levels.InitialTime-(level-1)*cfg.Levels.TimePerLevel)
}

// TargetCount returns how many targets a level starts with.
func TargetCount(cfg *config.Config, level int) int {
	return cfg.Targets.BaseCount + (level-1)*cfg.Targets.CountPerLevel
}

// BaseSpeed returns the top target speed for a level. Each target draws its
// speed from the band just below it.
func BaseSpeed(cfg *config.Config, level int) float64 {
	return cfg.Targets.BaseSpeed + float64(level)*cfg.Targets.SpeedPerLevel
}
