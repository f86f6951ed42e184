package game

import (
	"math"
	"testing"

	"github.com/pthm-cable/barrage/config"
)

func TestLevelParameters(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		level     int
		wantTime  int
		wantCount int
		wantSpeed float64
	}{
		{level: 1, wantTime: 60, wantCount: 20, wantSpeed: 2.5},
		{level: 2, wantTime: 55, wantCount: 22, wantSpeed: 3.0},
		{level: 3, wantTime: 50, wantCount: 24, wantSpeed: 3.5},
		{level: 10, wantTime: 15, wantCount: 38, wantSpeed: 7.0},
		{level: 20, wantTime: 15, wantCount: 58, wantSpeed: 12.0},
	}

	for _, tt := range tests {
		if got := TimeBudget(cfg, tt.level); got != tt.wantTime {
			t.Errorf("TimeBudget(%d) = %d, want %d", tt.level, got, tt.wantTime)
		}
		if got := TargetCount(cfg, tt.level); got != tt.wantCount {
			t.Errorf("TargetCount(%d) = %d, want %d", tt.level, got, tt.wantCount)
		}
		if got := BaseSpeed(cfg, tt.level); math.Abs(got-tt.wantSpeed) > 1e-9 {
			t.Errorf("BaseSpeed(%d) = %v, want %v", tt.level, got, tt.wantSpeed)
		}
	}
}
