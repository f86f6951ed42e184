package components

import (
	"math"
	"testing"
)

func TestNewTarget(t *testing.T) {
	tests := []struct {
		name      string
		radius    float64
		density   float64
		wantScore int
		wantMass  float64
	}{
		{"min radius", 20, 1, 40, 400 * math.Pi},
		{"max radius", 35, 1, 70, 1225 * math.Pi},
		{"dense", 25, 2, 50, 1250 * math.Pi},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tg := NewTarget(1, tt.radius, tt.density, 0)
			if tg.ScoreValue != tt.wantScore {
				t.Errorf("ScoreValue = %d, want %d", tg.ScoreValue, tt.wantScore)
			}
			if math.Abs(tg.Mass-tt.wantMass) > 1e-9 {
				t.Errorf("Mass = %f, want %f", tg.Mass, tt.wantMass)
			}
		})
	}
}
