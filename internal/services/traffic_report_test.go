package services

import (
	"delivery-optimizer/internal/domain"
	"math"
	"testing"
)

func TestAnalyzeTrafficBands(t *testing.T) {
	cases := []struct {
		name   string
		factor float64
		want   domain.TrafficLevel
	}{
		{name: "free flow", factor: 0.8, want: domain.TrafficLight},
		{name: "just below moderate", factor: 1.19, want: domain.TrafficLight},
		{name: "moderate boundary", factor: 1.2, want: domain.TrafficModerate},
		{name: "just below heavy", factor: 1.49, want: domain.TrafficModerate},
		{name: "heavy boundary", factor: 1.5, want: domain.TrafficHeavy},
		{name: "gridlock", factor: 2.0, want: domain.TrafficHeavy},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			report := AnalyzeTraffic(c.factor, 60)
			if report.Level != c.want {
				t.Fatalf("level for factor %v = %q, want %q", c.factor, report.Level, c.want)
			}
			if report.Advice == "" {
				t.Fatalf("no advice for factor %v", c.factor)
			}
		})
	}
}

func TestAnalyzeTrafficDelay(t *testing.T) {
	report := AnalyzeTraffic(1.2, 180)
	if math.Abs(report.DelayMin-36) > 1e-9 {
		t.Fatalf("delay = %v, want 36", report.DelayMin)
	}

	// A factor at or below free flow adds no delay.
	if d := AnalyzeTraffic(1.0, 180).DelayMin; d != 0 {
		t.Fatalf("delay at factor 1.0 = %v, want 0", d)
	}
	if d := AnalyzeTraffic(0.8, 180).DelayMin; d != 0 {
		t.Fatalf("delay at factor 0.8 = %v, want 0", d)
	}
}
