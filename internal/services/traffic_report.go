package services

import "delivery-optimizer/internal/domain"

// Congestion band thresholds.
const (
	heavyTrafficFactor    = 1.5
	moderateTrafficFactor = 1.2
)

// AnalyzeTraffic classifies a congestion factor and estimates the
// delay it adds to a route of the given free-flow duration.
func AnalyzeTraffic(factor, durationMin float64) domain.TrafficReport {
	var (
		level  domain.TrafficLevel
		advice string
	)
	switch {
	case factor >= heavyTrafficFactor:
		level = domain.TrafficHeavy
		advice = "Significant delays expected. Consider delaying departure or using an alternate route."
	case factor >= moderateTrafficFactor:
		level = domain.TrafficModerate
		advice = "Some delays expected. Plan for extra travel time."
	default:
		level = domain.TrafficLight
		advice = "Traffic is flowing smoothly."
	}

	delay := 0.0
	if factor > 1.0 {
		delay = durationMin * (factor - 1.0)
	}

	return domain.TrafficReport{
		Factor:      factor,
		Level:       level,
		DurationMin: durationMin,
		DelayMin:    delay,
		Advice:      advice,
	}
}
