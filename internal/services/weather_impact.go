package services

import "delivery-optimizer/internal/domain"

// Weather impact never exceeds this multiplier.
const maxWeatherFactor = 1.8

// AssessWeatherImpact derives a delivery cost/time multiplier from
// origin and destination conditions. Each triggered condition adds to
// the factor and records a warning; origin conditions weigh heavier
// than destination conditions.
func AssessWeatherImpact(origin, destination domain.WeatherObservation) domain.WeatherImpact {
	factor := 1.0
	warnings := []string{}

	switch {
	case origin.RainMMPerHour > 2.5:
		factor += 0.30
		warnings = append(warnings, "Heavy rain at origin")
	case origin.RainMMPerHour > 0.5:
		factor += 0.15
		warnings = append(warnings, "Light rain at origin")
	}

	if origin.VisibilityMeters > 0 && origin.VisibilityMeters < 1000 {
		factor += 0.20
		warnings = append(warnings, "Low visibility at origin")
	}

	if origin.WindSpeedMS > 15 {
		factor += 0.10
		warnings = append(warnings, "Strong winds at origin")
	}

	switch {
	case destination.RainMMPerHour > 2.5:
		factor += 0.20
		warnings = append(warnings, "Heavy rain at destination")
	case destination.RainMMPerHour > 0.5:
		factor += 0.10
		warnings = append(warnings, "Light rain at destination")
	}

	if factor > maxWeatherFactor {
		factor = maxWeatherFactor
	}

	return domain.WeatherImpact{
		Factor:      round2(factor),
		Warnings:    warnings,
		Origin:      origin,
		Destination: destination,
	}
}
