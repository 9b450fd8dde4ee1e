package domain

// Current-conditions snapshot at one point, as delivered by the
// weather collaborator. Rain is the last-hour precipitation rate.
type WeatherObservation struct {
	Summary          string
	TempC            float64
	RainMMPerHour    float64
	VisibilityMeters float64
	WindSpeedMS      float64
}

// Delivery impact derived from origin and destination conditions.
// Factor is a cost/time multiplier >= 1.0; warnings name each condition
// that contributed to it.
type WeatherImpact struct {
	Factor      float64
	Warnings    []string
	Origin      WeatherObservation
	Destination WeatherObservation
}
