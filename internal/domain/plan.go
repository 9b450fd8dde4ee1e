package domain

// A single hop inside a multi-stop plan. AdjustedMin applies the
// traffic factor to the free-flow duration.
type MultiStopLeg struct {
	From        string
	To          string
	DistanceKm  float64
	DurationMin float64
	AdjustedMin float64
}

// Represents the ordered visit plan across several destinations.
// A MultiStopPlan is the output of the multi-stop planner and describes
// the visiting order along with aggregate distance and duration metrics.
// It is immutable planning data and contains no side effects.
type MultiStopPlan struct {
	Origin           string
	Order            []string
	Legs             []MultiStopLeg
	TotalDistanceKm  float64
	TotalDurationMin float64
	TotalAdjustedMin float64
	TrafficFactor    float64
}
