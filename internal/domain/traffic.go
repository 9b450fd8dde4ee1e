package domain

// Qualitative congestion bands derived from the traffic factor.
type TrafficLevel string

const (
	TrafficLight    TrafficLevel = "Light"
	TrafficModerate TrafficLevel = "Moderate"
	TrafficHeavy    TrafficLevel = "Heavy"
)

// Traffic assessment for one origin -> destination pair.
// DelayMin is the extra travel time attributable to congestion.
type TrafficReport struct {
	Factor      float64
	Level       TrafficLevel
	DurationMin float64
	DelayMin    float64
	Advice      string
}
