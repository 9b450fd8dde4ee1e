package domain

// Represents one possible path between an origin and a destination,
// as delivered by the routing collaborator. Distance and duration are
// totals for the whole path. Congestion is a traffic multiplier where
// 1.0 means free flow; 0 means the collaborator supplied no traffic data.
// A RouteCandidate is immutable once received.
type RouteCandidate struct {
	ID          string
	Summary     string
	Geometry    []Coordinates
	Steps       []string
	DistanceKm  float64
	DurationMin float64
	Congestion  float64
}

// Travel metrics for a single origin -> destination hop.
type RouteLeg struct {
	DistanceKm  float64
	DurationMin float64
}

// Itemized monetary estimate for one candidate.
type CostBreakdown struct {
	Base             float64
	WeightSurcharge  float64
	TrafficSurcharge float64
	Total            float64
}

// Pairs a candidate with its monetary cost and composite score.
// Rank is 1-based; rank 1 is the recommended route. A ScoredRoute is
// owned by a single ranking call and never shared across requests.
type ScoredRoute struct {
	Candidate RouteCandidate
	Cost      float64
	Breakdown CostBreakdown
	Score     float64
	Rank      int
}

// The final ranked result handed to the presentation layer.
// Alternatives are sorted ascending by composite score and exclude Best.
// A Recommendation is read-only after creation.
type Recommendation struct {
	Best         ScoredRoute
	Alternatives []ScoredRoute
	Rationale    string
}
