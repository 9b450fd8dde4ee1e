package agent

import "delivery-optimizer/internal/domain"

// Kind names the resolved request category. Kinds appear in metrics
// labels, history records and API responses.
type Kind string

const (
	KindRoute      Kind = "route"
	KindMultiRoute Kind = "multi_route"
	KindCost       Kind = "cost"
	KindTraffic    Kind = "traffic"
	KindWeather    Kind = "weather"
)

// Request is the typed form of a user query. The union is sealed:
// every variant lives in this package and the coordinator's type
// switch covers all of them.
type Request interface {
	Kind() Kind
	sealed()
}

// RouteRequest asks for ranked route alternatives between two places.
type RouteRequest struct {
	Origin        string
	Destination   string
	Vehicle       domain.VehicleType
	CargoWeightKg float64
	// Weights overrides the configured ranking weights when set.
	Weights *domain.RankWeights
}

// MultiRouteRequest asks for the best visiting order over several stops.
type MultiRouteRequest struct {
	Origin       string
	Destinations []string
}

// CostRequest asks for a fleet-wide delivery cost estimate.
type CostRequest struct {
	Origin        string
	Destination   string
	CargoWeightKg float64
}

// TrafficRequest asks for current congestion between two places.
type TrafficRequest struct {
	Origin      string
	Destination string
}

// WeatherRequest asks for the weather impact on a delivery.
type WeatherRequest struct {
	Origin      string
	Destination string
}

func (RouteRequest) Kind() Kind      { return KindRoute }
func (MultiRouteRequest) Kind() Kind { return KindMultiRoute }
func (CostRequest) Kind() Kind       { return KindCost }
func (TrafficRequest) Kind() Kind    { return KindTraffic }
func (WeatherRequest) Kind() Kind    { return KindWeather }

func (RouteRequest) sealed()      {}
func (MultiRouteRequest) sealed() {}
func (CostRequest) sealed()       {}
func (TrafficRequest) sealed()    {}
func (WeatherRequest) sealed()    {}
