package agent

import (
	"context"
	"delivery-optimizer/internal/config"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/ports"
	"delivery-optimizer/internal/services"
	"fmt"
	"log"
	"time"
)

// Answer is the resolved result of one dispatched request: the kind it
// resolved to, a deterministic plain-text report, and the structured
// payload the report was rendered from.
type Answer struct {
	Kind Kind
	Text string
	Data any
}

// Coordinator resolves typed requests against the collaborating
// providers and the scoring services. All branching is an explicit
// type switch; no free-form orchestration happens here.
type Coordinator struct {
	geocoder ports.Geocoder
	routes   ports.RouteProvider
	traffic  ports.TrafficProvider
	weather  ports.WeatherProvider
	pricing  *config.PricingConfig
	now      func() time.Time
}

func NewCoordinator(
	geocoder ports.Geocoder,
	routes ports.RouteProvider,
	traffic ports.TrafficProvider,
	weather ports.WeatherProvider,
	pricing *config.PricingConfig,
) *Coordinator {
	return &Coordinator{
		geocoder: geocoder,
		routes:   routes,
		traffic:  traffic,
		weather:  weather,
		pricing:  pricing,
		now:      time.Now,
	}
}

// Dispatch resolves one request. The switch is exhaustive over the
// sealed request union.
func (c *Coordinator) Dispatch(ctx context.Context, req Request) (*Answer, error) {
	switch r := req.(type) {
	case RouteRequest:
		return c.route(ctx, r)
	case MultiRouteRequest:
		return c.multiRoute(ctx, r)
	case CostRequest:
		return c.cost(ctx, r)
	case TrafficRequest:
		return c.trafficReport(ctx, r)
	case WeatherRequest:
		return c.weatherReport(ctx, r)
	default:
		return nil, fmt.Errorf("unsupported request type %T", req)
	}
}

func (c *Coordinator) route(ctx context.Context, r RouteRequest) (*Answer, error) {
	originCoord, destCoord, err := c.resolvePair(ctx, r.Origin, r.Destination)
	if err != nil {
		return nil, err
	}

	candidates, err := c.routes.GetRoutes(ctx, originCoord, destCoord)
	if err != nil {
		return nil, fmt.Errorf("fetch routes %q -> %q: %w", r.Origin, r.Destination, err)
	}

	// Overlay the live congestion factor; candidates arrive with
	// congestion unknown. A failed lookup degrades to unknown.
	factor := c.trafficFactor(ctx, originCoord)
	if factor > 0 {
		overlaid := make([]domain.RouteCandidate, len(candidates))
		copy(overlaid, candidates)
		for i := range overlaid {
			overlaid[i].Congestion = factor
		}
		candidates = overlaid
	}

	vehicle := r.Vehicle
	if vehicle == "" {
		vehicle = domain.VehicleVan
	}
	factors, err := c.pricing.FactorsFor(vehicle, r.CargoWeightKg)
	if err != nil {
		return nil, err
	}

	weights := c.pricing.Weights()
	if r.Weights != nil {
		weights = *r.Weights
	}

	rec, err := services.RecommendRoute(candidates, factors, weights)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Kind: KindRoute,
		Text: renderRoute(r.Origin, r.Destination, rec),
		Data: rec,
	}, nil
}

func (c *Coordinator) multiRoute(ctx context.Context, r MultiRouteRequest) (*Answer, error) {
	originCoord, err := c.resolve(ctx, "origin", r.Origin)
	if err != nil {
		return nil, err
	}

	stops := make([]services.Stop, 0, len(r.Destinations))
	for _, name := range r.Destinations {
		coord, err := c.resolve(ctx, "destination", name)
		if err != nil {
			return nil, err
		}
		stops = append(stops, services.Stop{Name: name, Coord: coord})
	}

	factor := c.trafficFactor(ctx, originCoord)

	plan, err := services.PlanMultiStop(ctx, services.Stop{Name: r.Origin, Coord: originCoord}, stops, factor, c.routes)
	if err != nil {
		return nil, err
	}

	return &Answer{
		Kind: KindMultiRoute,
		Text: renderMultiStop(plan),
		Data: plan,
	}, nil
}

func (c *Coordinator) cost(ctx context.Context, r CostRequest) (*Answer, error) {
	originCoord, destCoord, err := c.resolvePair(ctx, r.Origin, r.Destination)
	if err != nil {
		return nil, err
	}

	leg, err := c.routes.GetLeg(ctx, originCoord, destCoord)
	if err != nil {
		return nil, fmt.Errorf("fetch leg %q -> %q: %w", r.Origin, r.Destination, err)
	}

	traffic := c.trafficFactor(ctx, originCoord)
	weather := c.weatherFactor(ctx, originCoord, destCoord)

	est, err := services.EstimateFleet(c.pricing.Vehicles(), services.FleetEstimateRequest{
		DistanceKm:    leg.DistanceKm,
		DurationMin:   leg.DurationMin,
		CargoWeightKg: r.CargoWeightKg,
		TrafficFactor: traffic,
		WeatherFactor: weather,
	}, c.fleetPricing())
	if err != nil {
		return nil, err
	}

	return &Answer{
		Kind: KindCost,
		Text: renderFleet(r.Origin, r.Destination, r.CargoWeightKg, est),
		Data: est,
	}, nil
}

func (c *Coordinator) trafficReport(ctx context.Context, r TrafficRequest) (*Answer, error) {
	originCoord, destCoord, err := c.resolvePair(ctx, r.Origin, r.Destination)
	if err != nil {
		return nil, err
	}

	factor, err := c.traffic.GetFactor(ctx, originCoord, c.now())
	if err != nil {
		return nil, fmt.Errorf("traffic near %q: %w", r.Origin, err)
	}

	duration := 0.0
	if originCoord != destCoord {
		leg, err := c.routes.GetLeg(ctx, originCoord, destCoord)
		if err != nil {
			return nil, fmt.Errorf("fetch leg %q -> %q: %w", r.Origin, r.Destination, err)
		}
		duration = leg.DurationMin
	}

	report := services.AnalyzeTraffic(factor, duration)

	return &Answer{
		Kind: KindTraffic,
		Text: renderTraffic(r.Origin, r.Destination, report),
		Data: report,
	}, nil
}

func (c *Coordinator) weatherReport(ctx context.Context, r WeatherRequest) (*Answer, error) {
	originCoord, destCoord, err := c.resolvePair(ctx, r.Origin, r.Destination)
	if err != nil {
		return nil, err
	}

	originObs, err := c.weather.GetConditions(ctx, originCoord)
	if err != nil {
		return nil, fmt.Errorf("weather at %q: %w", r.Origin, err)
	}

	destObs := originObs
	if originCoord != destCoord {
		destObs, err = c.weather.GetConditions(ctx, destCoord)
		if err != nil {
			return nil, fmt.Errorf("weather at %q: %w", r.Destination, err)
		}
	}

	impact := services.AssessWeatherImpact(originObs, destObs)

	return &Answer{
		Kind: KindWeather,
		Text: renderWeather(r.Origin, r.Destination, impact),
		Data: impact,
	}, nil
}

func (c *Coordinator) resolve(ctx context.Context, role, place string) (domain.Coordinates, error) {
	coord, err := c.geocoder.Geocode(ctx, place)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("resolve %s %q: %w", role, place, err)
	}
	return coord, nil
}

func (c *Coordinator) resolvePair(ctx context.Context, origin, destination string) (domain.Coordinates, domain.Coordinates, error) {
	o, err := c.resolve(ctx, "origin", origin)
	if err != nil {
		return domain.Coordinates{}, domain.Coordinates{}, err
	}
	d, err := c.resolve(ctx, "destination", destination)
	if err != nil {
		return domain.Coordinates{}, domain.Coordinates{}, err
	}
	return o, d, nil
}

// trafficFactor looks up congestion near a point, degrading to 0
// (unknown) when the lookup fails.
func (c *Coordinator) trafficFactor(ctx context.Context, at domain.Coordinates) float64 {
	factor, err := c.traffic.GetFactor(ctx, at, c.now())
	if err != nil {
		log.Printf("traffic lookup failed, proceeding without: %v", err)
		return 0
	}
	return factor
}

// weatherFactor computes the weather impact multiplier for a leg,
// degrading to neutral when observations are unavailable.
func (c *Coordinator) weatherFactor(ctx context.Context, origin, destination domain.Coordinates) float64 {
	originObs, err := c.weather.GetConditions(ctx, origin)
	if err != nil {
		log.Printf("weather lookup failed, proceeding without: %v", err)
		return 0
	}

	destObs := originObs
	if origin != destination {
		destObs, err = c.weather.GetConditions(ctx, destination)
		if err != nil {
			log.Printf("weather lookup failed, proceeding without: %v", err)
			return 0
		}
	}

	return services.AssessWeatherImpact(originObs, destObs).Factor
}

func (c *Coordinator) fleetPricing() services.FleetPricing {
	return services.FleetPricing{
		DriverRatePerHour:   c.pricing.DriverRatePerHour,
		BaseOperationalCost: c.pricing.BaseOperationalCost,
		EfficiencyThreshold: c.pricing.EfficiencyThreshold,
		EfficiencySurcharge: c.pricing.EfficiencySurcharge,
	}
}
