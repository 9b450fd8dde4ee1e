package agent

import (
	"delivery-optimizer/internal/domain"
	"fmt"
	"strings"
)

// Deterministic plain-text renderers, one per answer kind. They are
// the canonical report format; a phraser may reword them but every
// answer starts here.

func renderRoute(origin, destination string, rec *domain.Recommendation) string {
	var b strings.Builder
	b.WriteString("ROUTE SUMMARY\n")
	fmt.Fprintf(&b, "Origin: %s\n", origin)
	fmt.Fprintf(&b, "Destination: %s\n", destination)

	best := rec.Best
	fmt.Fprintf(&b, "Recommended: %s (%s)\n", best.Candidate.ID, best.Candidate.Summary)
	fmt.Fprintf(&b, "  Distance: %.1f km\n", best.Candidate.DistanceKm)
	fmt.Fprintf(&b, "  Duration: %.0f min\n", best.Candidate.DurationMin)
	fmt.Fprintf(&b, "  Estimated cost: %.2f\n", best.Cost)
	b.WriteString(rec.Rationale)
	b.WriteString("\n")

	if len(rec.Alternatives) == 0 {
		b.WriteString("Alternatives: none\n")
		return b.String()
	}

	b.WriteString("Alternatives:\n")
	for _, alt := range rec.Alternatives {
		fmt.Fprintf(&b, "  %d. %s (%s): %.1f km, %.0f min, cost %.2f\n",
			alt.Rank, alt.Candidate.ID, alt.Candidate.Summary,
			alt.Candidate.DistanceKm, alt.Candidate.DurationMin, alt.Cost)
	}
	return b.String()
}

func renderMultiStop(plan *domain.MultiStopPlan) string {
	var b strings.Builder
	b.WriteString("OPTIMAL MULTI-ROUTE PLAN\n")
	fmt.Fprintf(&b, "Origin: %s\n", plan.Origin)
	fmt.Fprintf(&b, "Visiting order: %s\n", strings.Join(plan.Order, " -> "))
	fmt.Fprintf(&b, "Traffic factor: %.2f\n", plan.TrafficFactor)

	b.WriteString("Legs:\n")
	for i, leg := range plan.Legs {
		fmt.Fprintf(&b, "  %d. %s -> %s: %.1f km, %.0f min (adjusted %.0f min)\n",
			i+1, leg.From, leg.To, leg.DistanceKm, leg.DurationMin, leg.AdjustedMin)
	}
	fmt.Fprintf(&b, "Total: %.1f km, %.0f min (adjusted %.0f min)\n",
		plan.TotalDistanceKm, plan.TotalDurationMin, plan.TotalAdjustedMin)
	return b.String()
}

func renderFleet(origin, destination string, cargoWeightKg float64, est *domain.FleetEstimate) string {
	var b strings.Builder
	b.WriteString("COST ESTIMATE\n")
	fmt.Fprintf(&b, "Route: %s -> %s (%.1f km, %.0f min)\n", origin, destination, est.DistanceKm, est.DurationMin)
	fmt.Fprintf(&b, "Cargo: %.1f kg\n", cargoWeightKg)
	fmt.Fprintf(&b, "Traffic factor: %.2f\n", est.TrafficFactor)
	fmt.Fprintf(&b, "Weather factor: %.2f\n", est.WeatherFactor)

	best := est.Recommended()
	fmt.Fprintf(&b, "Recommended: %s %s at %.2f\n", best.Vehicle.ID, best.Vehicle.Name, best.TotalCost)

	b.WriteString("Options:\n")
	for i, opt := range est.Options {
		fmt.Fprintf(&b, "  %d. %s %s: %.2f (fuel %.2f, driver %.2f, base %.2f, capacity %.0f%%)\n",
			i+1, opt.Vehicle.ID, opt.Vehicle.Name, opt.TotalCost,
			opt.FuelCost, opt.DriverCost, opt.BaseCost, opt.CapacityUsage*100)
	}
	return b.String()
}

func renderTraffic(origin, destination string, report domain.TrafficReport) string {
	var b strings.Builder
	b.WriteString("TRAFFIC ANALYSIS\n")
	if origin == destination {
		fmt.Fprintf(&b, "Location: %s\n", origin)
	} else {
		fmt.Fprintf(&b, "Route: %s -> %s\n", origin, destination)
	}
	fmt.Fprintf(&b, "Congestion factor: %.2f (%s)\n", report.Factor, report.Level)
	if report.DurationMin > 0 {
		fmt.Fprintf(&b, "Estimated delay: %.0f min over a %.0f min drive\n", report.DelayMin, report.DurationMin)
	}
	b.WriteString(report.Advice)
	b.WriteString("\n")
	return b.String()
}

func renderWeather(origin, destination string, impact domain.WeatherImpact) string {
	var b strings.Builder
	b.WriteString("WEATHER ANALYSIS\n")
	if origin == destination {
		fmt.Fprintf(&b, "Location: %s\n", origin)
		fmt.Fprintf(&b, "Conditions: %s, %.1f C\n", impact.Origin.Summary, impact.Origin.TempC)
	} else {
		fmt.Fprintf(&b, "Route: %s -> %s\n", origin, destination)
		fmt.Fprintf(&b, "Origin conditions: %s, %.1f C\n", impact.Origin.Summary, impact.Origin.TempC)
		fmt.Fprintf(&b, "Destination conditions: %s, %.1f C\n", impact.Destination.Summary, impact.Destination.TempC)
	}
	fmt.Fprintf(&b, "Impact factor: %.2f\n", impact.Factor)

	if len(impact.Warnings) == 0 {
		b.WriteString("No adverse conditions.\n")
		return b.String()
	}

	b.WriteString("Warnings:\n")
	for _, w := range impact.Warnings {
		fmt.Fprintf(&b, "  - %s\n", w)
	}
	return b.String()
}
