package services

import (
	"context"
	"delivery-optimizer/internal/adapters/routing"
	"delivery-optimizer/internal/domain"
	"math"
	"strings"
	"testing"
)

var (
	depotCoord = domain.Coordinates{Lon: 28.97, Lat: 41.00}
	stopACoord = domain.Coordinates{Lon: 29.02, Lat: 41.05}
	stopBCoord = domain.Coordinates{Lon: 28.90, Lat: 40.98}
)

// Asymmetric travel times make depot -> B -> A (10 + 10 = 20 min) beat
// the naive depot -> A -> B order (30 + 30 = 60 min).
func planLegs() []routing.MockLeg {
	return []routing.MockLeg{
		{From: depotCoord, To: stopACoord, DistanceKm: 30, DurationMin: 30},
		{From: depotCoord, To: stopBCoord, DistanceKm: 10, DurationMin: 10},
		{From: stopACoord, To: stopBCoord, DistanceKm: 30, DurationMin: 30},
		{From: stopBCoord, To: stopACoord, DistanceKm: 10, DurationMin: 10},
		{From: stopACoord, To: depotCoord, DistanceKm: 30, DurationMin: 30},
		{From: stopBCoord, To: depotCoord, DistanceKm: 10, DurationMin: 10},
	}
}

func planStops() (Stop, []Stop) {
	origin := Stop{Name: "Depot", Coord: depotCoord}
	destinations := []Stop{
		{Name: "A", Coord: stopACoord},
		{Name: "B", Coord: stopBCoord},
	}
	return origin, destinations
}

func TestPlanMultiStopFindsCheapestOrder(t *testing.T) {
	origin, destinations := planStops()
	provider := routing.NewMockRouteProvider(planLegs())

	plan, err := PlanMultiStop(context.Background(), origin, destinations, 1.0, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := strings.Join(plan.Order, ","); got != "B,A" {
		t.Fatalf("order = %s, want B,A", got)
	}
	if math.Abs(plan.TotalDurationMin-20) > 1e-9 {
		t.Fatalf("total duration = %v, want 20", plan.TotalDurationMin)
	}
	if math.Abs(plan.TotalDistanceKm-20) > 1e-9 {
		t.Fatalf("total distance = %v, want 20", plan.TotalDistanceKm)
	}
	if len(plan.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(plan.Legs))
	}
	if plan.Legs[0].From != "Depot" || plan.Legs[0].To != "B" || plan.Legs[1].To != "A" {
		t.Fatalf("legs = %+v, want Depot->B then B->A", plan.Legs)
	}
}

func TestPlanMultiStopAppliesTrafficFactor(t *testing.T) {
	origin, destinations := planStops()
	provider := routing.NewMockRouteProvider(planLegs())

	plan, err := PlanMultiStop(context.Background(), origin, destinations, 1.5, provider)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 20 raw minutes scaled by 1.5; raw totals stay unscaled.
	if math.Abs(plan.TotalAdjustedMin-30) > 1e-9 {
		t.Fatalf("adjusted total = %v, want 30", plan.TotalAdjustedMin)
	}
	if math.Abs(plan.TotalDurationMin-20) > 1e-9 {
		t.Fatalf("raw total = %v, want 20", plan.TotalDurationMin)
	}
	for _, leg := range plan.Legs {
		if math.Abs(leg.AdjustedMin-leg.DurationMin*1.5) > 1e-9 {
			t.Fatalf("leg %s->%s adjusted = %v, want %v", leg.From, leg.To, leg.AdjustedMin, leg.DurationMin*1.5)
		}
	}
}

func TestPlanMultiStopMatrixProviderMatchesPairwise(t *testing.T) {
	origin, destinations := planStops()

	pairwise, err := PlanMultiStop(context.Background(), origin, destinations, 1.0, routing.NewMockRouteProvider(planLegs()))
	if err != nil {
		t.Fatalf("pairwise: %v", err)
	}
	batched, err := PlanMultiStop(context.Background(), origin, destinations, 1.0, routing.NewMockMatrixProvider(planLegs()))
	if err != nil {
		t.Fatalf("batched: %v", err)
	}

	if strings.Join(pairwise.Order, ",") != strings.Join(batched.Order, ",") {
		t.Fatalf("orders differ: %v vs %v", pairwise.Order, batched.Order)
	}
	if pairwise.TotalAdjustedMin != batched.TotalAdjustedMin {
		t.Fatalf("totals differ: %v vs %v", pairwise.TotalAdjustedMin, batched.TotalAdjustedMin)
	}
}

func TestPlanMultiStopDeterministicOnTies(t *testing.T) {
	// Symmetric legs tie every order; the first lexicographic
	// permutation must win.
	origin, destinations := planStops()
	legs := []routing.MockLeg{
		{From: depotCoord, To: stopACoord, DistanceKm: 10, DurationMin: 10},
		{From: depotCoord, To: stopBCoord, DistanceKm: 10, DurationMin: 10},
		{From: stopACoord, To: stopBCoord, DistanceKm: 10, DurationMin: 10},
		{From: stopBCoord, To: stopACoord, DistanceKm: 10, DurationMin: 10},
		{From: stopACoord, To: depotCoord, DistanceKm: 10, DurationMin: 10},
		{From: stopBCoord, To: depotCoord, DistanceKm: 10, DurationMin: 10},
	}

	for i := 0; i < 5; i++ {
		plan, err := PlanMultiStop(context.Background(), origin, destinations, 1.0, routing.NewMockRouteProvider(legs))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.Join(plan.Order, ","); got != "A,B" {
			t.Fatalf("run %d order = %s, want A,B", i, got)
		}
	}
}

func TestPlanMultiStopRejectsBadInput(t *testing.T) {
	origin, destinations := planStops()
	provider := routing.NewMockRouteProvider(planLegs())

	if _, err := PlanMultiStop(context.Background(), Stop{}, destinations, 1.0, provider); err == nil {
		t.Fatalf("expected error for empty origin")
	}
	if _, err := PlanMultiStop(context.Background(), origin, nil, 1.0, provider); err == nil {
		t.Fatalf("expected error for no destinations")
	}

	many := make([]Stop, 7)
	for i := range many {
		many[i] = Stop{Name: string(rune('A' + i)), Coord: domain.Coordinates{Lon: float64(i), Lat: float64(i)}}
	}
	if _, err := PlanMultiStop(context.Background(), origin, many, 1.0, provider); err == nil {
		t.Fatalf("expected error for more than 6 destinations")
	}
}

func TestPlanMultiStopPropagatesProviderErrors(t *testing.T) {
	origin, destinations := planStops()
	// Fixture missing the B -> A leg.
	provider := routing.NewMockRouteProvider([]routing.MockLeg{
		{From: depotCoord, To: stopACoord, DistanceKm: 30, DurationMin: 30},
		{From: depotCoord, To: stopBCoord, DistanceKm: 10, DurationMin: 10},
		{From: stopACoord, To: stopBCoord, DistanceKm: 30, DurationMin: 30},
	})

	if _, err := PlanMultiStop(context.Background(), origin, destinations, 1.0, provider); err == nil {
		t.Fatalf("expected error for missing leg")
	}
}
