package services

import (
	"context"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/ports"
	"errors"
	"fmt"
	"sync"
)

// Permutation search is bounded; 6 destinations = 720 orders.
const MaxMultiStopDestinations = 6

// A named point visited by a multi-stop plan.
type Stop struct {
	Name  string
	Coord domain.Coordinates
}

type legResult struct {
	i, j int
	leg  domain.RouteLeg
	err  error
}

// PlanMultiStop finds the destination visiting order that minimizes
// total traffic-adjusted travel time, evaluating every permutation.
//
// Permutations are generated in lexicographic index order and only a
// strictly better total replaces the current best, so identical inputs
// always produce the same plan. It does not attempt heuristics; the
// destination cap keeps the search tractable.
func PlanMultiStop(
	ctx context.Context,
	origin Stop,
	destinations []Stop,
	trafficFactor float64,
	provider ports.RouteProvider,
) (*domain.MultiStopPlan, error) {
	if origin.Name == "" {
		return nil, errors.New("plan multi stop: origin must be non-empty")
	}
	if len(destinations) == 0 {
		return nil, errors.New("plan multi stop: at least one destination required")
	}
	if len(destinations) > MaxMultiStopDestinations {
		return nil, fmt.Errorf(
			"plan multi stop: at most %d destinations supported, got %d",
			MaxMultiStopDestinations, len(destinations),
		)
	}

	traffic := trafficFactor
	if traffic <= 0 {
		traffic = 1.0
	}

	points := make([]Stop, 0, 1+len(destinations))
	points = append(points, origin)
	points = append(points, destinations...)

	legs, err := fetchLegMatrix(ctx, points, provider)
	if err != nil {
		return nil, err
	}

	// Walk permutations of destination indices 1..n against the leg
	// matrix; index 0 is the fixed origin.
	order := make([]int, len(destinations))
	for i := range order {
		order[i] = i + 1
	}

	best := make([]int, len(order))
	copy(best, order)
	bestAdjusted := totalAdjustedMinutes(order, legs, traffic)

	for nextPermutation(order) {
		if adjusted := totalAdjustedMinutes(order, legs, traffic); adjusted < bestAdjusted {
			bestAdjusted = adjusted
			copy(best, order)
		}
	}

	plan := &domain.MultiStopPlan{
		Origin:        origin.Name,
		Order:         make([]string, 0, len(best)),
		Legs:          make([]domain.MultiStopLeg, 0, len(best)),
		TrafficFactor: traffic,
	}

	prev := 0
	for _, idx := range best {
		leg := legs[prev][idx]
		plan.Order = append(plan.Order, points[idx].Name)
		plan.Legs = append(plan.Legs, domain.MultiStopLeg{
			From:        points[prev].Name,
			To:          points[idx].Name,
			DistanceKm:  leg.DistanceKm,
			DurationMin: leg.DurationMin,
			AdjustedMin: leg.DurationMin * traffic,
		})
		plan.TotalDistanceKm += leg.DistanceKm
		plan.TotalDurationMin += leg.DurationMin
		prev = idx
	}
	plan.TotalAdjustedMin = bestAdjusted

	return plan, nil
}

func totalAdjustedMinutes(order []int, legs [][]domain.RouteLeg, traffic float64) float64 {
	total := 0.0
	prev := 0
	for _, idx := range order {
		total += legs[prev][idx].DurationMin * traffic
		prev = idx
	}
	return total
}

// fetchLegMatrix retrieves travel metrics between all point pairs.
// It prefers a single batched lookup when the provider supports it,
// otherwise falls back to bounded-concurrency pairwise calls that
// cancel outstanding work on the first failure.
func fetchLegMatrix(
	ctx context.Context,
	points []Stop,
	provider ports.RouteProvider,
) ([][]domain.RouteLeg, error) {
	coords := make([]domain.Coordinates, 0, len(points))
	for _, p := range points {
		coords = append(coords, p.Coord)
	}

	if mp, ok := provider.(ports.RouteMatrixProvider); ok {
		legs, err := mp.GetLegs(ctx, coords)
		if err != nil {
			return nil, fmt.Errorf("plan multi stop: get leg matrix: %w", err)
		}
		if len(legs) != len(points) {
			return nil, fmt.Errorf(
				"plan multi stop: leg matrix has %d rows, want %d",
				len(legs), len(points),
			)
		}
		return legs, nil
	}

	n := len(points)
	legs := make([][]domain.RouteLeg, n)
	for i := range legs {
		legs[i] = make([]domain.RouteLeg, n)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sem := make(chan struct{}, 5)
	resultsCh := make(chan legResult, n*n)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}

			wg.Add(1)
			go func(i, j int) {
				sem <- struct{}{}
				defer wg.Done()
				defer func() { <-sem }()

				leg, err := provider.GetLeg(ctx, points[i].Coord, points[j].Coord)
				if err != nil {
					resultsCh <- legResult{i: i, j: j, err: fmt.Errorf(
						"plan multi stop: leg %q -> %q: %w",
						points[i].Name, points[j].Name, err,
					)}
					cancel()
					return
				}
				resultsCh <- legResult{i: i, j: j, leg: leg}
			}(i, j)
		}
	}

	wg.Wait()
	close(resultsCh)

	var firstErr error
	for res := range resultsCh {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		legs[res.i][res.j] = res.leg
	}
	if firstErr != nil {
		return nil, firstErr
	}

	return legs, nil
}

// nextPermutation advances idx to the next lexicographic permutation,
// returning false once the final permutation has been visited.
func nextPermutation(idx []int) bool {
	i := len(idx) - 2
	for i >= 0 && idx[i] >= idx[i+1] {
		i--
	}
	if i < 0 {
		return false
	}

	j := len(idx) - 1
	for idx[j] <= idx[i] {
		j--
	}
	idx[i], idx[j] = idx[j], idx[i]

	for l, r := i+1, len(idx)-1; l < r; l, r = l+1, r-1 {
		idx[l], idx[r] = idx[r], idx[l]
	}
	return true
}
