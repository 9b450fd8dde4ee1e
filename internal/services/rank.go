package services

import (
	"delivery-optimizer/internal/domain"
	"fmt"
	"math"
	"slices"
)

const (
	// Scores closer than this are treated as equal when ranking.
	scoreEpsilon = 1e-9
	// Tolerance for the weight-sum contract.
	weightEpsilon = 1e-6
)

func validateWeights(w domain.RankWeights) error {
	if w.Cost < 0 || w.Time < 0 {
		return fmt.Errorf(
			"%w: weights must be non-negative, got cost=%v time=%v",
			domain.ErrInvalidWeights, w.Cost, w.Time,
		)
	}
	if math.Abs(w.Cost+w.Time-1.0) > weightEpsilon {
		return fmt.Errorf(
			"%w: cost+time must sum to 1.0, got %v",
			domain.ErrInvalidWeights, w.Cost+w.Time,
		)
	}
	return nil
}

// RankRoutes prices every candidate and sorts them best-first by
// composite score.
//
// Cost and duration are normalized against the batch maximum (a zero
// maximum normalizes to zero), then blended:
//
//	score = cost_weight*normCost + time_weight*normDuration
//
// Scores tied within scoreEpsilon prefer the lower raw cost; a
// remaining tie keeps input order, so identical inputs always produce
// identical output. Ranks are 1-based.
func RankRoutes(
	candidates []domain.RouteCandidate,
	factors domain.CostFactors,
	weights domain.RankWeights,
) ([]domain.ScoredRoute, error) {
	if err := validateWeights(weights); err != nil {
		return nil, err
	}

	scored := make([]domain.ScoredRoute, 0, len(candidates))
	maxCost := 0.0
	maxDuration := 0.0

	for i, c := range candidates {
		breakdown, err := EstimateCost(c, factors)
		if err != nil {
			return nil, fmt.Errorf("rank routes: candidate %d (%s): %w", i, c.ID, err)
		}

		scored = append(scored, domain.ScoredRoute{
			Candidate: c,
			Cost:      breakdown.Total,
			Breakdown: breakdown,
		})

		if breakdown.Total > maxCost {
			maxCost = breakdown.Total
		}
		if c.DurationMin > maxDuration {
			maxDuration = c.DurationMin
		}
	}

	for i := range scored {
		normCost := 0.0
		if maxCost > 0 {
			normCost = scored[i].Cost / maxCost
		}
		normDuration := 0.0
		if maxDuration > 0 {
			normDuration = scored[i].Candidate.DurationMin / maxDuration
		}
		scored[i].Score = weights.Cost*normCost + weights.Time*normDuration
	}

	slices.SortStableFunc(scored, func(a, b domain.ScoredRoute) int {
		// Tie-breaker ensures deterministic ordering when scores are equal.
		if math.Abs(a.Score-b.Score) <= scoreEpsilon {
			switch {
			case a.Cost < b.Cost:
				return -1
			case a.Cost > b.Cost:
				return 1
			default:
				return 0
			}
		}
		if a.Score < b.Score {
			return -1
		}
		return 1
	})

	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored, nil
}
