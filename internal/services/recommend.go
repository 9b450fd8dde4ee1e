package services

import (
	"delivery-optimizer/internal/domain"
	"fmt"
)

// BuildRecommendation assembles a ranked sequence into the final
// Recommendation. Pure formatting; the one failure is an empty input,
// which callers are expected to guard against.
func BuildRecommendation(ranked []domain.ScoredRoute) (*domain.Recommendation, error) {
	if len(ranked) == 0 {
		return nil, fmt.Errorf("%w: no candidates to recommend", domain.ErrEmptyRouteSet)
	}

	best := ranked[0]
	alternatives := make([]domain.ScoredRoute, len(ranked)-1)
	copy(alternatives, ranked[1:])

	return &domain.Recommendation{
		Best:         best,
		Alternatives: alternatives,
		Rationale:    rationaleFor(best, alternatives),
	}, nil
}

func rationaleFor(best domain.ScoredRoute, alternatives []domain.ScoredRoute) string {
	if len(alternatives) == 0 {
		return fmt.Sprintf(
			"Route %s is the only viable candidate: estimated cost %.2f for %.0f min of travel.",
			best.Candidate.ID, best.Cost, best.Candidate.DurationMin,
		)
	}

	next := alternatives[0]
	return fmt.Sprintf(
		"Route %s offers the best cost/time balance: estimated cost %.2f for %.0f min of travel (%s cost, %s travel time vs. %s).",
		best.Candidate.ID, best.Cost, best.Candidate.DurationMin,
		percentDelta(best.Cost, next.Cost),
		percentDelta(best.Candidate.DurationMin, next.Candidate.DurationMin),
		next.Candidate.ID,
	)
}

// percentDelta describes the winner's value relative to the runner-up.
func percentDelta(winner, next float64) string {
	if next == 0 {
		if winner == 0 {
			return "equal"
		}
		return "higher"
	}

	d := (next - winner) / next * 100
	switch {
	case d > 0:
		return fmt.Sprintf("%.1f%% lower", d)
	case d < 0:
		return fmt.Sprintf("%.1f%% higher", -d)
	default:
		return "equal"
	}
}

// RecommendRoute runs the full scoring pipeline over raw candidates:
// normalize, price, rank, format. Synchronous and side-effect free;
// each call works on its own snapshot of the inputs.
func RecommendRoute(
	candidates []domain.RouteCandidate,
	factors domain.CostFactors,
	weights domain.RankWeights,
) (*domain.Recommendation, error) {
	normalized, err := NormalizeCandidates(candidates)
	if err != nil {
		return nil, fmt.Errorf("recommend route: %w", err)
	}

	ranked, err := RankRoutes(normalized, factors, weights)
	if err != nil {
		return nil, fmt.Errorf("recommend route: %w", err)
	}

	rec, err := BuildRecommendation(ranked)
	if err != nil {
		return nil, fmt.Errorf("recommend route: %w", err)
	}

	return rec, nil
}
