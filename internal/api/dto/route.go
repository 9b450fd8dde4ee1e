package dto

import "delivery-optimizer/internal/domain"

type WeightsPayload struct {
	Cost float64 `json:"cost"`
	Time float64 `json:"time"`
}

type RecommendRouteRequest struct {
	Origin        string          `json:"origin"`
	Destination   string          `json:"destination"`
	Vehicle       string          `json:"vehicle"`
	CargoWeightKg float64         `json:"cargo_weight_kg"`
	Weights       *WeightsPayload `json:"weights"`
}

type RouteCandidateResponse struct {
	ID          string   `json:"id"`
	Summary     string   `json:"summary"`
	DistanceKm  float64  `json:"distance_km"`
	DurationMin float64  `json:"duration_min"`
	Congestion  float64  `json:"congestion,omitempty"`
	Steps       []string `json:"steps,omitempty"`
}

type CostBreakdownResponse struct {
	Base             float64 `json:"base"`
	WeightSurcharge  float64 `json:"weight_surcharge"`
	TrafficSurcharge float64 `json:"traffic_surcharge"`
	Total            float64 `json:"total"`
}

type ScoredRouteResponse struct {
	Route     RouteCandidateResponse `json:"route"`
	Cost      float64                `json:"cost"`
	Breakdown CostBreakdownResponse  `json:"cost_breakdown"`
	Score     float64                `json:"score"`
	Rank      int                    `json:"rank"`
}

type RecommendRouteResponse struct {
	Best         ScoredRouteResponse   `json:"best"`
	Alternatives []ScoredRouteResponse `json:"alternatives"`
	Rationale    string                `json:"rationale"`
	Summary      string                `json:"summary"`
}

type MultiRouteRequest struct {
	Origin       string   `json:"origin"`
	Destinations []string `json:"destinations"`
}

type MultiStopLegResponse struct {
	From        string  `json:"from"`
	To          string  `json:"to"`
	DistanceKm  float64 `json:"distance_km"`
	DurationMin float64 `json:"duration_min"`
	AdjustedMin float64 `json:"adjusted_min"`
}

type MultiRouteResponse struct {
	Origin           string                 `json:"origin"`
	Order            []string               `json:"order"`
	Legs             []MultiStopLegResponse `json:"legs"`
	TotalDistanceKm  float64                `json:"total_distance_km"`
	TotalDurationMin float64                `json:"total_duration_min"`
	TotalAdjustedMin float64                `json:"total_adjusted_min"`
	TrafficFactor    float64                `json:"traffic_factor"`
	Summary          string                 `json:"summary"`
}

func NewScoredRouteResponse(s domain.ScoredRoute) ScoredRouteResponse {
	return ScoredRouteResponse{
		Route: RouteCandidateResponse{
			ID:          s.Candidate.ID,
			Summary:     s.Candidate.Summary,
			DistanceKm:  s.Candidate.DistanceKm,
			DurationMin: s.Candidate.DurationMin,
			Congestion:  s.Candidate.Congestion,
			Steps:       s.Candidate.Steps,
		},
		Cost: s.Cost,
		Breakdown: CostBreakdownResponse{
			Base:             s.Breakdown.Base,
			WeightSurcharge:  s.Breakdown.WeightSurcharge,
			TrafficSurcharge: s.Breakdown.TrafficSurcharge,
			Total:            s.Breakdown.Total,
		},
		Score: s.Score,
		Rank:  s.Rank,
	}
}

func NewRecommendRouteResponse(rec *domain.Recommendation, summary string) RecommendRouteResponse {
	res := RecommendRouteResponse{
		Best:         NewScoredRouteResponse(rec.Best),
		Alternatives: make([]ScoredRouteResponse, 0, len(rec.Alternatives)),
		Rationale:    rec.Rationale,
		Summary:      summary,
	}
	for _, alt := range rec.Alternatives {
		res.Alternatives = append(res.Alternatives, NewScoredRouteResponse(alt))
	}
	return res
}

func NewMultiRouteResponse(plan *domain.MultiStopPlan, summary string) MultiRouteResponse {
	res := MultiRouteResponse{
		Origin:           plan.Origin,
		Order:            plan.Order,
		Legs:             make([]MultiStopLegResponse, 0, len(plan.Legs)),
		TotalDistanceKm:  plan.TotalDistanceKm,
		TotalDurationMin: plan.TotalDurationMin,
		TotalAdjustedMin: plan.TotalAdjustedMin,
		TrafficFactor:    plan.TrafficFactor,
		Summary:          summary,
	}
	for _, leg := range plan.Legs {
		res.Legs = append(res.Legs, MultiStopLegResponse{
			From:        leg.From,
			To:          leg.To,
			DistanceKm:  leg.DistanceKm,
			DurationMin: leg.DurationMin,
			AdjustedMin: leg.AdjustedMin,
		})
	}
	return res
}
