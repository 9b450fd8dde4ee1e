// Package llm backs the agent's Parser and Phraser ports with hosted
// chat models. Both providers share one JSON parse contract; anything
// the model gets wrong degrades to the deterministic rule parser.
package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"delivery-optimizer/internal/agent"
	"delivery-optimizer/internal/domain"
)

const (
	llmTemperature  = 0.3
	maxParseTokens  = 256
	maxPhraseTokens = 512
)

const parseSystemPrompt = `You turn one delivery question into a single JSON object.
Respond with JSON only. No prose, no code fences.

Schema:
{
  "kind": "route" | "multi_route" | "cost" | "traffic" | "weather",
  "origin": "<place>",
  "destination": "<place>",
  "destinations": ["<place>", ...],
  "vehicle": "bike" | "van" | "truck" | "",
  "cargo_weight_kg": <number>
}

Rules:
- "kind" is required and must be one of the five values.
- Single-destination requests fill "destination"; multi-stop requests fill "destinations".
- Traffic or weather questions about one place put it in both "origin" and "destination".
- Leave out or zero any field the question does not mention.`

const phraseSystemPrompt = `You are the voice of a delivery assistant.
Reword the report below as short plain prose for a dispatcher.
Keep every number, unit and place name exactly as given.
Never add data that is not in the report.`

// Mirrors the parse contract above.
type parsedQuery struct {
	Kind          string   `json:"kind"`
	Origin        string   `json:"origin"`
	Destination   string   `json:"destination"`
	Destinations  []string `json:"destinations"`
	Vehicle       string   `json:"vehicle"`
	CargoWeightKg float64  `json:"cargo_weight_kg"`
}

// decodeRequest turns a model reply into a typed request. Replies that
// break the contract come back as errors so the caller can fall back.
func decodeRequest(raw string) (agent.Request, error) {
	var pq parsedQuery
	if err := json.Unmarshal([]byte(stripFences(raw)), &pq); err != nil {
		return nil, fmt.Errorf("decode model reply: %w", err)
	}

	switch agent.Kind(pq.Kind) {
	case agent.KindRoute:
		if pq.Origin == "" || pq.Destination == "" {
			return nil, fmt.Errorf("decode model reply: route needs origin and destination")
		}
		return agent.RouteRequest{
			Origin:        pq.Origin,
			Destination:   pq.Destination,
			Vehicle:       parseVehicle(pq.Vehicle),
			CargoWeightKg: pq.CargoWeightKg,
		}, nil

	case agent.KindMultiRoute:
		if pq.Origin == "" || len(pq.Destinations) == 0 {
			return nil, fmt.Errorf("decode model reply: multi_route needs origin and destinations")
		}
		return agent.MultiRouteRequest{Origin: pq.Origin, Destinations: pq.Destinations}, nil

	case agent.KindCost:
		if pq.Origin == "" || pq.Destination == "" {
			return nil, fmt.Errorf("decode model reply: cost needs origin and destination")
		}
		return agent.CostRequest{
			Origin:        pq.Origin,
			Destination:   pq.Destination,
			CargoWeightKg: pq.CargoWeightKg,
		}, nil

	case agent.KindTraffic, agent.KindWeather:
		origin, destination := fillPair(pq.Origin, pq.Destination)
		if origin == "" {
			return nil, fmt.Errorf("decode model reply: %s needs a place", pq.Kind)
		}
		if agent.Kind(pq.Kind) == agent.KindTraffic {
			return agent.TrafficRequest{Origin: origin, Destination: destination}, nil
		}
		return agent.WeatherRequest{Origin: origin, Destination: destination}, nil
	}

	return nil, fmt.Errorf("decode model reply: unknown kind %q", pq.Kind)
}

// fillPair completes a half-filled place pair; a single place stands
// for both ends.
func fillPair(origin, destination string) (string, string) {
	if origin == "" {
		origin = destination
	}
	if destination == "" {
		destination = origin
	}
	return origin, destination
}

// parseVehicle is tolerant: an unknown vehicle name means unspecified.
func parseVehicle(s string) domain.VehicleType {
	if s == "" {
		return ""
	}
	vt, err := domain.ParseVehicleType(s)
	if err != nil {
		return ""
	}
	return vt
}

// stripFences removes a markdown code fence a model may wrap its JSON
// in despite the contract.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	if idx := strings.LastIndex(s, "```"); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

func phraseContent(query string, ans *agent.Answer) string {
	return fmt.Sprintf("Question: %s\n\nReport:\n%s", query, ans.Text)
}
