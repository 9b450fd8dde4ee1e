package dto

import "delivery-optimizer/internal/domain"

type TrafficResponse struct {
	Origin      string  `json:"origin"`
	Destination string  `json:"destination"`
	Factor      float64 `json:"factor"`
	Level       string  `json:"level"`
	DurationMin float64 `json:"duration_min"`
	DelayMin    float64 `json:"delay_min"`
	Advice      string  `json:"advice"`
}

type WeatherObservationResponse struct {
	Summary          string  `json:"summary"`
	TempC            float64 `json:"temp_c"`
	RainMMPerHour    float64 `json:"rain_mm_per_hour"`
	VisibilityMeters float64 `json:"visibility_meters"`
	WindSpeedMS      float64 `json:"wind_speed_ms"`
}

type WeatherResponse struct {
	Origin                string                     `json:"origin"`
	Destination           string                     `json:"destination"`
	Factor                float64                    `json:"factor"`
	Warnings              []string                   `json:"warnings"`
	OriginConditions      WeatherObservationResponse `json:"origin_conditions"`
	DestinationConditions WeatherObservationResponse `json:"destination_conditions"`
}

func NewTrafficResponse(origin, destination string, report domain.TrafficReport) TrafficResponse {
	return TrafficResponse{
		Origin:      origin,
		Destination: destination,
		Factor:      report.Factor,
		Level:       string(report.Level),
		DurationMin: report.DurationMin,
		DelayMin:    report.DelayMin,
		Advice:      report.Advice,
	}
}

func NewWeatherResponse(origin, destination string, impact domain.WeatherImpact) WeatherResponse {
	return WeatherResponse{
		Origin:                origin,
		Destination:           destination,
		Factor:                impact.Factor,
		Warnings:              impact.Warnings,
		OriginConditions:      newObservationResponse(impact.Origin),
		DestinationConditions: newObservationResponse(impact.Destination),
	}
}

func newObservationResponse(obs domain.WeatherObservation) WeatherObservationResponse {
	return WeatherObservationResponse{
		Summary:          obs.Summary,
		TempC:            obs.TempC,
		RainMMPerHour:    obs.RainMMPerHour,
		VisibilityMeters: obs.VisibilityMeters,
		WindSpeedMS:      obs.WindSpeedMS,
	}
}
