package weather

import (
	"context"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/platform/httpret"
	"delivery-optimizer/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type openWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Visibility float64 `json:"visibility"`
	Wind       struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain struct {
		OneHour float64 `json:"1h"`
	} `json:"rain"`
}

// OpenWeatherProvider reads current conditions from the OpenWeatherMap
// current weather API in metric units.
//
// The provider is safe for concurrent use.
type OpenWeatherProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewOpenWeatherProvider(baseURL, apiKey string) (*OpenWeatherProvider, error) {
	if baseURL == "" {
		return nil, errors.New("weather base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("weather api key is empty")
	}

	return &OpenWeatherProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

func (p *OpenWeatherProvider) GetConditions(
	ctx context.Context,
	at domain.Coordinates,
) (_ domain.WeatherObservation, err error) {
	defer obs.Time(ctx, "weather.GetConditions")(&err)

	if !at.InBounds() {
		return domain.WeatherObservation{}, fmt.Errorf("coordinates out of bounds: %v", at)
	}

	endpoint := p.baseURL + "/data/2.5/weather"

	resp, err := httpret.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("lat", strconv.FormatFloat(at.Lat, 'f', 5, 64))
		q.Set("lon", strconv.FormatFloat(at.Lon, 'f', 5, 64))
		q.Set("appid", p.apiKey)
		q.Set("units", "metric")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("weather request: %w", err)
	}
	defer resp.Body.Close()

	var decoded openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.WeatherObservation{}, fmt.Errorf("decode weather response: %w", err)
	}

	summary := "Unknown"
	if len(decoded.Weather) > 0 {
		if decoded.Weather[0].Description != "" {
			summary = decoded.Weather[0].Description
		} else if decoded.Weather[0].Main != "" {
			summary = decoded.Weather[0].Main
		}
	}

	return domain.WeatherObservation{
		Summary:          summary,
		TempC:            decoded.Main.Temp,
		RainMMPerHour:    decoded.Rain.OneHour,
		VisibilityMeters: decoded.Visibility,
		WindSpeedMS:      decoded.Wind.Speed,
	}, nil
}
