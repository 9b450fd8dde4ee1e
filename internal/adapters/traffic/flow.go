package traffic

import (
	"context"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/platform/httpret"
	"delivery-optimizer/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Raw congestion factors are clamped to this range before use.
const (
	minFlowFactor = 0.8
	maxFlowFactor = 2.0
)

type flowSegmentResponse struct {
	FlowSegmentData struct {
		CurrentSpeed       float64 `json:"currentSpeed"`
		FreeFlowSpeed      float64 `json:"freeFlowSpeed"`
		CurrentTravelTime  float64 `json:"currentTravelTime"`
		FreeFlowTravelTime float64 `json:"freeFlowTravelTime"`
		Confidence         float64 `json:"confidence"`
	} `json:"flowSegmentData"`
}

// FlowProvider derives a congestion factor from the TomTom flow
// segment service: current travel time over free-flow travel time for
// the road segment nearest the queried point.
//
// The provider is safe for concurrent use.
type FlowProvider struct {
	session *http.Client
	baseURL string
	apiKey  string
}

func NewFlowProvider(baseURL, apiKey string) (*FlowProvider, error) {
	if baseURL == "" {
		return nil, errors.New("traffic base URL is empty")
	}
	if apiKey == "" {
		return nil, errors.New("traffic api key is empty")
	}

	return &FlowProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}, nil
}

// GetFactor returns the live congestion factor near a point. The
// timestamp is ignored; the flow service only reports current state.
func (p *FlowProvider) GetFactor(
	ctx context.Context,
	at domain.Coordinates,
	when time.Time,
) (_ float64, err error) {
	defer obs.Time(ctx, "traffic.GetFactor")(&err)

	if !at.InBounds() {
		return 0, fmt.Errorf("coordinates out of bounds: %v", at)
	}

	endpoint := p.baseURL + "/traffic/services/4/flowSegmentData/absolute/10/json"

	resp, err := httpret.DoWithRetry(ctx, p.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		// The flow service wants lat,lon order.
		q.Set("point", strconv.FormatFloat(at.Lat, 'f', 5, 64)+","+strconv.FormatFloat(at.Lon, 'f', 5, 64))
		q.Set("key", p.apiKey)
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return 0, fmt.Errorf("flow segment request: %w", err)
	}
	defer resp.Body.Close()

	var decoded flowSegmentResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode flow response: %w", err)
	}

	seg := decoded.FlowSegmentData
	if seg.FreeFlowTravelTime <= 0 {
		return 0, errors.New("flow segment has no free-flow baseline")
	}

	factor := seg.CurrentTravelTime / seg.FreeFlowTravelTime
	if factor < minFlowFactor {
		factor = minFlowFactor
	}
	if factor > maxFlowFactor {
		factor = maxFlowFactor
	}

	return math.Round(factor*100) / 100, nil
}
