package geocode

import (
	"context"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/platform/httpret"
	"delivery-optimizer/internal/platform/obs"
	"delivery-optimizer/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Nominatim asks for an identifying User-Agent on every request.
const userAgent = "delivery-optimizer/1.0"

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// NominatimGeocoder resolves place names using the OpenStreetMap
// Nominatim search API.
//
// It coordinates:
//   - Place name normalization
//   - Persistent geocode caching
//   - External API calls with retry/backoff
//
// The geocoder is safe for concurrent use.
type NominatimGeocoder struct {
	session *http.Client
	baseURL string
	cache   ports.GeocodeCache
}

func NewNominatimGeocoder(baseURL string, cache ports.GeocodeCache) (*NominatimGeocoder, error) {
	if baseURL == "" {
		return nil, errors.New("nominatim base URL is empty")
	}

	return &NominatimGeocoder{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		cache:   cache,
	}, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (g *NominatimGeocoder) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, place string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "nominatim.Geocode")(&err)

	norm := g.normalize(place)
	if norm == "" {
		return domain.Coordinates{}, errors.New("geocode: place must be non-empty")
	}

	// Check persistent geocode cache before issuing external API calls.
	if g.cache != nil {
		hits, err := g.cache.GetMany(ctx, []string{norm})
		if err != nil {
			return domain.Coordinates{}, fmt.Errorf("geocode cache read: %w", err)
		}
		if coord, ok := hits[norm]; ok {
			return coord, nil
		}
	}

	coord, err := g.search(ctx, norm)
	if err != nil {
		return domain.Coordinates{}, err
	}

	if g.cache != nil {
		if err := g.cache.PutMany(ctx, map[string]domain.Coordinates{norm: coord}); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	return coord, nil
}

func (g *NominatimGeocoder) search(ctx context.Context, place string) (domain.Coordinates, error) {
	endpoint := g.baseURL + "/search"

	resp, err := httpret.DoWithRetry(ctx, g.session, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", userAgent)

		q := req.URL.Query()
		q.Set("q", place)
		q.Set("format", "json")
		q.Set("limit", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim search: %w", err)
	}
	defer resp.Body.Close()

	var decoded []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(decoded) == 0 {
		return domain.Coordinates{}, fmt.Errorf("%w: no geocode results for %q", domain.ErrPlaceNotFound, place)
	}

	// Nominatim serializes coordinates as strings.
	lat, err := strconv.ParseFloat(decoded[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid latitude for %q: %w", place, err)
	}
	lon, err := strconv.ParseFloat(decoded[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("invalid longitude for %q: %w", place, err)
	}

	coord := domain.Coordinates{Lon: lon, Lat: lat}
	if !coord.InBounds() {
		return domain.Coordinates{}, fmt.Errorf("geocode result for %q out of bounds: %v", place, coord)
	}

	return coord, nil
}
