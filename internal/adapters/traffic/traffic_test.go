package traffic

import (
	"context"
	"delivery-optimizer/internal/domain"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

var trafficPoint = domain.Coordinates{Lon: 28.9784, Lat: 41.0082}

func TestFlowProviderFactor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("key = %q", r.URL.Query().Get("key"))
		}
		if r.URL.Query().Get("point") == "" {
			t.Errorf("point parameter missing")
		}
		w.Write([]byte(`{"flowSegmentData": {"currentSpeed": 40, "freeFlowSpeed": 60, "currentTravelTime": 180, "freeFlowTravelTime": 120, "confidence": 0.95}}`))
	}))
	defer srv.Close()

	p, err := NewFlowProvider(srv.URL, "test-key")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	factor, err := p.GetFactor(context.Background(), trafficPoint, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if factor != 1.5 {
		t.Fatalf("factor = %v, want 1.5", factor)
	}
}

func TestFlowProviderClampsFactor(t *testing.T) {
	cases := []struct {
		name string
		body string
		want float64
	}{
		{
			name: "gridlock clamps high",
			body: `{"flowSegmentData": {"currentTravelTime": 600, "freeFlowTravelTime": 120}}`,
			want: 2.0,
		},
		{
			name: "empty road clamps low",
			body: `{"flowSegmentData": {"currentTravelTime": 60, "freeFlowTravelTime": 120}}`,
			want: 0.8,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(c.body))
			}))
			defer srv.Close()

			p, _ := NewFlowProvider(srv.URL, "test-key")
			factor, err := p.GetFactor(context.Background(), trafficPoint, time.Now())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if factor != c.want {
				t.Fatalf("factor = %v, want %v", factor, c.want)
			}
		})
	}
}

func TestFlowProviderMissingBaseline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"flowSegmentData": {"currentTravelTime": 180, "freeFlowTravelTime": 0}}`))
	}))
	defer srv.Close()

	p, _ := NewFlowProvider(srv.URL, "test-key")
	if _, err := p.GetFactor(context.Background(), trafficPoint, time.Now()); err == nil {
		t.Fatalf("expected error for missing baseline")
	}
}

func TestHeuristicProviderBands(t *testing.T) {
	cases := []struct {
		hour int
		want float64
	}{
		{hour: 3, want: 0.8},
		{hour: 6, want: 1.0},
		{hour: 8, want: 1.5},
		{hour: 11, want: 1.0},
		{hour: 13, want: 1.2},
		{hour: 15, want: 1.0},
		{hour: 18, want: 1.6},
		{hour: 22, want: 1.0},
	}

	p := NewHeuristicProvider()
	for _, c := range cases {
		when := time.Date(2025, 3, 10, c.hour, 30, 0, 0, time.UTC)
		factor, err := p.GetFactor(context.Background(), trafficPoint, when)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if factor != c.want {
			t.Fatalf("hour %d factor = %v, want %v", c.hour, factor, c.want)
		}
	}
}

func TestFallbackProviderDegrades(t *testing.T) {
	failing := trafficFunc(func(context.Context, domain.Coordinates, time.Time) (float64, error) {
		return 0, errors.New("upstream down")
	})
	fixed := trafficFunc(func(context.Context, domain.Coordinates, time.Time) (float64, error) {
		return 1.5, nil
	})

	p := NewFallbackProvider(failing, fixed)
	factor, err := p.GetFactor(context.Background(), trafficPoint, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if factor != 1.5 {
		t.Fatalf("factor = %v, want backup value 1.5", factor)
	}

	direct := NewFallbackProvider(fixed, failing)
	factor, err = direct.GetFactor(context.Background(), trafficPoint, time.Now())
	if err != nil || factor != 1.5 {
		t.Fatalf("primary path = %v, %v; want 1.5, nil", factor, err)
	}
}

type trafficFunc func(context.Context, domain.Coordinates, time.Time) (float64, error)

func (f trafficFunc) GetFactor(ctx context.Context, at domain.Coordinates, when time.Time) (float64, error) {
	return f(ctx, at, when)
}
