package cache

import (
	"context"
	"database/sql"
	"delivery-optimizer/internal/adapters/repositories"
	"delivery-optimizer/internal/domain"
	"delivery-optimizer/internal/platform/db"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.OpenSQLite(filepath.Join(t.TempDir(), "cache_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := repositories.InitSchema(conn); err != nil {
		t.Fatalf("init schema: %v", err)
	}
	return conn
}

func TestGeocodeCacheRoundTrip(t *testing.T) {
	c := NewSqliteGeocodeCache(openTestDB(t))
	ctx := context.Background()

	istanbul := domain.Coordinates{Lon: 28.9784, Lat: 41.0082}
	ankara := domain.Coordinates{Lon: 32.8597, Lat: 39.9334}

	if err := c.PutMany(ctx, map[string]domain.Coordinates{"istanbul": istanbul, "ankara": ankara}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"istanbul", "ankara", "izmir"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	if got["istanbul"] != istanbul || got["ankara"] != ankara {
		t.Fatalf("coordinates corrupted: %+v", got)
	}

	// A rewrite of the same place wins over the stored row.
	moved := domain.Coordinates{Lon: 29.0, Lat: 41.1}
	if err := c.PutMany(ctx, map[string]domain.Coordinates{"istanbul": moved}); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err = c.GetMany(ctx, []string{"istanbul"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["istanbul"] != moved {
		t.Fatalf("replace lost: %+v", got["istanbul"])
	}
}

func TestGeocodeCacheIgnoresBlankAndDuplicateKeys(t *testing.T) {
	c := NewSqliteGeocodeCache(openTestDB(t))
	ctx := context.Background()

	coord := domain.Coordinates{Lon: 27.1428, Lat: 38.4237}
	if err := c.PutMany(ctx, map[string]domain.Coordinates{"izmir": coord}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"", "  ", "izmir", "izmir"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 1 || got["izmir"] != coord {
		t.Fatalf("expected single izmir hit, got %+v", got)
	}

	got, err = c.GetMany(ctx, nil)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty result for no places, got %+v", got)
	}
}

func TestGeocodeCachePutRollsBackOnBadKey(t *testing.T) {
	c := NewSqliteGeocodeCache(openTestDB(t))
	ctx := context.Background()

	err := c.PutMany(ctx, map[string]domain.Coordinates{
		"bursa": {Lon: 29.0610, Lat: 40.1885},
		" ":     {Lon: 1, Lat: 1},
	})
	if err == nil {
		t.Fatalf("expected error for blank place key")
	}

	// Nothing from the failed batch may survive.
	got, err := c.GetMany(ctx, []string{"bursa"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("failed batch left rows behind: %+v", got)
	}
}

func TestRouteCacheRoundTrip(t *testing.T) {
	c := NewSqliteRouteCache(openTestDB(t))
	ctx := context.Background()

	legs := map[string]domain.RouteLeg{
		"ankara": {DistanceKm: 450, DurationMin: 310},
		"bursa":  {DistanceKm: 150, DurationMin: 135},
	}
	if err := c.PutMany(ctx, "istanbul", legs); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, "istanbul", []string{"ankara", "bursa", "izmir"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(got))
	}
	if got["ankara"] != legs["ankara"] || got["bursa"] != legs["bursa"] {
		t.Fatalf("legs corrupted: %+v", got)
	}

	// Legs are keyed by origin as well as destination.
	got, err = c.GetMany(ctx, "ankara", []string{"bursa"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected miss for other origin, got %+v", got)
	}
}

func TestRouteCacheReplacesExistingLeg(t *testing.T) {
	c := NewSqliteRouteCache(openTestDB(t))
	ctx := context.Background()

	if err := c.PutMany(ctx, "istanbul", map[string]domain.RouteLeg{"ankara": {DistanceKm: 450, DurationMin: 310}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	rerouted := domain.RouteLeg{DistanceKm: 470, DurationMin: 290}
	if err := c.PutMany(ctx, "istanbul", map[string]domain.RouteLeg{"ankara": rerouted}); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := c.GetMany(ctx, "istanbul", []string{"ankara"})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got["ankara"] != rerouted {
		t.Fatalf("replace lost: %+v", got["ankara"])
	}
}

func TestRouteCacheRejectsEmptyOrigin(t *testing.T) {
	c := NewSqliteRouteCache(openTestDB(t))
	ctx := context.Background()

	if _, err := c.GetMany(ctx, "", []string{"ankara"}); err == nil {
		t.Fatalf("expected error for empty origin on get")
	}
	if err := c.PutMany(ctx, "", map[string]domain.RouteLeg{"ankara": {DistanceKm: 1, DurationMin: 1}}); err == nil {
		t.Fatalf("expected error for empty origin on put")
	}
}
