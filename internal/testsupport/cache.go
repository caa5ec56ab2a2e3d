package testsupport

import (
	"testing"

	"eventkit/internal/config"
	"eventkit/internal/geocode"
)

// MustOpenCache opens the geocode cache for cfg and registers cleanup.
func MustOpenCache(t testing.TB, cfg *config.Config) *geocode.Cache {
	t.Helper()

	cache, err := geocode.OpenCache(cfg.GeocodeCachePath())
	if err != nil {
		t.Fatalf("geocode.OpenCache: %v", err)
	}
	t.Cleanup(func() {
		_ = cache.Close()
	})
	return cache
}
