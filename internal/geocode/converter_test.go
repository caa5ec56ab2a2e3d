package geocode_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"eventkit/internal/geocode"
	"eventkit/internal/services"
)

type stubGeocoder struct {
	points map[string]geocode.Point
	errs   map[string]error
	calls  []string
}

func (s *stubGeocoder) Lookup(_ context.Context, query string) (geocode.Point, error) {
	s.calls = append(s.calls, query)
	if err, ok := s.errs[query]; ok {
		return geocode.Point{}, err
	}
	if p, ok := s.points[query]; ok {
		return p, nil
	}
	return geocode.Point{}, geocode.ErrNoResults
}

func TestConvertKeepsOrderAndRecordsMisses(t *testing.T) {
	stub := &stubGeocoder{points: map[string]geocode.Point{
		"10001": {Lat: 40.75, Lng: -73.99},
		"94103": {Lat: 37.77, Lng: -122.41},
	}}
	conv := geocode.NewConverter(stub, nil, nil)

	lookups, err := conv.Convert(context.Background(), []string{"10001", "00000", "94103"})
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if len(lookups) != 3 {
		t.Fatalf("expected 3 lookups, got %d", len(lookups))
	}
	if lookups[0].Zip != "10001" || lookups[0].Point == nil || lookups[0].Point.Lat != 40.75 {
		t.Fatalf("unexpected first lookup: %+v", lookups[0])
	}
	if lookups[1].Point != nil {
		t.Fatalf("expected miss for 00000, got %+v", lookups[1].Point)
	}
	if lookups[2].Zip != "94103" || lookups[2].Point == nil {
		t.Fatalf("unexpected last lookup: %+v", lookups[2])
	}
	stats := geocode.Summarize(lookups)
	if stats.Total != 3 || stats.Resolved != 2 || stats.Misses != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestConvertAbortsOnHardError(t *testing.T) {
	stub := &stubGeocoder{
		points: map[string]geocode.Point{"10001": {Lat: 1, Lng: 1}},
		errs:   map[string]error{"20002": errors.New("quota exceeded")},
	}
	conv := geocode.NewConverter(stub, nil, nil)

	lookups, err := conv.Convert(context.Background(), []string{"10001", "20002", "30003"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if len(lookups) != 1 {
		t.Fatalf("expected partial lookups, got %d", len(lookups))
	}
	if len(stub.calls) != 2 {
		t.Fatalf("expected lookup to stop after failure, calls=%v", stub.calls)
	}
}

func TestConvertUsesCache(t *testing.T) {
	ctx := context.Background()
	cache, err := geocode.OpenCache(filepath.Join(t.TempDir(), "geocode.db"))
	if err != nil {
		t.Fatalf("OpenCache returned error: %v", err)
	}
	t.Cleanup(func() { _ = cache.Close() })

	stub := &stubGeocoder{points: map[string]geocode.Point{"10001": {Lat: 40.75, Lng: -73.99}}}
	conv := geocode.NewConverter(stub, cache, nil)

	if _, err := conv.Convert(ctx, []string{"10001", "00000"}); err != nil {
		t.Fatalf("first Convert returned error: %v", err)
	}
	lookups, err := conv.Convert(ctx, []string{"10001", "00000"})
	if err != nil {
		t.Fatalf("second Convert returned error: %v", err)
	}
	if len(stub.calls) != 3 {
		t.Fatalf("expected misses to be retried but hits cached, calls=%v", stub.calls)
	}
	if !lookups[0].Cached || lookups[1].Cached {
		t.Fatalf("unexpected cache flags: %+v", lookups)
	}
	if stats := geocode.Summarize(lookups); stats.CacheHits != 1 {
		t.Fatalf("expected one cache hit, got %+v", stats)
	}
}

func TestConvertRequiresGeocoder(t *testing.T) {
	conv := geocode.NewConverter(nil, nil, nil)
	if _, err := conv.Convert(context.Background(), []string{"1"}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestConvertTreatsBlankZipsAsMisses(t *testing.T) {
	zips, err := geocode.ParseZips([]byte(`{"events":[{"zips":["10001", null, ""]}]}`))
	if err != nil {
		t.Fatalf("ParseZips returned error: %v", err)
	}
	stub := &stubGeocoder{points: map[string]geocode.Point{"10001": {Lat: 40.75, Lng: -73.99}}}
	conv := geocode.NewConverter(stub, nil, nil)

	lookups, err := conv.Convert(context.Background(), zips)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if len(lookups) != 3 {
		t.Fatalf("expected 3 lookups, got %d", len(lookups))
	}
	if lookups[0].Point == nil || lookups[1].Point != nil || lookups[2].Point != nil {
		t.Fatalf("unexpected lookups: %+v", lookups)
	}
	if len(stub.calls) != 1 || stub.calls[0] != "10001" {
		t.Fatalf("expected only 10001 to reach the geocoder, calls=%v", stub.calls)
	}
}

func TestConvertKeepsTransientMarker(t *testing.T) {
	stub := &stubGeocoder{errs: map[string]error{
		"10001": fmt.Errorf("%w: geocode status OVER_QUERY_LIMIT", services.ErrTransient),
	}}
	conv := geocode.NewConverter(stub, nil, nil)

	_, err := conv.Convert(context.Background(), []string{"10001"})
	if got := services.FailureKind(err); got != "transient" {
		t.Fatalf("failure kind = %q, want transient (err=%v)", got, err)
	}
}
