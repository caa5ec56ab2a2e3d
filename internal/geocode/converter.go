package geocode

import (
	"context"
	"errors"
	"log/slog"

	"eventkit/internal/logging"
	"eventkit/internal/services"
)

// Lookup is the outcome for one zip. A nil Point means no result.
type Lookup struct {
	Zip    string
	Point  *Point
	Cached bool
}

// Stats summarizes a conversion.
type Stats struct {
	Total     int
	Resolved  int
	Misses    int
	CacheHits int
}

// Summarize counts hits and misses in lookups.
func Summarize(lookups []Lookup) Stats {
	stats := Stats{Total: len(lookups)}
	for _, l := range lookups {
		switch {
		case l.Point == nil:
			stats.Misses++
		case l.Cached:
			stats.CacheHits++
			stats.Resolved++
		default:
			stats.Resolved++
		}
	}
	return stats
}

// Converter resolves zips through a Geocoder with an optional cache.
type Converter struct {
	geocoder Geocoder
	cache    *Cache
	logger   *slog.Logger
}

// NewConverter builds a Converter. cache may be nil.
func NewConverter(geocoder Geocoder, cache *Cache, logger *slog.Logger) *Converter {
	return &Converter{
		geocoder: geocoder,
		cache:    cache,
		logger:   logging.NewComponentLogger(logger, "geocode"),
	}
}

// Convert resolves zips in order. A blank zip or one without results is logged
// and recorded as a miss; any other failure aborts the run.
func (c *Converter) Convert(ctx context.Context, zips []string) ([]Lookup, error) {
	if c.geocoder == nil {
		return nil, services.Wrap(services.ErrConfiguration, "geocode", "convert", "geocoder not configured", nil)
	}
	logger := logging.WithContext(ctx, c.logger)
	lookups := make([]Lookup, 0, len(zips))

	for i, zip := range zips {
		if err := ctx.Err(); err != nil {
			return lookups, err
		}
		zip = NormalizeZip(zip)
		lookup := Lookup{Zip: zip}
		if zip == "" {
			logging.WarnWithContext(logger, "blank zip skipped", "geocode_miss",
				logging.Int("position", i+1),
				logging.String(logging.FieldImpact, "zip written as null"),
			)
			lookups = append(lookups, lookup)
			continue
		}

		if c.cache != nil {
			p, ok, err := c.cache.Get(ctx, zip)
			if err != nil {
				logger.Warn("geocode cache read failed", logging.String("zip", zip), logging.Error(err))
			} else if ok {
				lookup.Point = &p
				lookup.Cached = true
				lookups = append(lookups, lookup)
				continue
			}
		}

		p, err := c.geocoder.Lookup(ctx, zip)
		switch {
		case errors.Is(err, ErrNoResults):
			logging.WarnWithContext(logger, "no geocoding result", "geocode_miss",
				logging.String("zip", zip),
				logging.Int("position", i+1),
				logging.String(logging.FieldImpact, "zip written as null"),
			)
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return lookups, ctxErr
			}
			marker := services.ErrExternalTool
			if errors.Is(err, services.ErrTransient) {
				marker = services.ErrTransient
			}
			return lookups, services.Wrap(marker, "geocode", "lookup", zip, err)
		default:
			lookup.Point = &p
			if c.cache != nil {
				if err := c.cache.Put(ctx, zip, p); err != nil {
					logger.Warn("geocode cache write failed", logging.String("zip", zip), logging.Error(err))
				}
			}
			logger.Debug("zip resolved",
				logging.String("zip", zip),
				logging.Float64("lat", p.Lat),
				logging.Float64("lng", p.Lng),
			)
		}
		lookups = append(lookups, lookup)
	}

	stats := Summarize(lookups)
	logger.Info("geocode finished",
		logging.String(logging.FieldEventType, "geocode_complete"),
		logging.Int("total", stats.Total),
		logging.Int("resolved", stats.Resolved),
		logging.Int("misses", stats.Misses),
		logging.Int("cache_hits", stats.CacheHits),
	)
	return lookups, nil
}
