package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"eventkit/internal/geocode"
	"eventkit/internal/logging"
	"eventkit/internal/services"
)

func newGeocodeCommand(ctx *commandContext) *cobra.Command {
	var (
		input   string
		output  string
		format  string
		usOnly  bool
		noCache bool
		reverse bool
	)

	cmd := &cobra.Command{
		Use:   "geocode",
		Short: "Convert the postal codes of an events file into coordinates",
		Long: `Read events[0].zips from the input events document, look each code up with
the Google Geocoding API, and write the coordinates in input order. Codes
without a result are logged and written as null.

The legacy format is a sequence of ", {"lat": x, "lng": y}" entries with JSON
quoting. Files produced by the earlier converter listed codes last-first;
pass --reverse to keep that order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireGeocodeKey(); err != nil {
				return services.Wrap(services.ErrConfiguration, "geocode", "init", "", err)
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			outFormat, err := geocode.ParseFormat(strings.ToLower(strings.TrimSpace(format)))
			if err != nil {
				return services.Wrap(services.ErrValidation, "geocode", "flags", "", err)
			}
			if strings.TrimSpace(input) == "" {
				input = cfg.Geocode.InputFile
			}
			if strings.TrimSpace(output) == "" {
				output = cfg.Geocode.OutputFile
			}

			client, err := geocode.NewGoogleClient(cfg.Geocode.APIKey, cfg.Geocode.BaseURL,
				geocode.WithTimeout(time.Duration(cfg.Geocode.TimeoutSeconds)*time.Second),
				geocode.WithMinInterval(time.Duration(cfg.Geocode.MinIntervalMS)*time.Millisecond),
			)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "geocode", "init", "", err)
			}

			var cache *geocode.Cache
			if cfg.Geocode.CacheEnabled && !noCache {
				cache, err = geocode.OpenCache(cfg.GeocodeCachePath())
				if err != nil {
					logging.WarnWithContext(logger, "geocode cache unavailable", "geocode_cache_unavailable",
						logging.Error(err),
						logging.String(logging.FieldImpact, "every zip is looked up online"),
					)
					cache = nil
				} else {
					defer cache.Close()
				}
			}

			zips, err := geocode.LoadZips(input)
			if err != nil {
				return err
			}

			runCtx := services.WithTool(cmd.Context(), "geocode")
			lookups, err := geocode.NewConverter(client, cache, logger).Convert(runCtx, zips)
			if err != nil {
				return err
			}
			if usOnly {
				lookups = geocode.Filter(lookups, geocode.ContinentalUS)
			}
			if reverse {
				lookups = geocode.Reverse(lookups)
			}
			if err := geocode.WriteFile(output, outFormat, lookups); err != nil {
				return err
			}

			stats := geocode.Summarize(lookups)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Zips", "Resolved", "Misses", "Cache hits"},
				[][]string{{
					strconv.Itoa(stats.Total),
					strconv.Itoa(stats.Resolved),
					strconv.Itoa(stats.Misses),
					strconv.Itoa(stats.CacheHits),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight},
			))
			fmt.Fprintf(out, "Wrote %s (%s)\n", output, outFormat)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "Events document (default geocode.input_file)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default geocode.output_file)")
	cmd.Flags().StringVar(&format, "format", string(geocode.FormatLegacy), "Output format: legacy or json")
	cmd.Flags().BoolVar(&usOnly, "us-only", false, "Treat points outside the continental US as misses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "Skip the lookup cache for this run")
	cmd.Flags().BoolVar(&reverse, "reverse", false, "Write codes last-first")
	return cmd
}
