package preflight

import (
	"context"

	"eventkit/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// Failed reports whether a required check did not pass.
func (r Result) Failed() bool {
	return !r.Passed && !r.Optional
}

// RunAll executes every check relevant to cfg.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{
		CheckBinary("FFmpeg", cfg.Combine.FFmpegBinary, false),
		CheckBinary("FFprobe", cfg.Combine.FFprobeBinary, false),
		CheckDirectoryAccess("Movie directory", cfg.Paths.MovieDir, false),
		CheckDirectoryAccess("Sound directory", cfg.Paths.SoundDir, false),
		CheckDirectoryAccess("Events directory", cfg.Paths.EventsDir, false),
		CheckWritableParent("Output directory", cfg.Paths.OutputDir),
		CheckGeocodeKey(cfg),
		CheckGeocodeCache(ctx, cfg),
		CheckBindAvailable(ctx, cfg.Server.Bind),
	}
	if cfg.Server.TemplatePath != "" {
		results = append(results, CheckFile("Page template", cfg.Server.TemplatePath))
	}
	return results
}

// AnyFailed reports whether a required check failed.
func AnyFailed(results []Result) bool {
	for _, r := range results {
		if r.Failed() {
			return true
		}
	}
	return false
}
