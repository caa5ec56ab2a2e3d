package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"eventkit/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config whose directories all live under one temp dir.
// Input directories are created empty; output directories are left for the
// code under test to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.MovieDir = filepath.Join(base, "movie")
	cfgVal.Paths.SoundDir = filepath.Join(base, "sound")
	cfgVal.Paths.OutputDir = filepath.Join(base, "outcome")
	cfgVal.Paths.EventsDir = filepath.Join(base, "events")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.CacheDir = filepath.Join(base, "cache")
	cfgVal.Geocode.InputFile = filepath.Join(base, "events", "multiple_events.json")
	cfgVal.Geocode.OutputFile = filepath.Join(base, "events", "latlng")
	cfgVal.Geocode.MinIntervalMS = 0
	cfgVal.Server.Bind = "127.0.0.1:0"

	for _, dir := range []string{cfgVal.Paths.MovieDir, cfgVal.Paths.SoundDir, cfgVal.Paths.EventsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithGeocodeKey sets the geocoding API key and base URL on the test config.
func WithGeocodeKey(key, baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Geocode.APIKey = key
		if baseURL != "" {
			b.cfg.Geocode.BaseURL = baseURL
		}
	}
}

// WithoutGeocodeCache disables the SQLite lookup cache.
func WithoutGeocodeCache() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Geocode.CacheEnabled = false
	}
}

// ffmpegStub writes an empty file at its last argument, mimicking a
// successful mux.
const ffmpegStub = `#!/bin/sh
for last; do :; done
: > "$last"
`

// ffprobeStub reports a fixed 30 second container.
const ffprobeStub = `#!/bin/sh
cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","duration":"30.0"},{"index":1,"codec_type":"audio","duration":"30.0"}],"format":{"duration":"30.0","nb_streams":2}}
JSON
`

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, ffmpeg and ffprobe are stubbed
// with scripts that behave enough like the real tools for a combine run.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		scripts := map[string]string{}
		if len(names) == 0 {
			scripts["ffmpeg"] = ffmpegStub
			scripts["ffprobe"] = ffprobeStub
		}
		for _, name := range names {
			scripts[name] = "#!/bin/sh\nexit 0\n"
		}
		for name, script := range scripts {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, []byte(script), 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}
		b.t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.MovieDir)
}
