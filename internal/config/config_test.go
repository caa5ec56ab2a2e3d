package config_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"eventkit/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("EVENTKIT_BIND", "")
	workDir := t.TempDir()
	t.Chdir(workDir)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Paths.MovieDir != filepath.Join(workDir, "movie") {
		t.Fatalf("unexpected movie dir: %q", cfg.Paths.MovieDir)
	}
	if cfg.Paths.OutputDir != filepath.Join(workDir, "outcome") {
		t.Fatalf("unexpected output dir: %q", cfg.Paths.OutputDir)
	}
	if cfg.Paths.CacheDir != filepath.Join(tempHome, ".cache", "eventkit") {
		t.Fatalf("unexpected cache dir: %q", cfg.Paths.CacheDir)
	}
	if cfg.Geocode.InputFile != filepath.Join(workDir, "events", "multiple_events.json") {
		t.Fatalf("unexpected geocode input: %q", cfg.Geocode.InputFile)
	}
	if cfg.Combine.VideoEnd != 15 || cfg.Combine.AudioStart != 40 || cfg.Combine.AudioEnd != 60 {
		t.Fatalf("unexpected trim windows: %+v", cfg.Combine)
	}
	if cfg.Server.Bind != "127.0.0.1:5000" {
		t.Fatalf("unexpected server bind: %q", cfg.Server.Bind)
	}
	if cfg.Geocode.APIKey != "" {
		t.Fatalf("expected empty api key, got %q", cfg.Geocode.APIKey)
	}
	if err := cfg.RequireGeocodeKey(); err == nil {
		t.Fatal("expected RequireGeocodeKey to fail without a key")
	}
}

func TestLoadUsesEnvFallbacks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOOGLE_API_KEY", " env-key ")
	t.Setenv("EVENTKIT_BIND", "0.0.0.0:9000")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Geocode.APIKey != "env-key" {
		t.Fatalf("expected api key from env, got %q", cfg.Geocode.APIKey)
	}
	if cfg.Server.Bind != "0.0.0.0:9000" {
		t.Fatalf("expected bind from env, got %q", cfg.Server.Bind)
	}
	if err := cfg.RequireGeocodeKey(); err != nil {
		t.Fatalf("RequireGeocodeKey returned error: %v", err)
	}
}

func TestLoadCustomFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("EVENTKIT_BIND", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "eventkit.toml")
	content := `
[paths]
movie_dir = "` + filepath.Join(dir, "clips") + `"

[combine]
video_end = 10.0
output_ext = ".MKV"

[geocode]
api_key = "file-key"

[logging]
format = "JSON"
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected existing config at %q, got %q (exists=%v)", path, resolved, exists)
	}
	if cfg.Paths.MovieDir != filepath.Join(dir, "clips") {
		t.Fatalf("unexpected movie dir: %q", cfg.Paths.MovieDir)
	}
	if cfg.Combine.VideoEnd != 10 {
		t.Fatalf("unexpected video end: %v", cfg.Combine.VideoEnd)
	}
	if cfg.Combine.OutputExt != "mkv" {
		t.Fatalf("expected normalized extension, got %q", cfg.Combine.OutputExt)
	}
	if cfg.Geocode.APIKey != "file-key" {
		t.Fatalf("unexpected api key: %q", cfg.Geocode.APIKey)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidWindows(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "video", content: "[combine]\nvideo_start = 20.0\nvideo_end = 10.0\n", want: "combine.video_end"},
		{name: "audio", content: "[combine]\naudio_start = 5.0\naudio_end = 5.0\n", want: "combine.audio_end"},
		{name: "negative", content: "[combine]\nvideo_start = -1.0\n", want: "combine.video_start"},
		{name: "format", content: "[logging]\nformat = \"xml\"\n", want: "logging.format"},
		{name: "unknown", content: "[combine]\nmystery = 1\n", want: "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in error, got %v", tc.want, err)
			}
		})
	}
}

func TestCreateSampleProducesLoadableConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded config.Config
	if err := toml.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}

	if _, _, _, err := config.Load(path); err != nil {
		t.Fatalf("Load(sample) returned error: %v", err)
	}
}

func TestEncodeWritesSections(t *testing.T) {
	cfg := config.Default()
	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode returned error: %v", err)
	}
	for _, section := range []string{"[paths]", "[combine]", "[geocode]", "[server]", "[logging]"} {
		if !strings.Contains(buf.String(), section) {
			t.Fatalf("expected %s in encoded config:\n%s", section, buf.String())
		}
	}
}

func TestEnsureDirectoriesCreatesSharedDirs(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.Paths.MovieDir = filepath.Join(base, "movie")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.CacheDir} {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s: %v", dir, err)
		}
	}
	for _, dir := range []string{cfg.Paths.MovieDir, cfg.Paths.OutputDir} {
		if _, err := os.Stat(dir); !os.IsNotExist(err) {
			t.Fatalf("expected %s to be left alone, stat err=%v", dir, err)
		}
	}
}
