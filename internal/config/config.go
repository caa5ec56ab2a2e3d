package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains the directories each tool reads from and writes to.
type Paths struct {
	MovieDir  string `toml:"movie_dir"`
	SoundDir  string `toml:"sound_dir"`
	OutputDir string `toml:"output_dir"`
	EventsDir string `toml:"events_dir"`
	LogDir    string `toml:"log_dir"`
	CacheDir  string `toml:"cache_dir"`
}

// Combine contains trim windows and encoder settings for the media combiner.
type Combine struct {
	VideoStart    float64 `toml:"video_start"`
	VideoEnd      float64 `toml:"video_end"`
	AudioStart    float64 `toml:"audio_start"`
	AudioEnd      float64 `toml:"audio_end"`
	OutputExt     string  `toml:"output_ext"`
	VideoCodec    string  `toml:"video_codec"`
	AudioCodec    string  `toml:"audio_codec"`
	Encode        bool    `toml:"encode"`
	FFmpegBinary  string  `toml:"ffmpeg_binary"`
	FFprobeBinary string  `toml:"ffprobe_binary"`
}

// Geocode contains configuration for the postal code converter.
type Geocode struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	InputFile      string `toml:"input_file"`
	OutputFile     string `toml:"output_file"`
	MinIntervalMS  int    `toml:"min_interval_ms"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	CacheEnabled   bool   `toml:"cache_enabled"`
}

// Server contains configuration for the event server.
type Server struct {
	Bind         string `toml:"bind"`
	TemplatePath string `toml:"template_path"`
	Title        string `toml:"title"`
	MapsAPIKey   string `toml:"maps_api_key"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for eventkit.
//
// Configuration sections by tool:
//   - Paths: input/output directories shared by all commands
//   - Combine: trim windows and codecs for the media combiner
//   - Geocode: geocoding API access, input/output files, lookup cache
//   - Server: bind address and page template for the event server
//   - Logging: log format and level
type Config struct {
	Paths   Paths   `toml:"paths"`
	Combine Combine `toml:"combine"`
	Geocode Geocode `toml:"geocode"`
	Server  Server  `toml:"server"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/eventkit/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("eventkit.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the log and cache directories shared by every
// command. The combine output directory is created by the combiner itself, and
// input directories are left alone so a missing movie or sound directory
// surfaces as a read error instead of an empty run.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.LogDir, c.Paths.CacheDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// GeocodeCachePath returns the SQLite database path used to memoize lookups.
func (c *Config) GeocodeCachePath() string {
	return filepath.Join(c.Paths.CacheDir, "geocode.db")
}

// RequireGeocodeKey reports a configuration error when no API key is available.
// Only the geocode command needs a key, so Validate does not enforce it.
func (c *Config) RequireGeocodeKey() error {
	if strings.TrimSpace(c.Geocode.APIKey) != "" {
		return nil
	}
	defaultPath, err := DefaultConfigPath()
	if err != nil {
		defaultPath = "~/.config/eventkit/config.toml"
	}
	return fmt.Errorf("geocode.api_key is required. Set GOOGLE_API_KEY env var or edit %s (create with 'eventkit config init')", defaultPath)
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	encoder := toml.NewEncoder(w)
	encoder.SetIndentTables(true)
	if err := encoder.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
