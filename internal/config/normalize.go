package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeCombine()
	if err := c.normalizeGeocode(); err != nil {
		return err
	}
	if err := c.normalizeServer(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.MovieDir, err = expandPath(strings.TrimSpace(c.Paths.MovieDir)); err != nil {
		return fmt.Errorf("paths.movie_dir: %w", err)
	}
	if c.Paths.SoundDir, err = expandPath(strings.TrimSpace(c.Paths.SoundDir)); err != nil {
		return fmt.Errorf("paths.sound_dir: %w", err)
	}
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.EventsDir, err = expandPath(strings.TrimSpace(c.Paths.EventsDir)); err != nil {
		return fmt.Errorf("paths.events_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeCombine() {
	ext := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(c.Combine.OutputExt)), ".")
	if ext == "" {
		ext = defaultOutputExt
	}
	c.Combine.OutputExt = ext
	c.Combine.VideoCodec = strings.TrimSpace(c.Combine.VideoCodec)
	if c.Combine.VideoCodec == "" {
		c.Combine.VideoCodec = defaultVideoCodec
	}
	c.Combine.AudioCodec = strings.TrimSpace(c.Combine.AudioCodec)
	if c.Combine.AudioCodec == "" {
		c.Combine.AudioCodec = defaultAudioCodec
	}
	c.Combine.FFmpegBinary = strings.TrimSpace(c.Combine.FFmpegBinary)
	if c.Combine.FFmpegBinary == "" {
		c.Combine.FFmpegBinary = defaultFFmpegBinary
	}
	c.Combine.FFprobeBinary = strings.TrimSpace(c.Combine.FFprobeBinary)
	if c.Combine.FFprobeBinary == "" {
		c.Combine.FFprobeBinary = defaultFFprobeBinary
	}
}

func (c *Config) normalizeGeocode() error {
	c.Geocode.APIKey = strings.TrimSpace(c.Geocode.APIKey)
	if c.Geocode.APIKey == "" {
		if value, ok := os.LookupEnv("GOOGLE_API_KEY"); ok {
			c.Geocode.APIKey = strings.TrimSpace(value)
		}
	}
	c.Geocode.BaseURL = strings.TrimRight(strings.TrimSpace(c.Geocode.BaseURL), "/")
	if c.Geocode.BaseURL == "" {
		c.Geocode.BaseURL = defaultGeocodeBaseURL
	}
	if strings.TrimSpace(c.Geocode.InputFile) == "" {
		c.Geocode.InputFile = defaultGeocodeInput
	}
	if strings.TrimSpace(c.Geocode.OutputFile) == "" {
		c.Geocode.OutputFile = defaultGeocodeOutput
	}
	var err error
	if c.Geocode.InputFile, err = expandPath(strings.TrimSpace(c.Geocode.InputFile)); err != nil {
		return fmt.Errorf("geocode.input_file: %w", err)
	}
	if c.Geocode.OutputFile, err = expandPath(strings.TrimSpace(c.Geocode.OutputFile)); err != nil {
		return fmt.Errorf("geocode.output_file: %w", err)
	}
	if c.Geocode.TimeoutSeconds <= 0 {
		c.Geocode.TimeoutSeconds = defaultGeocodeTimeout
	}
	return nil
}

func (c *Config) normalizeServer() error {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	if value, ok := os.LookupEnv("EVENTKIT_BIND"); ok && strings.TrimSpace(value) != "" {
		c.Server.Bind = strings.TrimSpace(value)
	}
	if c.Server.Bind == "" {
		c.Server.Bind = defaultServerBind
	}
	c.Server.Title = strings.TrimSpace(c.Server.Title)
	if c.Server.Title == "" {
		c.Server.Title = defaultServerTitle
	}
	c.Server.MapsAPIKey = strings.TrimSpace(c.Server.MapsAPIKey)
	if template := strings.TrimSpace(c.Server.TemplatePath); template != "" {
		expanded, err := expandPath(template)
		if err != nil {
			return fmt.Errorf("server.template_path: %w", err)
		}
		c.Server.TemplatePath = expanded
	}
	return nil
}

func (c *Config) normalizeLogging() {
	format := strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
		c.Logging.Format = "json"
	default:
		c.Logging.Format = format
	}
	level := strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if level == "" {
		level = defaultLogLevel
	}
	c.Logging.Level = level
}
