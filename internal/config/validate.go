package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateCombine(); err != nil {
		return err
	}
	if err := c.validateGeocode(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.MovieDir == "" {
		return errors.New("paths.movie_dir must be set")
	}
	if c.Paths.SoundDir == "" {
		return errors.New("paths.sound_dir must be set")
	}
	if c.Paths.OutputDir == "" {
		return errors.New("paths.output_dir must be set")
	}
	if c.Paths.EventsDir == "" {
		return errors.New("paths.events_dir must be set")
	}
	return nil
}

func (c *Config) validateCombine() error {
	if c.Combine.VideoStart < 0 {
		return errors.New("combine.video_start must be >= 0")
	}
	if c.Combine.VideoEnd <= c.Combine.VideoStart {
		return fmt.Errorf("combine.video_end (%v) must be greater than combine.video_start (%v)", c.Combine.VideoEnd, c.Combine.VideoStart)
	}
	if c.Combine.AudioStart < 0 {
		return errors.New("combine.audio_start must be >= 0")
	}
	if c.Combine.AudioEnd <= c.Combine.AudioStart {
		return fmt.Errorf("combine.audio_end (%v) must be greater than combine.audio_start (%v)", c.Combine.AudioEnd, c.Combine.AudioStart)
	}
	return nil
}

func (c *Config) validateGeocode() error {
	if c.Geocode.MinIntervalMS < 0 {
		return errors.New("geocode.min_interval_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
