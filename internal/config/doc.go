// Package config loads, normalizes, and validates eventkit configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GOOGLE_API_KEY. The Config type centralizes every knob the combiner, the
// geocoding converter, and the event server need, so each command resolves
// its directories and credentials in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
