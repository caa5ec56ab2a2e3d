// Package services defines shared utilities consumed by the eventkit tools
// and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp tool names, batch run IDs, and request
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify failures
//     (validation vs external tool vs transient) consistently.
//   - A CommandRunner abstraction that makes ffmpeg/ffprobe execution testable.
//
// Use these helpers when wiring new tool logic so error handling and
// observability stay uniform across commands.
package services
