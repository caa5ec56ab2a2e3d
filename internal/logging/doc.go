// Package logging assembles structured slog loggers and formatting helpers used
// across eventkit commands.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so request handlers and batch
// runs can tag log lines with request and run identifiers. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every tool emits
// data with the same shape.
package logging
