// Package preflight provides readiness checks for the external binaries,
// directories, and settings eventkit depends on.
//
// The CLI "eventkit status" command renders RunAll as a table, and the combine
// and serve commands call the individual checks before starting work so a
// missing ffmpeg or unreadable directory fails fast with a clear message.
package preflight
