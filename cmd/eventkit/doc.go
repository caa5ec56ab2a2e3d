// Package main hosts the eventkit CLI entrypoint and command graph.
//
// The Cobra command tree wraps three tools: combine (pair movie and sound
// files into trimmed clips with ffmpeg), geocode (turn the postal codes of an
// events document into coordinates), and serve (host the heatmap page and raw
// event JSON). It centralizes configuration resolution and logger setup so
// subcommands only translate flags into calls on the internal packages.
package main
