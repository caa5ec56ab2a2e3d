// Package combiner pairs movie clips with sound tracks and muxes them.
//
// Movies and sounds are collected from two directories, sorted by name, and
// paired positionally. Each movie is trimmed to the configured video window,
// the matching sound is cut to the audio window, padded or shortened to the
// trimmed movie length, and both are muxed by ffmpeg into a numbered output
// file (1.mp4, 2.mp4, ...). Mismatched counts fail before any tool runs.
//
// A run holds a flock on the output directory so two combiners never write
// the same numbered files, and can optionally hand every result to drapto
// for an AV1 re-encode.
package combiner
