// Package eventserver serves the event heatmap page and the raw event JSON
// documents it renders.
//
// Routes:
//   - GET /                 index page rendered from an html/template
//   - GET /api/v1/{name}    bytes of <events_dir>/<name>.json, unmodified
//   - GET /static/*         embedded map script
//
// Every request gets an X-Request-ID, a structured access log line, and panic
// recovery. Serve runs the listener and an optional template watcher under one
// errgroup so either failing shuts the other down.
package eventserver
