// Package geocode turns the postal codes listed in an events document into
// latitude/longitude points.
//
// A Converter walks the codes in file order, asks a Geocoder (the Google
// Geocoding API client in production) for each one, and records a nil point
// when the service has no match. Successful lookups can be memoized in a
// SQLite Cache so reruns only hit the network for new codes. Results are
// written either in the flat legacy text format consumed by the heatmap page
// or as a JSON array.
package geocode
