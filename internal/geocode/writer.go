package geocode

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
)

// Reverse returns lookups last-first, the order older heatmap files were
// written in. The input is left untouched.
func Reverse(lookups []Lookup) []Lookup {
	out := slices.Clone(lookups)
	slices.Reverse(out)
	return out
}

// WriteLegacy writes each lookup as `, {"lat": x, "lng": y}` or `, null`,
// with no trailing newline.
func WriteLegacy(w io.Writer, lookups []Lookup) error {
	bw := bufio.NewWriter(w)
	for _, l := range lookups {
		if _, err := bw.WriteString(", "); err != nil {
			return err
		}
		if l.Point == nil {
			if _, err := bw.WriteString("null"); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(bw, `{"lat": %s, "lng": %s}`, formatCoord(l.Point.Lat), formatCoord(l.Point.Lng)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

type jsonLookup struct {
	Zip string   `json:"zip"`
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// WriteJSON writes lookups as an indented JSON array. Misses carry null
// coordinates.
func WriteJSON(w io.Writer, lookups []Lookup) error {
	rows := make([]jsonLookup, len(lookups))
	for i, l := range lookups {
		rows[i].Zip = l.Zip
		if l.Point != nil {
			lat, lng := l.Point.Lat, l.Point.Lng
			rows[i].Lat = &lat
			rows[i].Lng = &lng
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

// Format selects an output encoding.
type Format string

const (
	FormatLegacy Format = "legacy"
	FormatJSON   Format = "json"
)

// ParseFormat validates a --format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatLegacy:
		return FormatLegacy, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want legacy or json)", s)
	}
}

// WriteFile writes lookups to path in the given format, replacing the file
// atomically.
func WriteFile(path string, format Format, lookups []Lookup) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	switch format {
	case FormatJSON:
		err = WriteJSON(tmp, lookups)
	default:
		err = WriteLegacy(tmp, lookups)
	}
	if err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("finalize output: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
