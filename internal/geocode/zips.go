package geocode

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"eventkit/internal/services"
)

type eventsDocument struct {
	Events []struct {
		Zips []zipValue `json:"zips"`
	} `json:"events"`
}

// zipValue accepts both "12345" and 12345.
type zipValue string

func (z *zipValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*z = zipValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("zip must be a string or number, got %s", string(data))
	}
	*z = zipValue(n.String())
	return nil
}

var upper = cases.Upper(language.Und)

// NormalizeZip trims and upper-cases a postal code so equivalent spellings
// share a cache key.
func NormalizeZip(zip string) string {
	return upper.String(strings.Join(strings.Fields(zip), " "))
}

// LoadZips reads the postal codes of the first event in the document at path.
func LoadZips(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "geocode", "load", path, err)
		}
		return nil, fmt.Errorf("read events file: %w", err)
	}
	return ParseZips(raw)
}

// ParseZips decodes an events document and returns events[0].zips, normalized.
func ParseZips(raw []byte) ([]string, error) {
	var doc eventsDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, services.Wrap(services.ErrValidation, "geocode", "load", "decode events document", err)
	}
	if len(doc.Events) == 0 {
		return nil, services.Wrap(services.ErrValidation, "geocode", "load", "events document has no events", nil)
	}
	zips := make([]string, 0, len(doc.Events[0].Zips))
	for _, z := range doc.Events[0].Zips {
		zips = append(zips, NormalizeZip(string(z)))
	}
	return zips, nil
}
