package combiner

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"eventkit/internal/services"
)

// ErrCountMismatch reports that the movie and sound lists differ in length.
var ErrCountMismatch = errors.New("number of movie files must be equal to number of sound files")

// Window is a [Start, End) range in seconds.
type Window struct {
	Start float64
	End   float64
}

// Length returns the window length in seconds.
func (w Window) Length() float64 {
	return w.End - w.Start
}

// Pair binds one movie to one sound track and the file they produce.
type Pair struct {
	Index  int
	Movie  string
	Sound  string
	Output string
}

// Plan pairs movies and sounds positionally. Output files are named after the
// 1-based pair index inside outputDir.
func Plan(movies, sounds []string, outputDir, ext string) ([]Pair, error) {
	if len(movies) != len(sounds) {
		return nil, services.Wrap(services.ErrValidation, "combine", "plan",
			fmt.Sprintf("%d movies, %d sounds", len(movies), len(sounds)), ErrCountMismatch)
	}
	ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if ext == "" {
		ext = "mp4"
	}
	pairs := make([]Pair, len(movies))
	for i := range movies {
		pairs[i] = Pair{
			Index:  i + 1,
			Movie:  movies[i],
			Sound:  sounds[i],
			Output: filepath.Join(outputDir, strconv.Itoa(i+1)+"."+ext),
		}
	}
	return pairs, nil
}
