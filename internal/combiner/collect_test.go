package combiner_test

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"eventkit/internal/combiner"
	"eventkit/internal/services"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

func TestCollectSortsAndSkipsHiddenEntries(t *testing.T) {
	base := t.TempDir()
	movieDir := filepath.Join(base, "movie")
	soundDir := filepath.Join(base, "sound")
	writeFiles(t, movieDir, "b.mov", "a.mov", ".DS_Store")
	writeFiles(t, soundDir, "z.wav", "y.wav")
	if err := os.Mkdir(filepath.Join(movieDir, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}
	if err := os.Symlink(filepath.Join(soundDir, "z.wav"), filepath.Join(soundDir, "x.wav")); err != nil {
		t.Fatalf("symlink: %v", err)
	}

	movies, sounds, err := combiner.Collect(movieDir, soundDir)
	if err != nil {
		t.Fatalf("Collect returned error: %v", err)
	}
	wantMovies := []string{filepath.Join(movieDir, "a.mov"), filepath.Join(movieDir, "b.mov")}
	if !reflect.DeepEqual(movies, wantMovies) {
		t.Fatalf("movies = %v, want %v", movies, wantMovies)
	}
	wantSounds := []string{
		filepath.Join(soundDir, "x.wav"),
		filepath.Join(soundDir, "y.wav"),
		filepath.Join(soundDir, "z.wav"),
	}
	if !reflect.DeepEqual(sounds, wantSounds) {
		t.Fatalf("sounds = %v, want %v", sounds, wantSounds)
	}
}

func TestCollectMissingDirectory(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, filepath.Join(base, "movie"), "a.mov")
	_, _, err := combiner.Collect(filepath.Join(base, "movie"), filepath.Join(base, "absent"))
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found error for missing sound directory, got %v", err)
	}
}
