package combiner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"eventkit/internal/services"
)

// Collect returns the regular files of movieDir and soundDir, each sorted by
// name. Subdirectories and dotfiles are skipped.
func Collect(movieDir, soundDir string) ([]string, []string, error) {
	movies, err := listFiles(movieDir)
	if err != nil {
		return nil, nil, fmt.Errorf("collect movies: %w", err)
	}
	sounds, err := listFiles(soundDir)
	if err != nil {
		return nil, nil, fmt.Errorf("collect sounds: %w", err)
	}
	return movies, sounds, nil
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, services.Wrap(services.ErrNotFound, "combine", "collect", dir, err)
		}
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		if !entry.Type().IsRegular() {
			// Follow symlinks so linked media still counts as a file.
			info, err := os.Stat(filepath.Join(dir, name))
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		}
		files = append(files, filepath.Join(dir, name))
	}
	sort.Strings(files)
	return files, nil
}
