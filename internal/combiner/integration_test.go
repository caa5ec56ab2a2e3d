package combiner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"eventkit/internal/combiner"
	"eventkit/internal/testsupport"
)

func TestCombineDirsWithStubbedTools(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	testsupport.WriteMedia(t, cfg.Paths.MovieDir, "one.mov", "two.mov", "three.mov")
	testsupport.WriteMedia(t, cfg.Paths.SoundDir, "one.wav", "two.wav", "three.wav")

	c, err := combiner.New(cfg, nil)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	result, err := c.CombineDirs(context.Background(), cfg.Paths.MovieDir, cfg.Paths.SoundDir)
	if err != nil {
		t.Fatalf("CombineDirs returned error: %v", err)
	}
	if len(result.Outputs) != 3 {
		t.Fatalf("expected 3 outputs, got %d", len(result.Outputs))
	}
	for _, out := range result.Outputs {
		if out.ClipSeconds != 15 {
			t.Fatalf("expected 15s clip from 30s probe, got %v", out.ClipSeconds)
		}
		if _, err := os.Stat(out.Pair.Output); err != nil {
			t.Fatalf("missing output %s: %v", out.Pair.Output, err)
		}
	}
	if _, err := os.Stat(filepath.Join(cfg.Paths.OutputDir, "3.mp4")); err != nil {
		t.Fatalf("expected 3.mp4: %v", err)
	}
}
