package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"eventkit/internal/combiner"
	"eventkit/internal/testsupport"
)

func TestCombineDryRunPrintsPlan(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteMedia(t, env.cfg.Paths.MovieDir, "a.mov", "b.mov")
	testsupport.WriteMedia(t, env.cfg.Paths.SoundDir, "a.wav", "b.wav")

	out, _, err := runCLI(t, []string{"combine", "--dry-run"}, env.configPath)
	if err != nil {
		t.Fatalf("combine --dry-run: %v", err)
	}
	requireContains(t, out, "a.mov")
	requireContains(t, out, "b.wav")
	requireContains(t, out, "2 pair(s) planned")
	if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, "1.mp4")); !os.IsNotExist(err) {
		t.Fatalf("dry run must not write outputs, stat err=%v", err)
	}
}

func TestCombineMismatchFails(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteMedia(t, env.cfg.Paths.MovieDir, "a.mov", "b.mov")
	testsupport.WriteMedia(t, env.cfg.Paths.SoundDir, "a.wav")

	_, _, err := runCLI(t, []string{"combine"}, env.configPath)
	if !errors.Is(err, combiner.ErrCountMismatch) {
		t.Fatalf("expected count mismatch, got %v", err)
	}
}

func TestCombineWritesOutputs(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())
	testsupport.WriteMedia(t, env.cfg.Paths.MovieDir, "a.mov", "b.mov")
	testsupport.WriteMedia(t, env.cfg.Paths.SoundDir, "a.wav", "b.wav")

	out, _, err := runCLI(t, []string{"combine"}, env.configPath)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	requireContains(t, out, "Combined 2 clip(s)")
	for _, name := range []string{"1.mp4", "2.mp4"} {
		if _, err := os.Stat(filepath.Join(env.cfg.Paths.OutputDir, name)); err != nil {
			t.Fatalf("expected %s: %v", name, err)
		}
	}
}
