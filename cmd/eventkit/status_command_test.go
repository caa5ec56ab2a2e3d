package main

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"eventkit/internal/testsupport"
)

func TestStatusReportsChecks(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithStubbedBinaries())

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v\n%s", err, out)
	}
	requireContains(t, out, "FFmpeg:")
	requireContains(t, out, "[OK]")
	requireContains(t, out, "Geocoding API key:")
	requireContains(t, out, "[WARN]")
	requireContains(t, out, "Geocode cache:")
	if _, err := os.Stat(env.cfg.Paths.OutputDir); !os.IsNotExist(err) {
		t.Fatalf("status must not create the output dir, stat err=%v", err)
	}
}

func TestStatusJSONFailsWithoutBinaries(t *testing.T) {
	env := setupCLITestEnv(t)
	t.Setenv("PATH", t.TempDir())

	out, _, err := runCLI(t, []string{"status", "--json"}, env.configPath)
	if err == nil {
		t.Fatal("expected failure when ffmpeg is missing")
	}
	var entries []statusEntry
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode status json: %v\n%s", err, out)
	}
	for _, e := range entries {
		if e.Name == "FFmpeg" && e.Passed {
			t.Fatal("expected ffmpeg check to fail")
		}
	}
}

func TestServeStopsWhenContextCancelled(t *testing.T) {
	env := setupCLITestEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() {
		_, _, err := runCLIContext(t, ctx, []string{"serve", "--bind", "127.0.0.1:0"}, env.configPath)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not stop")
	}
}
