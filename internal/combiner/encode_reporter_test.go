package combiner

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	draptolib "github.com/five82/drapto"
)

func TestLogReporterThrottlesProgress(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	rep := newLogReporter(logger)

	rep.EncodingStarted(1000)
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 0})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 3})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 9})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 10})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 14})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 25})
	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 100})

	got := strings.Count(buf.String(), `"msg":"encode progress"`)
	// 0, 10, 25, 100
	if got != 4 {
		t.Fatalf("expected 4 progress lines, got %d:\n%s", got, buf.String())
	}
}

func TestLogReporterValidationFailureWarns(t *testing.T) {
	var buf bytes.Buffer
	rep := newLogReporter(slog.New(slog.NewJSONHandler(&buf, nil)))

	rep.ValidationComplete(draptolib.ValidationSummary{Passed: false})
	if !strings.Contains(buf.String(), `"event_type":"encode_validation_failed"`) {
		t.Fatalf("expected validation warning, got %s", buf.String())
	}
}

func TestLogReporterProgressIncludesETA(t *testing.T) {
	var buf bytes.Buffer
	rep := newLogReporter(slog.New(slog.NewJSONHandler(&buf, nil)))

	rep.EncodingProgress(draptolib.ProgressSnapshot{Percent: 50, ETA: 90 * time.Second})
	if !strings.Contains(buf.String(), `"eta":90000000000`) {
		t.Fatalf("expected eta in progress line, got %s", buf.String())
	}
}
