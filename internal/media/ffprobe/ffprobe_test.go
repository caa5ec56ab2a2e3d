package ffprobe

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestResultHelpers(t *testing.T) {
	result := Result{
		Streams: []Stream{
			{CodecType: "video"},
			{CodecType: "audio"},
			{CodecType: "AUDIO"},
		},
		Format: Format{
			Duration: "123.45",
			Size:     "1000",
			BitRate:  "32000",
		},
	}
	if result.VideoStreamCount() != 1 {
		t.Fatalf("expected 1 video stream, got %d", result.VideoStreamCount())
	}
	if result.AudioStreamCount() != 2 {
		t.Fatalf("expected 2 audio streams, got %d", result.AudioStreamCount())
	}
	if result.DurationSeconds() != 123.45 {
		t.Fatalf("unexpected duration: %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 1000 {
		t.Fatalf("unexpected size: %d", result.SizeBytes())
	}
	if result.BitRate() != 32000 {
		t.Fatalf("unexpected bitrate: %d", result.BitRate())
	}
}

func TestResultHelpersHandleInvalidNumbers(t *testing.T) {
	result := Result{
		Format: Format{
			Duration: "bad",
			Size:     "-1",
			BitRate:  "nope",
		},
	}
	if !math.IsNaN(result.DurationSeconds()) {
		t.Fatalf("expected duration NaN, got %v", result.DurationSeconds())
	}
	if result.SizeBytes() != 0 {
		t.Fatalf("expected size 0, got %d", result.SizeBytes())
	}
	if result.BitRate() != 0 {
		t.Fatalf("expected bitrate 0, got %d", result.BitRate())
	}
}

func TestDurationFallsBackToStreams(t *testing.T) {
	result := Result{Streams: []Stream{{Duration: "4.5"}, {Duration: "9.25"}, {Duration: "junk"}}}
	if got := result.DurationSeconds(); got != 9.25 {
		t.Fatalf("expected longest stream duration, got %v", got)
	}
}

func TestInspectWithParsesRunnerOutput(t *testing.T) {
	var gotArgs []string
	run := func(_ context.Context, name string, args ...string) ([]byte, error) {
		if name != "probe-bin" {
			t.Fatalf("unexpected binary %q", name)
		}
		gotArgs = args
		return []byte(`{"streams":[{"codec_type":"video","codec_name":"h264"}],"format":{"duration":"30.0"}}`), nil
	}
	result, err := InspectWith(context.Background(), run, "probe-bin", "/media/clip.mp4")
	if err != nil {
		t.Fatalf("InspectWith returned error: %v", err)
	}
	if result.DurationSeconds() != 30 || result.Streams[0].CodecName != "h264" {
		t.Fatalf("unexpected result: %#v", result)
	}
	if gotArgs[len(gotArgs)-1] != "/media/clip.mp4" || gotArgs[len(gotArgs)-2] != "--" {
		t.Fatalf("expected path after --, got %v", gotArgs)
	}
}

func TestInspectWithErrors(t *testing.T) {
	if _, err := InspectWith(context.Background(), nil, "", "  "); err == nil {
		t.Fatal("expected error for empty path")
	}
	failing := func(context.Context, string, ...string) ([]byte, error) {
		return nil, errors.New("exit status 1")
	}
	_, err := InspectWith(context.Background(), failing, "", "clip.mp4")
	if err == nil || !strings.Contains(err.Error(), "ffprobe inspect") {
		t.Fatalf("expected wrapped runner error, got %v", err)
	}
	garbage := func(context.Context, string, ...string) ([]byte, error) {
		return []byte("not json"), nil
	}
	if _, err := InspectWith(context.Background(), garbage, "", "clip.mp4"); err == nil {
		t.Fatal("expected parse error")
	}
}
