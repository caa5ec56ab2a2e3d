package combiner

import (
	"log/slog"
	"sync"

	draptolib "github.com/five82/drapto"

	"eventkit/internal/logging"
)

// progressStep is the percentage delta between logged progress lines.
const progressStep = 10.0

// logReporter forwards drapto progress to a structured logger.
type logReporter struct {
	logger *slog.Logger

	mu         sync.Mutex
	lastLogged float64
}

func newLogReporter(logger *slog.Logger) *logReporter {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &logReporter{logger: logger, lastLogged: -progressStep}
}

func (r *logReporter) Hardware(s draptolib.HardwareSummary) {
	r.logger.Debug("encoder host", logging.String("hostname", s.Hostname))
}

func (r *logReporter) Initialization(s draptolib.InitializationSummary) {
	r.logger.Info("encode started",
		logging.String(logging.FieldEventType, "encode_started"),
		logging.String("input", s.InputFile),
		logging.String("output", s.OutputFile),
		logging.Any("duration", s.Duration),
		logging.Any("resolution", s.Resolution),
	)
}

func (r *logReporter) StageProgress(s draptolib.StageProgress) {
	r.logger.Debug("encode stage",
		logging.String("stage", s.Stage),
		logging.Float64("percent", float64(s.Percent)),
		logging.String("message", s.Message),
	)
}

func (r *logReporter) CropResult(s draptolib.CropSummary) {
	r.logger.Debug("crop detection",
		logging.Any("crop", s.Crop),
		logging.Bool("required", s.Required),
		logging.Bool("disabled", s.Disabled),
	)
}

func (r *logReporter) EncodingConfig(s draptolib.EncodingConfigSummary) {
	r.logger.Debug("encoding config",
		logging.Any("encoder", s.Encoder),
		logging.Any("preset", s.Preset),
		logging.Any("quality", s.Quality),
		logging.Any("audio_codec", s.AudioCodec),
	)
}

func (r *logReporter) EncodingStarted(totalFrames uint64) {
	r.mu.Lock()
	r.lastLogged = -progressStep
	r.mu.Unlock()
	r.logger.Debug("encoding frames", logging.Int64("total_frames", int64(totalFrames)))
}

func (r *logReporter) EncodingProgress(s draptolib.ProgressSnapshot) {
	percent := float64(s.Percent)
	r.mu.Lock()
	if percent < r.lastLogged+progressStep && percent < 100 {
		r.mu.Unlock()
		return
	}
	r.lastLogged = percent
	r.mu.Unlock()
	r.logger.Info("encode progress",
		logging.String(logging.FieldEventType, "encode_progress"),
		logging.Float64("percent", percent),
		logging.Float64("speed", float64(s.Speed)),
		logging.Float64("fps", float64(s.FPS)),
		logging.Duration("eta", s.ETA),
	)
}

func (r *logReporter) ValidationComplete(s draptolib.ValidationSummary) {
	if s.Passed {
		r.logger.Debug("encode validation passed", logging.Int("steps", len(s.Steps)))
		return
	}
	failed := make([]string, 0, len(s.Steps))
	for _, step := range s.Steps {
		if !step.Passed {
			failed = append(failed, step.Name)
		}
	}
	logging.WarnWithContext(r.logger, "encode validation failed", "encode_validation_failed",
		logging.Any("failed_steps", failed),
		logging.String(logging.FieldImpact, "encoded clip may not match the muxed source"),
	)
}

func (r *logReporter) EncodingComplete(s draptolib.EncodingOutcome) {
	r.logger.Info("encode finished",
		logging.String(logging.FieldEventType, "encode_complete"),
		logging.String("output", s.OutputFile),
		logging.Int64("original_bytes", int64(s.OriginalSize)),
		logging.Int64("encoded_bytes", int64(s.EncodedSize)),
		logging.Any("elapsed", s.TotalTime),
	)
}

func (r *logReporter) Warning(message string) {
	logging.WarnWithContext(r.logger, message, "encode_warning")
}

func (r *logReporter) Error(e draptolib.ReporterError) {
	r.logger.Error("encode error",
		logging.String("title", e.Title),
		logging.String("message", e.Message),
		logging.String("suggestion", e.Suggestion),
	)
}

func (r *logReporter) OperationComplete(message string) {
	r.logger.Debug("encode operation complete", logging.String("message", message))
}

func (r *logReporter) BatchStarted(s draptolib.BatchStartInfo) {
	r.logger.Debug("encode batch started", logging.Any("files", s.TotalFiles))
}

func (r *logReporter) FileProgress(s draptolib.FileProgressContext) {
	r.logger.Debug("encode file", logging.Any("current", s.CurrentFile), logging.Any("total", s.TotalFiles))
}

func (r *logReporter) BatchComplete(s draptolib.BatchSummary) {
	r.logger.Debug("encode batch complete",
		logging.Any("successful", s.SuccessfulCount),
		logging.Any("total", s.TotalFiles),
	)
}

var _ draptolib.Reporter = (*logReporter)(nil)
