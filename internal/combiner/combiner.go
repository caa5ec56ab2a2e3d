package combiner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventkit/internal/config"
	"eventkit/internal/logging"
	"eventkit/internal/media/ffprobe"
	"eventkit/internal/services"
)

// Prober reports media metadata for a file.
type Prober interface {
	Probe(ctx context.Context, path string) (ffprobe.Result, error)
}

type ffprobeProber struct {
	binary string
}

func (p ffprobeProber) Probe(ctx context.Context, path string) (ffprobe.Result, error) {
	return ffprobe.Inspect(ctx, p.binary, path)
}

// Output describes one produced file.
type Output struct {
	Pair        Pair
	ClipSeconds float64
	EncodedPath string
}

// Result summarizes a combine run.
type Result struct {
	RunID    string
	Outputs  []Output
	Duration time.Duration
}

// Combiner muxes movie/sound pairs with ffmpeg.
type Combiner struct {
	video      Window
	audio      Window
	ext        string
	videoCodec string
	audioCodec string
	ffmpeg     string
	outputDir  string

	logger  *slog.Logger
	run     services.CommandRunner
	prober  Prober
	encoder Encoder
}

// Option configures a Combiner.
type Option func(*Combiner)

// WithCommandRunner overrides how ffmpeg is executed.
func WithCommandRunner(run services.CommandRunner) Option {
	return func(c *Combiner) {
		if run != nil {
			c.run = run
		}
	}
}

// WithProber overrides how clip durations are measured.
func WithProber(p Prober) Option {
	return func(c *Combiner) {
		if p != nil {
			c.prober = p
		}
	}
}

// WithEncoder enables a post-mux re-encode of every output.
func WithEncoder(e Encoder) Option {
	return func(c *Combiner) {
		c.encoder = e
	}
}

// New constructs a combiner from configuration. When cfg.Combine.Encode is
// set, outputs are re-encoded with drapto unless WithEncoder overrides it.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Combiner, error) {
	if cfg == nil {
		return nil, errors.New("combiner requires config")
	}
	c := &Combiner{
		video:      Window{Start: cfg.Combine.VideoStart, End: cfg.Combine.VideoEnd},
		audio:      Window{Start: cfg.Combine.AudioStart, End: cfg.Combine.AudioEnd},
		ext:        cfg.Combine.OutputExt,
		videoCodec: cfg.Combine.VideoCodec,
		audioCodec: cfg.Combine.AudioCodec,
		ffmpeg:     cfg.Combine.FFmpegBinary,
		outputDir:  cfg.Paths.OutputDir,
		logger:     logging.NewComponentLogger(logger, "combiner"),
		run:        services.ExecRunner,
		prober:     ffprobeProber{binary: cfg.Combine.FFprobeBinary},
	}
	if cfg.Combine.Encode {
		c.encoder = NewDraptoEncoder(c.logger)
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.video.Length() <= 0 || c.audio.Length() <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "combine", "init", "trim windows must have positive length", nil)
	}
	return c, nil
}

// PlanDirs collects both directories and pairs their files.
func (c *Combiner) PlanDirs(movieDir, soundDir string) ([]Pair, error) {
	movies, sounds, err := Collect(movieDir, soundDir)
	if err != nil {
		return nil, err
	}
	return Plan(movies, sounds, c.outputDir, c.ext)
}

// CombineDirs plans and runs a full batch. A count mismatch returns before
// ffmpeg or ffprobe is invoked.
func (c *Combiner) CombineDirs(ctx context.Context, movieDir, soundDir string) (Result, error) {
	pairs, err := c.PlanDirs(movieDir, soundDir)
	if err != nil {
		return Result{}, err
	}
	return c.Run(ctx, pairs)
}

// Run combines every pair in order, stopping at the first failure.
func (c *Combiner) Run(ctx context.Context, pairs []Pair) (Result, error) {
	runID, ok := services.RunIDFromContext(ctx)
	if !ok {
		runID = uuid.NewString()
		ctx = services.WithRunID(ctx, runID)
	}
	logger := logging.WithContext(ctx, c.logger)
	result := Result{RunID: runID}
	started := time.Now()

	if len(pairs) == 0 {
		logging.WarnWithContext(logger, "nothing to combine", "combine_empty",
			logging.String(logging.FieldImpact, "no output files written"))
		return result, nil
	}

	lock, err := lockOutputDir(c.outputDir)
	if err != nil {
		return result, err
	}
	defer func() {
		if err := lock.release(); err != nil {
			logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	logger.Info("combine started",
		logging.Int("pairs", len(pairs)),
		logging.String("output_dir", c.outputDir),
	)

	for _, pair := range pairs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		out, err := c.combinePair(ctx, logger, pair)
		if err != nil {
			return result, err
		}
		result.Outputs = append(result.Outputs, out)
	}

	result.Duration = time.Since(started)
	logger.Info("combine finished",
		logging.String(logging.FieldEventType, "combine_complete"),
		logging.Int("outputs", len(result.Outputs)),
		logging.Duration("elapsed", result.Duration),
	)
	return result, nil
}

func (c *Combiner) combinePair(ctx context.Context, logger *slog.Logger, pair Pair) (Output, error) {
	logger = logger.With(logging.Int("pair", pair.Index))

	clip, err := c.clipSeconds(ctx, logger, pair.Movie)
	if err != nil {
		return Output{}, err
	}

	dir := filepath.Dir(pair.Output)
	base := filepath.Base(pair.Output)
	tmpPath := filepath.Join(dir, "."+strings.TrimSuffix(base, filepath.Ext(base))+".partial"+filepath.Ext(base))

	args := c.muxArgs(pair, clip, tmpPath)
	logger.Debug("executing ffmpeg",
		logging.String("movie", pair.Movie),
		logging.String("sound", pair.Sound),
		logging.Float64("clip_seconds", clip),
	)
	if _, err := c.run(ctx, c.ffmpeg, args...); err != nil {
		_ = os.Remove(tmpPath)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Output{}, ctxErr
		}
		return Output{}, services.Wrap(services.ErrExternalTool, "combine", "mux",
			fmt.Sprintf("pair %d (%s + %s)", pair.Index, filepath.Base(pair.Movie), filepath.Base(pair.Sound)), err)
	}
	if _, err := os.Stat(tmpPath); err != nil {
		return Output{}, services.Wrap(services.ErrExternalTool, "combine", "mux", "ffmpeg did not produce output", err)
	}
	if err := os.Rename(tmpPath, pair.Output); err != nil {
		_ = os.Remove(tmpPath)
		return Output{}, fmt.Errorf("finalize %s: %w", pair.Output, err)
	}

	out := Output{Pair: pair, ClipSeconds: clip}
	if c.encoder != nil {
		encoded, err := c.encoder.Encode(ctx, pair.Output, filepath.Join(c.outputDir, "encoded"))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Output{}, ctxErr
			}
			return Output{}, services.Wrap(services.ErrExternalTool, "combine", "encode", filepath.Base(pair.Output), err)
		}
		out.EncodedPath = encoded
	}

	logger.Info("pair combined",
		logging.String(logging.FieldEventType, "pair_combined"),
		logging.String("output", pair.Output),
		logging.Float64("clip_seconds", clip),
	)
	return out, nil
}

// clipSeconds returns how much of the movie the video window keeps.
func (c *Combiner) clipSeconds(ctx context.Context, logger *slog.Logger, movie string) (float64, error) {
	probe, err := c.prober.Probe(ctx, movie)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, ctxErr
		}
		return 0, services.Wrap(services.ErrExternalTool, "combine", "probe", filepath.Base(movie), err)
	}
	duration := probe.DurationSeconds()
	if math.IsNaN(duration) || duration <= 0 {
		logging.WarnWithContext(logger, "movie duration unknown; using full video window", "duration_unknown",
			logging.String("movie", movie),
			logging.String(logging.FieldImpact, "output may contain a frozen tail if the movie is short"),
		)
		return c.video.Length(), nil
	}
	clip := math.Min(c.video.End, duration) - c.video.Start
	if clip <= 0 {
		return 0, services.Wrap(services.ErrValidation, "combine", "trim",
			fmt.Sprintf("%s is %.2fs long, shorter than video start %.2fs", filepath.Base(movie), duration, c.video.Start), nil)
	}
	return clip, nil
}

// muxArgs builds an ffmpeg invocation that trims both inputs, pads the audio
// with silence, and cuts the output at the clip length.
func (c *Combiner) muxArgs(pair Pair, clip float64, output string) []string {
	args := []string{
		"-hide_banner", "-nostdin", "-y", "-loglevel", "error",
		"-ss", seconds(c.video.Start), "-t", seconds(clip), "-i", pair.Movie,
		"-ss", seconds(c.audio.Start), "-t", seconds(c.audio.Length()), "-i", pair.Sound,
		"-map", "0:v:0", "-map", "1:a:0",
		"-c:v", c.videoCodec,
		"-c:a", c.audioCodec,
		"-af", "apad",
		"-t", seconds(clip),
	}
	switch strings.ToLower(filepath.Ext(output)) {
	case ".mp4", ".mov", ".m4v":
		args = append(args, "-movflags", "+faststart")
	}
	return append(args, output)
}

func seconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
