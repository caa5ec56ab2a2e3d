package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"eventkit/internal/combiner"
	"eventkit/internal/preflight"
	"eventkit/internal/services"
)

func newCombineCommand(ctx *commandContext) *cobra.Command {
	var (
		dryRun   bool
		movieDir string
		soundDir string
	)

	cmd := &cobra.Command{
		Use:   "combine",
		Short: "Pair movie and sound files into trimmed clips",
		Long: `Pair the files of the movie and sound directories in name order and mux each
pair with ffmpeg: the video is trimmed to the configured video window, the
audio to the audio window and then padded or cut to the video length.
Outputs are written as 1.<ext>, 2.<ext>, ... in the output directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			if strings.TrimSpace(movieDir) == "" {
				movieDir = cfg.Paths.MovieDir
			}
			if strings.TrimSpace(soundDir) == "" {
				soundDir = cfg.Paths.SoundDir
			}

			c, err := combiner.New(cfg, logger)
			if err != nil {
				return err
			}
			pairs, err := c.PlanDirs(movieDir, soundDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, renderPairTable(pairs))
				fmt.Fprintf(out, "%d pair(s) planned; nothing written (dry run)\n", len(pairs))
				return nil
			}

			for _, check := range []preflight.Result{
				preflight.CheckBinary("FFmpeg", cfg.Combine.FFmpegBinary, false),
				preflight.CheckBinary("FFprobe", cfg.Combine.FFprobeBinary, false),
			} {
				if check.Failed() {
					return services.Wrap(services.ErrConfiguration, "combine", "preflight", check.Name+": "+check.Detail, nil)
				}
			}

			runCtx := services.WithTool(cmd.Context(), "combine")
			result, err := c.Run(runCtx, pairs)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(result.Outputs))
			for _, o := range result.Outputs {
				rows = append(rows, []string{
					strconv.Itoa(o.Pair.Index),
					filepath.Base(o.Pair.Movie),
					filepath.Base(o.Pair.Sound),
					filepath.Base(o.Pair.Output),
					strconv.FormatFloat(o.ClipSeconds, 'f', 2, 64),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"#", "Movie", "Sound", "Output", "Seconds"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
			))
			fmt.Fprintf(out, "Combined %d clip(s) into %s in %s\n", len(result.Outputs), cfg.Paths.OutputDir, result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the pair plan without running ffmpeg")
	cmd.Flags().StringVar(&movieDir, "movie-dir", "", "Override paths.movie_dir")
	cmd.Flags().StringVar(&soundDir, "sound-dir", "", "Override paths.sound_dir")
	return cmd
}

func renderPairTable(pairs []combiner.Pair) string {
	rows := make([][]string, 0, len(pairs))
	for _, p := range pairs {
		rows = append(rows, []string{
			strconv.Itoa(p.Index),
			filepath.Base(p.Movie),
			filepath.Base(p.Sound),
			p.Output,
		})
	}
	return renderTable(
		[]string{"#", "Movie", "Sound", "Output"},
		rows,
		[]columnAlignment{alignRight},
	)
}
