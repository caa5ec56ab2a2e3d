package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"eventkit/internal/preflight"
)

type statusEntry struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional"`
	Detail   string `json:"detail"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check binaries, directories, and settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)

			if jsonOut {
				entries := make([]statusEntry, 0, len(results))
				for _, r := range results {
					entries = append(entries, statusEntry(r))
				}
				if err := writeJSON(cmd, entries); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				fmt.Fprintf(out, "Config: %s", ctx.configPath)
				if !ctx.configSeen {
					fmt.Fprint(out, " (not found, using defaults)")
				}
				fmt.Fprintln(out)
				for _, r := range results {
					kind := statusOK
					switch {
					case r.Failed():
						kind = statusError
					case !r.Passed:
						kind = statusWarn
					}
					fmt.Fprintln(out, renderStatusLine(r.Name, kind, r.Detail, colorize))
				}
			}

			if preflight.AnyFailed(results) {
				return errors.New("one or more required checks failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	return cmd
}
