package main

import (
	"strings"

	"github.com/spf13/cobra"

	"eventkit/internal/eventserver"
	"eventkit/internal/services"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	var (
		bind     string
		template string
		watch    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the event heatmap page and event JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			opts := eventserver.Options{
				Bind:         cfg.Server.Bind,
				EventsDir:    cfg.Paths.EventsDir,
				TemplatePath: cfg.Server.TemplatePath,
				Title:        cfg.Server.Title,
				MapsAPIKey:   cfg.Server.MapsAPIKey,
				Watch:        watch,
			}
			if b := strings.TrimSpace(bind); b != "" {
				opts.Bind = b
			}
			if t := strings.TrimSpace(template); t != "" {
				opts.TemplatePath = t
			}

			srv, err := eventserver.New(opts, logger)
			if err != nil {
				return services.Wrap(services.ErrConfiguration, "serve", "init", "", err)
			}
			return srv.Serve(services.WithTool(cmd.Context(), "serve"))
		},
	}

	cmd.Flags().StringVar(&bind, "bind", "", "Override server.bind (host:port)")
	cmd.Flags().StringVar(&template, "template", "", "Override server.template_path")
	cmd.Flags().BoolVar(&watch, "watch", false, "Reload the page template when it changes")
	return cmd
}
