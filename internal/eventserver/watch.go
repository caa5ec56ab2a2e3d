package eventserver

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"eventkit/internal/logging"
)

const reloadDebounce = 100 * time.Millisecond

// watchTemplate re-parses the index template when its file changes. The parent
// directory is watched because editors often replace files instead of writing
// in place.
func (s *Server) watchTemplate(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create template watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	target := filepath.Clean(s.tmpl.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch template directory: %w", err)
	}
	s.logger.Debug("watching template", logging.String("path", target))

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(reloadDebounce, func() {
				if err := s.tmpl.reload(); err != nil {
					logging.WarnWithContext(s.logger, "template reload failed", "template_reload_failed",
						logging.Error(err),
						logging.String(logging.FieldImpact, "previous template stays active"),
					)
					return
				}
				s.logger.Info("template reloaded",
					logging.String(logging.FieldEventType, "template_reloaded"),
					logging.String("path", target),
				)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("template watcher error", logging.Error(err))
		}
	}
}
