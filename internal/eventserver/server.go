package eventserver

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"eventkit/internal/logging"
)

//go:embed templates/index.html static
var assets embed.FS

const (
	defaultEvent    = "event_sample"
	shutdownTimeout = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Bind         string
	EventsDir    string
	TemplatePath string
	Title        string
	MapsAPIKey   string
	Watch        bool
}

// Server is the event HTTP server.
type Server struct {
	opts     Options
	logger   *slog.Logger
	tmpl     *templateSet
	router   chi.Router
	listener net.Listener
}

// New parses the page template and builds the router.
func New(opts Options, logger *slog.Logger) (*Server, error) {
	opts.Bind = strings.TrimSpace(opts.Bind)
	opts.EventsDir = strings.TrimSpace(opts.EventsDir)
	if opts.EventsDir == "" {
		return nil, errors.New("events directory required")
	}
	if opts.Watch && strings.TrimSpace(opts.TemplatePath) == "" {
		return nil, errors.New("watch requires server.template_path")
	}

	tmpl, err := newTemplateSet(opts.TemplatePath)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:   opts,
		logger: logging.NewComponentLogger(logger, "eventserver"),
		tmpl:   tmpl,
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	static, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Use(
		requestID,
		s.requestLogger,
		s.recoverer,
	)
	r.Get("/", s.handleIndex)
	r.Get("/api/v1/{name}", s.handleEvent)
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	return r
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the configured address. Serve calls it when needed.
func (s *Server) Listen() (net.Addr, error) {
	if s.listener != nil {
		return s.listener.Addr(), nil
	}
	if s.opts.Bind == "" {
		return nil, errors.New("bind address required")
	}
	ln, err := net.Listen("tcp", s.opts.Bind)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", s.opts.Bind, err)
	}
	s.listener = ln
	return ln.Addr(), nil
}

// Serve blocks until ctx is cancelled or the server fails.
func (s *Server) Serve(ctx context.Context) error {
	addr, err := s.Listen()
	if err != nil {
		return err
	}

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Handler: s.router,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	s.logger.Info("event server listening",
		logging.String(logging.FieldEventType, "server_started"),
		logging.String("addr", "http://"+addr.String()),
		logging.String("events_dir", s.opts.EventsDir),
		logging.Bool("watch", s.opts.Watch),
	)

	if s.opts.Watch {
		eg.Go(func() error {
			return s.watchTemplate(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Debug("shutting down event server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}
