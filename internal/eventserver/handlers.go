package eventserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"eventkit/internal/logging"
)

type pageData struct {
	Title      string
	APIPath    string
	MapsAPIKey string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	event := defaultEvent
	if q := strings.TrimSpace(r.URL.Query().Get("event")); q != "" {
		if !validEventName(q) {
			writeError(w, http.StatusBadRequest, "invalid event name")
			return
		}
		event = strings.TrimSuffix(q, ".json")
	}
	data := pageData{
		Title:      s.opts.Title,
		APIPath:    "/api/v1/" + url.PathEscape(event),
		MapsAPIKey: s.opts.MapsAPIKey,
	}

	var buf bytes.Buffer
	if err := s.tmpl.execute(&buf, data); err != nil {
		logging.WithContext(r.Context(), s.logger).Error("render index failed", logging.Error(err))
		writeError(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleEvent(w http.ResponseWriter, r *http.Request) {
	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil || !validEventName(name) {
		writeError(w, http.StatusBadRequest, "invalid event name")
		return
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	data, err := os.ReadFile(filepath.Join(s.opts.EventsDir, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			writeError(w, http.StatusNotFound, "event not found")
			return
		}
		logging.WithContext(r.Context(), s.logger).Error("read event failed",
			logging.String("event", name),
			logging.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "read failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// validEventName accepts a single, non-hidden path element.
func validEventName(name string) bool {
	if name == "" || strings.HasPrefix(name, ".") {
		return false
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return !strings.ContainsRune(name, 0)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
