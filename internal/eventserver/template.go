package eventserver

import (
	"fmt"
	"html/template"
	"io"
	"strings"
	"sync"
)

// templateSet holds the index template. Reloads swap it under the lock.
type templateSet struct {
	mu   sync.RWMutex
	path string
	tmpl *template.Template
}

func newTemplateSet(path string) (*templateSet, error) {
	ts := &templateSet{path: strings.TrimSpace(path)}
	if err := ts.reload(); err != nil {
		return nil, err
	}
	return ts, nil
}

// reload parses the template from disk, or the embedded copy when no path is
// set. A failed parse keeps the previous template.
func (ts *templateSet) reload() error {
	var (
		tmpl *template.Template
		err  error
	)
	if ts.path == "" {
		tmpl, err = template.ParseFS(assets, "templates/index.html")
	} else {
		tmpl, err = template.ParseFiles(ts.path)
	}
	if err != nil {
		return fmt.Errorf("parse index template: %w", err)
	}
	ts.mu.Lock()
	ts.tmpl = tmpl
	ts.mu.Unlock()
	return nil
}

func (ts *templateSet) execute(w io.Writer, data any) error {
	ts.mu.RLock()
	tmpl := ts.tmpl
	ts.mu.RUnlock()
	return tmpl.Execute(w, data)
}
