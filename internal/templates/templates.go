// Package templates holds the HTML pages. The default set is compiled into
// the binary; a directory on disk can replace it and be re-parsed while
// the server runs.
package templates

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/richard-senior/barchart/internal/logger"
)

//go:embed html/*.html
var embedded embed.FS

var ErrNotFound = errors.New("templates: not found")

// Renderer is what handlers need from a template set.
type Renderer interface {
	Render(w io.Writer, name string, data any) error
}

type Set struct {
	mu   sync.RWMutex
	fsys fs.FS
	tmpl *template.Template
	// parse error from the last reload, reported on every render
	err error
}

// NewEmbedded parses the pages bundled with the binary.
func NewEmbedded() (*Set, error) {
	sub, err := fs.Sub(embedded, "html")
	if err != nil {
		return nil, err
	}
	return newSet(sub)
}

// NewDir parses every *.html file in dir.
func NewDir(dir string) (*Set, error) {
	return newSet(os.DirFS(dir))
}

func newSet(fsys fs.FS) (*Set, error) {
	s := &Set{fsys: fsys}
	tmpl, err := s.parse()
	if err != nil {
		return nil, err
	}
	s.tmpl = tmpl
	return s, nil
}

func (s *Set) parse() (*template.Template, error) {
	tmpl, err := template.ParseFS(s.fsys, "*.html")
	if err != nil {
		return nil, fmt.Errorf("templates: parse: %w", err)
	}
	return tmpl, nil
}

// Reload re-parses the set. On failure the previous templates are kept
// but renders fail until a later reload succeeds.
func (s *Set) Reload() error {
	tmpl, err := s.parse()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		logger.Error("template reload failed: %v", err)
		return err
	}
	s.tmpl = tmpl
	logger.Info("templates reloaded")
	return nil
}

// Render executes name into a buffer first so a failing template never
// leaves a partial page on w.
func (s *Set) Render(w io.Writer, name string, data any) error {
	s.mu.RLock()
	tmpl, err := s.tmpl, s.err
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	t := tmpl.Lookup(name)
	if t == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("templates: execute %s: %w", name, err)
	}
	_, err = buf.WriteTo(w)
	return err
}
