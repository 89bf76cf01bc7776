// Package render is the html/template renderer behind echo's c.Render.
package render

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// TemplateRenderer clones the base layout and partials for every page so
// each page can define its own "title" and "content" blocks.
type TemplateRenderer struct {
	dir   string
	funcs template.FuncMap
	log   *zap.Logger

	mu        sync.RWMutex
	templates map[string]*template.Template
}

// New parses every template under dir: layouts/*.html and partials/*.html
// form the base, pages/*.html are cloned from it, and *.html at the top level
// are standalone.
func New(dir string, funcs template.FuncMap, log *zap.Logger) (*TemplateRenderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	t := &TemplateRenderer{dir: dir, funcs: funcs, log: log}
	if err := t.Reload(); err != nil {
		return nil, err
	}
	return t, nil
}

// Reload re-parses the templates. On error the previous set stays active.
func (t *TemplateRenderer) Reload() error {
	templates, err := t.parse()
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.templates = templates
	t.mu.Unlock()
	return nil
}

func (t *TemplateRenderer) parse() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template)

	base, err := template.New("").Funcs(t.funcs).ParseGlob(filepath.Join(t.dir, "layouts", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse layouts: %w", err)
	}
	partials, _ := filepath.Glob(filepath.Join(t.dir, "partials", "*.html"))
	if len(partials) > 0 {
		if _, err := base.ParseFiles(partials...); err != nil {
			return nil, fmt.Errorf("failed to parse partials: %w", err)
		}
	}

	pages, err := filepath.Glob(filepath.Join(t.dir, "pages", "*.html"))
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		pageTemplate, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := pageTemplate.ParseFiles(page); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(page), err)
		}
		templates[filepath.Base(page)] = pageTemplate
	}

	standalone, _ := filepath.Glob(filepath.Join(t.dir, "*.html"))
	for _, page := range standalone {
		name := filepath.Base(page)
		if _, exists := templates[name]; exists {
			continue
		}
		tmpl, err := template.New(name).Funcs(t.funcs).ParseFiles(page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}
		templates[name] = tmpl
	}
	return templates, nil
}

// Render executes a page. htmx requests (HX-Request: true) get only what
// the layout swaps into the page: its "main" block when the layout defines
// one, otherwise the page's "content" block.
func (t *TemplateRenderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	t.mu.RLock()
	tmpl, ok := t.templates[name]
	t.mu.RUnlock()
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}

	if c != nil && c.Request().Header.Get("HX-Request") == "true" {
		for _, block := range []string{"main", "content"} {
			if tmpl.Lookup(block) != nil {
				return tmpl.ExecuteTemplate(w, block, data)
			}
		}
	}
	if tmpl.Lookup("base") != nil {
		return tmpl.ExecuteTemplate(w, "base", data)
	}
	return tmpl.Execute(w, data)
}

// Has reports whether a template is loaded.
func (t *TemplateRenderer) Has(name string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.templates[name]
	return ok
}

// Watch reloads the templates whenever a file under the template directory
// changes, until ctx is done.
func (t *TemplateRenderer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, sub := range []string{"", "layouts", "partials", "pages"} {
		dir := filepath.Join(t.dir, sub)
		if err := watcher.Add(dir); err != nil {
			t.log.Debug("template directory not watched", zap.String("dir", dir), zap.Error(err))
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Ext(event.Name) != ".html" || event.Op == fsnotify.Chmod {
				continue
			}
			if err := t.Reload(); err != nil {
				t.log.Error("template reload failed", zap.String("file", event.Name), zap.Error(err))
				continue
			}
			t.log.Info("templates reloaded", zap.String("file", event.Name))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			t.log.Warn("template watcher error", zap.Error(err))
		}
	}
}
