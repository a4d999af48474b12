// Package view renders the server-side HTML pages.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"slices"
	"strings"

	"github.com/Eursukkul/booking-microservice/listing-service/internal/dto"
	"github.com/Eursukkul/booking-microservice/listing-service/internal/validation"
	"github.com/labstack/echo/v4"
)

//go:embed templates
var templateFS embed.FS

var funcs = template.FuncMap{
	"join":   strings.Join,
	"genres": func() []string { return dto.Genres },
	"states": func() []string { return dto.States },
	"errorsFor": func(errs validation.FieldErrors, field string) []string {
		return errs[field]
	},
	"checked": func(list []string, v string) template.HTMLAttr {
		if slices.Contains(list, v) {
			return "checked"
		}
		return ""
	},
	"selected": func(cur, v string) template.HTMLAttr {
		if cur == v {
			return "selected"
		}
		return ""
	},
}

// Renderer implements echo.Renderer. Templates are addressed by their path
// below templates/, e.g. "pages/venues.html".
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page against the shared layout. Each page gets its own
// clone of the layout so that pages can define the same block names.
func New() (*Renderer, error) {
	base, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	r := &Renderer{pages: map[string]*template.Template{}}
	for _, dir := range []string{"pages", "forms", "errors"} {
		files, err := fs.Glob(templateFS, path.Join("templates", dir, "*.html"))
		if err != nil {
			return nil, err
		}
		for _, file := range files {
			t, err := base.Clone()
			if err != nil {
				return nil, err
			}
			if _, err := t.ParseFS(templateFS, file); err != nil {
				return nil, fmt.Errorf("parse %s: %w", file, err)
			}
			r.pages[strings.TrimPrefix(file, "templates/")] = t
		}
	}
	return r, nil
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
