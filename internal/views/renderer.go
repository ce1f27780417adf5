package views

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var files embed.FS

// Data is the context a page template renders with.
type Data = pongo2.Context

// Renderer renders the embedded pongo2 templates.
type Renderer struct {
	set *pongo2.TemplateSet
	log zerolog.Logger
}

// New builds the template set. In debug mode templates are re-parsed on
// every render instead of cached.
func New(log zerolog.Logger, debug bool) (*Renderer, error) {
	sub, err := fs.Sub(files, "templates")
	if err != nil {
		return nil, err
	}
	if err := registerFilters(); err != nil {
		return nil, err
	}
	set := pongo2.NewSet("helpdesk", pongo2.NewFSLoader(sub))
	set.Debug = debug
	set.Globals["app_name"] = "Help Desk"
	return &Renderer{set: set, log: log}, nil
}

func (r *Renderer) execute(w io.Writer, name string, data Data) error {
	tpl, err := r.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("load template %s: %w", name, err)
	}
	if err := tpl.ExecuteWriter(data, w); err != nil {
		return fmt.Errorf("render template %s: %w", name, err)
	}
	return nil
}

// HTML renders a full page. Rendering happens into a buffer so a broken
// template still produces a clean 500.
func (r *Renderer) HTML(w http.ResponseWriter, status int, name string, data Data) {
	var buf bytes.Buffer
	if err := r.execute(&buf, name, data); err != nil {
		r.log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
