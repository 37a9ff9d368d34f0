package web

import (
	"fmt"
	"io"
	"io/fs"

	"github.com/flosch/pongo2/v6"
)

// templateEngine wraps a pongo2 template set loaded from an fs.FS. Templates
// are parsed once and cached by the set.
type templateEngine struct {
	set *pongo2.TemplateSet
}

func newTemplateEngine(fsys fs.FS) *templateEngine {
	return &templateEngine{
		set: pongo2.NewSet("qrform", pongo2.NewFSLoader(fsys)),
	}
}

func (e *templateEngine) render(name string, data pongo2.Context, out io.Writer) error {
	tmpl, err := e.set.FromCache(name)
	if err != nil {
		return fmt.Errorf("web: load template %q: %w", name, err)
	}
	if err := tmpl.ExecuteWriter(data, out); err != nil {
		return fmt.Errorf("web: execute template %q: %w", name, err)
	}
	return nil
}
