package main

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alphafounders/site/internal/contexthelpers"
	"github.com/alphafounders/site/internal/errors"
	"github.com/alphafounders/site/internal/gate"
	"github.com/alphafounders/site/ui"
)

// BaseTemplateData is embedded in the data of every page.
type BaseTemplateData struct {
	// Premium members see gated content unmasked.
	Premium     bool
	HasEmail    bool
	CurrentPath string
}

func (app *application) newBaseTemplateData(r *http.Request) BaseTemplateData {
	visitor := app.visitor(r)
	return BaseTemplateData{
		Premium:     visitor.IsPremiumMember,
		HasEmail:    visitor.HasEmail(),
		CurrentPath: contexthelpers.CurrentPath(r.Context()),
	}
}

var templateFuncs = template.FuncMap{
	// We need to initialize nonce and csrf before parsing the files. These will be overridden in the render function.
	"nonce": func() string {
		panic("not implemented")
	},
	"csrf": func() string {
		panic("not implemented")
	},
	"money": func(millions float64) string {
		if millions < 1 {
			return fmt.Sprintf("$%.0fK", millions*1000) //nolint:mnd // thousands per million
		}
		return fmt.Sprintf("$%.1fM", millions)
	},
	"percent": func(v float64) string {
		return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".") + "%"
	},
	"inc": func(i int) int {
		return i + 1
	},
}

// pageTemplate returns a template for the given page name.
//
// pageName corresponds to directory inside ui/templates/pages folder. It has to include a template named "page".
// The shared partials are parsed along with the base layout.
func pageTemplate(pageName string) (*template.Template, error) {
	patterns := []string{
		"templates/base.gohtml",
		"templates/partials/*.gohtml",
		fmt.Sprintf("templates/pages/%s/*.gohtml", pageName),
	}
	for _, pattern := range patterns {
		matches, err := fs.Glob(ui.Files, pattern)
		if err != nil {
			return nil, errors.Wrap(err, "glob templates", slog.String("pattern", pattern))
		}
		if len(matches) == 0 {
			return nil, errors.New("no templates found", slog.String("pattern", pattern))
		}
	}

	t, err := template.New(pageName).Funcs(templateFuncs).ParseFS(ui.Files, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return t, nil
}

// render writes the full page using the "base" layout.
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.renderTemplate(w, r, status, page, "base", gate.Document, data)
}

// renderPartial writes only the named template, which is what htmx swaps into the page.
func (app *application) renderPartial(w http.ResponseWriter, r *http.Request, status int, page, name string, data any) {
	app.renderTemplate(w, r, status, page, name, gate.Fragment, data)
}

func (app *application) renderTemplate(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	page string,
	name string,
	mode gate.Mode,
	data any,
) {
	t, err := pageTemplate(page)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "parse template", slog.String("template", page)))
		return
	}

	ctx := r.Context()
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>", contexthelpers.CSRFToken(ctx))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // we trust the csrf since it's not provided by user.
		},
	})

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template", slog.String("template", page),
			slog.String("name", name)))
		return
	}

	if !app.visitor(r).IsPremiumMember {
		masked := new(bytes.Buffer)
		if err = gate.Mask(masked, buf, mode); err != nil {
			app.serverError(w, r, errors.Wrap(err, "mask gated content", slog.String("template", page)))
			return
		}
		buf = masked
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
