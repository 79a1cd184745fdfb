package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// pageFuncs are available to every page. pathEscape encodes a document name
// as a single URL path segment, including "?" and "#".
var pageFuncs = template.FuncMap{
	"pathEscape": url.PathEscape,
}

var (
	mainTemplate  = parsePage("templates/main.html")
	loginTemplate = parsePage("templates/login.html")
)

func parsePage(page string) *template.Template {
	return template.Must(template.New("layout.html").Funcs(pageFuncs).ParseFS(templateFS, "templates/layout.html", page))
}

type mainPageData struct {
	User  string
	Files []string
	Error string
}

type loginPageData struct {
	Error    bool
	Username string
}

// renderPage executes tmpl into a buffer first so a template failure can
// still produce a clean 500.
func renderPage(w http.ResponseWriter, tmpl *template.Template, data any) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("render template", "template", tmpl.Name(), "err", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}
