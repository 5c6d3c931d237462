package server

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
)

//go:embed templates/*
var templateFiles embed.FS

type pageTemplate = *template.Template

// pageFiles are rendered inside layout.html; each defines "content".
var pageFiles = []string{
	"home.html",
	"movies.html",
	"movie_detail.html",
	"login.html",
	"login_prompt.html",
	"register.html",
	"listed_movies.html",
	"admin_movies.html",
	"admin_form.html",
	"admin_delete.html",
	"error.html",
}

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"duration":   catalog.FormatDuration,
		"embedURL":   catalog.TrailerEmbedURL,
		"genreLabel": catalog.GenreLabel,
		"join":       strings.Join,
		"toggle":     newListedToggle,
	}
}

// listedToggle feeds the "listed_toggle" partial.
type listedToggle struct {
	Movie  catalog.Movie
	Listed bool
	Next   string
}

func newListedToggle(movie catalog.Movie, listed bool, next string) listedToggle {
	return listedToggle{Movie: movie, Listed: listed, Next: next}
}

// ParseTemplate parses a page together with the shared layout
func ParseTemplate(name string) (*template.Template, error) {
	return template.New("layout.html").Funcs(templateFuncs()).ParseFS(TemplateFilesFS(), "layout.html", name)
}

func parsePages() (map[string]pageTemplate, error) {
	pages := make(map[string]pageTemplate, len(pageFiles))
	for _, name := range pageFiles {
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return pages, nil
}

// render executes page into a buffer first so a template error still
// yields a clean 500.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	tmpl, ok := s.pages[page]
	if !ok {
		log.Error().Str("template", page).Msg("Unknown page template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, s.newPageData(r, title, content)); err != nil {
		log.Err(err).Str("template", page).Msg("Failed to render template")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError shows the error page with message.
func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	s.render(w, r, status, "error.html", http.StatusText(status), ErrorPage{Status: status, Message: message})
}
