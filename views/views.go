// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/danielhkuo/polls/models"
)

// Page template names
const (
	IndexPage   = "index.html"
	DetailPage  = "detail.html"
	ResultsPage = "results.html"
	ErrorPage   = "error.html"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"detailURL":  DetailURL,
	"resultsURL": ResultsURL,
	"voteURL":    VoteURL,
	"since":      humanize.Time,
	"recent": func(q models.Question) bool {
		return q.WasPublishedRecently(time.Now())
	},
	"votes": func(n int) string {
		return english.Plural(n, "vote", "")
	},
}

var pages = parsePages(IndexPage, DetailPage, ResultsPage, ErrorPage)

func parsePages(names ...string) map[string]*template.Template {
	parsed := make(map[string]*template.Template, len(names))
	for _, name := range names {
		parsed[name] = template.Must(
			template.New("base.html").Funcs(funcs).ParseFS(files, "templates/base.html", "templates/"+name),
		)
	}
	return parsed
}

// DetailURL is the path of a question's detail page
func DetailURL(questionID int64) string {
	return "/" + strconv.FormatInt(questionID, 10) + "/"
}

// ResultsURL is the path of a question's results page
func ResultsURL(questionID int64) string {
	return DetailURL(questionID) + "results/"
}

// VoteURL is the path the vote form posts to
func VoteURL(questionID int64) string {
	return DetailURL(questionID) + "vote/"
}

// Render executes a page template into a buffer and writes it with the status.
// Nothing is written to w if the template fails.
func Render(w http.ResponseWriter, statusCode int, name string, data interface{}) error {
	tmpl, ok := pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base.html", data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write page", "template", name, "error", err)
	}
	return nil
}

// RenderError writes an HTML error page, falling back to plain text
func RenderError(w http.ResponseWriter, statusCode int, message string) {
	data := struct {
		Status     int
		StatusText string
		Message    string
	}{statusCode, http.StatusText(statusCode), message}

	if err := Render(w, statusCode, ErrorPage, data); err != nil {
		slog.Error("failed to render error page", "error", err)
		http.Error(w, http.StatusText(statusCode), statusCode)
	}
}
