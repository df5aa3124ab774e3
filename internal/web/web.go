package web

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/incense/internal/formatter"
	"github.com/desertthunder/incense/internal/models"
	"github.com/desertthunder/incense/internal/server"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageData is the template context for the dashboard page.
type PageData struct {
	Summary  models.Summary
	Sessions []models.Session
	Quote    string
}

// DashboardPage renders the HTML dashboard from a [server.Source].
type DashboardPage struct {
	source server.Source
	logger *log.Logger
	tmpl   *template.Template
	loc    *time.Location
}

var _ server.Handler = (*DashboardPage)(nil)

// NewDashboardPage parses the embedded templates. Times are shown in loc (local time when nil).
func NewDashboardPage(source server.Source, logger *log.Logger, loc *time.Location) (*DashboardPage, error) {
	if loc == nil {
		loc = time.Local
	}

	funcs := template.FuncMap{
		"minutes":   formatter.FormatMinutes,
		"completed": func(t time.Time) string { return formatter.FormatCompletedAt(t, loc) },
		"iso":       func(t time.Time) string { return t.UTC().Format(time.RFC3339) },
	}

	tmpl, err := template.New("dashboard.html").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &DashboardPage{source: source, logger: logger, tmpl: tmpl, loc: loc}, nil
}

// Routes returns the exact root path.
func (p *DashboardPage) Routes() []string {
	return []string{"/{$}"}
}

func (p *DashboardPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Summary:  p.source.Summary(),
		Sessions: p.source.Sessions(),
	}
	if q := p.source.DailyQuote(); q.ValidFor(p.source.Today()) {
		data.Quote = q.Text
	}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		p.logger.Error("failed to render dashboard", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
