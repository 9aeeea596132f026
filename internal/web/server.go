package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/juto-shogan/customer-support-case-analysis/internal/model"
)

// Server serves the dashboard over HTTP. The report is computed once before
// the server starts and is read-only afterwards; handlers never recompute.
type Server struct {
	report *model.Report
	router *mux.Router
}

// NewServer creates a dashboard server for an already-computed report
func NewServer(rep *model.Report) *Server {
	s := &Server{
		report: rep,
		router: mux.NewRouter(),
	}
	s.router.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	s.router.HandleFunc("/charts/{id}.png", s.handleChart).Methods(http.MethodGet)
	s.router.HandleFunc("/api/report", s.handleAPIReport).Methods(http.MethodGet)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe starts the dashboard server on the given address
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, s.report); err != nil {
		http.Error(w, fmt.Sprintf("render page: %v", err), http.StatusInternalServerError)
	}
}

// handleChart serves one chart per endpoint so a failure in one chart cannot
// prevent the others from rendering.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var section *model.Section
	for i := range s.report.Sections {
		if s.report.Sections[i].ID == id {
			section = &s.report.Sections[i]
			break
		}
	}
	if section == nil {
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := RenderSectionPNG(*section, &buf); err != nil {
		http.Error(w, fmt.Sprintf("chart %s: %v", id, err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleAPIReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.report); err != nil {
		http.Error(w, fmt.Sprintf("encode report: %v", err), http.StatusInternalServerError)
	}
}

var pageTemplate = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html><head>
<meta charset="utf-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,Segoe UI,Roboto,Inter,Arial;background:#0b1020;color:#e8ecff;margin:0;padding:20px}
.layout{display:flex;gap:20px;max-width:1280px;margin:0 auto}
main{flex:1;min-width:0}
aside{width:260px;flex-shrink:0}
.card{background:#111837;border:1px solid #203063;border-radius:14px;padding:16px;margin:0 0 16px 0}
h1{margin:0 0 10px 0}
h2{margin:0 0 12px 0;font-size:1.1rem}
.muted{color:#9aa7cf}
.finding{color:#c7d2ff}
.finding b{color:#e8ecff}
img{max-width:100%;border-radius:8px;background:#fff}
.banner{background:#14305a;border-color:#2a5ca8}
.notice{border-left:3px solid #7aa2ff;padding-left:10px;margin:8px 0;font-size:0.92rem}
</style>
</head><body>
<div class="layout">
<main>
<div class="card">
<h1>{{.Title}}</h1>
<p class="muted">{{.Intro}}</p>
</div>

{{range .Sections}}
<div class="card">
<h2>{{.Title}}</h2>
<img src="/charts/{{.ID}}.png" alt="{{.Title}}">
<p class="finding"><b>Finding:</b> {{.Finding}}</p>
</div>
{{end}}

{{if .Summary}}{{if .Summary.Enabled}}
<div class="card">
<h2>Executive Summary ({{.Summary.Provider}}/{{.Summary.Model}})</h2>
<p class="muted">{{.Summary.Text}}</p>
</div>
{{end}}{{end}}

<div class="card banner">
<p>{{.Banner}}</p>
</div>
</main>

<aside>
<div class="card">
<h2>Data Cleaning</h2>
{{range .Cleaning.Notices}}<div class="notice muted">{{.}}</div>{{end}}
<p class="muted">{{.RowCount}} cases after cleaning.</p>
</div>
</aside>
</div>
</body></html>
`))
